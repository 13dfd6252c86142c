package mock

import "github.com/fwojciec/facdir"

var _ facdir.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of facdir.Strategy.
type Strategy struct {
	IDFn      func() facdir.StrategyID
	ExtractFn func(html string, sourceURL string) []facdir.Candidate
}

func (s *Strategy) ID() facdir.StrategyID {
	return s.IDFn()
}

func (s *Strategy) Extract(html string, sourceURL string) []facdir.Candidate {
	return s.ExtractFn(html, sourceURL)
}
