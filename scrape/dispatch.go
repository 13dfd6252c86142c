package scrape

import (
	"log/slog"

	"github.com/fwojciec/facdir"
)

// Dispatcher runs strategies in a requested order and stops at the first
// one that produces candidates.
type Dispatcher struct {
	strategies map[facdir.StrategyID]facdir.Strategy
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher holding the given strategies, keyed by ID.
func NewDispatcher(strategies ...facdir.Strategy) *Dispatcher {
	d := &Dispatcher{
		strategies: make(map[facdir.StrategyID]facdir.Strategy, len(strategies)),
		logger:     discardLogger(),
	}
	for _, s := range strategies {
		d.strategies[s.ID()] = s
	}
	return d
}

// WithLogger sets the logger used to report recovered strategy panics.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Dispatch invokes the strategies named in order against html. It returns the
// candidates of the first strategy with a non-empty result and that
// strategy's ID. When every strategy comes up empty it returns no candidates
// and an empty ID. Unknown IDs are skipped.
func (d *Dispatcher) Dispatch(html, sourceURL string, order []facdir.StrategyID) ([]facdir.Candidate, facdir.StrategyID) {
	for _, id := range order {
		s, ok := d.strategies[id]
		if !ok {
			d.logger.Debug("unknown strategy", "strategy", id)
			continue
		}
		if candidates := d.extract(s, html, sourceURL); len(candidates) > 0 {
			return candidates, id
		}
	}
	return nil, ""
}

// extract runs one strategy, mapping a panic to an empty result.
func (d *Dispatcher) extract(s facdir.Strategy, html, sourceURL string) (candidates []facdir.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("strategy panic", "strategy", s.ID(), "url", sourceURL, "panic", r)
			candidates = nil
		}
	}()
	return s.Extract(html, sourceURL)
}
