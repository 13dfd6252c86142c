package scrape_test

import (
	"testing"

	"github.com/fwojciec/facdir"
	"github.com/fwojciec/facdir/scrape"
	"github.com/stretchr/testify/assert"
)

func TestNewPlan(t *testing.T) {
	t.Parallel()

	t.Run("uses the default order when the URL has no keywords", func(t *testing.T) {
		t.Parallel()

		plan := scrape.NewPlan("https://example.com/")

		assert.Equal(t, facdir.DefaultStrategies(), plan.Strategies)
		assert.False(t, plan.NeedsJS)
		assert.False(t, plan.HasPagination)
		assert.Equal(t, "example.com", plan.Hints.Domain)
		assert.False(t, plan.Hints.IsUniversity)
		assert.Empty(t, plan.Hints.Keywords)
	})

	t.Run("directory keywords select all strategies", func(t *testing.T) {
		t.Parallel()

		plan := scrape.NewPlan("https://www.uni.edu/Faculty/")

		assert.Equal(t, []facdir.StrategyID{
			facdir.StrategyJSONLD,
			facdir.StrategyDirectoryTable,
			facdir.StrategyFacultyGeneric,
		}, plan.Strategies)
	})

	t.Run("music keywords alone skip the generic strategy", func(t *testing.T) {
		t.Parallel()

		plan := scrape.NewPlan("https://conservatory.example.org/about")

		assert.Equal(t, []facdir.StrategyID{facdir.StrategyJSONLD, facdir.StrategyDirectoryTable}, plan.Strategies)
	})

	t.Run("combined keywords are deduplicated in order", func(t *testing.T) {
		t.Parallel()

		plan := scrape.NewPlan("https://cah.fresnostate.edu/about/directory/music/index.html")

		assert.Equal(t, facdir.DefaultStrategies(), plan.Strategies)
	})

	t.Run("collects hints from host and path", func(t *testing.T) {
		t.Parallel()

		plan := scrape.NewPlan("https://Music.State-University.edu/People/Voice")

		assert.Equal(t, "music.state-university.edu", plan.Hints.Domain)
		assert.Equal(t, "/people/voice", plan.Hints.Path)
		assert.True(t, plan.Hints.IsUniversity)
		assert.Equal(t, []string{"people", "music", "voice"}, plan.Hints.Keywords)
	})
}
