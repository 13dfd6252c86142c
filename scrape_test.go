package facdir_test

import (
	"testing"

	"github.com/fwojciec/facdir"
	"github.com/stretchr/testify/assert"
)

func TestScrapeRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute http URLs", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"https://music.uni.edu/faculty", "http://uni.edu"} {
			req := facdir.ScrapeRequest{URL: u}
			assert.NoError(t, req.Validate(), u)
		}
	})

	t.Run("rejects missing and non-http URLs", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"", "uni.edu/faculty", "ftp://uni.edu", "https://", "/faculty"} {
			req := facdir.ScrapeRequest{URL: u}
			err := req.Validate()
			assert.Equal(t, facdir.EINVALID, facdir.ErrorCode(err), u)
		}
	})

	t.Run("rejects negative max pages", func(t *testing.T) {
		t.Parallel()

		req := facdir.ScrapeRequest{URL: "https://uni.edu", MaxPages: -1}

		assert.Equal(t, facdir.EINVALID, facdir.ErrorCode(req.Validate()))
	})
}

func TestFailedResult(t *testing.T) {
	t.Parallel()

	got := facdir.FailedResult("https://uni.edu", "boom")

	assert.False(t, got.Success)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.TotalFound)
	assert.Empty(t, got.StrategyUsed)
	assert.Equal(t, "boom", got.Message)
}

func TestEmailStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range facdir.EmailStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, facdir.EmailStatus("bogus").Valid())
	assert.False(t, facdir.EmailStatus("").Valid())
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a run with valid records", func(t *testing.T) {
		t.Parallel()

		run := facdir.Run{
			SourceURL: "https://uni.edu",
			Records:   []facdir.Record{{Name: "Jane", EmailStatus: facdir.StatusMissing}},
		}

		assert.NoError(t, run.Validate())
	})

	t.Run("requires a source URL", func(t *testing.T) {
		t.Parallel()

		run := facdir.Run{}

		assert.Equal(t, facdir.EINVALID, facdir.ErrorCode(run.Validate()))
	})

	t.Run("requires record names", func(t *testing.T) {
		t.Parallel()

		run := facdir.Run{
			SourceURL: "https://uni.edu",
			Records:   []facdir.Record{{EmailStatus: facdir.StatusMissing}},
		}

		assert.Equal(t, facdir.EINVALID, facdir.ErrorCode(run.Validate()))
	})

	t.Run("requires known email statuses", func(t *testing.T) {
		t.Parallel()

		run := facdir.Run{
			SourceURL: "https://uni.edu",
			Records:   []facdir.Record{{Name: "Jane", EmailStatus: "unknown"}},
		}

		assert.Equal(t, facdir.EINVALID, facdir.ErrorCode(run.Validate()))
	})
}
