package id

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtIsSortable(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = At(now)
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}

func TestAtCarriesTimestamp(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC)
	u, err := ulid.ParseStrict(At(ts))
	require.NoError(t, err)
	got := ulid.Time(u.Time())
	assert.True(t, got.Equal(ts), "got %s", got)
}
