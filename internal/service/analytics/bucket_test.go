package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketKey(t *testing.T) {
	// Wednesday
	ref := time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-15", BucketKey(ref, UnitDay))
	assert.Equal(t, "2025-01-13", BucketKey(ref, UnitWeek))
	assert.Equal(t, "2025-01", BucketKey(ref, UnitMonth))
}

func TestStartOf_WeekStartsMonday(t *testing.T) {
	sunday := time.Date(2025, 1, 19, 23, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)

	want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, StartOf(sunday, UnitWeek))
	assert.Equal(t, want, StartOf(monday, UnitWeek))
}

func TestStartOf_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2025, 3, 10, 2, 0, 0, 0, loc) // 2025-03-09 21:00 UTC

	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), StartOf(local, UnitDay))
}

func TestBuildBuckets_ContiguousZeroInitialized(t *testing.T) {
	start := time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC)
	b := BuildBuckets(start, 4, UnitDay)

	require.Equal(t, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, b.Keys)
	for _, key := range b.Keys {
		assert.Zero(t, b.Get(key))
	}
}

func TestBuildBuckets_MonthBoundaries(t *testing.T) {
	start := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	b := BuildBuckets(start, 3, UnitMonth)

	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01"}, b.Keys)
}

func TestBuckets_AddIgnoresUnknownKeys(t *testing.T) {
	b := BuildBuckets(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2, UnitDay)

	b.Add("2025-01-01", 30)
	b.Add("2025-06-15", 500) // outside the built range

	assert.Equal(t, 30.0, b.Get("2025-01-01"))
	assert.Equal(t, 30.0, b.Total())
	assert.Len(t, b.Keys, 2)
}

func TestBuckets_AddAccumulates(t *testing.T) {
	b := BuildBuckets(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 1, UnitDay)

	b.Add("2025-01-01", 25)
	b.Add("2025-01-01", 50)

	assert.Equal(t, 75.0, b.Get("2025-01-01"))
}
