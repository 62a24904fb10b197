package analytics

import (
	"time"
)

type BucketUnit string

const (
	UnitDay   BucketUnit = "day"
	UnitWeek  BucketUnit = "week"
	UnitMonth BucketUnit = "month"
)

// Buckets is a fixed-size, gap-free time series. Keys are unit-aligned bucket
// starts in order; every bucket exists from the moment it is built, so a day
// with no activity reads as an explicit zero.
type Buckets struct {
	Unit   BucketUnit
	Keys   []string
	Values map[string]float64
}

// BucketKey formats the unit-aligned start of t as the bucket key.
// Days and weeks key on the date, months on year-month.
func BucketKey(t time.Time, unit BucketUnit) string {
	start := StartOf(t, unit)
	if unit == UnitMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// StartOf truncates t to the beginning of its bucket in UTC. Weeks start on
// Monday.
func StartOf(t time.Time, unit BucketUnit) time.Time {
	t = t.UTC()
	switch unit {
	case UnitWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func nextStart(t time.Time, unit BucketUnit) time.Time {
	switch unit {
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// BuildBuckets produces count contiguous zero-initialized buckets starting at
// the bucket containing start.
func BuildBuckets(start time.Time, count int, unit BucketUnit) Buckets {
	b := Buckets{
		Unit:   unit,
		Keys:   make([]string, 0, count),
		Values: make(map[string]float64, count),
	}

	cursor := StartOf(start, unit)
	for i := 0; i < count; i++ {
		key := BucketKey(cursor, unit)
		b.Keys = append(b.Keys, key)
		b.Values[key] = 0
		cursor = nextStart(cursor, unit)
	}

	return b
}

// Add accumulates v into the bucket for key. Keys outside the built range are
// ignored so out-of-window records never grow the series.
func (b Buckets) Add(key string, v float64) {
	if _, ok := b.Values[key]; !ok {
		return
	}
	b.Values[key] += v
}

// Get returns the bucket value, or 0 for an unknown key.
func (b Buckets) Get(key string) float64 {
	return b.Values[key]
}

// Total sums all buckets.
func (b Buckets) Total() float64 {
	var total float64
	for _, key := range b.Keys {
		total += b.Values[key]
	}
	return total
}
