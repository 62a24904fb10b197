package utils

import "time"

// DayStartUTC truncates t to midnight of its UTC calendar day.
func DayStartUTC(t time.Time) time.Time {
	day := t.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole UTC calendar days from start to end, inclusive of
// the start day. Returns 0 when end precedes start.
func DaysBetween(start, end time.Time) int {
	startDay := DayStartUTC(start)
	endDay := DayStartUTC(end)
	if endDay.Before(startDay) {
		return 0
	}
	return int(endDay.Sub(startDay).Hours()/24) + 1
}
