package analytics

import "time"

// CurrentStreak walks backward day by day from today and counts consecutive
// days whose total meets the goal. The walk stops at the first day under
// goal, so this is the unbroken streak ending today, not the longest streak
// ever. A today already under goal yields 0.
func CurrentStreak(dailyTotals map[string]float64, dailyGoalMinutes float64, maxDays int, today time.Time) int {
	if dailyGoalMinutes <= 0 {
		return 0
	}

	streak := 0
	day := StartOf(today, UnitDay)

	for i := 0; i < maxDays; i++ {
		if dailyTotals[day.Format("2006-01-02")] < dailyGoalMinutes {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
