package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	totals := map[string]float64{
		"2025-03-10": 90,
		"2025-03-09": 60,
		"2025-03-08": 75,
		"2025-03-07": 10, // breaks the streak
		"2025-03-06": 120,
	}

	assert.Equal(t, 3, CurrentStreak(totals, 60, 365, today))
}

func TestCurrentStreak_TodayUnderGoal(t *testing.T) {
	today := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	totals := map[string]float64{
		"2025-03-10": 30,
		"2025-03-09": 90,
	}

	assert.Equal(t, 0, CurrentStreak(totals, 60, 365, today))
}

func TestCurrentStreak_ZeroGoal(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(map[string]float64{"2025-03-10": 90}, 0, 365, time.Now()))
	assert.Equal(t, 0, CurrentStreak(map[string]float64{"2025-03-10": 90}, -10, 365, time.Now()))
}

func TestCurrentStreak_CappedAtMaxDays(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	totals := make(map[string]float64)
	day := today
	for i := 0; i < 30; i++ {
		totals[day.Format("2006-01-02")] = 100
		day = day.AddDate(0, 0, -1)
	}

	assert.Equal(t, 7, CurrentStreak(totals, 60, 7, today))
}

func TestCurrentStreak_MissingDayReadsAsZero(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	totals := map[string]float64{
		"2025-03-10": 60,
		// 2025-03-09 absent
		"2025-03-08": 60,
	}

	assert.Equal(t, 1, CurrentStreak(totals, 60, 365, today))
}
