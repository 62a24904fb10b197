package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekz/productivity-backend/internal/entity"
)

var weekStart = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC) // Monday

func focusAt(day int, hour int, minutes int, completed bool) entity.WorkSession {
	return entity.WorkSession{
		Mode:            entity.SessionModeFocus,
		StartedAt:       weekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
		DurationMinutes: &minutes,
		Completed:       completed,
	}
}

func breakAt(day int, hour int, minutes int) entity.WorkSession {
	return entity.WorkSession{
		Mode:            entity.SessionModeBreak,
		StartedAt:       weekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
		DurationMinutes: &minutes,
	}
}

func richSnapshot() Snapshot {
	habit := entity.Habit{Name: "Meditation", Active: true}
	for day := 0; day < 3; day++ {
		habit.Logs = append(habit.Logs, entity.HabitLog{LogDate: weekStart.AddDate(0, 0, day)})
	}

	return Snapshot{
		WeekStart: weekStart,
		Sessions: []entity.WorkSession{
			focusAt(0, 9, 60, true),
			focusAt(1, 9, 90, true),
			focusAt(2, 9, 60, true),
			focusAt(2, 14, 30, false),
			focusAt(3, 14, 60, true),
			breakAt(0, 12, 10),
		},
		PrevWeekSessions: []entity.WorkSession{
			focusAt(-7, 9, 200, true),
		},
		Habits:           []entity.Habit{habit},
		DailyGoalMinutes: 60,
	}
}

func TestGenerate_PeakHours(t *testing.T) {
	payload := Generate(richSnapshot())

	require.Len(t, payload.PeakHours, 2)
	assert.Equal(t, 9, payload.PeakHours[0].Hour)
	assert.Equal(t, 210, payload.PeakHours[0].TotalMinutes)
	assert.Equal(t, "9:00 AM", payload.PeakHours[0].Label)
	assert.Equal(t, 14, payload.PeakHours[1].Hour)
	assert.Equal(t, 90, payload.PeakHours[1].TotalMinutes)
}

func TestGenerate_PeakHoursCappedAtThree(t *testing.T) {
	snap := Snapshot{
		WeekStart: weekStart,
		Sessions: []entity.WorkSession{
			focusAt(0, 8, 10, true),
			focusAt(0, 9, 20, true),
			focusAt(0, 10, 30, true),
			focusAt(0, 11, 40, true),
			focusAt(0, 12, 50, true),
		},
	}

	payload := Generate(snap)

	require.Len(t, payload.PeakHours, 3)
	assert.Equal(t, []int{12, 11, 10},
		[]int{payload.PeakHours[0].Hour, payload.PeakHours[1].Hour, payload.PeakHours[2].Hour})
}

func TestGenerate_LowProductivityDays(t *testing.T) {
	payload := Generate(richSnapshot())

	// Mon 60, Tue 90, Wed 90, Thu 60 leave Fri/Sat/Sun under 70% of average.
	assert.Equal(t, []string{"Friday", "Saturday", "Sunday"}, payload.LowProductivityDays)
}

func TestGenerate_Totals(t *testing.T) {
	payload := Generate(richSnapshot())

	assert.Equal(t, 6, payload.TotalSessions)
	assert.Equal(t, 4, payload.CompletedFocusSessions)
	assert.Equal(t, 42.86, payload.AverageDailyMinutes)
}

func TestGenerate_WeekOverWeekTrend(t *testing.T) {
	payload := Generate(richSnapshot())

	assert.Equal(t, "improving", payload.WeekOverWeekTrend.Direction)
	assert.Equal(t, 50.0, payload.WeekOverWeekTrend.ChangePercent)
}

func TestWeekOverWeekTrend_Bands(t *testing.T) {
	assert.Equal(t, "stable", weekOverWeekTrend(110, 100).Direction)
	assert.Equal(t, "improving", weekOverWeekTrend(111, 100).Direction)
	assert.Equal(t, "declining", weekOverWeekTrend(89, 100).Direction)

	// No baseline week means no measurable change.
	trend := weekOverWeekTrend(300, 0)
	assert.Equal(t, "stable", trend.Direction)
	assert.Zero(t, trend.ChangePercent)
}

func TestGenerate_HabitCorrelationPositive(t *testing.T) {
	payload := Generate(richSnapshot())

	require.Len(t, payload.HabitCorrelations, 1)
	corr := payload.HabitCorrelations[0]
	assert.Equal(t, "Meditation", corr.HabitName)
	// Logged days averaged 80 minutes against 60 on the remaining active day.
	assert.Equal(t, 0.33, corr.Score)
	assert.Equal(t, "positive", corr.Impact)
}

func TestGenerate_HabitCorrelationNeutralWithoutBothPartitions(t *testing.T) {
	habit := entity.Habit{Name: "Journaling", Active: true}
	habit.Logs = append(habit.Logs, entity.HabitLog{LogDate: weekStart})

	snap := Snapshot{
		WeekStart: weekStart,
		Sessions:  []entity.WorkSession{focusAt(0, 9, 60, true)}, // only logged days have activity
		Habits:    []entity.Habit{habit},
	}

	payload := Generate(snap)

	require.Len(t, payload.HabitCorrelations, 1)
	assert.Equal(t, "neutral", payload.HabitCorrelations[0].Impact)
	assert.Zero(t, payload.HabitCorrelations[0].Score)
}

func TestGenerate_InactiveHabitSkipped(t *testing.T) {
	snap := richSnapshot()
	snap.Habits = append(snap.Habits, entity.Habit{Name: "Abandoned", Active: false})

	payload := Generate(snap)

	require.Len(t, payload.HabitCorrelations, 1)
}

func TestGenerate_Recommendations(t *testing.T) {
	payload := Generate(richSnapshot())

	// Average daily minutes fall short of the 60-minute goal; everything else
	// in the week looks healthy.
	require.Len(t, payload.Recommendations, 1)
	assert.Equal(t, "medium", payload.Recommendations[0].Confidence)
}

func TestGenerate_NoBreaksRecommendation(t *testing.T) {
	snap := Snapshot{
		WeekStart: weekStart,
		Sessions: []entity.WorkSession{
			focusAt(0, 9, 30, true),
			focusAt(1, 9, 30, true),
			focusAt(2, 9, 30, true),
		},
	}

	payload := Generate(snap)

	found := false
	for _, rec := range payload.Recommendations {
		if rec.Message == "No break sessions were logged this week. Regular breaks protect long-term focus." {
			found = true
			assert.Equal(t, "medium", rec.Confidence)
		}
	}
	assert.True(t, found)
}

func TestGenerate_EmptyWeek(t *testing.T) {
	payload := Generate(Snapshot{WeekStart: weekStart})

	assert.Empty(t, payload.PeakHours)
	assert.Empty(t, payload.LowProductivityDays)
	assert.Zero(t, payload.AverageDailyMinutes)
	assert.Zero(t, payload.TotalSessions)
	assert.Equal(t, "stable", payload.WeekOverWeekTrend.Direction)
	assert.Empty(t, payload.Recommendations)
	assert.Empty(t, payload.HabitCorrelations)
}

func TestGenerate_Deterministic(t *testing.T) {
	snap := richSnapshot()

	first := Generate(snap)
	second := Generate(snap)

	assert.Equal(t, first, second)
}
