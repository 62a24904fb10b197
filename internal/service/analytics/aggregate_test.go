package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekz/productivity-backend/internal/entity"
)

func session(mode string, start time.Time, minutes int, completed bool) entity.WorkSession {
	return entity.WorkSession{
		Mode:            mode,
		StartedAt:       start,
		DurationMinutes: &minutes,
		Completed:       completed,
	}
}

func openSession(mode string, start time.Time) entity.WorkSession {
	return entity.WorkSession{Mode: mode, StartedAt: start}
}

func TestSumDuration_SkipsOpenSessions(t *testing.T) {
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	b := BuildBuckets(day, 1, UnitDay)

	SumDuration([]entity.WorkSession{
		session(entity.SessionModeFocus, day.Add(9*time.Hour), 50, true),
		openSession(entity.SessionModeFocus, day.Add(11*time.Hour)),
	}, b)

	assert.Equal(t, 50.0, b.Get("2025-02-03"))
}

func TestSumDuration_OrderIndependent(t *testing.T) {
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	sessions := []entity.WorkSession{
		session(entity.SessionModeFocus, day.Add(9*time.Hour), 30, true),
		session(entity.SessionModeFocus, day.Add(14*time.Hour), 45, false),
		session(entity.SessionModeBreak, day.Add(15*time.Hour), 10, true),
	}

	forward := BuildBuckets(day, 1, UnitDay)
	SumDuration(sessions, forward)

	reversed := BuildBuckets(day, 1, UnitDay)
	SumDuration([]entity.WorkSession{sessions[2], sessions[1], sessions[0]}, reversed)

	assert.Equal(t, forward.Get("2025-02-03"), reversed.Get("2025-02-03"))
}

func TestDailyFocusTotals_ExcludesBreaks(t *testing.T) {
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	daily := DailyFocusTotals([]entity.WorkSession{
		session(entity.SessionModeFocus, day.Add(9*time.Hour), 60, true),
		session(entity.SessionModeBreak, day.Add(10*time.Hour), 90, true),
	}, day, 7)

	assert.Equal(t, 60.0, daily.Get("2025-02-03"))
	assert.Equal(t, 60.0, daily.Total())
}

func TestAggregatePeriod(t *testing.T) {
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	agg := AggregatePeriod(
		[]entity.WorkSession{
			session(entity.SessionModeFocus, day, 50, true),
			session(entity.SessionModeFocus, day.Add(time.Hour), 25, false),
			session(entity.SessionModeBreak, day.Add(2*time.Hour), 15, true),
		},
		[]entity.Task{
			{Completed: true, CompletedAt: &now},
			{Completed: false},
		},
	)

	assert.Equal(t, 75.0, agg.FocusMinutes)
	assert.Equal(t, 2, agg.TotalSessions)
	assert.Equal(t, 1, agg.CompletedSessions)
	assert.Equal(t, 2, agg.TaskTotal)
	assert.Equal(t, 1, agg.TaskCompleted)
}

func TestHeatmap_AllCellsPresent(t *testing.T) {
	cells := Heatmap(nil)

	require.Len(t, cells, 7*24)
	for _, cell := range cells {
		assert.Zero(t, cell.Minutes)
	}
}

func TestHeatmap_PlacesFocusMinutes(t *testing.T) {
	monday := time.Date(2025, 1, 13, 9, 15, 0, 0, time.UTC)
	tuesday := time.Date(2025, 1, 14, 14, 30, 0, 0, time.UTC)

	cells := Heatmap([]entity.WorkSession{
		session(entity.SessionModeFocus, monday, 50, true),
		session(entity.SessionModeFocus, tuesday, 45, true),
		session(entity.SessionModeBreak, monday, 500, true),
		openSession(entity.SessionModeFocus, monday),
	})

	assert.Equal(t, 50, heatmapMinutes(t, cells, "Monday", 9))
	assert.Equal(t, 45, heatmapMinutes(t, cells, "Tuesday", 14))
	assert.Equal(t, 0, heatmapMinutes(t, cells, "Monday", 10))

	total := 0
	for _, cell := range cells {
		total += cell.Minutes
	}
	assert.Equal(t, 95, total)
}

func heatmapMinutes(t *testing.T, cells []entity.HeatmapCell, weekday string, hour int) int {
	t.Helper()
	for _, cell := range cells {
		if cell.Weekday == weekday && cell.Hour == hour {
			return cell.Minutes
		}
	}
	t.Fatalf("cell %s %d not found", weekday, hour)
	return 0
}
