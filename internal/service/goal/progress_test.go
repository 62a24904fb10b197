package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aibekz/productivity-backend/internal/entity"
)

func testGoal(start, end time.Time) entity.Goal {
	return entity.Goal{
		Title:       "Ship the release",
		StartDate:   start,
		EndDate:     end,
		TargetValue: 100,
	}
}

func focusSessions(minutes ...int) []entity.WorkSession {
	sessions := make([]entity.WorkSession, 0, len(minutes))
	for i := range minutes {
		m := minutes[i]
		sessions = append(sessions, entity.WorkSession{
			Mode:            entity.SessionModeFocus,
			DurationMinutes: &m,
		})
	}
	return sessions
}

func TestClassifyHealth(t *testing.T) {
	tests := []struct {
		name          string
		overall       float64
		timeProgress  float64
		remainingDays float64
		totalDays     float64
		want          string
	}{
		{"well ahead of schedule", 80, 0.5, 15, 30, entity.HealthOnTrack},
		{"exactly ten points ahead", 60, 0.5, 15, 30, entity.HealthOnTrack},
		{"slightly behind mid-goal", 45, 0.5, 15, 30, entity.HealthAtRisk},
		{"far behind mid-goal", 20, 0.5, 15, 30, entity.HealthAtRisk},
		{"far behind late-stage", 20, 0.9, 3, 30, entity.HealthOffTrack},
		{"roughly on pace late-stage", 88, 0.9, 3, 30, entity.HealthOnTrack},
		{"period over and complete", 100, 1, 0, 30, entity.HealthOnTrack},
		{"period over and incomplete", 80, 1, 0, 30, entity.HealthOffTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHealth(tt.overall, tt.timeProgress, tt.remainingDays, tt.totalDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyResultProgress(t *testing.T) {
	assert.Equal(t, 50.0, KeyResultProgress(entity.KeyResult{TargetValue: 10, CurrentValue: 5}))
	assert.Equal(t, 100.0, KeyResultProgress(entity.KeyResult{TargetValue: 10, CurrentValue: 25}))
	assert.Zero(t, KeyResultProgress(entity.KeyResult{TargetValue: 0, CurrentValue: 5}))
	assert.Zero(t, KeyResultProgress(entity.KeyResult{TargetValue: 10, CurrentValue: -3}))
}

func TestKeyResultAverage_Weighted(t *testing.T) {
	krs := []entity.KeyResult{
		{TargetValue: 10, CurrentValue: 10, Weight: 0.75}, // 100%
		{TargetValue: 10, CurrentValue: 0, Weight: 0.25},  // 0%
	}

	assert.Equal(t, 75.0, KeyResultAverage(krs))
}

func TestKeyResultAverage_SkipsZeroWeight(t *testing.T) {
	krs := []entity.KeyResult{
		{TargetValue: 10, CurrentValue: 10, Weight: 0},
		{TargetValue: 10, CurrentValue: 5, Weight: 1},
	}

	assert.Equal(t, 50.0, KeyResultAverage(krs))
	assert.Zero(t, KeyResultAverage([]entity.KeyResult{{TargetValue: 10, CurrentValue: 10, Weight: 0}}))
}

func TestComputeProgress_NoActivityStaysZero(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	now := start.AddDate(0, 0, 10)

	progress := ComputeProgress(testGoal(start, end), entity.GoalActivity{}, now)

	assert.Zero(t, progress.ProgressPercent)
	assert.Zero(t, progress.CurrentValue)
}

func TestComputeProgress_KeyResultBlend(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 5)

	g := testGoal(start, end)
	g.KeyResults = []entity.KeyResult{
		{TargetValue: 10, CurrentValue: 8, Weight: 1}, // 80%
	}
	activity := entity.GoalActivity{
		Tasks: []entity.Task{{Completed: true}, {Completed: true}}, // 100%
	}

	progress := ComputeProgress(g, activity, now)

	// 80*0.7 + (100+0+0)/3*0.3 = 56 + 10
	assert.Equal(t, 66.0, progress.ProgressPercent)
	assert.Equal(t, 66.0, progress.CurrentValue)
}

func TestComputeProgress_AveragesNonZeroSources(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 5)

	activity := entity.GoalActivity{
		Tasks:    []entity.Task{{Completed: true}, {Completed: false}}, // 50%
		Sessions: focusSessions(300),                                   // 300/(10*60) = 50%
	}

	progress := ComputeProgress(testGoal(start, end), activity, now)

	// Habit source produced no signal, so only tasks and focus average.
	assert.Equal(t, 50.0, progress.ProgressPercent)
}

func TestComputeProgress_FocusCappedAt100(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 5)

	activity := entity.GoalActivity{Sessions: focusSessions(5000)}

	progress := ComputeProgress(testGoal(start, end), activity, now)

	assert.Equal(t, 100.0, progress.ProgressPercent)
}

func TestComputeProgress_HabitAdherence(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 4) // elapsed 4 days, expected = 5

	habit := entity.Habit{Name: "Morning review", Active: true}
	for i := 0; i < 4; i++ {
		habit.Logs = append(habit.Logs, entity.HabitLog{LogDate: start.AddDate(0, 0, i)})
	}
	// A log before the goal window never counts.
	habit.Logs = append(habit.Logs, entity.HabitLog{LogDate: start.AddDate(0, 0, -3)})

	progress := ComputeProgress(testGoal(start, end), entity.GoalActivity{Habits: []entity.Habit{habit}}, now)

	assert.Equal(t, 80.0, progress.ProgressPercent)
}

func TestComputeProgress_HealthTracksSchedule(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 5) // timeProgress 50%

	ahead := entity.GoalActivity{
		Tasks: []entity.Task{{Completed: true}, {Completed: true}, {Completed: true}},
	}
	behind := entity.GoalActivity{
		Tasks: []entity.Task{{Completed: true}, {Completed: false}, {Completed: false}, {Completed: false}},
	}

	assert.Equal(t, entity.HealthOnTrack, ComputeProgress(testGoal(start, end), ahead, now).HealthStatus)
	assert.Equal(t, entity.HealthAtRisk, ComputeProgress(testGoal(start, end), behind, now).HealthStatus)
}
