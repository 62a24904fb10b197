package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_KnownComposite(t *testing.T) {
	score := Score(ScoreInput{
		FocusMinutes:        420,
		DailyGoalMinutes:    60,
		FocusCompletionRate: 0.8,
		Streak:              7,
		TaskCompletionRate:  0.5,
		WorkDaysInPeriod:    7,
	})

	assert.Equal(t, 100, score.Breakdown.FocusTime)
	assert.Equal(t, 80, score.Breakdown.CompletionRate)
	assert.Equal(t, 100, score.Breakdown.Consistency)
	assert.Equal(t, 50, score.Breakdown.TaskCompletion)
	// 100*.30 + 80*.25 + 100*.25 + 50*.20
	assert.Equal(t, 85, score.Score)
}

func TestScore_ZeroInput(t *testing.T) {
	score := Score(ScoreInput{})

	assert.Zero(t, score.Score)
	assert.Zero(t, score.Breakdown.FocusTime)
	assert.Zero(t, score.Breakdown.Consistency)
}

func TestScore_ZeroDailyGoalZeroesFocus(t *testing.T) {
	score := Score(ScoreInput{
		FocusMinutes:     500,
		DailyGoalMinutes: 0,
		WorkDaysInPeriod: 7,
	})

	assert.Zero(t, score.Breakdown.FocusTime)
}

func TestScore_SubScoresCappedAt100(t *testing.T) {
	score := Score(ScoreInput{
		FocusMinutes:        10000,
		DailyGoalMinutes:    60,
		FocusCompletionRate: 1,
		Streak:              30,
		TaskCompletionRate:  1,
		WorkDaysInPeriod:    7,
	})

	assert.Equal(t, 100, score.Breakdown.FocusTime)
	assert.Equal(t, 100, score.Breakdown.Consistency)
	assert.Equal(t, 100, score.Score)
}

func TestScore_MonotonicInFocusMinutes(t *testing.T) {
	base := ScoreInput{
		DailyGoalMinutes:    60,
		FocusCompletionRate: 0.5,
		Streak:              2,
		TaskCompletionRate:  0.5,
		WorkDaysInPeriod:    7,
	}

	prev := -1
	for _, minutes := range []float64{0, 60, 120, 240, 420} {
		in := base
		in.FocusMinutes = minutes
		got := Score(in).Score
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestScore_HighActivityBeatsLow(t *testing.T) {
	high := Score(ScoreInput{
		FocusMinutes:        400,
		DailyGoalMinutes:    60,
		FocusCompletionRate: 0.9,
		Streak:              6,
		TaskCompletionRate:  0.8,
		WorkDaysInPeriod:    7,
	})
	low := Score(ScoreInput{
		FocusMinutes:        60,
		DailyGoalMinutes:    60,
		FocusCompletionRate: 0.2,
		Streak:              0,
		TaskCompletionRate:  0.1,
		WorkDaysInPeriod:    7,
	})

	assert.Greater(t, high.Score, low.Score)
}
