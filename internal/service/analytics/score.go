package analytics

import (
	"math"

	"github.com/aibekz/productivity-backend/internal/entity"
)

// Fixed composite weights; they sum to 1.
const (
	weightFocusTime      = 0.30
	weightCompletionRate = 0.25
	weightConsistency    = 0.25
	weightTaskCompletion = 0.20
)

type ScoreInput struct {
	FocusMinutes        float64
	DailyGoalMinutes    int
	FocusCompletionRate float64 // 0..1
	Streak              int
	TaskCompletionRate  float64 // 0..1
	WorkDaysInPeriod    int
}

// Score computes the weighted 0-100 productivity composite. Each sub-score is
// an integer 0-100; the composite is deterministic and monotonic in every
// input holding the others fixed.
func Score(in ScoreInput) entity.ProductivityScore {
	focusRatio := 0.0
	if in.DailyGoalMinutes > 0 {
		workDays := in.WorkDaysInPeriod
		if workDays < 1 {
			workDays = 1
		}
		focusRatio = math.Min(1, in.FocusMinutes/float64(in.DailyGoalMinutes*workDays))
	}

	consistency := int(math.Round(float64(in.Streak) / 7 * 100))
	if consistency > 100 {
		consistency = 100
	}

	breakdown := entity.ScoreBreakdown{
		FocusTime:      int(math.Round(focusRatio * 100)),
		CompletionRate: int(math.Round(in.FocusCompletionRate * 100)),
		Consistency:    consistency,
		TaskCompletion: int(math.Round(in.TaskCompletionRate * 100)),
	}

	composite := int(math.Round(
		float64(breakdown.FocusTime)*weightFocusTime +
			float64(breakdown.CompletionRate)*weightCompletionRate +
			float64(breakdown.Consistency)*weightConsistency +
			float64(breakdown.TaskCompletion)*weightTaskCompletion))

	if composite < 0 {
		composite = 0
	}
	if composite > 100 {
		composite = 100
	}

	return entity.ProductivityScore{
		Score:     composite,
		Breakdown: breakdown,
	}
}
