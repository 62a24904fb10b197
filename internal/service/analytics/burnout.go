package analytics

import (
	"github.com/aibekz/productivity-backend/internal/entity"
)

type BurnoutOptions struct {
	LongSessionMinutes     int
	LowCompletionThreshold float64
}

func DefaultBurnoutOptions() BurnoutOptions {
	return BurnoutOptions{
		LongSessionMinutes:     60,
		LowCompletionThreshold: 0.5,
	}
}

const burnoutAdvisory = "Several long focus sessions ended without completion recently. Consider shorter sessions with planned breaks."

// DetectBurnout flags risk from a concentration of long focus sessions
// combined with a depressed completion rate over the trailing window. Zero
// sessions is no signal and reads as healthy: the completion rate stays 1.0
// and no risk is raised.
func DetectBurnout(sessions []entity.WorkSession, opts BurnoutOptions) entity.BurnoutAssessment {
	assessment := entity.BurnoutAssessment{CompletionRate: 1.0}

	total := 0
	completed := 0
	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus {
			continue
		}
		total++
		if s.Completed {
			completed++
		}
		if s.DurationMinutes != nil && *s.DurationMinutes >= opts.LongSessionMinutes {
			assessment.LongSessionsCount++
		}
	}

	if total > 0 {
		assessment.CompletionRate = float64(completed) / float64(total)
	}

	if assessment.LongSessionsCount >= 2 && assessment.CompletionRate < opts.LowCompletionThreshold {
		assessment.AtRisk = true
		assessment.Message = burnoutAdvisory
	}

	return assessment
}
