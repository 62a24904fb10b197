package analytics

import (
	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

// ComparePeriods builds this-period vs last-period deltas. Both inputs are
// echoed back unchanged; rate deltas are percentage points and every zero
// denominator yields 0 rather than an error.
func ComparePeriods(this, last entity.PeriodAggregate) entity.PeriodComparison {
	delta := entity.PeriodDelta{
		FocusMinutes: this.FocusMinutes - last.FocusMinutes,
	}

	if last.FocusMinutes != 0 {
		delta.FocusMinutesPercent = utils.RoundToTwoDecimals(
			(this.FocusMinutes - last.FocusMinutes) / last.FocusMinutes * 100)
	}

	delta.CompletionRatePoints = utils.RoundToTwoDecimals(
		(completionRate(this.CompletedSessions, this.TotalSessions) -
			completionRate(last.CompletedSessions, last.TotalSessions)) * 100)

	delta.TaskCompletionRatePoints = utils.RoundToTwoDecimals(
		(completionRate(this.TaskCompleted, this.TaskTotal) -
			completionRate(last.TaskCompleted, last.TaskTotal)) * 100)

	return entity.PeriodComparison{
		ThisWeek: this,
		LastWeek: last,
		Delta:    delta,
	}
}

func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
