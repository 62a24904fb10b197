package analytics

import (
	"time"

	"github.com/aibekz/productivity-backend/internal/entity"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// SumDuration accumulates closed-session minutes into b by the session's
// bucket. Open sessions carry no duration yet and contribute nothing.
// Accumulation is commutative, so input order does not matter.
func SumDuration(sessions []entity.WorkSession, b Buckets) {
	for _, s := range sessions {
		if s.DurationMinutes == nil {
			continue
		}
		b.Add(BucketKey(s.StartedAt, b.Unit), float64(*s.DurationMinutes))
	}
}

// SumFocusDuration is SumDuration restricted to focus-mode sessions.
func SumFocusDuration(sessions []entity.WorkSession, b Buckets) {
	SumDuration(filterFocus(sessions), b)
}

// CountSessions accumulates session counts into b by the session's bucket.
func CountSessions(sessions []entity.WorkSession, b Buckets) {
	for _, s := range sessions {
		b.Add(BucketKey(s.StartedAt, b.Unit), 1)
	}
}

// DailyFocusTotals builds a day-bucketed focus-minute series covering days
// consecutive days starting at start.
func DailyFocusTotals(sessions []entity.WorkSession, start time.Time, days int) Buckets {
	b := BuildBuckets(start, days, UnitDay)
	SumFocusDuration(sessions, b)
	return b
}

// AggregatePeriod folds a period's sessions and tasks into the comparison
// aggregate.
func AggregatePeriod(sessions []entity.WorkSession, tasks []entity.Task) entity.PeriodAggregate {
	agg := entity.PeriodAggregate{}

	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus {
			continue
		}
		agg.TotalSessions++
		if s.Completed {
			agg.CompletedSessions++
		}
		if s.DurationMinutes != nil {
			agg.FocusMinutes += float64(*s.DurationMinutes)
		}
	}

	for _, t := range tasks {
		agg.TaskTotal++
		if t.Completed {
			agg.TaskCompleted++
		}
	}

	return agg
}

// Heatmap buckets focus minutes into a 7x24 weekday-by-hour grid. All 168
// cells are always present and zero-initialized; break sessions contribute
// nothing regardless of duration.
func Heatmap(sessions []entity.WorkSession) []entity.HeatmapCell {
	cells := make([]entity.HeatmapCell, 0, 7*24)
	index := make(map[[2]int]int, 7*24)

	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			index[[2]int{day, hour}] = len(cells)
			cells = append(cells, entity.HeatmapCell{
				Weekday: weekdayNames[day],
				Hour:    hour,
			})
		}
	}

	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus || s.DurationMinutes == nil {
			continue
		}
		started := s.StartedAt.UTC()
		i := index[[2]int{int(started.Weekday()), started.Hour()}]
		cells[i].Minutes += *s.DurationMinutes
	}

	return cells
}

func filterFocus(sessions []entity.WorkSession) []entity.WorkSession {
	focus := make([]entity.WorkSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Mode == entity.SessionModeFocus {
			focus = append(focus, s)
		}
	}
	return focus
}
