package goal

import (
	"math"
	"time"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

// Focus contribution assumes a fixed 60-minute daily target; goals carry no
// per-goal focus target of their own.
const focusTargetMinutesPerDay = 60.0

// Health classification bands, in progress points relative to elapsed time.
const (
	healthGapAhead  = 10.0
	healthGapBehind = -10.0
	lateStageShare  = 0.2
)

// ComputeProgress combines key-result progress, task completion, habit
// adherence and focus minutes into one progress percentage plus a health
// classification. Pure: the caller persists the result.
func ComputeProgress(g entity.Goal, activity entity.GoalActivity, now time.Time) entity.GoalProgress {
	totalDays := g.EndDate.Sub(g.StartDate).Hours() / 24
	elapsedDays := math.Max(0, now.Sub(g.StartDate).Hours()/24)

	timeProgress := 0.0
	if totalDays > 0 {
		timeProgress = elapsedDays / totalDays
	}

	taskProgress := taskProgress(activity.Tasks)
	habitProgress := habitAdherence(activity.Habits, g.StartDate, elapsedDays, totalDays)
	focusProgress := focusProgress(activity.Sessions, totalDays)

	var overall float64
	if len(g.KeyResults) > 0 {
		krProgress := KeyResultAverage(g.KeyResults)
		overall = krProgress*0.7 + (taskProgress+habitProgress+focusProgress)/3*0.3
	} else {
		// Without key results only activity sources that produced a signal
		// count; a goal linked to nothing stays at 0.
		sum, n := 0.0, 0
		for _, v := range []float64{taskProgress, habitProgress, focusProgress} {
			if v > 0 {
				sum += v
				n++
			}
		}
		if n > 0 {
			overall = sum / float64(n)
		}
	}

	return entity.GoalProgress{
		ProgressPercent: utils.RoundToTwoDecimals(overall),
		CurrentValue:    utils.RoundToTwoDecimals(overall / 100 * g.TargetValue),
		HealthStatus:    ClassifyHealth(overall, timeProgress, totalDays-elapsedDays, totalDays),
	}
}

// ClassifyHealth maps the gap between achieved progress and elapsed time onto
// on_track / at_risk / off_track.
func ClassifyHealth(overall, timeProgress, remainingDays, totalDays float64) string {
	if remainingDays <= 0 {
		if overall >= 100 {
			return entity.HealthOnTrack
		}
		return entity.HealthOffTrack
	}

	gap := overall - timeProgress*100
	lateStage := remainingDays <= lateStageShare*totalDays

	switch {
	case gap >= healthGapAhead:
		return entity.HealthOnTrack
	case gap >= healthGapBehind && !lateStage:
		return entity.HealthAtRisk
	case gap < healthGapBehind:
		if lateStage {
			return entity.HealthOffTrack
		}
		return entity.HealthAtRisk
	default:
		return entity.HealthOnTrack
	}
}

// KeyResultProgress is a single key result's capped completion percentage.
func KeyResultProgress(kr entity.KeyResult) float64 {
	if kr.TargetValue <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, kr.CurrentValue/kr.TargetValue)) * 100
}

// KeyResultAverage is the weight-normalized key-result progress. Zero-weight
// entries are excluded from the denominator; an all-zero weight set yields 0.
func KeyResultAverage(krs []entity.KeyResult) float64 {
	var weighted, totalWeight float64
	for _, kr := range krs {
		if kr.Weight <= 0 {
			continue
		}
		weighted += KeyResultProgress(kr) * kr.Weight
		totalWeight += kr.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

func taskProgress(tasks []entity.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(tasks))
}

// habitAdherence averages each linked habit's log rate over the days the goal
// has been running, capping every habit at 100%.
func habitAdherence(habits []entity.Habit, startDate time.Time, elapsedDays, totalDays float64) float64 {
	if len(habits) == 0 {
		return 0
	}

	expectedDays := math.Min(elapsedDays+1, totalDays)
	if expectedDays <= 0 {
		return 0
	}

	var sum float64
	for _, h := range habits {
		logs := 0
		for _, l := range h.Logs {
			if !l.LogDate.Before(startDate) {
				logs++
			}
		}
		sum += math.Min(100, 100*float64(logs)/expectedDays)
	}

	return sum / float64(len(habits))
}

func focusProgress(sessions []entity.WorkSession, totalDays float64) float64 {
	if totalDays <= 0 {
		return 0
	}

	var minutes float64
	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus || s.DurationMinutes == nil {
			continue
		}
		minutes += float64(*s.DurationMinutes)
	}

	return math.Min(100, 100*minutes/(totalDays*focusTargetMinutesPerDay))
}
