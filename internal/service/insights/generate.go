package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/service/analytics"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

// Tuning bands for the generated advice.
const (
	lowDayFactor        = 0.7
	trendBandPercent    = 10
	correlationBand     = 0.2
	lowCompletionBound  = 0.7
	longSessionMinutes  = 90
	shortSessionMinutes = 15
)

// Snapshot is the full activity slice a weekly insight is derived from. The
// same snapshot always generates the same payload.
type Snapshot struct {
	WeekStart        time.Time
	Sessions         []entity.WorkSession
	PrevWeekSessions []entity.WorkSession
	Habits           []entity.Habit
	DailyGoalMinutes int
}

// Generate builds the weekly insight payload: peak hours, low-productivity
// days, week-over-week trend, habit correlations and the advisory strings.
func Generate(snap Snapshot) entity.WeeklyPayload {
	daily := analytics.DailyFocusTotals(snap.Sessions, snap.WeekStart, 7)
	totalMinutes := daily.Total()
	avgDaily := totalMinutes / 7

	focusCount, completedFocus, breakCount := sessionCounts(snap.Sessions)

	payload := entity.WeeklyPayload{
		PeakHours:              peakHours(snap.Sessions),
		LowProductivityDays:    lowProductivityDays(daily, avgDaily),
		WeekOverWeekTrend:      weekOverWeekTrend(totalMinutes, focusMinutes(snap.PrevWeekSessions)),
		AverageDailyMinutes:    utils.RoundToTwoDecimals(avgDaily),
		TotalSessions:          len(snap.Sessions),
		CompletedFocusSessions: completedFocus,
		HabitCorrelations:      habitCorrelations(snap.Habits, daily),
	}

	payload.Insights = buildInsights(payload, totalMinutes)
	payload.Recommendations = buildRecommendations(payload, snap, totalMinutes, focusCount, completedFocus, breakCount)

	return payload
}

// peakHours returns the top three hours of day by cumulative focus minutes,
// descending. Hours without any focus activity never appear.
func peakHours(sessions []entity.WorkSession) []entity.PeakHour {
	var byHour [24]int
	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus || s.DurationMinutes == nil {
			continue
		}
		byHour[s.StartedAt.UTC().Hour()] += *s.DurationMinutes
	}

	peaks := make([]entity.PeakHour, 0, 24)
	for hour, minutes := range byHour {
		if minutes == 0 {
			continue
		}
		peaks = append(peaks, entity.PeakHour{
			Hour:         hour,
			Label:        utils.FormatHourTimestamp(hour),
			TotalMinutes: minutes,
		})
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].TotalMinutes != peaks[j].TotalMinutes {
			return peaks[i].TotalMinutes > peaks[j].TotalMinutes
		}
		return peaks[i].Hour < peaks[j].Hour
	})

	if len(peaks) > 3 {
		peaks = peaks[:3]
	}
	return peaks
}

// lowProductivityDays lists weekday names whose total falls under 70% of the
// average daily minutes over all seven calendar days, zero days included.
func lowProductivityDays(daily analytics.Buckets, avgDaily float64) []string {
	days := []string{}
	for _, key := range daily.Keys {
		if daily.Get(key) < lowDayFactor*avgDaily {
			day, err := time.Parse("2006-01-02", key)
			if err != nil {
				continue
			}
			days = append(days, day.Weekday().String())
		}
	}
	return days
}

func weekOverWeekTrend(current, previous float64) entity.Trend {
	trend := entity.Trend{Direction: "stable"}
	if previous != 0 {
		trend.ChangePercent = utils.RoundToTwoDecimals((current - previous) / previous * 100)
	}
	switch {
	case trend.ChangePercent > trendBandPercent:
		trend.Direction = "improving"
	case trend.ChangePercent < -trendBandPercent:
		trend.Direction = "declining"
	}
	return trend
}

// habitCorrelations compares average focus minutes on habit-logged days
// against the remaining active days. The score is the plain ratio
// (avgWith-avgWithout)/max(avgWithout,1); both partitions must be non-empty
// for a habit to score at all.
func habitCorrelations(habits []entity.Habit, daily analytics.Buckets) []entity.HabitCorrelation {
	if len(habits) == 0 {
		return nil
	}

	correlations := make([]entity.HabitCorrelation, 0, len(habits))
	for _, h := range habits {
		if !h.Active {
			continue
		}

		logged := make(map[string]bool, len(h.Logs))
		for _, l := range h.Logs {
			logged[l.LogDate.UTC().Format("2006-01-02")] = true
		}

		var withSum, withoutSum float64
		var withN, withoutN int
		for _, key := range daily.Keys {
			minutes := daily.Get(key)
			if minutes == 0 {
				continue // only days with recorded activity partition
			}
			if logged[key] {
				withSum += minutes
				withN++
			} else {
				withoutSum += minutes
				withoutN++
			}
		}

		corr := entity.HabitCorrelation{
			HabitID:   h.ID,
			HabitName: h.Name,
			Impact:    "neutral",
		}

		if withN > 0 && withoutN > 0 {
			avgWith := withSum / float64(withN)
			avgWithout := withoutSum / float64(withoutN)
			corr.Score = utils.RoundToTwoDecimals((avgWith - avgWithout) / math.Max(avgWithout, 1))
			if corr.Score > correlationBand {
				corr.Impact = "positive"
			} else if corr.Score < -correlationBand {
				corr.Impact = "negative"
			}
		}

		correlations = append(correlations, corr)
	}

	return correlations
}

func buildInsights(payload entity.WeeklyPayload, totalMinutes float64) []entity.Advice {
	insights := []entity.Advice{}

	if len(payload.PeakHours) > 0 && totalMinutes > 0 {
		top := payload.PeakHours[0]
		share := float64(top.TotalMinutes) / totalMinutes
		insights = append(insights, entity.Advice{
			Message:    fmt.Sprintf("Your focus peaks around %s.", top.Label),
			Confidence: confidenceFor(signalPeakHours, share),
		})
	}

	if n := len(payload.LowProductivityDays); n > 0 {
		insights = append(insights, entity.Advice{
			Message:    fmt.Sprintf("Productivity dipped on %s.", strings.Join(payload.LowProductivityDays, ", ")),
			Confidence: confidenceFor(signalLowDays, float64(n)),
		})
	}

	trend := payload.WeekOverWeekTrend
	trendConfidence := confidenceFor(signalTrend, math.Abs(trend.ChangePercent))
	switch trend.Direction {
	case "improving":
		insights = append(insights, entity.Advice{
			Message:    fmt.Sprintf("Focus time is up %.0f%% compared to last week.", trend.ChangePercent),
			Confidence: trendConfidence,
		})
	case "declining":
		insights = append(insights, entity.Advice{
			Message:    fmt.Sprintf("Focus time is down %.0f%% compared to last week.", math.Abs(trend.ChangePercent)),
			Confidence: trendConfidence,
		})
	default:
		insights = append(insights, entity.Advice{
			Message:    "Focus time held steady compared to last week.",
			Confidence: trendConfidence,
		})
	}

	for _, corr := range payload.HabitCorrelations {
		if corr.Impact != "positive" {
			continue
		}
		insights = append(insights, entity.Advice{
			Message:    fmt.Sprintf("Days when you logged %q came with noticeably more focus time.", corr.HabitName),
			Confidence: confidenceFor(signalPeakHours, corr.Score),
		})
	}

	return insights
}

func buildRecommendations(payload entity.WeeklyPayload, snap Snapshot, totalMinutes float64, focusCount, completedFocus, breakCount int) []entity.Advice {
	recommendations := []entity.Advice{}

	if focusCount > 0 {
		completionRate := float64(completedFocus) / float64(focusCount)
		if completionRate < lowCompletionBound {
			recommendations = append(recommendations, entity.Advice{
				Message:    "Many focus sessions ended unfinished. Try shorter, more deliberate blocks.",
				Confidence: confidenceFor(signalCompletion, 1-completionRate),
			})
		}

		avgLength := totalMinutes / float64(focusCount)
		if avgLength > longSessionMinutes {
			recommendations = append(recommendations, entity.Advice{
				Message:    "Your focus sessions run long. Splitting them with short breaks tends to keep quality up.",
				Confidence: confidenceFor(signalSessionLength, avgLength-longSessionMinutes),
			})
		} else if avgLength > 0 && avgLength < shortSessionMinutes {
			recommendations = append(recommendations, entity.Advice{
				Message:    "Your focus sessions are very short. Blocking out 25-minute sessions may help you get deeper.",
				Confidence: confidenceFor(signalSessionLength, shortSessionMinutes-avgLength),
			})
		}
	}

	if snap.DailyGoalMinutes > 0 && payload.AverageDailyMinutes < float64(snap.DailyGoalMinutes) {
		shortfall := (float64(snap.DailyGoalMinutes) - payload.AverageDailyMinutes) / float64(snap.DailyGoalMinutes)
		recommendations = append(recommendations, entity.Advice{
			Message: fmt.Sprintf("You averaged %.0f focus minutes per day against a %d-minute goal.",
				payload.AverageDailyMinutes, snap.DailyGoalMinutes),
			Confidence: confidenceFor(signalGoalGap, shortfall),
		})
	}

	if focusCount > 0 && breakCount == 0 {
		recommendations = append(recommendations, entity.Advice{
			Message:    "No break sessions were logged this week. Regular breaks protect long-term focus.",
			Confidence: confidenceFor(signalNoBreaks, float64(focusCount)),
		})
	}

	return recommendations
}

func sessionCounts(sessions []entity.WorkSession) (focus, completedFocus, breaks int) {
	for _, s := range sessions {
		switch s.Mode {
		case entity.SessionModeFocus:
			focus++
			if s.Completed {
				completedFocus++
			}
		case entity.SessionModeBreak:
			breaks++
		}
	}
	return focus, completedFocus, breaks
}

func focusMinutes(sessions []entity.WorkSession) float64 {
	var minutes float64
	for _, s := range sessions {
		if s.Mode != entity.SessionModeFocus || s.DurationMinutes == nil {
			continue
		}
		minutes += float64(*s.DurationMinutes)
	}
	return minutes
}
