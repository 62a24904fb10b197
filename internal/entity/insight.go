package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// WeeklyInsight is a cached computation result keyed by (user_id, week_start).
// Regeneration for the same key overwrites the row, never duplicates it.
type WeeklyInsight struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"userId" db:"user_id"`
	WeekStart   time.Time     `json:"weekStart" db:"week_start"`
	Payload     WeeklyPayload `json:"payload" db:"-"`
	GeneratedAt time.Time     `json:"generatedAt" db:"generated_at"`
}

// WeeklyPayload is the serialization-ready insight body.
type WeeklyPayload struct {
	PeakHours              []PeakHour         `json:"peakHours"`
	LowProductivityDays    []string           `json:"lowProductivityDays"`
	WeekOverWeekTrend      Trend              `json:"weekOverWeekTrend"`
	AverageDailyMinutes    float64            `json:"averageDailyMinutes"`
	TotalSessions          int                `json:"totalSessions"`
	CompletedFocusSessions int                `json:"completedFocusSessions"`
	HabitCorrelations      []HabitCorrelation `json:"habitCorrelations,omitempty"`
	Insights               []Advice           `json:"insights"`
	Recommendations        []Advice           `json:"recommendations"`
}

type PeakHour struct {
	Hour         int    `json:"hour"`
	Label        string `json:"label"`
	TotalMinutes int    `json:"totalMinutes"`
}

type Trend struct {
	Direction     string  `json:"direction"` // improving | declining | stable
	ChangePercent float64 `json:"changePercent"`
}

// HabitCorrelation compares average daily minutes on habit-logged days vs the
// rest. The score is a plain ratio, not a statistical correlation.
type HabitCorrelation struct {
	HabitID   uuid.UUID `json:"habitId"`
	HabitName string    `json:"habitName"`
	Score     float64   `json:"correlationScore"`
	Impact    string    `json:"impact"` // positive | negative | neutral
}

// Advice is a generated insight or recommendation string with a confidence
// tag derived from signal strength.
type Advice struct {
	Message    string `json:"message"`
	Confidence string `json:"confidence"` // low | medium | high
}

type BurnoutAssessment struct {
	AtRisk            bool    `json:"atRisk"`
	LongSessionsCount int     `json:"longSessionsCount"`
	CompletionRate    float64 `json:"completionRate"`
	Message           string  `json:"message,omitempty"`
}

type ProductivityScore struct {
	Score     int            `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

type ScoreBreakdown struct {
	FocusTime      int `json:"focusTime"`
	CompletionRate int `json:"completionRate"`
	Consistency    int `json:"consistency"`
	TaskCompletion int `json:"taskCompletion"`
}

// PeriodAggregate sums one period's activity for week-over-week comparison.
type PeriodAggregate struct {
	Label             string  `json:"label,omitempty"`
	FocusMinutes      float64 `json:"focusMinutes"`
	CompletedSessions int     `json:"completedSessions"`
	TotalSessions     int     `json:"totalSessions"`
	TaskCompleted     int     `json:"taskCompleted"`
	TaskTotal         int     `json:"taskTotal"`
}

type PeriodComparison struct {
	ThisWeek PeriodAggregate `json:"thisWeek"`
	LastWeek PeriodAggregate `json:"lastWeek"`
	Delta    PeriodDelta     `json:"delta"`
}

// PeriodDelta carries absolute and percentage-point deltas between periods.
type PeriodDelta struct {
	FocusMinutes             float64 `json:"focusMinutes"`
	FocusMinutesPercent      float64 `json:"focusMinutesPercent"`
	CompletionRatePoints     float64 `json:"completionRatePoints"`
	TaskCompletionRatePoints float64 `json:"taskCompletionRatePoints"`
}

// HeatmapCell is one (weekday, hour) cell of the 7x24 focus-minutes grid.
type HeatmapCell struct {
	Weekday string `json:"weekday"`
	Hour    int    `json:"hour"`
	Minutes int    `json:"minutes"`
}
