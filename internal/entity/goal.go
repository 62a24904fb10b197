package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	HealthOnTrack  = "on_track"
	HealthAtRisk   = "at_risk"
	HealthOffTrack = "off_track"
)

// Goal with derived progress fields. ProgressPercent, CurrentValue and
// HealthStatus are recomputed from linked activity and never accepted from
// clients.
type Goal struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	StartDate       time.Time `json:"startDate" db:"start_date"`
	EndDate         time.Time `json:"endDate" db:"end_date"`
	TargetValue     float64   `json:"targetValue" db:"target_value"`
	CurrentValue    float64   `json:"currentValue" db:"current_value"`
	ProgressPercent float64   `json:"progressPercent" db:"progress_percent"`
	HealthStatus    string    `json:"healthStatus" db:"health_status"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	KeyResults []KeyResult `json:"keyResults,omitempty" db:"-"`
}

// KeyResult belongs to exactly one goal and is deleted with it.
type KeyResult struct {
	ID              uuid.UUID `json:"id" db:"id"`
	GoalID          uuid.UUID `json:"goalId" db:"goal_id"`
	Title           string    `json:"title" db:"title"`
	TargetValue     float64   `json:"targetValue" db:"target_value"`
	CurrentValue    float64   `json:"currentValue" db:"current_value"`
	Weight          float64   `json:"weight" db:"weight"`
	ProgressPercent float64   `json:"progressPercent" db:"progress_percent"`
}

type CreateGoalRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=255"`
	StartDate   time.Time         `json:"startDate" binding:"required"`
	EndDate     time.Time         `json:"endDate" binding:"required,gtfield=StartDate"`
	TargetValue float64           `json:"targetValue" binding:"required,gt=0"`
	KeyResults  []CreateKeyResult `json:"keyResults" binding:"dive"`
}

type CreateKeyResult struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	TargetValue float64 `json:"targetValue" binding:"required,gt=0"`
	Weight      float64 `json:"weight" binding:"min=0,max=1"`
}

// GoalUpdate is a partial update of client-settable fields only.
type GoalUpdate struct {
	Title       *string    `json:"title,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TargetValue *float64   `json:"targetValue,omitempty"`
}

// GoalActivity is everything linked to a goal that feeds progress.
type GoalActivity struct {
	Tasks    []Task
	Habits   []Habit
	Sessions []WorkSession
}

// GoalProgress is the derived-state result written back to the goal row.
type GoalProgress struct {
	ProgressPercent float64 `json:"progressPercent"`
	CurrentValue    float64 `json:"currentValue"`
	HealthStatus    string  `json:"healthStatus"`
}
