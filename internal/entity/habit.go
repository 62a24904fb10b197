package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type Habit struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	Active    bool       `json:"active" db:"active"`
	GoalID    *uuid.UUID `json:"goalId,omitempty" db:"goal_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	Logs []HabitLog `json:"logs,omitempty" db:"-"`
}

// HabitLog marks a habit as done on a calendar day. At most one log exists
// per (habit, day); the schema enforces it.
type HabitLog struct {
	ID      uuid.UUID `json:"id" db:"id"`
	HabitID uuid.UUID `json:"habitId" db:"habit_id"`
	LogDate time.Time `json:"date" db:"log_date"`
	Notes   *string   `json:"notes,omitempty" db:"notes"`
}

type CreateHabitRequest struct {
	Name   string  `json:"name" binding:"required,min=1,max=255"`
	GoalID *string `json:"goalId,omitempty"`
}

type LogHabitRequest struct {
	Date  time.Time `json:"date" binding:"required"`
	Notes *string   `json:"notes,omitempty"`
}
