package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	SessionModeFocus = "focus"
	SessionModeBreak = "break"
)

// WorkSession covers both work and focus sessions. DurationMinutes is nil
// only while the session is still open; a closed session always carries a
// duration of at least one minute.
type WorkSession struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"userId" db:"user_id"`
	StartedAt       time.Time  `json:"startedAt" db:"started_at"`
	EndedAt         *time.Time `json:"endedAt,omitempty" db:"ended_at"`
	DurationMinutes *int       `json:"durationMinutes" db:"duration_minutes"`
	Mode            string     `json:"mode" db:"mode"`
	Completed       bool       `json:"completed" db:"completed"`
	Distractions    int        `json:"distractions" db:"distractions"`
	GoalID          *uuid.UUID `json:"goalId,omitempty" db:"goal_id"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

type StartSessionRequest struct {
	StartedAt time.Time `json:"startedAt" binding:"required"`
	Mode      string    `json:"mode" binding:"required,oneof=focus break"`
	GoalID    *string   `json:"goalId,omitempty"`
}

type CloseSessionRequest struct {
	EndedAt      time.Time `json:"endedAt" binding:"required"`
	Completed    bool      `json:"completed"`
	Distractions int       `json:"distractions" binding:"min=0"`
}

// SessionFilter narrows session queries by mode and time window. The time
// window is assumed well-formed (end after start) by the binding layer.
type SessionFilter struct {
	UserID    string     `form:"user_id"`
	Mode      *string    `form:"mode"`
	GoalID    *string    `form:"goal_id"`
	StartTime *time.Time `form:"start_time"`
	EndTime   *time.Time `form:"end_time"`
	Limit     int        `form:"limit"`
	Offset    int        `form:"offset"`
}
