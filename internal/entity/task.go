package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// Task is a single to-do item. CompletedAt is non-nil iff Completed is true.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	GoalID      *uuid.UUID `json:"goalId,omitempty" db:"goal_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateTaskRequest struct {
	Title  string  `json:"title" binding:"required,min=1,max=255"`
	GoalID *string `json:"goalId,omitempty"`
}

// TaskUpdate is a partial update: nil fields are left untouched.
type TaskUpdate struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
