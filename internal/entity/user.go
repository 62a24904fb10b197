package entity

import "github.com/gofrs/uuid"

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UserSettings carries the per-user knobs the analytics core consumes.
type UserSettings struct {
	UserID           uuid.UUID `json:"userId" db:"user_id"`
	DailyGoalMinutes int       `json:"dailyGoalMinutes" db:"daily_goal_minutes"`
	CurrentStreak    int       `json:"currentStreak" db:"current_streak"`
	LongestStreak    int       `json:"longestStreak" db:"longest_streak"`
}

type UpdateSettingsRequest struct {
	DailyGoalMinutes int `json:"dailyGoalMinutes" binding:"required,gt=0"`
}
