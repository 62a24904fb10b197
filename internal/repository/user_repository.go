package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/request"
	"github.com/aibekz/productivity-backend/internal/model/response"
)

const defaultDailyGoalMinutes = 120

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUserWithPassword(user *request.CreateUserWithPassword) (response.User, error) {
	query := `INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, username`

	var userID uuid.UUID
	var username sql.NullString

	err := r.db.QueryRow(query, user.Username, user.Password).Scan(&userID, &username)
	if err != nil {
		return response.User{}, err
	}

	// Every user starts with default settings so the analytics endpoints
	// always have a daily goal to read.
	_, err = r.db.Exec(
		`INSERT INTO user_settings (user_id, daily_goal_minutes) VALUES ($1, $2)`,
		userID, defaultDailyGoalMinutes)
	if err != nil {
		return response.User{}, err
	}

	return response.User{
		ID:       userID,
		Username: username.String,
	}, nil
}

func (r *UserRepository) GetUserById(userID uuid.UUID) (response.User, error) {
	query := `SELECT id, username FROM users WHERE id = $1`

	user := response.User{}
	err := r.db.QueryRow(query, userID).Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.User{}, entity.ErrNotFound
		}
		return response.User{}, err
	}

	return user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (response.User, error) {
	query := `SELECT id, username, password FROM users WHERE username = $1`

	var user response.User
	var password sql.NullString
	err := r.db.QueryRow(query, username).Scan(&user.ID, &user.Username, &password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.User{}, entity.ErrNotFound
		}
		return response.User{}, err
	}

	if password.Valid {
		user.Password = &password.String
	}

	return user, nil
}

func (r *UserRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settings entity.UserSettings
	query := `SELECT user_id, daily_goal_minutes, current_streak, longest_streak FROM user_settings WHERE user_id = $1`

	err := r.db.GetContext(ctx, &settings, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return &settings, nil
}

func (r *UserRepository) UpdateDailyGoal(ctx context.Context, userID uuid.UUID, minutes int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_settings SET daily_goal_minutes = $1 WHERE user_id = $2`, minutes, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// UpdateStreaks persists the recomputed current streak and raises the longest
// streak when the current one passes it.
func (r *UserRepository) UpdateStreaks(ctx context.Context, userID uuid.UUID, currentStreak int) error {
	query := `
		UPDATE user_settings
		SET current_streak = $1, longest_streak = GREATEST(longest_streak, $1)
		WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, currentStreak, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrNotFound
	}

	return nil
}
