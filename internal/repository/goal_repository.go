package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aibekz/productivity-backend/internal/entity"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Goal, error)
	GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Goal, error)
	Update(ctx context.Context, id uuid2.UUID, update entity.GoalUpdate) error
	UpdateProgress(ctx context.Context, id uuid2.UUID, progress entity.GoalProgress) error
	UpdateKeyResult(ctx context.Context, kr *entity.KeyResult) error
	GetKeyResult(ctx context.Context, id uuid2.UUID) (*entity.KeyResult, error)
	Delete(ctx context.Context, id uuid2.UUID) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goal.ID = uuid2.UUID(uuid.New())
	goal.HealthStatus = entity.HealthOnTrack
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO goals (id, user_id, title, start_date, end_date, target_value, current_value, progress_percent, health_status, created_at, updated_at)
		VALUES (:id, :user_id, :title, :start_date, :end_date, :target_value, :current_value, :progress_percent, :health_status, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, query, goal); err != nil {
		return err
	}

	krQuery := `
		INSERT INTO key_results (id, goal_id, title, target_value, current_value, weight, progress_percent)
		VALUES (:id, :goal_id, :title, :target_value, :current_value, :weight, :progress_percent)`

	for i := range goal.KeyResults {
		goal.KeyResults[i].ID = uuid2.UUID(uuid.New())
		goal.KeyResults[i].GoalID = goal.ID
		if _, err := tx.NamedExecContext(ctx, krQuery, goal.KeyResults[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *goalRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	err := r.db.GetContext(ctx, &goal, `SELECT * FROM goals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	err = r.db.SelectContext(ctx, &goal.KeyResults,
		`SELECT * FROM key_results WHERE goal_id = $1 ORDER BY title`, id)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *goalRepository) GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Goal, error) {
	var goals []entity.Goal
	err := r.db.SelectContext(ctx, &goals,
		`SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}

	for i := range goals {
		err = r.db.SelectContext(ctx, &goals[i].KeyResults,
			`SELECT * FROM key_results WHERE goal_id = $1 ORDER BY title`, goals[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id uuid2.UUID, update entity.GoalUpdate) error {
	query := `
		UPDATE goals SET
			title = COALESCE($1, title),
			start_date = COALESCE($2, start_date),
			end_date = COALESCE($3, end_date),
			target_value = COALESCE($4, target_value),
			updated_at = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		update.Title, update.StartDate, update.EndDate, update.TargetValue, time.Now(), id)
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

// UpdateProgress writes the derived fields back after a recompute. Clients
// never set these directly.
func (r *goalRepository) UpdateProgress(ctx context.Context, id uuid2.UUID, progress entity.GoalProgress) error {
	query := `
		UPDATE goals
		SET progress_percent = $1, current_value = $2, health_status = $3, updated_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		progress.ProgressPercent, progress.CurrentValue, progress.HealthStatus, time.Now(), id)
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

func (r *goalRepository) UpdateKeyResult(ctx context.Context, kr *entity.KeyResult) error {
	query := `
		UPDATE key_results
		SET current_value = :current_value, progress_percent = :progress_percent
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, kr)
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

func (r *goalRepository) GetKeyResult(ctx context.Context, id uuid2.UUID) (*entity.KeyResult, error) {
	var kr entity.KeyResult
	err := r.db.GetContext(ctx, &kr, `SELECT * FROM key_results WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &kr, nil
}

// Delete removes the goal; key results cascade with it and linked activity
// keeps living with its goal_id nulled by the schema.
func (r *goalRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
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
