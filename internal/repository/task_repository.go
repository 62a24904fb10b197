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

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Task, error)
	GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Task, error)
	GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.Task, error)
	GetCompletedInRange(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error
	Delete(ctx context.Context, id uuid2.UUID) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	task.ID = uuid2.UUID(uuid.New())
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	query := `
		INSERT INTO tasks (id, user_id, title, completed, completed_at, goal_id, created_at, updated_at)
		VALUES (:id, :user_id, :title, :completed, :completed_at, :goal_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, task)
	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Task, error) {
	var task entity.Task
	err := r.db.GetContext(ctx, &task, `SELECT * FROM tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return tasks, err
}

func (r *taskRepository) GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE goal_id = $1 ORDER BY created_at`, goalID)
	return tasks, err
}

// GetCompletedInRange returns tasks either created or completed inside the
// window, which is what the period aggregates count.
func (r *taskRepository) GetCompletedInRange(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.Task, error) {
	var tasks []entity.Task
	query := `
		SELECT * FROM tasks
		WHERE user_id = $1
		  AND (
		    (created_at >= $2 AND created_at < $3)
		    OR (completed_at IS NOT NULL AND completed_at >= $2 AND completed_at < $3)
		  )
		ORDER BY created_at`

	err := r.db.SelectContext(ctx, &tasks, query, userID, start, end)
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now()

	query := `
		UPDATE tasks
		SET title = :title, completed = :completed, completed_at = :completed_at, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, task)
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

func (r *taskRepository) SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET goal_id = $1, updated_at = $2 WHERE id = $3`, goalID, time.Now(), id)
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

func (r *taskRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
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
