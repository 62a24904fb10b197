package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aibekz/productivity-backend/internal/entity"
)

// ErrDuplicateLog reports a second log for the same habit and calendar day.
var ErrDuplicateLog = errors.New("habit already logged for this day")

type HabitRepository interface {
	Create(ctx context.Context, habit *entity.Habit) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Habit, error)
	GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Habit, error)
	GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.Habit, error)
	GetActiveWithLogs(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.Habit, error)
	AddLog(ctx context.Context, log *entity.HabitLog) error
	GetLogs(ctx context.Context, habitID uuid2.UUID, start, end time.Time) ([]entity.HabitLog, error)
	SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error
	Delete(ctx context.Context, id uuid2.UUID) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	habit.ID = uuid2.UUID(uuid.New())
	habit.Active = true
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()

	query := `
		INSERT INTO habits (id, user_id, name, active, goal_id, created_at, updated_at)
		VALUES (:id, :user_id, :name, :active, :goal_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, habit)
	return err
}

func (r *habitRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	err := r.db.GetContext(ctx, &habit, `SELECT * FROM habits WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) GetByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Habit, error) {
	var habits []entity.Habit
	err := r.db.SelectContext(ctx, &habits,
		`SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at`, userID)
	return habits, err
}

func (r *habitRepository) GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.Habit, error) {
	var habits []entity.Habit
	err := r.db.SelectContext(ctx, &habits,
		`SELECT * FROM habits WHERE goal_id = $1 ORDER BY created_at`, goalID)
	if err != nil {
		return nil, err
	}

	for i := range habits {
		logs, err := r.GetLogs(ctx, habits[i].ID, time.Time{}, time.Now().AddDate(1, 0, 0))
		if err != nil {
			return nil, err
		}
		habits[i].Logs = logs
	}

	return habits, nil
}

// GetActiveWithLogs loads the user's active habits and attaches each habit's
// logs inside [start, end).
func (r *habitRepository) GetActiveWithLogs(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.Habit, error) {
	var habits []entity.Habit
	err := r.db.SelectContext(ctx, &habits,
		`SELECT * FROM habits WHERE user_id = $1 AND active = true ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}

	for i := range habits {
		logs, err := r.GetLogs(ctx, habits[i].ID, start, end)
		if err != nil {
			return nil, err
		}
		habits[i].Logs = logs
	}

	return habits, nil
}

func (r *habitRepository) AddLog(ctx context.Context, log *entity.HabitLog) error {
	log.ID = uuid2.UUID(uuid.New())

	query := `
		INSERT INTO habit_logs (id, habit_id, log_date, notes)
		VALUES (:id, :habit_id, :log_date, :notes)`

	_, err := r.db.NamedExecContext(ctx, query, log)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateLog
		}
		return err
	}

	return nil
}

func (r *habitRepository) GetLogs(ctx context.Context, habitID uuid2.UUID, start, end time.Time) ([]entity.HabitLog, error) {
	var logs []entity.HabitLog
	query := `
		SELECT * FROM habit_logs
		WHERE habit_id = $1 AND log_date >= $2 AND log_date < $3
		ORDER BY log_date`

	err := r.db.SelectContext(ctx, &logs, query, habitID, start, end)
	return logs, err
}

func (r *habitRepository) SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE habits SET goal_id = $1, updated_at = $2 WHERE id = $3`, goalID, time.Now(), id)
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

func (r *habitRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
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
