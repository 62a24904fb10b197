package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aibekz/productivity-backend/internal/entity"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.WorkSession) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.WorkSession, error)
	GetByFilter(ctx context.Context, filter entity.SessionFilter) ([]entity.WorkSession, error)
	CountByFilter(ctx context.Context, filter entity.SessionFilter) (int, error)
	GetInRange(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.WorkSession, error)
	GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.WorkSession, error)
	Close(ctx context.Context, session *entity.WorkSession) error
	SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error
	Delete(ctx context.Context, id uuid2.UUID) error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.WorkSession) error {
	session.ID = uuid2.UUID(uuid.New())
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	query := `
		INSERT INTO work_sessions (id, user_id, started_at, ended_at, duration_minutes, mode, completed, distractions, goal_id, created_at, updated_at)
		VALUES (:id, :user_id, :started_at, :ended_at, :duration_minutes, :mode, :completed, :distractions, :goal_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.WorkSession, error) {
	var session entity.WorkSession
	query := `SELECT * FROM work_sessions WHERE id = $1`

	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return &session, nil
}

func filterClause(filter entity.SessionFilter) (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != "" {
		clause += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}
	if filter.Mode != nil {
		clause += fmt.Sprintf(" AND mode = $%d", argIndex)
		args = append(args, *filter.Mode)
		argIndex++
	}
	if filter.GoalID != nil {
		clause += fmt.Sprintf(" AND goal_id = $%d", argIndex)
		args = append(args, *filter.GoalID)
		argIndex++
	}
	if filter.StartTime != nil {
		clause += fmt.Sprintf(" AND started_at >= $%d", argIndex)
		args = append(args, *filter.StartTime)
		argIndex++
	}
	if filter.EndTime != nil {
		clause += fmt.Sprintf(" AND started_at < $%d", argIndex)
		args = append(args, *filter.EndTime)
	}

	return clause, args
}

func (r *sessionRepository) GetByFilter(ctx context.Context, filter entity.SessionFilter) ([]entity.WorkSession, error) {
	var sessions []entity.WorkSession

	clause, args := filterClause(filter)
	query := "SELECT * FROM work_sessions" + clause + " ORDER BY started_at DESC"
	argIndex := len(args) + 1

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	err := r.db.SelectContext(ctx, &sessions, query, args...)
	return sessions, err
}

func (r *sessionRepository) CountByFilter(ctx context.Context, filter entity.SessionFilter) (int, error) {
	clause, args := filterClause(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM work_sessions"+clause, args...)
	return total, err
}

func (r *sessionRepository) GetInRange(ctx context.Context, userID uuid2.UUID, start, end time.Time) ([]entity.WorkSession, error) {
	var sessions []entity.WorkSession
	query := `
		SELECT * FROM work_sessions
		WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
		ORDER BY started_at`

	err := r.db.SelectContext(ctx, &sessions, query, userID, start, end)
	return sessions, err
}

func (r *sessionRepository) GetByGoal(ctx context.Context, goalID uuid2.UUID) ([]entity.WorkSession, error) {
	var sessions []entity.WorkSession
	query := `SELECT * FROM work_sessions WHERE goal_id = $1 ORDER BY started_at`

	err := r.db.SelectContext(ctx, &sessions, query, goalID)
	return sessions, err
}

func (r *sessionRepository) Close(ctx context.Context, session *entity.WorkSession) error {
	session.UpdatedAt = time.Now()

	query := `
		UPDATE work_sessions
		SET ended_at = :ended_at, duration_minutes = :duration_minutes, completed = :completed,
		    distractions = :distractions, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, session)
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

func (r *sessionRepository) SetGoal(ctx context.Context, id uuid2.UUID, goalID *uuid2.UUID) error {
	query := `UPDATE work_sessions SET goal_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, goalID, time.Now(), id)
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

func (r *sessionRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE id = $1`, id)
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
