package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aibekz/productivity-backend/internal/entity"
)

type InsightRepository interface {
	Upsert(ctx context.Context, insight *entity.WeeklyInsight) error
	Get(ctx context.Context, userID uuid2.UUID, weekStart time.Time) (*entity.WeeklyInsight, error)
}

type insightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) InsightRepository {
	return &insightRepository{db: db}
}

type insightRow struct {
	ID          uuid2.UUID `db:"id"`
	UserID      uuid2.UUID `db:"user_id"`
	WeekStart   time.Time  `db:"week_start"`
	Payload     []byte     `db:"payload"`
	GeneratedAt time.Time  `db:"generated_at"`
}

// Upsert writes the insight keyed by (user_id, week_start). Regenerating the
// same week overwrites the previous payload: last write wins, never a
// duplicate row.
func (r *insightRepository) Upsert(ctx context.Context, insight *entity.WeeklyInsight) error {
	if insight.ID == uuid2.Nil {
		insight.ID = uuid2.UUID(uuid.New())
	}
	insight.GeneratedAt = time.Now()

	payload, err := json.Marshal(insight.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal insight payload: %w", err)
	}

	query := `
		INSERT INTO weekly_insights (id, user_id, week_start, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, week_start)
		DO UPDATE SET payload = EXCLUDED.payload, generated_at = EXCLUDED.generated_at`

	_, err = r.db.ExecContext(ctx, query,
		insight.ID, insight.UserID, insight.WeekStart, payload, insight.GeneratedAt)
	return err
}

func (r *insightRepository) Get(ctx context.Context, userID uuid2.UUID, weekStart time.Time) (*entity.WeeklyInsight, error) {
	var row insightRow
	query := `SELECT * FROM weekly_insights WHERE user_id = $1 AND week_start = $2`

	err := r.db.GetContext(ctx, &row, query, userID, weekStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	insight := &entity.WeeklyInsight{
		ID:          row.ID,
		UserID:      row.UserID,
		WeekStart:   row.WeekStart,
		GeneratedAt: row.GeneratedAt,
	}

	if err := json.Unmarshal(row.Payload, &insight.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal insight payload: %w", err)
	}

	return insight, nil
}
