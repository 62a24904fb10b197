package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
	"github.com/aibekz/productivity-backend/internal/service/analytics"
	redissvc "github.com/aibekz/productivity-backend/internal/service/redis"
)

const insightCacheTTL = 6 * time.Hour

// Service produces and caches weekly insights. A week's insight is computed
// lazily on first request, upserted under (user_id, week_start) and reused
// until regeneration is asked for explicitly. Last write wins: all inputs for
// a given week are deterministic over the same activity snapshot.
type Service struct {
	repo     repository.InsightRepository
	sessions repository.SessionRepository
	habits   repository.HabitRepository
	users    *repository.UserRepository
	cache    redissvc.ServiceInterface
}

func NewInsightsService(
	repo repository.InsightRepository,
	sessions repository.SessionRepository,
	habits repository.HabitRepository,
	users *repository.UserRepository,
	cache redissvc.ServiceInterface,
) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		habits:   habits,
		users:    users,
		cache:    cache,
	}
}

// GetWeekly returns the insight for the week containing ref. With regenerate
// set, the stored result is recomputed and overwritten.
func (s *Service) GetWeekly(ctx context.Context, userID uuid.UUID, ref time.Time, regenerate bool) (*entity.WeeklyInsight, error) {
	weekStart := analytics.StartOf(ref, analytics.UnitWeek)

	if !regenerate {
		if cached := s.fromCache(ctx, userID, weekStart); cached != nil {
			return cached, nil
		}

		stored, err := s.repo.Get(ctx, userID, weekStart)
		if err == nil {
			s.toCache(ctx, stored)
			return stored, nil
		}
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("failed to load weekly insight: %w", err)
		}
	}

	snapshot, err := s.loadSnapshot(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	insight := &entity.WeeklyInsight{
		UserID:    userID,
		WeekStart: weekStart,
		Payload:   Generate(snapshot),
	}

	if err := s.repo.Upsert(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to store weekly insight: %w", err)
	}

	s.toCache(ctx, insight)

	return insight, nil
}

func (s *Service) loadSnapshot(ctx context.Context, userID uuid.UUID, weekStart time.Time) (Snapshot, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	prevStart := weekStart.AddDate(0, 0, -7)

	sessions, err := s.sessions.GetInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load sessions: %w", err)
	}

	prevSessions, err := s.sessions.GetInRange(ctx, userID, prevStart, weekStart)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load previous week sessions: %w", err)
	}

	habits, err := s.habits.GetActiveWithLogs(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load habits: %w", err)
	}

	settings, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load user settings: %w", err)
	}

	return Snapshot{
		WeekStart:        weekStart,
		Sessions:         sessions,
		PrevWeekSessions: prevSessions,
		Habits:           habits,
		DailyGoalMinutes: settings.DailyGoalMinutes,
	}, nil
}

func (s *Service) fromCache(ctx context.Context, userID uuid.UUID, weekStart time.Time) *entity.WeeklyInsight {
	if s.cache == nil {
		return nil
	}

	var insight entity.WeeklyInsight
	if err := s.cache.GetWeeklyInsight(ctx, userID.String(), weekStart, &insight); err != nil {
		return nil
	}
	return &insight
}

func (s *Service) toCache(ctx context.Context, insight *entity.WeeklyInsight) {
	if s.cache == nil {
		return
	}
	_ = s.cache.CacheWeeklyInsight(ctx, insight.UserID.String(), insight.WeekStart, insight, insightCacheTTL)
}
