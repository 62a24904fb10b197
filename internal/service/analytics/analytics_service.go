package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
	redissvc "github.com/aibekz/productivity-backend/internal/service/redis"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

const (
	metricsCacheTTL = 5 * time.Minute
	streakMaxDays   = 365
)

// AnalyticsService wires the pure calculators to storage and the metrics
// cache. Every computation stays side-effect free; the service only fetches
// inputs and persists or caches outputs.
type AnalyticsService struct {
	sessions repository.SessionRepository
	tasks    repository.TaskRepository
	users    *repository.UserRepository
	cache    redissvc.ServiceInterface
}

func NewAnalyticsService(
	sessions repository.SessionRepository,
	tasks repository.TaskRepository,
	users *repository.UserRepository,
	cache redissvc.ServiceInterface,
) *AnalyticsService {
	return &AnalyticsService{
		sessions: sessions,
		tasks:    tasks,
		users:    users,
		cache:    cache,
	}
}

// GetHeatmap returns the 7x24 focus-minute grid for the week beginning at
// weekStart.
func (s *AnalyticsService) GetHeatmap(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]entity.HeatmapCell, error) {
	weekStart = StartOf(weekStart, UnitWeek)
	cacheKey := fmt.Sprintf("heatmap:%s", weekStart.Format("2006-01-02"))

	if s.cache != nil {
		var cells []entity.HeatmapCell
		if err := s.cache.GetMetrics(ctx, userID.String(), cacheKey, &cells); err == nil {
			return cells, nil
		}
	}

	sessions, err := s.sessions.GetInRange(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	cells := Heatmap(sessions)

	if s.cache != nil {
		_ = s.cache.CacheMetrics(ctx, userID.String(), cacheKey, cells, metricsCacheTTL)
	}

	return cells, nil
}

// GetBurnout assesses burnout risk over the trailing window of windowDays.
func (s *AnalyticsService) GetBurnout(ctx context.Context, userID uuid.UUID, windowDays int) (*entity.BurnoutAssessment, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	now := time.Now().UTC()
	sessions, err := s.sessions.GetInRange(ctx, userID, now.AddDate(0, 0, -windowDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	assessment := DetectBurnout(sessions, DefaultBurnoutOptions())
	return &assessment, nil
}

// GetProductivity computes the composite productivity score over [start, end).
func (s *AnalyticsService) GetProductivity(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entity.ProductivityScore, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("end must be after start")
	}

	settings, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	sessions, err := s.sessions.GetInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	tasks, err := s.tasks.GetCompletedInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	agg := AggregatePeriod(sessions, tasks)

	focusCompletionRate := 1.0
	if agg.TotalSessions > 0 {
		focusCompletionRate = float64(agg.CompletedSessions) / float64(agg.TotalSessions)
	}
	taskCompletionRate := 0.0
	if agg.TaskTotal > 0 {
		taskCompletionRate = float64(agg.TaskCompleted) / float64(agg.TaskTotal)
	}

	score := Score(ScoreInput{
		FocusMinutes:        agg.FocusMinutes,
		DailyGoalMinutes:    settings.DailyGoalMinutes,
		FocusCompletionRate: focusCompletionRate,
		Streak:              settings.CurrentStreak,
		TaskCompletionRate:  taskCompletionRate,
		WorkDaysInPeriod:    int(end.Sub(start).Hours() / 24),
	})

	return &score, nil
}

// CompareWeeks builds the this-week vs last-week comparison for the week
// containing ref.
func (s *AnalyticsService) CompareWeeks(ctx context.Context, userID uuid.UUID, ref time.Time) (*entity.PeriodComparison, error) {
	weekStart := StartOf(ref, UnitWeek)
	prevStart := weekStart.AddDate(0, 0, -7)

	this, err := s.aggregateRange(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	last, err := s.aggregateRange(ctx, userID, prevStart, weekStart)
	if err != nil {
		return nil, err
	}

	comparison := ComparePeriods(this, last)
	return &comparison, nil
}

// RefreshStreak recomputes the current focus streak from daily totals and
// persists it on the user's settings row.
func (s *AnalyticsService) RefreshStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	settings, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load user settings: %w", err)
	}

	now := time.Now().UTC()
	windowStart := StartOf(now, UnitDay).AddDate(0, 0, -(streakMaxDays - 1))

	sessions, err := s.sessions.GetInRange(ctx, userID, windowStart, now)
	if err != nil {
		return 0, fmt.Errorf("failed to load sessions: %w", err)
	}

	daily := DailyFocusTotals(sessions, windowStart, streakMaxDays)
	streak := CurrentStreak(daily.Values, float64(settings.DailyGoalMinutes), streakMaxDays, now)

	if err := s.users.UpdateStreaks(ctx, userID, streak); err != nil {
		return 0, fmt.Errorf("failed to persist streak: %w", err)
	}

	return streak, nil
}

func (s *AnalyticsService) aggregateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (entity.PeriodAggregate, error) {
	sessions, err := s.sessions.GetInRange(ctx, userID, start, end)
	if err != nil {
		return entity.PeriodAggregate{}, fmt.Errorf("failed to load sessions: %w", err)
	}

	tasks, err := s.tasks.GetCompletedInRange(ctx, userID, start, end)
	if err != nil {
		return entity.PeriodAggregate{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	aggregate := AggregatePeriod(sessions, tasks)
	aggregate.Label = utils.FormatPeriod(start, end)
	return aggregate, nil
}
