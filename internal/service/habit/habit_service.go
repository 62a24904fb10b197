package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

type ProgressRecalculator interface {
	Recalculate(ctx context.Context, goalID uuid.UUID) error
}

type HabitService interface {
	CreateHabit(ctx context.Context, userID uuid.UUID, req entity.CreateHabitRequest) (*entity.Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	GetHabits(ctx context.Context, userID uuid.UUID) ([]entity.Habit, error)
	LogHabit(ctx context.Context, habitID uuid.UUID, req entity.LogHabitRequest) (*entity.HabitLog, error)
	GetLogs(ctx context.Context, habitID uuid.UUID, start, end time.Time) ([]entity.HabitLog, error)
	DeleteHabit(ctx context.Context, id uuid.UUID) error
}

type habitService struct {
	repo  repository.HabitRepository
	goals ProgressRecalculator
}

func NewHabitService(repo repository.HabitRepository, goals ProgressRecalculator) HabitService {
	return &habitService{repo: repo, goals: goals}
}

func (s *habitService) CreateHabit(ctx context.Context, userID uuid.UUID, req entity.CreateHabitRequest) (*entity.Habit, error) {
	habit := &entity.Habit{
		UserID: userID,
		Name:   req.Name,
	}

	if req.GoalID != nil {
		goalID, err := uuid.FromString(*req.GoalID)
		if err != nil {
			return nil, fmt.Errorf("invalid goal id: %w", err)
		}
		habit.GoalID = &goalID
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *habitService) GetHabit(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *habitService) GetHabits(ctx context.Context, userID uuid.UUID) ([]entity.Habit, error) {
	return s.repo.GetByUser(ctx, userID)
}

// LogHabit records one completion per calendar day. The date is truncated to
// its UTC day so the uniqueness constraint sees calendar days, not instants.
func (s *habitService) LogHabit(ctx context.Context, habitID uuid.UUID, req entity.LogHabitRequest) (*entity.HabitLog, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	log := &entity.HabitLog{
		HabitID: habitID,
		LogDate: utils.DayStartUTC(req.Date),
		Notes:   req.Notes,
	}

	if err := s.repo.AddLog(ctx, log); err != nil {
		return nil, err
	}

	if habit.GoalID != nil {
		if err := s.goals.Recalculate(ctx, *habit.GoalID); err != nil {
			return nil, err
		}
	}

	return log, nil
}

func (s *habitService) GetLogs(ctx context.Context, habitID uuid.UUID, start, end time.Time) ([]entity.HabitLog, error) {
	return s.repo.GetLogs(ctx, habitID, start, end)
}

func (s *habitService) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if habit.GoalID != nil {
		return s.goals.Recalculate(ctx, *habit.GoalID)
	}

	return nil
}
