package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
)

// GoalService owns goals and their derived progress state. Progress fields
// are recomputed here on every linked-activity change; clients can never set
// them directly.
type GoalService struct {
	repo     repository.GoalRepository
	tasks    repository.TaskRepository
	habits   repository.HabitRepository
	sessions repository.SessionRepository
}

func NewGoalService(
	repo repository.GoalRepository,
	tasks repository.TaskRepository,
	habits repository.HabitRepository,
	sessions repository.SessionRepository,
) *GoalService {
	return &GoalService{
		repo:     repo,
		tasks:    tasks,
		habits:   habits,
		sessions: sessions,
	}
}

func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req entity.CreateGoalRequest) (*entity.Goal, error) {
	goal := &entity.Goal{
		UserID:      userID,
		Title:       req.Title,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TargetValue: req.TargetValue,
	}

	for _, kr := range req.KeyResults {
		goal.KeyResults = append(goal.KeyResults, entity.KeyResult{
			Title:       kr.Title,
			TargetValue: kr.TargetValue,
			Weight:      kr.Weight,
		})
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) GetGoal(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GoalService) GetGoals(ctx context.Context, userID uuid.UUID) ([]entity.Goal, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *GoalService) UpdateGoal(ctx context.Context, id uuid.UUID, update entity.GoalUpdate) (*entity.Goal, error) {
	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	// A shifted time range or target moves every derived field.
	if err := s.Recalculate(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// UpdateKeyResult records key-result progress and recomputes the parent goal.
func (s *GoalService) UpdateKeyResult(ctx context.Context, krID uuid.UUID, currentValue float64) (*entity.KeyResult, error) {
	kr, err := s.repo.GetKeyResult(ctx, krID)
	if err != nil {
		return nil, err
	}

	kr.CurrentValue = currentValue
	kr.ProgressPercent = KeyResultProgress(*kr)

	if err := s.repo.UpdateKeyResult(ctx, kr); err != nil {
		return nil, err
	}

	if err := s.Recalculate(ctx, kr.GoalID); err != nil {
		return nil, err
	}

	return kr, nil
}

// LinkTask attaches a task to the goal. A task belongs to at most one goal;
// relinking simply moves it.
func (s *GoalService) LinkTask(ctx context.Context, goalID, taskID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, goalID); err != nil {
		return err
	}
	if err := s.tasks.SetGoal(ctx, taskID, &goalID); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

func (s *GoalService) UnlinkTask(ctx context.Context, goalID, taskID uuid.UUID) error {
	if err := s.tasks.SetGoal(ctx, taskID, nil); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

func (s *GoalService) LinkHabit(ctx context.Context, goalID, habitID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, goalID); err != nil {
		return err
	}
	if err := s.habits.SetGoal(ctx, habitID, &goalID); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

func (s *GoalService) UnlinkHabit(ctx context.Context, goalID, habitID uuid.UUID) error {
	if err := s.habits.SetGoal(ctx, habitID, nil); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

func (s *GoalService) LinkSession(ctx context.Context, goalID, sessionID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, goalID); err != nil {
		return err
	}
	if err := s.sessions.SetGoal(ctx, sessionID, &goalID); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

func (s *GoalService) UnlinkSession(ctx context.Context, goalID, sessionID uuid.UUID) error {
	if err := s.sessions.SetGoal(ctx, sessionID, nil); err != nil {
		return err
	}
	return s.Recalculate(ctx, goalID)
}

// Recalculate recomputes the goal's derived fields from its linked activity
// and writes them back. Unknown goal ids surface as entity.ErrNotFound.
func (s *GoalService) Recalculate(ctx context.Context, goalID uuid.UUID) error {
	g, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return err
	}

	activity, err := s.loadActivity(ctx, goalID)
	if err != nil {
		return fmt.Errorf("failed to load goal activity: %w", err)
	}

	progress := ComputeProgress(*g, activity, time.Now().UTC())
	if err := s.repo.UpdateProgress(ctx, goalID, progress); err != nil {
		return fmt.Errorf("failed to persist goal progress: %w", err)
	}

	return nil
}

func (s *GoalService) loadActivity(ctx context.Context, goalID uuid.UUID) (entity.GoalActivity, error) {
	var activity entity.GoalActivity
	var err error

	if activity.Tasks, err = s.tasks.GetByGoal(ctx, goalID); err != nil {
		return activity, err
	}
	if activity.Habits, err = s.habits.GetByGoal(ctx, goalID); err != nil {
		return activity, err
	}
	if activity.Sessions, err = s.sessions.GetByGoal(ctx, goalID); err != nil {
		return activity, err
	}

	return activity, nil
}
