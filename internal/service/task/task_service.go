package task

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
)

type ProgressRecalculator interface {
	Recalculate(ctx context.Context, goalID uuid.UUID) error
}

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req entity.CreateTaskRequest) (*entity.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	GetTasks(ctx context.Context, userID uuid.UUID) ([]entity.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, update entity.TaskUpdate) (*entity.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	repo  repository.TaskRepository
	goals ProgressRecalculator
}

func NewTaskService(repo repository.TaskRepository, goals ProgressRecalculator) TaskService {
	return &taskService{repo: repo, goals: goals}
}

func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, req entity.CreateTaskRequest) (*entity.Task, error) {
	task := &entity.Task{
		UserID: userID,
		Title:  req.Title,
	}

	if req.GoalID != nil {
		goalID, err := uuid.FromString(*req.GoalID)
		if err != nil {
			return nil, fmt.Errorf("invalid goal id: %w", err)
		}
		task.GoalID = &goalID
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.GoalID != nil {
		if err := s.goals.Recalculate(ctx, *task.GoalID); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *taskService) GetTasks(ctx context.Context, userID uuid.UUID) ([]entity.Task, error) {
	return s.repo.GetByUser(ctx, userID)
}

// UpdateTask applies a partial update. Completion keeps the invariant that
// completed_at is set exactly when the task is completed.
func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, update entity.TaskUpdate) (*entity.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Completed != nil && *update.Completed != task.Completed {
		task.Completed = *update.Completed
		if task.Completed {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if task.GoalID != nil {
		if err := s.goals.Recalculate(ctx, *task.GoalID); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if task.GoalID != nil {
		return s.goals.Recalculate(ctx, *task.GoalID)
	}

	return nil
}
