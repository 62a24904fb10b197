package session

import (
	"context"
	"fmt"
	"math"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/repository"
)

// ProgressRecalculator recomputes a goal's derived fields after a linked
// activity change.
type ProgressRecalculator interface {
	Recalculate(ctx context.Context, goalID uuid.UUID) error
}

type SessionService interface {
	StartSession(ctx context.Context, userID uuid.UUID, req entity.StartSessionRequest) (*entity.WorkSession, error)
	CloseSession(ctx context.Context, id uuid.UUID, req entity.CloseSessionRequest) (*entity.WorkSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*entity.WorkSession, error)
	GetSessions(ctx context.Context, filter entity.SessionFilter) ([]entity.WorkSession, entity.PaginationInfo, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	repo  repository.SessionRepository
	goals ProgressRecalculator
}

func NewSessionService(repo repository.SessionRepository, goals ProgressRecalculator) SessionService {
	return &sessionService{repo: repo, goals: goals}
}

func (s *sessionService) StartSession(ctx context.Context, userID uuid.UUID, req entity.StartSessionRequest) (*entity.WorkSession, error) {
	session := &entity.WorkSession{
		UserID:    userID,
		StartedAt: req.StartedAt,
		Mode:      req.Mode,
	}

	if req.GoalID != nil {
		goalID, err := uuid.FromString(*req.GoalID)
		if err != nil {
			return nil, fmt.Errorf("invalid goal id: %w", err)
		}
		session.GoalID = &goalID
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return session, nil
}

// CloseSession stamps the end time and derives the duration. A closed session
// always carries a duration of at least one minute; only open sessions keep
// a nil duration.
func (s *sessionService) CloseSession(ctx context.Context, id uuid.UUID, req entity.CloseSessionRequest) (*entity.WorkSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.EndedAt != nil {
		return nil, fmt.Errorf("session is already closed")
	}
	if !req.EndedAt.After(session.StartedAt) {
		return nil, fmt.Errorf("ended_at must be after started_at")
	}

	duration := int(math.Round(req.EndedAt.Sub(session.StartedAt).Minutes()))
	if duration < 1 {
		duration = 1
	}

	session.EndedAt = &req.EndedAt
	session.DurationMinutes = &duration
	session.Completed = req.Completed
	session.Distractions = req.Distractions

	if err := s.repo.Close(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	if session.GoalID != nil {
		if err := s.goals.Recalculate(ctx, *session.GoalID); err != nil {
			return nil, fmt.Errorf("failed to recalculate goal progress: %w", err)
		}
	}

	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.WorkSession, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *sessionService) GetSessions(ctx context.Context, filter entity.SessionFilter) ([]entity.WorkSession, entity.PaginationInfo, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	sessions, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, entity.PaginationInfo{}, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, entity.PaginationInfo{}, err
	}

	pagination := entity.PaginationInfo{
		Page:       filter.Offset/filter.Limit + 1,
		PerPage:    filter.Limit,
		Total:      total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}

	return sessions, pagination, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if session.GoalID != nil {
		return s.goals.Recalculate(ctx, *session.GoalID)
	}

	return nil
}
