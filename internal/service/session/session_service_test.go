package session

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekz/productivity-backend/internal/entity"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.WorkSession
	closed   *entity.WorkSession
	deleted  []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.WorkSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.WorkSession) error {
	id, _ := uuid.NewV4()
	session.ID = id
	f.sessions[id] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.WorkSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) GetByFilter(_ context.Context, filter entity.SessionFilter) ([]entity.WorkSession, error) {
	out := make([]entity.WorkSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeSessionRepo) CountByFilter(context.Context, entity.SessionFilter) (int, error) {
	return len(f.sessions), nil
}

func (f *fakeSessionRepo) GetInRange(context.Context, uuid.UUID, time.Time, time.Time) ([]entity.WorkSession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) GetByGoal(context.Context, uuid.UUID) ([]entity.WorkSession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Close(_ context.Context, session *entity.WorkSession) error {
	f.sessions[session.ID] = session
	f.closed = session
	return nil
}

func (f *fakeSessionRepo) SetGoal(_ context.Context, id uuid.UUID, goalID *uuid.UUID) error {
	f.sessions[id].GoalID = goalID
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRecalculator struct {
	calls []uuid.UUID
}

func (f *fakeRecalculator) Recalculate(_ context.Context, goalID uuid.UUID) error {
	f.calls = append(f.calls, goalID)
	return nil
}

func TestCloseSession_DerivesDuration(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeRecalculator{})
	ctx := context.Background()

	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	userID, _ := uuid.NewV4()
	created, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
		StartedAt: started,
		Mode:      entity.SessionModeFocus,
	})
	require.NoError(t, err)
	assert.Nil(t, created.DurationMinutes)

	closed, err := svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{
		EndedAt:   started.Add(50*time.Minute + 20*time.Second),
		Completed: true,
	})
	require.NoError(t, err)
	require.NotNil(t, closed.DurationMinutes)
	assert.Equal(t, 50, *closed.DurationMinutes)
	assert.True(t, closed.Completed)
}

func TestCloseSession_MinimumOneMinute(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeRecalculator{})
	ctx := context.Background()

	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	userID, _ := uuid.NewV4()
	created, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
		StartedAt: started,
		Mode:      entity.SessionModeFocus,
	})
	require.NoError(t, err)

	closed, err := svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{
		EndedAt: started.Add(10 * time.Second),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, *closed.DurationMinutes)
}

func TestCloseSession_Rejections(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeRecalculator{})
	ctx := context.Background()

	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	userID, _ := uuid.NewV4()
	created, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
		StartedAt: started,
		Mode:      entity.SessionModeFocus,
	})
	require.NoError(t, err)

	_, err = svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{EndedAt: started})
	assert.Error(t, err)

	_, err = svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{EndedAt: started.Add(time.Hour)})
	require.NoError(t, err)

	// Closing twice is rejected.
	_, err = svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{EndedAt: started.Add(2 * time.Hour)})
	assert.Error(t, err)

	unknown, _ := uuid.NewV4()
	_, err = svc.CloseSession(ctx, unknown, entity.CloseSessionRequest{EndedAt: started.Add(time.Hour)})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCloseSession_RecalculatesLinkedGoal(t *testing.T) {
	repo := newFakeSessionRepo()
	recalc := &fakeRecalculator{}
	svc := NewSessionService(repo, recalc)
	ctx := context.Background()

	goalID, _ := uuid.NewV4()
	goalIDStr := goalID.String()
	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	userID, _ := uuid.NewV4()

	created, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
		StartedAt: started,
		Mode:      entity.SessionModeFocus,
		GoalID:    &goalIDStr,
	})
	require.NoError(t, err)

	_, err = svc.CloseSession(ctx, created.ID, entity.CloseSessionRequest{EndedAt: started.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, recalc.calls, 1)
	assert.Equal(t, goalID, recalc.calls[0])
}

func TestDeleteSession_RecalculatesLinkedGoal(t *testing.T) {
	repo := newFakeSessionRepo()
	recalc := &fakeRecalculator{}
	svc := NewSessionService(repo, recalc)
	ctx := context.Background()

	goalID, _ := uuid.NewV4()
	goalIDStr := goalID.String()
	userID, _ := uuid.NewV4()

	created, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
		StartedAt: time.Now().UTC(),
		Mode:      entity.SessionModeBreak,
		GoalID:    &goalIDStr,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, created.ID))
	assert.Len(t, repo.deleted, 1)
	require.Len(t, recalc.calls, 1)
	assert.Equal(t, goalID, recalc.calls[0])
}

func TestGetSessions_Pagination(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeRecalculator{})
	ctx := context.Background()

	userID, _ := uuid.NewV4()
	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.StartSession(ctx, userID, entity.StartSessionRequest{
			StartedAt: started.Add(time.Duration(i) * time.Hour),
			Mode:      entity.SessionModeFocus,
		})
		require.NoError(t, err)
	}

	sessions, pagination, err := svc.GetSessions(ctx, entity.SessionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 2, pagination.PerPage)
	assert.Equal(t, 5, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)

	// Out-of-range limits fall back to the default page size.
	sessions, pagination, err = svc.GetSessions(ctx, entity.SessionFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, sessions, 5)
	assert.Equal(t, 50, pagination.PerPage)
	assert.Equal(t, 1, pagination.TotalPages)
}
