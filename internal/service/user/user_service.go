package user

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/request"
	"github.com/aibekz/productivity-backend/internal/model/response"
	"github.com/aibekz/productivity-backend/internal/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) CheckIfUserExistsByUsername(username string) bool {
	user, err := s.Repo.GetUserByUsername(username)
	if err != nil {
		return false
	}
	return user.ID != uuid.Nil
}

func (s *UserService) GetUserById(userID uuid.UUID) (response.User, error) {
	return s.Repo.GetUserById(userID)
}

func (s *UserService) GetUserByUsername(username string) (response.User, error) {
	return s.Repo.GetUserByUsername(username)
}

func (s *UserService) CreateUserWithPassword(user *request.CreateUserWithPassword) (response.User, error) {
	return s.Repo.CreateUserWithPassword(user)
}

func (s *UserService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	return s.Repo.GetSettings(ctx, userID)
}

func (s *UserService) UpdateDailyGoal(ctx context.Context, userID uuid.UUID, minutes int) (*entity.UserSettings, error) {
	if err := s.Repo.UpdateDailyGoal(ctx, userID, minutes); err != nil {
		return nil, err
	}
	return s.Repo.GetSettings(ctx, userID)
}
