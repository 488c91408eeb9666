package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// UserService отдает данные профиля текущего пользователя.
type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

var _ UserService = (*userService)(nil)

type userService struct {
	repo repository.UserRepository
}

// NewUserService создает новый экземпляр сервиса профиля.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errInternal("получение профиля", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, errInternal("получение статистики", err)
	}
	return stats, nil
}
