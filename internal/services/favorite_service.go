package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// FavoriteService управляет избранным аутентифицированного пользователя.
type FavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, req models.AddFavoriteRequest) (*models.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error)
	IsFavorite(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
}

var _ FavoriteService = (*favoriteService)(nil)

type favoriteService struct {
	repo repository.FavoriteRepository
}

// NewFavoriteService создает новый экземпляр сервиса избранного.
func NewFavoriteService(repo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo}
}

func (s *favoriteService) Add(
	ctx context.Context,
	userID uuid.UUID,
	req models.AddFavoriteRequest,
) (*models.Favorite, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, req.MovieID)
	if err != nil {
		return nil, errInternal("проверка избранного", err)
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	fav, err := s.repo.Create(ctx, &models.Favorite{
		UserID:     userID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteExists) {
			return nil, ErrAlreadyFavorite
		}
		return nil, errInternal("добавление в избранное", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "movie_id": req.MovieID}).
		Info("[FavoriteService] Фильм добавлен в избранное")
	return fav, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error) {
	fav, err := s.repo.Delete(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, errInternal("удаление из избранного", err)
	}
	return fav, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, movieID)
	if err != nil {
		return false, errInternal("проверка избранного", err)
	}
	return exists, nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	favorites, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errInternal("получение избранного", err)
	}
	return favorites, nil
}
