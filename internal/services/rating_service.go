package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// RatingService управляет оценками аутентифицированного пользователя.
type RatingService interface {
	// Set идемпотентно сохраняет оценку: повторный вызов перезаписывает значение.
	Set(ctx context.Context, userID uuid.UUID, req models.SetRatingRequest) (*models.Rating, error)
	// Get возвращает nil без ошибки, если оценки нет.
	Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error)
	Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Rating, error)
}

var _ RatingService = (*ratingService)(nil)

type ratingService struct {
	repo repository.RatingRepository
}

// NewRatingService создает новый экземпляр сервиса оценок.
func NewRatingService(repo repository.RatingRepository) RatingService {
	return &ratingService{repo: repo}
}

func (s *ratingService) Set(ctx context.Context, userID uuid.UUID, req models.SetRatingRequest) (*models.Rating, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	rating, err := s.repo.Upsert(ctx, userID, req.MovieID, req.Rating)
	if err != nil {
		return nil, errInternal("сохранение оценки", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "movie_id": req.MovieID, "rating": req.Rating}).
		Info("[RatingService] Оценка сохранена")
	return rating, nil
}

func (s *ratingService) Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	rating, err := s.repo.Get(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, nil //nolint:nilnil // отсутствие оценки - не ошибка
		}
		return nil, errInternal("получение оценки", err)
	}
	return rating, nil
}

func (s *ratingService) Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	rating, err := s.repo.Delete(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, errInternal("удаление оценки", err)
	}
	return rating, nil
}

func (s *ratingService) List(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	ratings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errInternal("получение оценок", err)
	}
	return ratings, nil
}
