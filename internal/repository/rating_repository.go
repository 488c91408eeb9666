package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/models"
)

// RatingRepository определяет методы для работы с оценками.
type RatingRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, movieID int64, score int) (*models.Rating, error)
	Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error)
	Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error)
}

type postgresRatingRepository struct {
	db *sqlx.DB
}

// NewPostgresRatingRepository создает новый экземпляр репозитория оценок.
func NewPostgresRatingRepository(db *sqlx.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

const ratingColumns = `id, user_id, movie_id, rating, created_at, updated_at`

// Upsert атомарно вставляет оценку или перезаписывает существующую для пары (пользователь, фильм).
func (r *postgresRatingRepository) Upsert(
	ctx context.Context,
	userID uuid.UUID,
	movieID int64,
	score int,
) (*models.Rating, error) {
	query := `INSERT INTO ratings (user_id, movie_id, rating) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, movie_id)
	          DO UPDATE SET rating = EXCLUDED.rating, updated_at = CURRENT_TIMESTAMP
	          RETURNING ` + ratingColumns
	var rating models.Rating

	if err := r.db.GetContext(ctx, &rating, query, userID, movieID, score); err != nil {
		log.Errorf("[RatingRepo] Ошибка сохранения оценки фильма %d: %v", movieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на сохранение оценки: %w", err)
	}
	return &rating, nil
}

func (r *postgresRatingRepository) Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 AND movie_id = $2`
	var rating models.Rating

	err := r.db.GetContext(ctx, &rating, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		log.Errorf("[RatingRepo] Ошибка получения оценки фильма %d: %v", movieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение оценки: %w", err)
	}
	return &rating, nil
}

func (r *postgresRatingRepository) Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	query := `DELETE FROM ratings WHERE user_id = $1 AND movie_id = $2 RETURNING ` + ratingColumns
	var rating models.Rating

	err := r.db.GetContext(ctx, &rating, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		log.Errorf("[RatingRepo] Ошибка удаления оценки фильма %d: %v", movieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на удаление оценки: %w", err)
	}
	return &rating, nil
}

func (r *postgresRatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 ORDER BY updated_at DESC`
	ratings := []models.Rating{}

	if err := r.db.SelectContext(ctx, &ratings, query, userID); err != nil {
		log.Errorf("[RatingRepo] Ошибка получения оценок пользователя %s: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение оценок: %w", err)
	}
	return ratings, nil
}
