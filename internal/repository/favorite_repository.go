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

// FavoriteRepository определяет методы для работы с избранным.
// Все методы ограничены пользователем, переданным явно.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	Create(ctx context.Context, fav *models.Favorite) (*models.Favorite, error)
	Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
}

type postgresFavoriteRepository struct {
	db *sqlx.DB
}

// NewPostgresFavoriteRepository создает новый экземпляр репозитория избранного.
func NewPostgresFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &postgresFavoriteRepository{db: db}
}

const favoriteColumns = `id, user_id, movie_id, movie_title, poster_path, created_at`

func (r *postgresFavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND movie_id = $2)`
	var exists bool

	if err := r.db.GetContext(ctx, &exists, query, userID, movieID); err != nil {
		log.Errorf("[FavoriteRepo] Ошибка проверки избранного (фильм %d): %v", movieID, err)
		return false, fmt.Errorf("ошибка выполнения запроса проверки избранного: %w", err)
	}
	return exists, nil
}

func (r *postgresFavoriteRepository) Create(ctx context.Context, fav *models.Favorite) (*models.Favorite, error) {
	query := `INSERT INTO favorites (user_id, movie_id, movie_title, poster_path) VALUES ($1, $2, $3, $4)
	          RETURNING ` + favoriteColumns
	var created models.Favorite

	err := r.db.GetContext(ctx, &created, query, fav.UserID, fav.MovieID, fav.MovieTitle, fav.PosterPath)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFavoriteExists
		}
		log.Errorf("[FavoriteRepo] Ошибка добавления фильма %d в избранное: %v", fav.MovieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на добавление в избранное: %w", err)
	}
	return &created, nil
}

func (r *postgresFavoriteRepository) Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2 RETURNING ` + favoriteColumns
	var deleted models.Favorite

	err := r.db.GetContext(ctx, &deleted, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFavoriteNotFound
		}
		log.Errorf("[FavoriteRepo] Ошибка удаления фильма %d из избранного: %v", movieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на удаление из избранного: %w", err)
	}
	return &deleted, nil
}

func (r *postgresFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	favorites := []models.Favorite{}

	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		log.Errorf("[FavoriteRepo] Ошибка получения избранного пользователя %s: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение избранного: %w", err)
	}
	return favorites, nil
}
