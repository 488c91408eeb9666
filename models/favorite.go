package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite - фильм, добавленный пользователем в избранное.
type Favorite struct {
	ID         int64     `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	MovieID    int64     `db:"movie_id" json:"movie_id"`
	MovieTitle string    `db:"movie_title" json:"movie_title"`
	PosterPath *string   `db:"poster_path" json:"poster_path"` // может быть NULL
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AddFavoriteRequest представляет тело запроса на добавление в избранное.
type AddFavoriteRequest struct {
	MovieID    int64   `json:"movie_id" validate:"required,gt=0"`
	MovieTitle string  `json:"movie_title" validate:"required,max=255"`
	PosterPath *string `json:"poster_path" validate:"omitempty,max=255"`
}
