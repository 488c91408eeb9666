package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating - оценка фильма пользователем (от 1 до 5).
// На пару (пользователь, фильм) существует не более одной оценки.
type Rating struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	MovieID   int64     `db:"movie_id" json:"movie_id"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SetRatingRequest представляет тело запроса на установку оценки.
type SetRatingRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
	Rating  int   `json:"rating" validate:"required,score"`
}
