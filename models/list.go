package models

import (
	"time"

	"github.com/google/uuid"
)

// List - именованный список фильмов пользователя.
type List struct {
	ID          int64     `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ListWithCount - список с количеством фильмов в нем.
type ListWithCount struct {
	List
	ItemsCount int64 `db:"items_count" json:"items_count"`
}

// ListWithItems - список вместе со всеми его фильмами.
type ListWithItems struct {
	List
	Items []ListItem `json:"items"`
}

// ListItem - фильм внутри списка. Доступ к нему определяется владельцем списка.
type ListItem struct {
	ID         int64     `db:"id" json:"id"`
	ListID     int64     `db:"list_id" json:"list_id"`
	MovieID    int64     `db:"movie_id" json:"movie_id"`
	MovieTitle string    `db:"movie_title" json:"movie_title"`
	PosterPath *string   `db:"poster_path" json:"poster_path"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CreateListRequest представляет тело запроса на создание списка.
type CreateListRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// AddListItemRequest представляет тело запроса на добавление фильма в список.
type AddListItemRequest struct {
	ListID     int64   `json:"list_id" validate:"required,gt=0"`
	MovieID    int64   `json:"movie_id" validate:"required,gt=0"`
	MovieTitle string  `json:"movie_title" validate:"required,max=255"`
	PosterPath *string `json:"poster_path" validate:"omitempty,max=255"`
}
