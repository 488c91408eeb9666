package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя каталога.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
// Тэги `json` используются для (де)сериализации JSON.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Не отправляем хеш пароля в JSON
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserStats содержит количество сущностей, принадлежащих пользователю.
type UserStats struct {
	Favorites int64 `db:"favorites" json:"favorites"`
	Ratings   int64 `db:"ratings" json:"ratings"`
	Lists     int64 `db:"lists" json:"lists"`
}

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse представляет тело ответа при успешной регистрации или входе.
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}
