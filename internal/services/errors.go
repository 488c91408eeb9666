package services

import (
	"errors"
	"fmt"
)

// Базовые категории ошибок сервисного слоя. Обработчики сопоставляют их со статусами HTTP.
var (
	// ErrNotFound - ресурс отсутствует или не принадлежит пользователю.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict - повторное добавление уже существующей связи.
	ErrConflict = errors.New("resource already exists")
)

// Ошибки аутентификации намеренно не уточняют причину.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Конкретные ошибки ресурсов.
var (
	ErrUserNotFound     error = &notFoundError{resource: "User"}
	ErrFavoriteNotFound error = &notFoundError{resource: "Favorite"}
	ErrRatingNotFound   error = &notFoundError{resource: "Rating"}
	ErrListNotFound     error = &notFoundError{resource: "List"}
	ErrListItemNotFound error = &notFoundError{resource: "Item"}

	ErrEmailTaken      error = &conflictError{message: "Email is already registered"}
	ErrAlreadyFavorite error = &conflictError{message: "Movie is already in favorites"}
	ErrAlreadyInList   error = &conflictError{message: "Movie is already in this list"}
)

type notFoundError struct {
	resource string
}

func (e *notFoundError) Error() string { return e.resource + " not found" }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

type conflictError struct {
	message string
}

func (e *conflictError) Error() string { return e.message }

func (e *conflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError описывает некорректные входные данные. Сообщение показывается клиенту.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// errInternal оборачивает непредвиденную ошибку хранилища. Клиент видит только общее сообщение.
func errInternal(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
