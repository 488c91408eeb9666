package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // Драйвер PostgreSQL, импортируем для регистрации
	log "github.com/sirupsen/logrus"
)

const (
	maxOpenConns    = 25              // Максимальное количество открытых соединений
	maxIdleConns    = 25              // Максимальное количество простаивающих соединений
	connMaxLifetime = 5 * time.Minute // Максимальное время жизни соединения
	connMaxIdleTime = 5 * time.Minute // Максимальное время простоя соединения
)

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolationCode = "23505"
)

// NewPostgresDB создает и возвращает новое подключение к PostgreSQL.
func NewPostgresDB(dsn string) (*sqlx.DB, error) {
	log.Info("Подключение к PostgreSQL...")

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	log.Info("Подключение к PostgreSQL успешно установлено.")
	return db, nil
}

// isUniqueViolation сообщает, является ли ошибка нарушением уникального ограничения.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// Кастомные ошибки репозиториев.
var (
	ErrUserNotFound     = errors.New("пользователь не найден")
	ErrEmailTaken       = errors.New("email уже зарегистрирован")
	ErrFavoriteNotFound = errors.New("избранное не найдено")
	ErrFavoriteExists   = errors.New("фильм уже в избранном")
	ErrRatingNotFound   = errors.New("оценка не найдена")
	ErrListNotFound     = errors.New("список не найден")
	ErrListItemNotFound = errors.New("элемент списка не найден")
	ErrListItemExists   = errors.New("фильм уже в списке")
)
