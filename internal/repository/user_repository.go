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

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error)
}

// postgresUserRepository реализует UserRepository для PostgreSQL.
type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает новый экземпляр репозитория пользователей для PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// CreateUser создает нового пользователя в базе данных.
// Возвращает сохраненного пользователя без хеша пароля.
func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)
	          RETURNING id, name, email, created_at`
	var created models.User

	err := r.db.GetContext(ctx, &created, query, user.ID, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		// Гонка двух регистраций прошла мимо предварительной проверки
		if isUniqueViolation(err) {
			log.Warnf("[UserRepo] Ошибка создания пользователя: email '%s' уже занят", user.Email)
			return nil, ErrEmailTaken
		}
		log.Errorf("[UserRepo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Email, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	log.WithField("user_id", created.ID).Debug("[UserRepo] Пользователь успешно создан")
	return &created, nil
}

// GetUserByEmail находит пользователя по email (с хешем пароля, для проверки при входе).
func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Errorf("[UserRepo] Ошибка при поиске пользователя '%s': %v", email, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByID находит пользователя по ID. Хеш пароля не выбирается.
func (r *postgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Errorf("[UserRepo] Ошибка при поиске пользователя %s: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// GetUserStats считает избранное, оценки и списки пользователя одним запросом.
func (r *postgresUserRepository) GetUserStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM favorites WHERE user_id = $1) AS favorites,
	            (SELECT COUNT(*) FROM ratings WHERE user_id = $1) AS ratings,
	            (SELECT COUNT(*) FROM lists WHERE user_id = $1) AS lists`
	var stats models.UserStats

	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		log.Errorf("[UserRepo] Ошибка при подсчете статистики пользователя %s: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса статистики: %w", err)
	}

	return &stats, nil
}
