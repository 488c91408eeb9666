package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// Вспомогательная функция для создания мока БД.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestNewPostgresUserRepository(t *testing.T) {
	// Конструктор просто сохраняет соединение
	repo := repository.NewPostgresUserRepository(nil)
	assert.NotNil(t, repo)
}

func TestCreateUser(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	insertQuery := regexp.QuoteMeta(`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`)

	tests := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock, user *models.User)
		expectedErr error
	}{
		{
			name: "Успешное создание",
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
					AddRow(user.ID.String(), user.Name, user.Email, now)
				mock.ExpectQuery(insertQuery).
					WithArgs(user.ID, user.Name, user.Email, user.PasswordHash).
					WillReturnRows(rows)
			},
		},
		{
			name: "Email уже занят",
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				mock.ExpectQuery(insertQuery).
					WithArgs(user.ID, user.Name, user.Email, user.PasswordHash).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			expectedErr: repository.ErrEmailTaken,
		},
		{
			name: "Ошибка базы данных",
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				mock.ExpectQuery(insertQuery).
					WithArgs(user.ID, user.Name, user.Email, user.PasswordHash).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("ошибка выполнения запроса"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewPostgresUserRepository(db)
			user := &models.User{ID: userID, Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}
			tt.mockSetup(mock, user)

			created, err := repo.CreateUser(context.Background(), user)

			if tt.expectedErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, created.ID)
				assert.Equal(t, "ana@x.com", created.Email)
				assert.Empty(t, created.PasswordHash, "Хеш пароля не должен возвращаться")
			} else {
				require.Error(t, err)
				assert.Nil(t, created)
				if errors.Is(tt.expectedErr, repository.ErrEmailTaken) {
					assert.ErrorIs(t, err, repository.ErrEmailTaken)
				} else {
					assert.Contains(t, err.Error(), tt.expectedErr.Error())
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet(), "Не все ожидания мока были выполнены")
		})
	}
}

func TestGetUserByEmail(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`)
	userID := uuid.New()

	t.Run("Пользователь найден", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(userID.String(), "Ana", "ana@x.com", "hash", time.Now())
		mock.ExpectQuery(query).WithArgs("ana@x.com").WillReturnRows(rows)

		user, err := repository.NewPostgresUserRepository(db).GetUserByEmail(context.Background(), "ana@x.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("nobody@x.com").WillReturnError(sql.ErrNoRows)

		user, err := repository.NewPostgresUserRepository(db).GetUserByEmail(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, email, created_at FROM users WHERE id = $1`)
	userID := uuid.New()

	t.Run("Пользователь найден", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(userID.String(), "Ana", "ana@x.com", time.Now())
		mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)

		user, err := repository.NewPostgresUserRepository(db).GetUserByID(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.Empty(t, user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		_, err := repository.NewPostgresUserRepository(db).GetUserByID(context.Background(), userID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestGetUserStats(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"favorites", "ratings", "lists"}).AddRow(3, 2, 1)
	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COUNT(*) FROM favorites WHERE user_id = $1) AS favorites`)).
		WithArgs(userID).
		WillReturnRows(rows)

	stats, err := repository.NewPostgresUserRepository(db).GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, &models.UserStats{Favorites: 3, Ratings: 2, Lists: 1}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
