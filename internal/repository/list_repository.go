package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/models"
)

// ListRepository определяет методы для работы со списками и их элементами.
// Методы чтения по ID не проверяют владельца: это делает сервисный слой.
type ListRepository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	GetByID(ctx context.Context, listID int64) (*models.List, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.List, error)
	ListByUserWithCounts(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error)
	Delete(ctx context.Context, listID int64, userID uuid.UUID) (*models.List, error)

	GetItems(ctx context.Context, listID int64) ([]models.ListItem, error)
	GetItemsByLists(ctx context.Context, listIDs []int64) ([]models.ListItem, error)
	ItemExists(ctx context.Context, listID, movieID int64) (bool, error)
	AddItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error)
	GetItemByID(ctx context.Context, itemID int64) (*models.ListItem, error)
	DeleteItem(ctx context.Context, itemID int64) (*models.ListItem, error)
}

type postgresListRepository struct {
	db *sqlx.DB
}

// NewPostgresListRepository создает новый экземпляр репозитория списков.
func NewPostgresListRepository(db *sqlx.DB) ListRepository {
	return &postgresListRepository{db: db}
}

const (
	listColumns     = `id, user_id, name, description, created_at`
	listItemColumns = `id, list_id, movie_id, movie_title, poster_path, created_at`
)

func (r *postgresListRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query := `INSERT INTO lists (user_id, name, description) VALUES ($1, $2, $3) RETURNING ` + listColumns
	var created models.List

	if err := r.db.GetContext(ctx, &created, query, list.UserID, list.Name, list.Description); err != nil {
		log.Errorf("[ListRepo] Ошибка создания списка '%s': %v", list.Name, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание списка: %w", err)
	}
	return &created, nil
}

func (r *postgresListRepository) GetByID(ctx context.Context, listID int64) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = $1`
	var list models.List

	err := r.db.GetContext(ctx, &list, query, listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		log.Errorf("[ListRepo] Ошибка получения списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списка: %w", err)
	}
	return &list, nil
}

func (r *postgresListRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE user_id = $1 ORDER BY created_at DESC`
	lists := []models.List{}

	if err := r.db.SelectContext(ctx, &lists, query, userID); err != nil {
		log.Errorf("[ListRepo] Ошибка получения списков пользователя %s: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списков: %w", err)
	}
	return lists, nil
}

func (r *postgresListRepository) ListByUserWithCounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.ListWithCount, error) {
	query := `SELECT l.id, l.user_id, l.name, l.description, l.created_at, COUNT(li.id) AS items_count
	          FROM lists l
	          LEFT JOIN list_items li ON l.id = li.list_id
	          WHERE l.user_id = $1
	          GROUP BY l.id
	          ORDER BY l.created_at DESC`
	lists := []models.ListWithCount{}

	if err := r.db.SelectContext(ctx, &lists, query, userID); err != nil {
		log.Errorf("[ListRepo] Ошибка получения списков со счетчиками пользователя %s: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списков: %w", err)
	}
	return lists, nil
}

// Delete удаляет список владельца. Элементы удаляются каскадно на уровне БД.
func (r *postgresListRepository) Delete(ctx context.Context, listID int64, userID uuid.UUID) (*models.List, error) {
	query := `DELETE FROM lists WHERE id = $1 AND user_id = $2 RETURNING ` + listColumns
	var list models.List

	err := r.db.GetContext(ctx, &list, query, listID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		log.Errorf("[ListRepo] Ошибка удаления списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на удаление списка: %w", err)
	}
	return &list, nil
}

func (r *postgresListRepository) GetItems(ctx context.Context, listID int64) ([]models.ListItem, error) {
	query := `SELECT ` + listItemColumns + ` FROM list_items WHERE list_id = $1 ORDER BY created_at DESC`
	items := []models.ListItem{}

	if err := r.db.SelectContext(ctx, &items, query, listID); err != nil {
		log.Errorf("[ListRepo] Ошибка получения элементов списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение элементов списка: %w", err)
	}
	return items, nil
}

// GetItemsByLists выбирает элементы сразу нескольких списков одним запросом.
func (r *postgresListRepository) GetItemsByLists(ctx context.Context, listIDs []int64) ([]models.ListItem, error) {
	items := []models.ListItem{}
	if len(listIDs) == 0 {
		return items, nil
	}

	query := `SELECT ` + listItemColumns + ` FROM list_items WHERE list_id = ANY($1) ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(listIDs)); err != nil {
		log.Errorf("[ListRepo] Ошибка получения элементов списков %v: %v", listIDs, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение элементов списков: %w", err)
	}
	return items, nil
}

func (r *postgresListRepository) ItemExists(ctx context.Context, listID, movieID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM list_items WHERE list_id = $1 AND movie_id = $2)`
	var exists bool

	if err := r.db.GetContext(ctx, &exists, query, listID, movieID); err != nil {
		log.Errorf("[ListRepo] Ошибка проверки фильма %d в списке %d: %v", movieID, listID, err)
		return false, fmt.Errorf("ошибка выполнения запроса проверки элемента списка: %w", err)
	}
	return exists, nil
}

func (r *postgresListRepository) AddItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error) {
	query := `INSERT INTO list_items (list_id, movie_id, movie_title, poster_path) VALUES ($1, $2, $3, $4)
	          RETURNING ` + listItemColumns
	var created models.ListItem

	err := r.db.GetContext(ctx, &created, query, item.ListID, item.MovieID, item.MovieTitle, item.PosterPath)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrListItemExists
		}
		log.Errorf("[ListRepo] Ошибка добавления фильма %d в список %d: %v", item.MovieID, item.ListID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на добавление элемента списка: %w", err)
	}
	return &created, nil
}

func (r *postgresListRepository) GetItemByID(ctx context.Context, itemID int64) (*models.ListItem, error) {
	query := `SELECT ` + listItemColumns + ` FROM list_items WHERE id = $1`
	var item models.ListItem

	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListItemNotFound
		}
		log.Errorf("[ListRepo] Ошибка получения элемента списка %d: %v", itemID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение элемента списка: %w", err)
	}
	return &item, nil
}

func (r *postgresListRepository) DeleteItem(ctx context.Context, itemID int64) (*models.ListItem, error) {
	query := `DELETE FROM list_items WHERE id = $1 RETURNING ` + listItemColumns
	var item models.ListItem

	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListItemNotFound
		}
		log.Errorf("[ListRepo] Ошибка удаления элемента списка %d: %v", itemID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на удаление элемента списка: %w", err)
	}
	return &item, nil
}
