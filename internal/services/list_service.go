package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// ListService управляет списками пользователя и их элементами.
// Доступ к элементу всегда проверяется через владельца родительского списка.
type ListService interface {
	Create(ctx context.Context, userID uuid.UUID, req models.CreateListRequest) (*models.List, error)
	MyLists(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error)
	ListsWithItems(ctx context.Context, userID uuid.UUID) ([]models.ListWithItems, error)
	Items(ctx context.Context, userID uuid.UUID, listID int64) ([]models.ListItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, req models.AddListItemRequest) (*models.ListItem, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.ListItem, error)
	Delete(ctx context.Context, userID uuid.UUID, listID int64) (*models.List, error)
}

var _ ListService = (*listService)(nil)

type listService struct {
	repo repository.ListRepository
}

// NewListService создает новый экземпляр сервиса списков.
func NewListService(repo repository.ListRepository) ListService {
	return &listService{repo: repo}
}

func (s *listService) Create(ctx context.Context, userID uuid.UUID, req models.CreateListRequest) (*models.List, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	list, err := s.repo.Create(ctx, &models.List{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, errInternal("создание списка", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "list_id": list.ID}).Info("[ListService] Список создан")
	return list, nil
}

func (s *listService) MyLists(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error) {
	lists, err := s.repo.ListByUserWithCounts(ctx, userID)
	if err != nil {
		return nil, errInternal("получение списков", err)
	}
	return lists, nil
}

// ListsWithItems возвращает все списки пользователя вместе с их фильмами.
func (s *listService) ListsWithItems(ctx context.Context, userID uuid.UUID) ([]models.ListWithItems, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errInternal("получение списков", err)
	}

	ids := make([]int64, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	items, err := s.repo.GetItemsByLists(ctx, ids)
	if err != nil {
		return nil, errInternal("получение элементов списков", err)
	}

	byList := make(map[int64][]models.ListItem, len(lists))
	for _, item := range items {
		byList[item.ListID] = append(byList[item.ListID], item)
	}

	result := make([]models.ListWithItems, 0, len(lists))
	for _, l := range lists {
		listItems := byList[l.ID]
		if listItems == nil {
			listItems = []models.ListItem{}
		}
		result = append(result, models.ListWithItems{List: l, Items: listItems})
	}
	return result, nil
}

func (s *listService) Items(ctx context.Context, userID uuid.UUID, listID int64) ([]models.ListItem, error) {
	if _, err := s.ownedList(ctx, userID, listID, ErrListNotFound); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, listID)
	if err != nil {
		return nil, errInternal("получение элементов списка", err)
	}
	return items, nil
}

func (s *listService) AddItem(
	ctx context.Context,
	userID uuid.UUID,
	req models.AddListItemRequest,
) (*models.ListItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.ownedList(ctx, userID, req.ListID, ErrListNotFound); err != nil {
		return nil, err
	}

	exists, err := s.repo.ItemExists(ctx, req.ListID, req.MovieID)
	if err != nil {
		return nil, errInternal("проверка элемента списка", err)
	}
	if exists {
		return nil, ErrAlreadyInList
	}

	item, err := s.repo.AddItem(ctx, &models.ListItem{
		ListID:     req.ListID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		if errors.Is(err, repository.ErrListItemExists) {
			return nil, ErrAlreadyInList
		}
		return nil, errInternal("добавление элемента списка", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "list_id": req.ListID, "movie_id": req.MovieID}).
		Info("[ListService] Фильм добавлен в список")
	return item, nil
}

// RemoveItem удаляет элемент только после того, как доказано владение родительским списком.
func (s *listService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.ListItem, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			return nil, ErrListItemNotFound
		}
		return nil, errInternal("получение элемента списка", err)
	}

	if _, err = s.ownedList(ctx, userID, item.ListID, ErrListItemNotFound); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			return nil, ErrListItemNotFound
		}
		return nil, errInternal("удаление элемента списка", err)
	}
	return deleted, nil
}

func (s *listService) Delete(ctx context.Context, userID uuid.UUID, listID int64) (*models.List, error) {
	list, err := s.repo.Delete(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, errInternal("удаление списка", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "list_id": listID}).Info("[ListService] Список удален")
	return list, nil
}

// ownedList загружает список и сверяет владельца. Чужой список неотличим от отсутствующего:
// в обоих случаях возвращается notFound.
func (s *listService) ownedList(
	ctx context.Context,
	userID uuid.UUID,
	listID int64,
	notFound error,
) (*models.List, error) {
	list, err := s.repo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, notFound
		}
		return nil, errInternal("получение списка", err)
	}
	if list.UserID != userID {
		log.WithFields(log.Fields{"user_id": userID, "list_id": listID}).
			Warn("[ListService] Обращение к чужому списку")
		return nil, notFound
	}
	return list, nil
}
