package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

// memoryStore - хранилище в памяти для сквозных тестов роутера.
// Повторяет ограничения уникальности и каскадное удаление схемы PostgreSQL.
type memoryStore struct {
	mu sync.Mutex

	users     map[uuid.UUID]models.User
	favorites []models.Favorite
	ratings   []models.Rating
	lists     []models.List
	items     []models.ListItem
	nextID    int64
}

func newMemoryRepositories() repositories {
	s := &memoryStore{users: make(map[uuid.UUID]models.User)}
	return repositories{
		users:     (*memoryUsers)(s),
		favorites: (*memoryFavorites)(s),
		ratings:   (*memoryRatings)(s),
		lists:     (*memoryLists)(s),
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memoryUsers memoryStore

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, repository.ErrEmailTaken
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	m.users[user.ID] = stored
	stored.PasswordHash = ""
	return &stored, nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (m *memoryUsers) GetUserStats(_ context.Context, id uuid.UUID) (*models.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.UserStats{}
	for _, f := range m.favorites {
		if f.UserID == id {
			stats.Favorites++
		}
	}
	for _, r := range m.ratings {
		if r.UserID == id {
			stats.Ratings++
		}
	}
	for _, l := range m.lists {
		if l.UserID == id {
			stats.Lists++
		}
	}
	return stats, nil
}

type memoryFavorites memoryStore

func (m *memoryFavorites) Exists(_ context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(userID, movieID) >= 0, nil
}

func (m *memoryFavorites) find(userID uuid.UUID, movieID int64) int {
	for i, f := range m.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return i
		}
	}
	return -1
}

func (m *memoryFavorites) Create(_ context.Context, fav *models.Favorite) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(fav.UserID, fav.MovieID) >= 0 {
		return nil, repository.ErrFavoriteExists
	}
	stored := *fav
	stored.ID = (*memoryStore)(m).id()
	stored.CreatedAt = time.Now()
	m.favorites = append(m.favorites, stored)
	return &stored, nil
}

func (m *memoryFavorites) Delete(_ context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, movieID)
	if i < 0 {
		return nil, repository.ErrFavoriteNotFound
	}
	deleted := m.favorites[i]
	m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
	return &deleted, nil
}

func (m *memoryFavorites) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Favorite{}
	for i := len(m.favorites) - 1; i >= 0; i-- {
		if m.favorites[i].UserID == userID {
			out = append(out, m.favorites[i])
		}
	}
	return out, nil
}

type memoryRatings memoryStore

func (m *memoryRatings) find(userID uuid.UUID, movieID int64) int {
	for i, r := range m.ratings {
		if r.UserID == userID && r.MovieID == movieID {
			return i
		}
	}
	return -1
}

func (m *memoryRatings) Upsert(_ context.Context, userID uuid.UUID, movieID int64, score int) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if i := m.find(userID, movieID); i >= 0 {
		m.ratings[i].Rating = score
		m.ratings[i].UpdatedAt = now
		updated := m.ratings[i]
		return &updated, nil
	}
	stored := models.Rating{
		ID: (*memoryStore)(m).id(), UserID: userID, MovieID: movieID, Rating: score,
		CreatedAt: now, UpdatedAt: now,
	}
	m.ratings = append(m.ratings, stored)
	return &stored, nil
}

func (m *memoryRatings) Get(_ context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, movieID)
	if i < 0 {
		return nil, repository.ErrRatingNotFound
	}
	found := m.ratings[i]
	return &found, nil
}

func (m *memoryRatings) Delete(_ context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, movieID)
	if i < 0 {
		return nil, repository.ErrRatingNotFound
	}
	deleted := m.ratings[i]
	m.ratings = append(m.ratings[:i], m.ratings[i+1:]...)
	return &deleted, nil
}

func (m *memoryRatings) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Rating{}
	for _, r := range m.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

type memoryLists memoryStore

func (m *memoryLists) Create(_ context.Context, list *models.List) (*models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *list
	stored.ID = (*memoryStore)(m).id()
	stored.CreatedAt = time.Now()
	m.lists = append(m.lists, stored)
	return &stored, nil
}

func (m *memoryLists) GetByID(_ context.Context, listID int64) (*models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lists {
		if l.ID == listID {
			found := l
			return &found, nil
		}
	}
	return nil, repository.ErrListNotFound
}

func (m *memoryLists) ListByUser(_ context.Context, userID uuid.UUID) ([]models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.List{}
	for i := len(m.lists) - 1; i >= 0; i-- {
		if m.lists[i].UserID == userID {
			out = append(out, m.lists[i])
		}
	}
	return out, nil
}

func (m *memoryLists) ListByUserWithCounts(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error) {
	lists, _ := m.ListByUser(ctx, userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ListWithCount, 0, len(lists))
	for _, l := range lists {
		var count int64
		for _, item := range m.items {
			if item.ListID == l.ID {
				count++
			}
		}
		out = append(out, models.ListWithCount{List: l, ItemsCount: count})
	}
	return out, nil
}

func (m *memoryLists) Delete(_ context.Context, listID int64, userID uuid.UUID) (*models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.lists {
		if l.ID == listID && l.UserID == userID {
			m.lists = append(m.lists[:i], m.lists[i+1:]...)
			// ON DELETE CASCADE
			kept := m.items[:0]
			for _, item := range m.items {
				if item.ListID != listID {
					kept = append(kept, item)
				}
			}
			m.items = kept
			return &l, nil
		}
	}
	return nil, repository.ErrListNotFound
}

func (m *memoryLists) GetItems(_ context.Context, listID int64) ([]models.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ListItem{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].ListID == listID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memoryLists) GetItemsByLists(ctx context.Context, listIDs []int64) ([]models.ListItem, error) {
	out := []models.ListItem{}
	for _, id := range listIDs {
		items, _ := m.GetItems(ctx, id)
		out = append(out, items...)
	}
	return out, nil
}

func (m *memoryLists) ItemExists(_ context.Context, listID, movieID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ListID == listID && item.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLists) AddItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error) {
	if exists, _ := m.ItemExists(ctx, item.ListID, item.MovieID); exists {
		return nil, repository.ErrListItemExists
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *item
	stored.ID = (*memoryStore)(m).id()
	stored.CreatedAt = time.Now()
	m.items = append(m.items, stored)
	return &stored, nil
}

func (m *memoryLists) GetItemByID(_ context.Context, itemID int64) (*models.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == itemID {
			found := item
			return &found, nil
		}
	}
	return nil, repository.ErrListItemNotFound
}

func (m *memoryLists) DeleteItem(_ context.Context, itemID int64) (*models.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &item, nil
		}
	}
	return nil, repository.ErrListItemNotFound
}
