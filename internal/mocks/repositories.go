// Package mocks содержит моки репозиториев на базе testify/mock.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/models"
)

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.FavoriteRepository = (*FavoriteRepository)(nil)
	_ repository.RatingRepository   = (*RatingRepository)(nil)
	_ repository.ListRepository     = (*ListRepository)(nil)
)

// UserRepository - мок repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	return userArg(args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userArg(args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *UserRepository) GetUserStats(ctx context.Context, id uuid.UUID) (*models.UserStats, error) {
	args := m.Called(ctx, id)
	stats, _ := args.Get(0).(*models.UserStats)
	return stats, args.Error(1)
}

func userArg(args mock.Arguments, i int) *models.User {
	user, _ := args.Get(i).(*models.User)
	return user
}

// FavoriteRepository - мок repository.FavoriteRepository.
type FavoriteRepository struct {
	mock.Mock
}

func (m *FavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) Create(ctx context.Context, fav *models.Favorite) (*models.Favorite, error) {
	args := m.Called(ctx, fav)
	created, _ := args.Get(0).(*models.Favorite)
	return created, args.Error(1)
}

func (m *FavoriteRepository) Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error) {
	args := m.Called(ctx, userID, movieID)
	deleted, _ := args.Get(0).(*models.Favorite)
	return deleted, args.Error(1)
}

func (m *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	favorites, _ := args.Get(0).([]models.Favorite)
	return favorites, args.Error(1)
}

// RatingRepository - мок repository.RatingRepository.
type RatingRepository struct {
	mock.Mock
}

func (m *RatingRepository) Upsert(ctx context.Context, userID uuid.UUID, movieID int64, score int) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID, score)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *RatingRepository) Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *RatingRepository) Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *RatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	ratings, _ := args.Get(0).([]models.Rating)
	return ratings, args.Error(1)
}

// ListRepository - мок repository.ListRepository.
type ListRepository struct {
	mock.Mock
}

func (m *ListRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	args := m.Called(ctx, list)
	created, _ := args.Get(0).(*models.List)
	return created, args.Error(1)
}

func (m *ListRepository) GetByID(ctx context.Context, listID int64) (*models.List, error) {
	args := m.Called(ctx, listID)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

func (m *ListRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.List, error) {
	args := m.Called(ctx, userID)
	lists, _ := args.Get(0).([]models.List)
	return lists, args.Error(1)
}

func (m *ListRepository) ListByUserWithCounts(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error) {
	args := m.Called(ctx, userID)
	lists, _ := args.Get(0).([]models.ListWithCount)
	return lists, args.Error(1)
}

func (m *ListRepository) Delete(ctx context.Context, listID int64, userID uuid.UUID) (*models.List, error) {
	args := m.Called(ctx, listID, userID)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

func (m *ListRepository) GetItems(ctx context.Context, listID int64) ([]models.ListItem, error) {
	args := m.Called(ctx, listID)
	items, _ := args.Get(0).([]models.ListItem)
	return items, args.Error(1)
}

func (m *ListRepository) GetItemsByLists(ctx context.Context, listIDs []int64) ([]models.ListItem, error) {
	args := m.Called(ctx, listIDs)
	items, _ := args.Get(0).([]models.ListItem)
	return items, args.Error(1)
}

func (m *ListRepository) ItemExists(ctx context.Context, listID, movieID int64) (bool, error) {
	args := m.Called(ctx, listID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *ListRepository) AddItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*models.ListItem)
	return created, args.Error(1)
}

func (m *ListRepository) GetItemByID(ctx context.Context, itemID int64) (*models.ListItem, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(*models.ListItem)
	return item, args.Error(1)
}

func (m *ListRepository) DeleteItem(ctx context.Context, itemID int64) (*models.ListItem, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(*models.ListItem)
	return item, args.Error(1)
}
