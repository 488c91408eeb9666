package handlers_test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/cinecatalog/internal/handlers"
	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

var (
	_ services.AuthService     = (*MockAuthService)(nil)
	_ services.FavoriteService = (*MockFavoriteService)(nil)
	_ services.RatingService   = (*MockRatingService)(nil)
	_ services.ListService     = (*MockListService)(nil)
	_ handlers.MovieCatalog    = (*MockCatalog)(nil)
)

// MockAuthService - мок services.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

// MockFavoriteService - мок services.FavoriteService.
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(
	ctx context.Context, userID uuid.UUID, req models.AddFavoriteRequest,
) (*models.Favorite, error) {
	args := m.Called(ctx, userID, req)
	fav, _ := args.Get(0).(*models.Favorite)
	return fav, args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Favorite, error) {
	args := m.Called(ctx, userID, movieID)
	fav, _ := args.Get(0).(*models.Favorite)
	return fav, args.Error(1)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	favs, _ := args.Get(0).([]models.Favorite)
	return favs, args.Error(1)
}

// MockRatingService - мок services.RatingService.
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Set(ctx context.Context, userID uuid.UUID, req models.SetRatingRequest) (*models.Rating, error) {
	args := m.Called(ctx, userID, req)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *MockRatingService) Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *MockRatingService) Remove(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	rating, _ := args.Get(0).(*models.Rating)
	return rating, args.Error(1)
}

func (m *MockRatingService) List(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	ratings, _ := args.Get(0).([]models.Rating)
	return ratings, args.Error(1)
}

// MockListService - мок services.ListService.
type MockListService struct {
	mock.Mock
}

func (m *MockListService) Create(ctx context.Context, userID uuid.UUID, req models.CreateListRequest) (*models.List, error) {
	args := m.Called(ctx, userID, req)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

func (m *MockListService) MyLists(ctx context.Context, userID uuid.UUID) ([]models.ListWithCount, error) {
	args := m.Called(ctx, userID)
	lists, _ := args.Get(0).([]models.ListWithCount)
	return lists, args.Error(1)
}

func (m *MockListService) ListsWithItems(ctx context.Context, userID uuid.UUID) ([]models.ListWithItems, error) {
	args := m.Called(ctx, userID)
	lists, _ := args.Get(0).([]models.ListWithItems)
	return lists, args.Error(1)
}

func (m *MockListService) Items(ctx context.Context, userID uuid.UUID, listID int64) ([]models.ListItem, error) {
	args := m.Called(ctx, userID, listID)
	items, _ := args.Get(0).([]models.ListItem)
	return items, args.Error(1)
}

func (m *MockListService) AddItem(
	ctx context.Context, userID uuid.UUID, req models.AddListItemRequest,
) (*models.ListItem, error) {
	args := m.Called(ctx, userID, req)
	item, _ := args.Get(0).(*models.ListItem)
	return item, args.Error(1)
}

func (m *MockListService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.ListItem, error) {
	args := m.Called(ctx, userID, itemID)
	item, _ := args.Get(0).(*models.ListItem)
	return item, args.Error(1)
}

func (m *MockListService) Delete(ctx context.Context, userID uuid.UUID, listID int64) (*models.List, error) {
	args := m.Called(ctx, userID, listID)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

// MockCatalog - мок handlers.MovieCatalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) raw(args mock.Arguments) (json.RawMessage, error) {
	body, _ := args.Get(0).(string)
	if body == "" {
		return nil, args.Error(1)
	}
	return json.RawMessage(body), args.Error(1)
}

func (m *MockCatalog) Trending(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

func (m *MockCatalog) Popular(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

func (m *MockCatalog) TopRatedTV(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

func (m *MockCatalog) SearchMovies(ctx context.Context, query string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, query))
}

func (m *MockCatalog) MovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, movieID))
}
