package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/cinecatalog/internal/handlers"
	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

func TestListHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		call           func(h *handlers.ListHandler, w http.ResponseWriter)
		setupMock      func(m *MockListService)
		expectedStatus int
		expectedError  string
		expectedKey    string
	}{
		{
			name: "Создание списка",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.Create(w, newRequest(http.MethodPost, "/api/lists/create", `{"name":"Classics"}`, userID, nil))
			},
			setupMock: func(m *MockListService) {
				m.On("Create", mock.Anything, userID, models.CreateListRequest{Name: "Classics"}).
					Return(&models.List{ID: 1, UserID: userID, Name: "Classics"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedKey:    "list",
		},
		{
			name: "Мои списки",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.MyLists(w, newRequest(http.MethodGet, "/api/lists/my-lists", "", userID, nil))
			},
			setupMock: func(m *MockListService) {
				m.On("MyLists", mock.Anything, userID).
					Return([]models.ListWithCount{{List: models.List{ID: 1}, ItemsCount: 2}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "lists",
		},
		{
			name: "Фильмы чужого списка",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.Items(w, newRequest(http.MethodGet, "/api/lists/5/items", "", userID, map[string]string{"list_id": "5"}))
			},
			setupMock: func(m *MockListService) {
				m.On("Items", mock.Anything, userID, int64(5)).Return(nil, services.ErrListNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "List not found",
		},
		{
			name: "Фильм в чужой список",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.AddItem(w, newRequest(http.MethodPost, "/api/lists/add-item",
					`{"list_id":5,"movie_id":7,"movie_title":"Seven"}`, userID, nil))
			},
			setupMock: func(m *MockListService) {
				m.On("AddItem", mock.Anything, userID, models.AddListItemRequest{ListID: 5, MovieID: 7, MovieTitle: "Seven"}).
					Return(nil, services.ErrListNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "List not found",
		},
		{
			name: "Фильм уже в списке",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.AddItem(w, newRequest(http.MethodPost, "/api/lists/add-item",
					`{"list_id":5,"movie_id":7,"movie_title":"Seven"}`, userID, nil))
			},
			setupMock: func(m *MockListService) {
				m.On("AddItem", mock.Anything, userID, mock.Anything).Return(nil, services.ErrAlreadyInList).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Movie is already in this list",
		},
		{
			name: "Удаление фильма из списка",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.RemoveItem(w, newRequest(http.MethodDelete, "/api/lists/remove-item/10", "", userID,
					map[string]string{"item_id": "10"}))
			},
			setupMock: func(m *MockListService) {
				m.On("RemoveItem", mock.Anything, userID, int64(10)).
					Return(&models.ListItem{ID: 10, ListID: 5, MovieID: 7}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "item",
		},
		{
			name: "Некорректный item_id",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.RemoveItem(w, newRequest(http.MethodDelete, "/api/lists/remove-item/0", "", userID,
					map[string]string{"item_id": "0"}))
			},
			setupMock:      func(_ *MockListService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid item_id",
		},
		{
			name: "Удаление списка",
			call: func(h *handlers.ListHandler, w http.ResponseWriter) {
				h.Delete(w, newRequest(http.MethodDelete, "/api/lists/5", "", userID, map[string]string{"list_id": "5"}))
			},
			setupMock: func(m *MockListService) {
				m.On("Delete", mock.Anything, userID, int64(5)).Return(&models.List{ID: 5, UserID: userID}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockListService)
			tt.setupMock(svc)
			rec := httptest.NewRecorder()

			tt.call(handlers.NewListHandler(svc), rec)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Contains(t, body, tt.expectedKey)
			}
			svc.AssertExpectations(t)
		})
	}
}
