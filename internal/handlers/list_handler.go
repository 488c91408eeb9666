package handlers

import (
	"net/http"

	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

// ListHandler обрабатывает запросы к пользовательским спискам фильмов.
type ListHandler struct {
	service services.ListService
}

// NewListHandler создает новый экземпляр ListHandler.
func NewListHandler(s services.ListService) *ListHandler {
	return &ListHandler{service: s}
}

// Create создает новый список.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CreateListRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	list, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to create list")
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"message": "List created",
		"list":    list,
	})
}

// MyLists возвращает списки пользователя с количеством фильмов.
func (h *ListHandler) MyLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	lists, err := h.service.MyLists(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get lists")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"lists": lists})
}

// Items возвращает фильмы списка, принадлежащего пользователю.
func (h *ListHandler) Items(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	listID, ok := parseIDParam(w, r, "list_id")
	if !ok {
		return
	}

	items, err := h.service.Items(r.Context(), userID, listID)
	if err != nil {
		respondError(w, r, err, "Failed to get list items")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"items": items})
}

// AddItem добавляет фильм в список.
func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.AddListItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to add movie to list")
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"message": "Movie added to list",
		"item":    item,
	})
}

// RemoveItem удаляет фильм из списка.
func (h *ListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(w, r, "item_id")
	if !ok {
		return
	}

	item, err := h.service.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		respondError(w, r, err, "Failed to remove movie from list")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"message": "Movie removed from list",
		"item":    item,
	})
}

// Delete удаляет список вместе с его фильмами.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	listID, ok := parseIDParam(w, r, "list_id")
	if !ok {
		return
	}

	list, err := h.service.Delete(r.Context(), userID, listID)
	if err != nil {
		respondError(w, r, err, "Failed to delete list")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"message": "List deleted",
		"list":    list,
	})
}
