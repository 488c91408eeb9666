package handlers

import (
	"net/http"

	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

// FavoriteHandler обрабатывает запросы к избранному текущего пользователя.
type FavoriteHandler struct {
	service services.FavoriteService
}

// NewFavoriteHandler создает новый экземпляр FavoriteHandler.
func NewFavoriteHandler(s services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: s}
}

// Add добавляет фильм в избранное.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.AddFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	favorite, err := h.service.Add(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to add favorite")
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"message":  "Movie added to favorites",
		"favorite": favorite,
	})
}

// Remove удаляет фильм из избранного.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := parseIDParam(w, r, "movie_id")
	if !ok {
		return
	}

	favorite, err := h.service.Remove(r.Context(), userID, movieID)
	if err != nil {
		respondError(w, r, err, "Failed to remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"message":  "Movie removed from favorites",
		"favorite": favorite,
	})
}

// Check сообщает, находится ли фильм в избранном.
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := parseIDParam(w, r, "movie_id")
	if !ok {
		return
	}

	isFavorite, err := h.service.IsFavorite(r.Context(), userID, movieID)
	if err != nil {
		respondError(w, r, err, "Failed to check favorite")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"isFavorite": isFavorite})
}
