package handlers

import (
	"net/http"

	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

// RatingHandler обрабатывает запросы к оценкам фильмов.
type RatingHandler struct {
	service services.RatingService
}

// NewRatingHandler создает новый экземпляр RatingHandler.
func NewRatingHandler(s services.RatingService) *RatingHandler {
	return &RatingHandler{service: s}
}

// Set создает или обновляет оценку фильма.
func (h *RatingHandler) Set(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.SetRatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.Set(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to save rating")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"message": "Rating saved",
		"rating":  rating,
	})
}

// Get возвращает оценку фильма или null, если оценки нет.
func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := parseIDParam(w, r, "movie_id")
	if !ok {
		return
	}

	rating, err := h.service.Get(r.Context(), userID, movieID)
	if err != nil {
		respondError(w, r, err, "Failed to get rating")
		return
	}

	var score *int
	if rating != nil {
		score = &rating.Rating
	}
	writeJSON(w, http.StatusOK, envelope{"rating": score})
}

// Remove удаляет оценку фильма.
func (h *RatingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := parseIDParam(w, r, "movie_id")
	if !ok {
		return
	}

	rating, err := h.service.Remove(r.Context(), userID, movieID)
	if err != nil {
		respondError(w, r, err, "Failed to remove rating")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"message": "Rating removed",
		"rating":  rating,
	})
}
