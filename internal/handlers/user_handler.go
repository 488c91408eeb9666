package handlers

import (
	"net/http"

	"github.com/maynagashev/cinecatalog/internal/services"
)

// UserHandler отдает профиль и сводные данные текущего пользователя.
type UserHandler struct {
	users     services.UserService
	favorites services.FavoriteService
	ratings   services.RatingService
	lists     services.ListService
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(
	users services.UserService,
	favorites services.FavoriteService,
	ratings services.RatingService,
	lists services.ListService,
) *UserHandler {
	return &UserHandler{users: users, favorites: favorites, ratings: ratings, lists: lists}
}

// Profile возвращает профиль пользователя без хеша пароля.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get profile")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"user": user})
}

// Favorites возвращает избранное, новые сначала.
func (h *UserHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	favorites, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get favorites")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"favorites": favorites})
}

// Ratings возвращает оценки, недавно измененные сначала.
func (h *UserHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ratings, err := h.ratings.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get ratings")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"ratings": ratings})
}

// Lists возвращает списки пользователя с вложенными фильмами.
func (h *UserHandler) Lists(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	lists, err := h.lists.ListsWithItems(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get lists")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"lists": lists})
}

// Stats возвращает количество избранного, оценок и списков.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.users.Stats(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"stats": stats})
}
