package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// MovieCatalog - источник метаданных фильмов. Реализуется tmdb.Client.
type MovieCatalog interface {
	Trending(ctx context.Context) (json.RawMessage, error)
	Popular(ctx context.Context) (json.RawMessage, error)
	TopRatedTV(ctx context.Context) (json.RawMessage, error)
	SearchMovies(ctx context.Context, query string) (json.RawMessage, error)
	MovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error)
}

// MovieHandler проксирует запросы к каталогу метаданных.
type MovieHandler struct {
	catalog MovieCatalog
}

// NewMovieHandler создает новый экземпляр MovieHandler.
func NewMovieHandler(c MovieCatalog) *MovieHandler {
	return &MovieHandler{catalog: c}
}

// Trending отдает фильмы в тренде за неделю.
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, "Failed to fetch trending movies", h.catalog.Trending)
}

// Popular отдает популярные фильмы.
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, "Failed to fetch popular movies", h.catalog.Popular)
}

// RecommendedTV отдает сериалы с наивысшим рейтингом.
func (h *MovieHandler) RecommendedTV(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, "Failed to fetch recommended TV shows", h.catalog.TopRatedTV)
}

// Search ищет фильмы по параметру query.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	h.proxy(w, r, "Failed to search movies", func(ctx context.Context) (json.RawMessage, error) {
		return h.catalog.SearchMovies(ctx, query)
	})
}

// Details отдает детали фильма вместе с актерским составом.
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	h.proxy(w, r, "Failed to fetch movie details", func(ctx context.Context) (json.RawMessage, error) {
		return h.catalog.MovieDetails(ctx, movieID)
	})
}

func (h *MovieHandler) proxy(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	fetch func(ctx context.Context) (json.RawMessage, error),
) {
	body, err := fetch(r.Context())
	if err != nil {
		// Сбой TMDB не повторяется и отдается клиенту как 500
		log.WithError(err).WithField("path", r.URL.Path).Error("[MovieHandler] Ошибка запроса к каталогу")
		writeError(w, http.StatusInternalServerError, failure)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}
