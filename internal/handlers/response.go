// Package handlers содержит HTTP обработчики REST API каталога.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/middleware"
	"github.com/maynagashev/cinecatalog/internal/services"
)

// maxBodySize ограничивает размер тела JSON запроса.
const maxBodySize = 1 << 20

// Общие сообщения об ошибках для клиента.
const (
	msgInvalidBody         = "Invalid request body"
	msgInvalidCredentials  = "Invalid credentials"
	msgAuthRequired        = "Authentication required"
	msgInternalServerError = "Internal server error"
	msgRouteNotFound       = "Route not found"
	msgMethodNotAllowed    = "Method not allowed"
)

// envelope - тело JSON ответа.
type envelope map[string]any

// writeJSON отправляет payload в JSON с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Статус уже отправлен, остается только залогировать
		log.WithError(err).Error("[Handlers] Ошибка кодирования ответа")
	}
}

// writeRawJSON отправляет уже закодированный JSON без повторной сериализации.
func writeRawJSON(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.WithError(err).Error("[Handlers] Ошибка записи ответа")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"error": message})
}

// respondError сопоставляет ошибку сервиса со статусом HTTP.
// Для непредвиденных ошибок клиент получает fallback, а подробности уходят в лог.
func respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("[Handlers] Внутренняя ошибка")
		if fallback == "" {
			fallback = msgInternalServerError
		}
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON читает тело запроса в dst. Неизвестные поля игнорируются.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			log.Debug("[Handlers] Пустое тело запроса")
		} else {
			log.WithError(err).Debug("[Handlers] Ошибка декодирования запроса")
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// parseIDParam читает положительный целочисленный параметр пути.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		log.WithField(name, raw).Debug("[Handlers] Некорректный параметр пути")
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// currentUser достает ID пользователя, положенный Authenticator.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.WithField("path", r.URL.Path).Error("[Handlers] Нет userID в контексте защищенного маршрута")
		writeError(w, http.StatusUnauthorized, msgAuthRequired)
		return uuid.Nil, false
	}
	return userID, true
}

// NotFound отвечает JSON ошибкой на неизвестный маршрут.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

// MethodNotAllowed отвечает JSON ошибкой на неподдерживаемый метод.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
