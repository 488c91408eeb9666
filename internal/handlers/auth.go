package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/models"
)

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s services.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondError(w, r, err, "Failed to register user")
		return
	}

	log.WithField("user_id", user.ID).Info("[AuthHandler] Пользователь зарегистрирован")
	writeJSON(w, http.StatusCreated, models.AuthResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, err, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}
