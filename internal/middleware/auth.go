// Package middleware содержит HTTP middleware сервера каталога.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/services"
)

// Тип для ключа контекста.
type contextKey string

// Ключи для хранения данных аутентифицированного пользователя в контексте.
const (
	UserIDKey contextKey = "userID"
	EmailKey  contextKey = "email"
)

// Сообщения для клиента намеренно не раскрывают причину отказа.
const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
)

// TokenVerifier проверяет токен доступа. Реализуется services.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// Authenticator возвращает middleware, проверяющий JWT токен из заголовка Authorization.
// Обернутый обработчик вызывается только для валидного токена.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Debug("[AuthMiddleware] Заголовок Authorization отсутствует")
				unauthorized(w, msgAuthRequired)
				return
			}

			// Ожидаем формат "Bearer token", схема без учета регистра
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
				log.Debug("[AuthMiddleware] Неверный формат заголовка Authorization")
				unauthorized(w, msgInvalidToken)
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(tokenString))
			if err != nil {
				log.WithError(err).Debug("[AuthMiddleware] Токен не прошел проверку")
				unauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)

			log.WithField("user_id", claims.UserID).Debug("[AuthMiddleware] Пользователь аутентифицирован")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает ID пользователя из контекста запроса.
// Возвращает uuid.Nil и false, если ID не найден.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// GetEmailFromContext извлекает email пользователя из контекста запроса.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.WithError(err).Error("[AuthMiddleware] Ошибка кодирования ответа")
	}
}
