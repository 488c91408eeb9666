package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsMaxAge - максимальное значение, которое учитывают все основные браузеры.
const corsMaxAge = 300

// CORS возвращает middleware CORS для фронтенда.
// Пустой список источников разрешает любой источник.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	// Учетные данные передаются в заголовке Authorization, cookies не используются
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	})
}
