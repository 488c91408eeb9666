package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Logger пишет журнал запросов через logrus.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := log.WithFields(log.Fields{
			"request_id":  chimiddleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration":    time.Since(start).String(),
			"remote_addr": r.RemoteAddr,
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("[HTTP] Запрос завершился ошибкой сервера")
		case status >= http.StatusBadRequest:
			entry.Warn("[HTTP] Запрос отклонен")
		default:
			entry.Info("[HTTP] Запрос обработан")
		}
	})
}
