package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/logging"
)

const traceHeader = "X-Trace-ID"

// LoggerMiddleware logs every request with a trace id and stores a logger
// carrying that id in the request context. A valid incoming X-Trace-ID is
// reused, anything else is replaced by a fresh UUID.
func LoggerMiddleware(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}

			reqLogger := logger.WithFields(logging.Fields{"trace_id": traceID})
			httpLogger := reqLogger.WithFields(logging.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set(traceHeader, traceID)
			start := time.Now()

			httpLogger.Debug("request started", nil)
			next.ServeHTTP(ww, r.WithContext(logging.ContextWithLogger(r.Context(), reqLogger)))

			httpLogger.Info("request finished", logging.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(start).Milliseconds(),
			})
		})
	}
}
