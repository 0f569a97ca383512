package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID. An incoming value is reused,
// otherwise a new UUID is generated.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an ID and logs its outcome once the
// handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"size", humanize.Bytes(uint64(ww.BytesWritten())),
			"duration", time.Since(start),
		)
	})
}
