package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/services"
	"github.com/desertthunder/tareas/internal/shared"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// wrap returns w as a [middleware.WrapResponseWriter], reusing one installed by an outer middleware.
func wrap(w http.ResponseWriter, r *http.Request) middleware.WrapResponseWriter {
	if ww, ok := w.(middleware.WrapResponseWriter); ok {
		return ww
	}
	return middleware.NewWrapResponseWriter(w, r.ProtoMajor)
}

// status reports the written status, counting a handler that never wrote as 200.
func status(ww middleware.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}

// RequestID stores the client's X-Request-ID in the request context and echoes it on the response.
//
// Requests without one get a fresh uuid, matching what the client sends.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(services.RequestIDHeader, middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r)
		})
		withID := middleware.RequestID(echo)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(middleware.RequestIDHeader) == "" {
				r.Header.Set(middleware.RequestIDHeader, shared.GenerateID())
			}
			withID.ServeHTTP(w, r)
		})
	}
}

// Recoverer turns a handler panic into a 500 and logs the stack.
func Recoverer() Middleware {
	return middleware.Recoverer
}

// Logging writes one line per request with method, path, status and duration.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := wrap(w, r)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status(ww),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// CORS allows browser clients on any origin and answers preflight requests.
func CORS() Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", services.RequestIDHeader},
		ExposedHeaders: []string{services.RequestIDHeader},
		MaxAge:         300,
	})
}
