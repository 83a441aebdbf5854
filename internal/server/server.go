// package server contains the middleware & handlers for the reference task backend
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, CORS and metrics.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the task backend.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// ShutdownTimeout bounds how long [Serve] waits for in-flight requests once ctx is done.
const ShutdownTimeout = 5 * time.Second

// New builds the backend's router: the task endpoint on "/", plus "/health" and "/metrics".
func New(store TaskStore, metrics *Metrics, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	r := NewBasicRouter()
	r.Use(RequestID(), Logging(logger), Recoverer(), metrics.Middleware(), CORS())

	r.Handler(NewTaskHandler(store, metrics, logger))
	r.Handle(http.MethodGet, "/health", HealthHandler(store, metrics))
	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// Serve runs h on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
