package core

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"courtnotify/internal/types"
)

// defaultRequestTimeout is the soft deadline applied to request contexts.
// Sends that involve workbook generation and payload downloads can take a
// while, so this is generous compared to a typical CRUD API.
const defaultRequestTimeout = 60 * time.Second

// defaultRedactedHeaders lists header names whose values are masked in
// request logs to prevent accidental leakage of credentials.
var defaultRedactedHeaders = []string{
	"Authorization",
	"Cookie",
}

// MountRoutes defines the top-level routing hierarchy.
// It registers the global middleware chain, the notification route group,
// and the health check.
func (s *Server) MountRoutes() {
	// Global middleware registration (strict order matters):
	//  1. Recoverer       - outermost, catches all panics.
	//  2. ContextTimeout  - soft deadline on the request context.
	//  3. RequestID       - correlation ID for tracing.
	//  4. SecurityHeaders - present on every response, including errors.
	//  5. RequestLogger   - structured logging with redacted headers.
	s.router.Use(s.Recoverer)
	s.router.Use(ContextTimeoutMiddleware(defaultRequestTimeout))
	s.router.Use(RequestIDMiddleware)
	s.router.Use(SecurityHeadersMiddleware)
	s.router.Use(RequestLogger(s.Logger, defaultRedactedHeaders))

	s.router.Route("/notify", s.mountNotify)

	s.router.Get("/health", s.HandleHealth)
}

// mountNotify registers the notification endpoints. Handler routes are
// registered via RouteRegistrars, populated by the application entry point.
func (s *Server) mountNotify(r chi.Router) {
	for _, registrar := range s.RouteRegistrars {
		registrar(r)
	}
}

// ContextTimeoutMiddleware sets a deadline on the request context so
// downstream provider calls cannot hang a request indefinitely.
func ContextTimeoutMiddleware(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware generates or propagates a unique request ID for
// correlation across logs and provider calls. If the incoming request
// carries an X-Request-Id header, that value is reused; otherwise a new
// UUID is generated.
//
// The request ID is stored in the context via types.WithRequestID and set
// as the X-Request-Id response header for client correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := types.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
