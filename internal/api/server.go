package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	accountapi "github.com/malithjkd/ai-project-manager/internal/api/account"
	"github.com/malithjkd/ai-project-manager/internal/api/docs"
	ideationapi "github.com/malithjkd/ai-project-manager/internal/api/ideation"
	"github.com/malithjkd/ai-project-manager/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(ideationHandler *ideationapi.Handler, accountHandler *accountapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	ideationapi.RegisterRoutes(r, ideationHandler)
	accountapi.RegisterRoutes(r, accountHandler)

	return r
}
