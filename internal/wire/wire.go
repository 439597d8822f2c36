// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"reeltalk/internal/adaptor"
	"reeltalk/internal/data/repository"
	"reeltalk/internal/usecase"
	"reeltalk/pkg/middleware"
	"reeltalk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, meta usecase.MetadataSource, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, meta, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireMovie(r, handler.Movie)
	wireReview(r, handler.Review, repo, logger)

	startedAt := time.Now()

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Server is up", map[string]any{
			"app":    config.App.Name,
			"uptime": time.Since(startedAt).String(),
		})
	})

	return r
}
