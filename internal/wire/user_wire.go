package wire

import (
	"reeltalk/internal/adaptor"
	"reeltalk/internal/data/repository"
	"reeltalk/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/users/{id} - View a user profile
		r.Get("/api/users/{id}", userHandler.GetUser)

		// PUT /api/users/{id} - Update own profile
		r.Put("/api/users/{id}", userHandler.UpdateUser)
	})
}
