package wire

import (
	"reeltalk/internal/adaptor"
	"reeltalk/internal/data/repository"
	"reeltalk/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies/{id}/reviews - View movie reviews (paginated)
	r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)

	// GET /api/movies/{id}/review-stats - View rating statistics
	r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/reviews - Create new review
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// PUT /api/reviews/{id} - Update review (owner only)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - Delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)

		// GET /api/users/{id}/reviews - A user's reel with film titles
		r.Get("/api/users/{id}/reviews", reviewHandler.GetUserReviews)
	})
}
