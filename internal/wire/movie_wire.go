package wire

import (
	"reeltalk/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - Browse the catalog (search, filter, sort)
	r.Get("/api/movies", movieHandler.Browse)

	// GET /api/movies/{id} - Film spotlight with reviews
	r.Get("/api/movies/{id}", movieHandler.Spotlight)

	// GET /api/movies/{id}/trailer - First YouTube trailer
	r.Get("/api/movies/{id}/trailer", movieHandler.Trailer)
}
