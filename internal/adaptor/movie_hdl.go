package adaptor

import (
	"net/http"
	"strings"

	"reeltalk/internal/dto/request"
	"reeltalk/internal/usecase"
	"reeltalk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// Browse handles GET /api/movies (public)
func (h *MovieHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.BrowseMoviesRequest{
		Query:     query.Get("query"),
		Year:      query.Get("year"),
		MinRating: utils.ParseFloat(query.Get("min_rating"), 0),
		Sort:      query.Get("sort"),
	}

	movies, err := h.service.Browse(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "browse movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// Spotlight handles GET /api/movies/{id} (public)
func (h *MovieHandler) Spotlight(w http.ResponseWriter, r *http.Request) {
	movieID := utils.ParseInt64(chi.URLParam(r, "id"))
	if movieID <= 0 {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	spotlight, err := h.service.Spotlight(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie spotlight")
		return
	}

	utils.ResponseSuccess(w, "success", spotlight)
}

// Trailer handles GET /api/movies/{id}/trailer (public)
func (h *MovieHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	movieID := utils.ParseInt64(chi.URLParam(r, "id"))
	if movieID <= 0 {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	trailer, err := h.service.Trailer(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie trailer")
		return
	}

	utils.ResponseSuccess(w, "success", trailer)
}

// handleServiceError maps movie service errors to HTTP responses
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
