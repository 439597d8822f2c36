package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"reeltalk/internal/data/repository"
	"reeltalk/internal/dto/request"
	"reeltalk/internal/dto/response"
	"reeltalk/internal/tmdb"
	"reeltalk/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// topCastSize is how many cast names the catalog shows per film.
	topCastSize = 3

	// spotlightReviewLimit caps the reviews embedded in a spotlight page.
	spotlightReviewLimit = 50
)

type MovieService interface {
	Spotlight(ctx context.Context, movieID int64) (*response.SpotlightResponse, error)
	Browse(ctx context.Context, req *request.BrowseMoviesRequest) ([]response.MovieResponse, error)
	Trailer(ctx context.Context, movieID int64) (*response.TrailerResponse, error)
}

type movieService struct {
	repo *repository.Repository
	meta MetadataSource
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, meta MetadataSource, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		meta: meta,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Spotlight(ctx context.Context, movieID int64) (*response.SpotlightResponse, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("invalid movie ID")
	}

	movie, err := s.meta.MovieDetails(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to fetch movie details", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("movie %d not found", movieID)
	}

	resp := &response.SpotlightResponse{
		Movie:   s.toMovieResponse(movie),
		Reviews: []response.ReviewResponse{},
	}

	// Cast is decorative; a failed lookup leaves the list empty.
	cast, err := s.meta.TopCast(ctx, movieID, topCastSize)
	if err != nil {
		s.log.Warn("Failed to fetch cast", zap.Error(err), zap.Int64("movie_id", movieID))
	} else {
		resp.Movie.TopCast = cast
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID, spotlightReviewLimit, 0)
	if err != nil {
		s.log.Error("Failed to fetch reviews for spotlight",
			zap.Error(err),
			zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("failed to find reviews")
	}

	for _, review := range reviews {
		username := ""
		if user, err := s.repo.User.FindByID(ctx, review.UserID); err == nil && user != nil {
			username = user.Username
		}
		resp.Reviews = append(resp.Reviews, response.ReviewToResponse(review, username, movie.Title))
	}

	return resp, nil
}

func (s *movieService) Browse(ctx context.Context, req *request.BrowseMoviesRequest) ([]response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Browse validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var (
		movies []tmdb.Movie
		err    error
	)

	query := strings.TrimSpace(req.Query)
	if query != "" {
		movies, err = s.meta.SearchMovies(ctx, query)
	} else {
		movies, err = s.meta.PopularMovies(ctx)
	}
	if err != nil {
		s.log.Error("Failed to fetch catalog", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("failed to load movies")
	}

	movies = filterMovies(movies, req)

	out := make([]response.MovieResponse, len(movies))
	for i := range movies {
		out[i] = s.toMovieResponse(&movies[i])
	}

	// Cast lookups fan out and settle individually; a failure just
	// leaves that film without cast names.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxTitleLookups)
	for i := range out {
		i := i
		g.Go(func() error {
			cast, err := s.meta.TopCast(gctx, out[i].ID, topCastSize)
			if err != nil {
				return nil
			}
			out[i].TopCast = cast
			return nil
		})
	}
	_ = g.Wait()

	sortMovies(out, req.Sort)

	return out, nil
}

func (s *movieService) Trailer(ctx context.Context, movieID int64) (*response.TrailerResponse, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("invalid movie ID")
	}

	video, err := s.meta.Trailer(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to fetch trailer", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("failed to load trailer")
	}
	if video == nil {
		return nil, fmt.Errorf("trailer for movie %d not found", movieID)
	}

	return &response.TrailerResponse{
		Key:  video.Key,
		Site: video.Site,
		Name: video.Name,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *movieService) toMovieResponse(movie *tmdb.Movie) response.MovieResponse {
	return response.MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		PosterURL:   s.meta.PosterURL(movie.PosterPath),
		Description: movie.Overview,
		Year:        movie.Year(),
		Rating:      movie.VoteAverage,
	}
}

func filterMovies(movies []tmdb.Movie, req *request.BrowseMoviesRequest) []tmdb.Movie {
	if req.Year == "" && req.MinRating <= 0 {
		return movies
	}

	filtered := movies[:0]
	for _, m := range movies {
		if req.Year != "" && m.Year() != req.Year {
			continue
		}
		if req.MinRating > 0 && m.VoteAverage < req.MinRating {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

func sortMovies(movies []response.MovieResponse, order string) {
	switch order {
	case "highest_rated":
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Rating > movies[j].Rating
		})
	case "a-z":
		sort.SliceStable(movies, func(i, j int) bool {
			return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
		})
	case "newest":
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Year > movies[j].Year
		})
	}
}
