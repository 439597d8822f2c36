package usecase

import (
	"context"

	"reeltalk/internal/data/repository"
	"reeltalk/internal/tmdb"
	"reeltalk/pkg/utils"

	"go.uber.org/zap"
)

// MetadataSource is the film-metadata collaborator (TMDb in production).
// Services treat it as best effort: a failed lookup degrades to
// placeholders and never fails the surrounding operation.
type MetadataSource interface {
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.Movie, error)
	TopCast(ctx context.Context, movieID int64, n int) ([]string, error)
	Trailer(ctx context.Context, movieID int64) (*tmdb.Video, error)
	SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error)
	PopularMovies(ctx context.Context) ([]tmdb.Movie, error)
	PosterURL(posterPath string) string
}

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, meta MetadataSource, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, log),
		Movie:  NewMovieService(repo, meta, log),
		Review: NewReviewService(repo, meta, log),
	}
}
