package usecase

import (
	"context"

	"reeltalk/internal/data/entity"
	"reeltalk/internal/data/repository"
	"reeltalk/internal/tmdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if s := args.Get(0); s != nil {
		return s.(*entity.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entity.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) FindByMovieID(ctx context.Context, movieID int64, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(ctx, movieID, limit, offset)
	if r := args.Get(0); r != nil {
		return r.([]*entity.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*entity.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error) {
	args := m.Called(ctx, userID, movieID)
	if r := args.Get(0); r != nil {
		return r.(*entity.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) CountByMovieID(ctx context.Context, movieID int64) (int64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepo) GetMovieReviewStats(ctx context.Context, movieID int64) (float64, int64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type mockMetadata struct {
	mock.Mock
}

func (m *mockMetadata) MovieDetails(ctx context.Context, movieID int64) (*tmdb.Movie, error) {
	args := m.Called(ctx, movieID)
	if mv := args.Get(0); mv != nil {
		return mv.(*tmdb.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetadata) TopCast(ctx context.Context, movieID int64, n int) ([]string, error) {
	args := m.Called(ctx, movieID, n)
	if c := args.Get(0); c != nil {
		return c.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetadata) Trailer(ctx context.Context, movieID int64) (*tmdb.Video, error) {
	args := m.Called(ctx, movieID)
	if v := args.Get(0); v != nil {
		return v.(*tmdb.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetadata) SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error) {
	args := m.Called(ctx, query)
	if mv := args.Get(0); mv != nil {
		return mv.([]tmdb.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetadata) PopularMovies(ctx context.Context) ([]tmdb.Movie, error) {
	args := m.Called(ctx)
	if mv := args.Get(0); mv != nil {
		return mv.([]tmdb.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetadata) PosterURL(posterPath string) string {
	args := m.Called(posterPath)
	return args.String(0)
}

func newMockRepository(user *mockUserRepo, session *mockSessionRepo, review *mockReviewRepo) *repository.Repository {
	return &repository.Repository{
		User:    user,
		Session: session,
		Review:  review,
	}
}
