package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"reeltalk/internal/data/entity"
	"reeltalk/internal/dto/request"
	"reeltalk/internal/tmdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateReview(t *testing.T) {
	userID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByUserAndMovie", mock.Anything, userID, int64(603)).Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Review) bool {
		return r.UserID == userID && r.MovieID == 603 && r.Rating == 5
	})).Return(nil)

	meta := new(mockMetadata)
	meta.On("MovieDetails", mock.Anything, int64(603)).Return(&tmdb.Movie{ID: 603, Title: "The Matrix"}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), meta, zap.NewNop())

	resp, err := svc.CreateReview(context.Background(), userID.String(), &request.CreateReviewRequest{
		MovieID: 603,
		Rating:  5,
		Comment: "great",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(603), resp.MovieID)
	assert.Equal(t, "The Matrix", resp.MovieTitle)
	assert.NotEmpty(t, resp.ID)

	reviewRepo.AssertExpectations(t)
}

func TestCreateReviewDuplicate(t *testing.T) {
	userID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByUserAndMovie", mock.Anything, userID, int64(603)).Return(&entity.Review{
		UserID:  userID,
		MovieID: 603,
	}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	_, err := svc.CreateReview(context.Background(), userID.String(), &request.CreateReviewRequest{
		MovieID: 603,
		Rating:  5,
		Comment: "great",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")

	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReviewValidation(t *testing.T) {
	userID := uuid.New()
	svc := NewReviewService(newMockRepository(nil, nil, new(mockReviewRepo)), new(mockMetadata), zap.NewNop())

	tests := []struct {
		name string
		req  request.CreateReviewRequest
	}{
		{"missing movie id", request.CreateReviewRequest{Rating: 5, Comment: "great"}},
		{"rating too low", request.CreateReviewRequest{MovieID: 603, Rating: 0, Comment: "great"}},
		{"rating too high", request.CreateReviewRequest{MovieID: 603, Rating: 6, Comment: "great"}},
		{"missing comment", request.CreateReviewRequest{MovieID: 603, Rating: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), userID.String(), &tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestUpdateReviewOwnerCheck(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	reviewID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByID", mock.Anything, reviewID).Return(&entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID},
		UserID:     owner,
		MovieID:    603,
		Rating:     5,
		Comment:    "great",
	}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	rating := 1
	comment := "actually bad"
	_, err := svc.UpdateReview(context.Background(), intruder.String(), reviewID.String(), &request.UpdateReviewRequest{
		Rating:  &rating,
		Comment: &comment,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateReviewNotFound(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByID", mock.Anything, reviewID).Return(nil, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	rating := 3
	_, err := svc.UpdateReview(context.Background(), userID.String(), reviewID.String(), &request.UpdateReviewRequest{
		Rating: &rating,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateReviewPartialPatch(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByID", mock.Anything, reviewID).Return(&entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID, CreatedAt: time.Now()},
		UserID:     userID,
		MovieID:    603,
		Rating:     5,
		Comment:    "great",
	}, nil)
	reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *entity.Review) bool {
		// Only the rating changed
		return r.Rating == 3 && r.Comment == "great"
	})).Return(nil)

	meta := new(mockMetadata)
	meta.On("MovieDetails", mock.Anything, int64(603)).Return(&tmdb.Movie{Title: "The Matrix"}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), meta, zap.NewNop())

	rating := 3
	resp, err := svc.UpdateReview(context.Background(), userID.String(), reviewID.String(), &request.UpdateReviewRequest{
		Rating: &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Rating)
	assert.Equal(t, "great", resp.Comment)

	reviewRepo.AssertExpectations(t)
}

func TestDeleteReviewOwnerCheck(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	reviewID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByID", mock.Anything, reviewID).Return(&entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID},
		UserID:     owner,
	}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	err := svc.DeleteReview(context.Background(), intruder.String(), reviewID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReviewNotFound(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByID", mock.Anything, reviewID).Return(nil, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	err := svc.DeleteReview(context.Background(), userID.String(), reviewID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUserReviewsTitleJoin(t *testing.T) {
	userID := uuid.New()

	reviews := []*entity.Review{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, MovieID: 603, Rating: 5, Comment: "great"},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, MovieID: 27205, Rating: 4, Comment: "solid"},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, MovieID: 550, Rating: 5, Comment: "wild"},
	}

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByUserID", mock.Anything, userID).Return(reviews, nil)

	// The middle lookup fails; its entry degrades to "Unknown" while
	// the rest resolve normally.
	meta := new(mockMetadata)
	meta.On("MovieDetails", mock.Anything, int64(603)).Return(&tmdb.Movie{Title: "The Matrix"}, nil)
	meta.On("MovieDetails", mock.Anything, int64(27205)).Return(nil, errors.New("tmdb down"))
	meta.On("MovieDetails", mock.Anything, int64(550)).Return(&tmdb.Movie{Title: "Fight Club"}, nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), meta, zap.NewNop())

	got, err := svc.GetUserReviews(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "The Matrix", got[0].MovieTitle)
	assert.Equal(t, "Unknown", got[1].MovieTitle)
	assert.Equal(t, "Fight Club", got[2].MovieTitle)

	// Order follows the repository result
	assert.Equal(t, int64(603), got[0].MovieID)
	assert.Equal(t, int64(27205), got[1].MovieID)
	assert.Equal(t, int64(550), got[2].MovieID)
}

func TestGetMovieReviewStats(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("GetMovieReviewStats", mock.Anything, int64(603)).Return(4.5, int64(12), nil)

	svc := NewReviewService(newMockRepository(nil, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	stats, err := svc.GetMovieReviewStats(context.Background(), 603)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
	assert.Equal(t, int64(12), stats.ReviewCount)
}

func TestGetMovieReviewsPaginated(t *testing.T) {
	userID := uuid.New()
	reviews := []*entity.Review{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, MovieID: 603, Rating: 5, Comment: "great"},
	}

	reviewRepo := new(mockReviewRepo)
	reviewRepo.On("FindByMovieID", mock.Anything, int64(603), 10, 0).Return(reviews, nil)
	reviewRepo.On("CountByMovieID", mock.Anything, int64(603)).Return(int64(25), nil)

	userRepo := new(mockUserRepo)
	userRepo.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:     entity.Base{ID: userID},
		Username: "alice",
	}, nil)

	svc := NewReviewService(newMockRepository(userRepo, nil, reviewRepo), new(mockMetadata), zap.NewNop())

	page, err := svc.GetMovieReviews(context.Background(), 603, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice", page.Data[0].Username)
	assert.Equal(t, int64(25), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}
