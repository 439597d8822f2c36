package usecase

import (
	"context"
	"fmt"
	"time"

	"reeltalk/internal/data/entity"
	"reeltalk/internal/data/repository"
	"reeltalk/internal/dto/request"
	"reeltalk/internal/dto/response"
	"reeltalk/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxTitleLookups bounds the concurrent metadata calls when listing
// a user's reviews.
const maxTitleLookups = 8

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID string) error
	GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetMovieReviewStats(ctx context.Context, movieID int64) (*response.MovieReviewStats, error)
}

type reviewService struct {
	repo *repository.Repository
	meta MetadataSource
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, meta MetadataSource, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		meta: meta,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("CreateReview validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// One review per user per film
	existing, err := s.repo.Review.FindByUserAndMovie(ctx, uid, req.MovieID)
	if err != nil {
		s.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("movie_id", req.MovieID))
		return nil, fmt.Errorf("failed to check existing review")
	}
	if existing != nil {
		return nil, fmt.Errorf("user already reviewed this movie")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  uid,
		MovieID: req.MovieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("movie_id", req.MovieID))
		return nil, fmt.Errorf("failed to create review")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.Int64("movie_id", req.MovieID),
		zap.Int("rating", req.Rating))

	resp := response.ReviewToResponse(review, "", s.movieTitle(ctx, review.MovieID))
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format")
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("UpdateReview validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to find review")
	}
	if review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	if review.UserID != uid {
		s.log.Warn("User tried to update another user's review",
			zap.String("user_id", userID),
			zap.String("review_id", reviewID))
		return nil, fmt.Errorf("unauthorized to modify this review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to update review")
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID))

	resp := response.ReviewToResponse(review, "", s.movieTitle(ctx, review.MovieID))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format")
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format")
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("failed to find review")
	}
	if review == nil {
		return fmt.Errorf("review %s not found", reviewID)
	}

	if review.UserID != uid {
		s.log.Warn("User tried to delete another user's review",
			zap.String("user_id", userID),
			zap.String("review_id", reviewID))
		return fmt.Errorf("unauthorized to modify this review")
	}

	if err := s.repo.Review.Delete(ctx, rid); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return err
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID))

	return nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format")
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, uid)
	if err != nil {
		s.log.Error("Failed to find reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to find reviews")
	}

	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = response.ReviewToResponse(review, "", "")
	}

	// Title lookups run concurrently and settle individually; a failed
	// lookup leaves "Unknown" on that entry and never fails the list.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxTitleLookups)
	for i := range out {
		i := i
		g.Go(func() error {
			movie, err := s.meta.MovieDetails(gctx, out[i].MovieID)
			if err != nil || movie == nil || movie.Title == "" {
				if err != nil {
					s.log.Warn("Title lookup failed",
						zap.Error(err),
						zap.Int64("movie_id", out[i].MovieID))
				}
				out[i].MovieTitle = "Unknown"
				return nil
			}
			out[i].MovieTitle = movie.Title
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("invalid movie ID")
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to find reviews by movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("failed to find reviews")
	}

	total, err := s.repo.Review.CountByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("failed to count reviews")
	}

	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = response.ReviewToResponse(review, s.username(ctx, review.UserID), "")
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID int64) (*response.MovieReviewStats, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("invalid movie ID")
	}

	avg, count, err := s.repo.Review.GetMovieReviewStats(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get review stats", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("failed to get review stats")
	}

	return &response.MovieReviewStats{
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) movieTitle(ctx context.Context, movieID int64) string {
	movie, err := s.meta.MovieDetails(ctx, movieID)
	if err != nil || movie == nil || movie.Title == "" {
		return "Unknown"
	}
	return movie.Title
}

func (s *reviewService) username(ctx context.Context, userID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
