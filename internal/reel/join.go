package reel

import (
	"context"

	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

// PosterLookup resolves a display poster URL for one TMDb movie id.
type PosterLookup func(ctx context.Context, movieID int64) (string, error)

const maxConcurrentLookups = 8

// AttachPosters decorates each review with a poster URL fetched from the
// metadata collaborator. The join settles every lookup: output keeps the
// input length and order, a failed lookup marks only its own record with
// the placeholder, and one record's failure neither drops siblings nor
// shortcuts completion. Lookups are one-per-review, not deduplicated by
// movie id.
func AttachPosters(ctx context.Context, reviews []Review, lookup PosterLookup, log *zap.Logger) []Review {
	out := copyReviews(reviews)
	if lookup == nil {
		return out
	}

	// Workers always return nil so one failure cannot cancel the group.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i := range out {
		g.Go(func() error {
			url, err := lookup(gctx, out[i].MovieID)
			if err != nil {
				log.Debug("Poster lookup failed",
					zap.Int64("movie_id", out[i].MovieID),
					zap.Error(err),
				)
				out[i].PosterURL = PosterPlaceholder
				return nil
			}
			if url == "" {
				out[i].PosterURL = PosterPlaceholder
				return nil
			}
			out[i].PosterURL = url
			return nil
		})
	}

	// Err is always nil; Wait is the settle point.
	_ = g.Wait()

	return out
}
