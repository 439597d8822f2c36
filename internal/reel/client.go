package reel

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Client is the facade the UI talks to. It wires the store client, the
// local cache, the session slot and the poster join together, and keeps
// the contract that every mutation resolves to a definite success with
// updated data or a definite message-bearing failure — never a state
// where cache and store silently disagree.
type Client struct {
	store  *StoreClient
	cache  *Cache
	sess   *SessionStore
	auth   *Authenticator
	lookup PosterLookup
	log    *zap.Logger
}

func New(serverURL string, db *badger.DB, lookup PosterLookup, log *zap.Logger) *Client {
	sess := NewSessionStore(db, log)
	cache := NewCache(db, log)

	// Cached reviews must never survive a change of signed-in user.
	sess.OnIdentityChange(cache.InvalidateAll)

	return &Client{
		store:  NewStoreClient(serverURL, sess, log),
		cache:  cache,
		sess:   sess,
		auth:   NewAuthenticator(serverURL, log),
		lookup: lookup,
		log:    log.With(zap.String("component", "reel")),
	}
}

// Session exposes the session slot for callers that render identity.
func (c *Client) Session() *SessionStore {
	return c.sess
}

// Login authenticates and stores the identity in the durable slot.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	user, token, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := c.sess.Set(*user, token); err != nil {
		return nil, newFailure(msgLoginFailed)
	}

	return user, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	user, token, err := c.auth.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	if err := c.sess.Set(*user, token); err != nil {
		return nil, newFailure(msgSignupFailed)
	}

	return user, nil
}

// Logout clears the identity slot. The server-side revocation is best
// effort; a dead server must not trap the user in a session.
func (c *Client) Logout(ctx context.Context) error {
	if _, token, ok := c.sess.Current(); ok && token != "" {
		if err := c.auth.Logout(ctx, token); err != nil {
			c.log.Warn("Server-side logout failed", zap.Error(err))
		}
	}

	return c.sess.Clear()
}

// MyReel returns the signed-in user's reviews with posters attached.
// When a durable snapshot exists it is handed to onCached before the
// remote fetch, so the caller can render immediately and repaint once
// the authoritative list arrives.
func (c *Client) MyReel(ctx context.Context, onCached func([]Review)) ([]Review, error) {
	user, _, ok := c.sess.Current()
	if !ok {
		return nil, newValidationError("you must be logged in to view your reviews")
	}

	key := OwnerKeyUser(user.ID)

	if cached := c.cache.Load(key); len(cached) > 0 && onCached != nil {
		onCached(cached)
	}

	fresh, err := c.store.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	fresh = AttachPosters(ctx, fresh, c.lookup, c.log)

	if err := c.cache.ReplaceAll(key, fresh); err != nil {
		c.log.Error("Failed to persist review snapshot", zap.Error(err))
	}

	return fresh, nil
}

// CreateReview submits a review and, on confirmed success, appends the
// server-assigned record to the cached reel.
func (c *Client) CreateReview(ctx context.Context, movieID int64, comment string, rating int) (*Review, error) {
	user, _, ok := c.sess.Current()
	if !ok {
		return nil, newValidationError("you must be logged in to leave a review")
	}

	created, err := c.store.Create(ctx, NewReview{
		UserID:  user.ID,
		MovieID: movieID,
		Comment: comment,
		Rating:  rating,
	})
	if err != nil {
		return nil, err
	}

	key := OwnerKeyUser(user.ID)
	list := append(c.cache.Load(key), *created)
	if err := c.cache.ReplaceAll(key, list); err != nil {
		c.log.Error("Failed to cache created review", zap.Error(err))
	}

	return created, nil
}

// UpdateReview changes comment and rating. The cache is patched only
// after the store confirms.
func (c *Client) UpdateReview(ctx context.Context, reviewID, comment string, rating int) (*Review, error) {
	user, _, ok := c.sess.Current()
	if !ok {
		return nil, newValidationError("you must be logged in to edit a review")
	}

	updated, err := c.store.Update(ctx, reviewID, Patch{Comment: comment, Rating: rating})
	if err != nil {
		return nil, err
	}

	key := OwnerKeyUser(user.ID)
	patch := Patch{Comment: updated.Comment, Rating: updated.Rating}
	if err := c.cache.ApplyUpdate(key, reviewID, patch); err != nil {
		c.log.Error("Failed to cache updated review", zap.Error(err))
	}

	return updated, nil
}

// DeleteReview removes a review in two phases: the cached entry goes
// away immediately so the UI feels instant, then the removal is
// committed when the store confirms (a 404 counts as confirmation) or
// rolled back with a surfaced failure when it does not.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	user, _, ok := c.sess.Current()
	if !ok {
		return newValidationError("you must be logged in to delete a review")
	}

	key := OwnerKeyUser(user.ID)

	removed, pos, err := c.cache.ApplyDelete(key, reviewID)
	if err != nil {
		c.log.Error("Failed to stage review removal", zap.Error(err))
	}

	if err := c.store.Delete(ctx, reviewID); err != nil {
		if removed != nil {
			if restoreErr := c.cache.Restore(key, *removed, pos); restoreErr != nil {
				c.log.Error("Failed to roll back review removal",
					zap.String("review_id", reviewID),
					zap.Error(restoreErr),
				)
			}
		}
		return err
	}

	return nil
}
