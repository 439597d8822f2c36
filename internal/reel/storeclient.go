package reel

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Operation default messages, used when the remote error body carries no
// message of its own.
const (
	msgCreateFailed = "Failed to create review"
	msgUpdateFailed = "Failed to update review"
	msgDeleteFailed = "Failed to delete review"
	msgListFailed   = "Failed to load reviews"
)

// StoreClient issues review mutations against the remote review store
// and normalizes every outcome. It owns no state beyond its wiring: all
// review state lives in the store and in the Cache.
type StoreClient struct {
	baseURL    string
	httpClient *http.Client
	sess       *SessionStore
	log        *zap.Logger
}

func NewStoreClient(baseURL string, sess *SessionStore, log *zap.Logger) *StoreClient {
	return &StoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		sess: sess,
		log:  log.With(zap.String("client", "reviewstore")),
	}
}

// Create submits a new review. Preconditions are checked before any
// request is issued; on success the server-assigned review is returned.
func (c *StoreClient) Create(ctx context.Context, nr NewReview) (*Review, error) {
	if _, _, ok := c.sess.Current(); !ok {
		return nil, newValidationError("you must be logged in to leave a review")
	}
	if nr.UserID == "" {
		return nil, newValidationError("user_id is required")
	}
	if nr.MovieID == 0 {
		return nil, newValidationError("movie_id is required")
	}
	if strings.TrimSpace(nr.Comment) == "" {
		return nil, newValidationError("comment is required")
	}
	if nr.Rating < 1 || nr.Rating > 5 {
		return nil, newValidationError("rating must be between 1 and 5")
	}

	body, status, err := c.do(ctx, http.MethodPost, "/api/reviews", nr, msgCreateFailed)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newFailure(errorMessage(body, msgCreateFailed))
	}

	var created Review
	if err := decodePayload(body, &created); err != nil {
		c.log.Error("Failed to decode created review", zap.Error(err))
		return nil, newFailure(msgCreateFailed)
	}

	c.log.Info("Review created",
		zap.String("review_id", created.ID),
		zap.Int64("movie_id", created.MovieID),
	)

	return &created, nil
}

// Update changes the comment and rating of an existing review. The call
// is idempotent per well-formed input but is not retried after a timeout
// of unknown outcome.
func (c *StoreClient) Update(ctx context.Context, reviewID string, p Patch) (*Review, error) {
	if _, _, ok := c.sess.Current(); !ok {
		return nil, newValidationError("you must be logged in to edit a review")
	}
	if reviewID == "" {
		return nil, newValidationError("review id is required")
	}
	if strings.TrimSpace(p.Comment) == "" {
		return nil, newValidationError("comment is required")
	}
	if p.Rating < 1 || p.Rating > 5 {
		return nil, newValidationError("rating must be between 1 and 5")
	}

	body, status, err := c.do(ctx, http.MethodPut, "/api/reviews/"+reviewID, p, msgUpdateFailed)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newFailure(errorMessage(body, msgUpdateFailed))
	}

	var updated Review
	if err := decodePayload(body, &updated); err != nil {
		c.log.Error("Failed to decode updated review", zap.Error(err))
		return nil, newFailure(msgUpdateFailed)
	}

	return &updated, nil
}

// Delete removes a review. A remote 404 means the review is already
// gone; deleting something already deleted is a no-op success.
func (c *StoreClient) Delete(ctx context.Context, reviewID string) error {
	if _, _, ok := c.sess.Current(); !ok {
		return newValidationError("you must be logged in to delete a review")
	}
	if reviewID == "" {
		return newValidationError("review id is required")
	}

	body, status, err := c.do(ctx, http.MethodDelete, "/api/reviews/"+reviewID, nil, msgDeleteFailed)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		c.log.Debug("Review already absent on delete", zap.String("review_id", reviewID))
		return nil
	}
	if status < 200 || status >= 300 {
		return newFailure(errorMessage(body, msgDeleteFailed))
	}

	return nil
}

// ListByUser fetches a user's reviews from the store.
func (c *StoreClient) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	if userID == "" {
		return nil, newValidationError("user id is required")
	}

	body, status, err := c.do(ctx, http.MethodGet, "/api/users/"+userID+"/reviews", nil, msgListFailed)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newFailure(errorMessage(body, msgListFailed))
	}

	var reviews []Review
	if err := decodePayload(body, &reviews); err != nil {
		c.log.Error("Failed to decode review list", zap.Error(err))
		return nil, newFailure(msgListFailed)
	}

	return reviews, nil
}

// do performs one request with the session bearer token attached.
func (c *StoreClient) do(ctx context.Context, method, path string, payload any, defaultMsg string) ([]byte, int, error) {
	var headers map[string]string
	if _, token, ok := c.sess.Current(); ok && token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}

	body, status, err := doJSON(ctx, c.httpClient, method, c.baseURL+path, payload, headers, defaultMsg)
	if err != nil {
		c.log.Warn("Review store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return body, status, err
}

// doJSON performs one request and absorbs transport errors into the
// operation default message. It never retries: the outcome of a timed
// out mutation is unknown and must surface as a failure.
func doJSON(ctx context.Context, client *http.Client, method, url string, payload any, headers map[string]string, defaultMsg string) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, newFailure(defaultMsg)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, newFailure(defaultMsg)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, newFailure(defaultMsg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, newFailure(defaultMsg)
	}

	return body, resp.StatusCode, nil
}

// apiEnvelope covers both response shapes the client may meet: the
// server's {status, message, data} envelope and a bare {error} body.
type apiEnvelope struct {
	Status  *bool           `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func errorMessage(body []byte, defaultMsg string) string {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return defaultMsg
	}
	if env.Error != "" {
		return env.Error
	}
	if env.Message != "" {
		return env.Message
	}
	return defaultMsg
}

func decodePayload(body []byte, out any) error {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}
