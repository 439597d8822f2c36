package reel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreClientCreateValidation(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	tests := []struct {
		name string
		nr   NewReview
	}{
		{
			name: "missing user id",
			nr:   NewReview{MovieID: 603, Comment: "great", Rating: 5},
		},
		{
			name: "missing movie id",
			nr:   NewReview{UserID: "user-1", Comment: "great", Rating: 5},
		},
		{
			name: "blank comment",
			nr:   NewReview{UserID: "user-1", MovieID: 603, Comment: "   ", Rating: 5},
		},
		{
			name: "rating too low",
			nr:   NewReview{UserID: "user-1", MovieID: 603, Comment: "great", Rating: 0},
		},
		{
			name: "rating too high",
			nr:   NewReview{UserID: "user-1", MovieID: 603, Comment: "great", Rating: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Create(context.Background(), tt.nr)
			require.Error(t, err)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	// No malformed input ever reached the wire
	assert.Equal(t, int64(0), requests.Load())
}

func TestStoreClientCreateRequiresSession(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "")

	client := NewStoreClient("http://127.0.0.1:0", sess, zap.NewNop())

	_, err := client.Create(context.Background(), NewReview{
		UserID:  "user-1",
		MovieID: 603,
		Comment: "great",
		Rating:  5,
	})
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStoreClientCreateSuccess(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reviews", r.URL.Path)
		assert.Equal(t, "Bearer token-user-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"status": true,
			"message": "success",
			"data": {
				"id": "rev-1",
				"user_id": "user-1",
				"movie_id": 603,
				"movie_title": "The Matrix",
				"rating": 5,
				"comment": "great"
			}
		}`))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	created, err := client.Create(context.Background(), NewReview{
		UserID:  "user-1",
		MovieID: 603,
		Comment: "great",
		Rating:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, "rev-1", created.ID)
	assert.Equal(t, "The Matrix", created.MovieTitle)
	assert.Equal(t, int64(603), created.MovieID)
	assert.Equal(t, 5, created.Rating)
}

func TestStoreClientCreateServerMessage(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "user already reviewed this movie"}`))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	_, err := client.Create(context.Background(), NewReview{
		UserID:  "user-1",
		MovieID: 603,
		Comment: "great",
		Rating:  5,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "user already reviewed this movie")
}

func TestStoreClientCreateDefaultMessage(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	// Nothing listens here, so the transport fails
	client := NewStoreClient("http://127.0.0.1:1", sess, zap.NewNop())

	_, err := client.Create(context.Background(), NewReview{
		UserID:  "user-1",
		MovieID: 603,
		Comment: "great",
		Rating:  5,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Failed to create review")

	var failure *Failure
	assert.ErrorAs(t, err, &failure)
}

func TestStoreClientUpdateBodylessError(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	_, err := client.Update(context.Background(), "rev-1", Patch{Comment: "fine", Rating: 3})
	require.Error(t, err)
	assert.EqualError(t, err, "Failed to update review")
}

func TestStoreClientUpdateSuccess(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/reviews/rev-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "success",
			"data": {"id": "rev-1", "user_id": "user-1", "movie_id": 603, "rating": 3, "comment": "fine"}
		}`))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	updated, err := client.Update(context.Background(), "rev-1", Patch{Comment: "fine", Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, "fine", updated.Comment)
	assert.Equal(t, 3, updated.Rating)
}

func TestStoreClientDeleteNotFoundIsSuccess(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "review rev-1 not found"}`))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	// Deleting something already gone settles as success
	err := client.Delete(context.Background(), "rev-1")
	assert.NoError(t, err)
}

func TestStoreClientDeleteFailure(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	err := client.Delete(context.Background(), "rev-1")
	require.Error(t, err)
	assert.EqualError(t, err, "Failed to delete review")
}

func TestStoreClientListByUser(t *testing.T) {
	db := newTestDB(t)
	sess := newTestSession(t, db, "user-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/user-1/reviews", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "success",
			"data": [
				{"id": "rev-1", "user_id": "user-1", "movie_id": 603, "movie_title": "The Matrix", "rating": 5, "comment": "great"},
				{"id": "rev-2", "user_id": "user-1", "movie_id": 27205, "movie_title": "Inception", "rating": 4, "comment": "solid"}
			]
		}`))
	}))
	defer server.Close()

	client := NewStoreClient(server.URL, sess, zap.NewNop())

	reviews, err := client.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "rev-1", reviews[0].ID)
	assert.Equal(t, "Inception", reviews[1].MovieTitle)
}
