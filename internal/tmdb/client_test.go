package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reeltalk/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *Client {
	return NewClient(utils.TMDBConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
		TimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"overview": "A computer hacker learns about the true nature of reality.",
			"poster_path": "/matrix.jpg",
			"release_date": "1999-03-30",
			"vote_average": 8.2
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	movie, err := client.MovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "/matrix.jpg", movie.PosterPath)
	assert.Equal(t, "1999", movie.Year())
	assert.InDelta(t, 8.2, movie.VoteAverage, 0.001)
}

func TestMovieDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.MovieDetails(context.Background(), 999999)
	assert.Error(t, err)
}

func TestPosterURL(t *testing.T) {
	client := newTestClient("http://unused")

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", client.PosterURL("/matrix.jpg"))
	assert.Equal(t, "", client.PosterURL(""))
}

func TestTopCast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603/credits", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cast": [
				{"name": "Keanu Reeves"},
				{"name": "Laurence Fishburne"},
				{"name": ""},
				{"name": "Carrie-Anne Moss"},
				{"name": "Hugo Weaving"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	cast, err := client.TopCast(context.Background(), 603, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss"}, cast)
}

func TestTopCastEmptyCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cast": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	cast, err := client.TopCast(context.Background(), 603, 3)
	require.NoError(t, err)
	assert.Empty(t, cast)
}

func TestTrailerPicksFirstYouTubeTrailer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"key": "teaser1", "site": "YouTube", "type": "Teaser", "name": "Teaser"},
				{"key": "vimeo1", "site": "Vimeo", "type": "Trailer", "name": "Vimeo Trailer"},
				{"key": "trailer1", "site": "YouTube", "type": "Trailer", "name": "Official Trailer"},
				{"key": "trailer2", "site": "YouTube", "type": "Trailer", "name": "Second Trailer"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	video, err := client.Trailer(context.Background(), 603)
	require.NoError(t, err)
	require.NotNil(t, video)
	assert.Equal(t, "trailer1", video.Key)
	assert.Equal(t, "Official Trailer", video.Name)
}

func TestTrailerNoneAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"key": "x", "site": "Vimeo", "type": "Trailer", "name": "nope"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	video, err := client.Trailer(context.Background(), 603)
	require.NoError(t, err)
	assert.Nil(t, video)
}

func TestSearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "the matrix", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "vote_average": 8.2},
				{"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "vote_average": 7.0}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	movies, err := client.SearchMovies(context.Background(), "the matrix")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "The Matrix Reloaded", movies[1].Title)
}

func TestPopularMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"id": 603, "title": "The Matrix"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	movies, err := client.PopularMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// Trip threshold is 60% failures over at least 10 requests
	for i := 0; i < 12; i++ {
		client.MovieDetails(context.Background(), 603)
	}

	_, err := client.MovieDetails(context.Background(), 603)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMovieYear(t *testing.T) {
	m := &Movie{ReleaseDate: "1999-03-30"}
	assert.Equal(t, "1999", m.Year())

	m = &Movie{ReleaseDate: ""}
	assert.Equal(t, "", m.Year())
}
