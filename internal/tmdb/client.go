package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"reeltalk/pkg/utils"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrUnavailable is returned while the circuit breaker keeps TMDb calls open.
var ErrUnavailable = errors.New("tmdb temporarily unavailable")

// Client talks to the TMDb API. All calls are single-attempt and go
// through a circuit breaker so a flapping TMDb does not hang every
// review-list render behind repeated timeouts.
type Client struct {
	cfg        utils.TMDBConfig
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	log        *zap.Logger
}

func NewClient(cfg utils.TMDBConfig, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := log.With(zap.String("client", "tmdb"))

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb:  cb,
		log: logger,
	}
}

// PosterURL combines the configured image base URL with a TMDb poster
// path fragment. Empty fragment means no poster is available.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.cfg.ImageBaseURL + posterPath
}

// MovieDetails fetches title, overview, poster path and release date for one film.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Movie, error) {
	u := fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US", c.cfg.BaseURL, movieID, c.cfg.APIKey)

	var movie Movie
	if err := c.doGet(ctx, u, &movie); err != nil {
		return nil, fmt.Errorf("fetch movie details for %d: %w", movieID, err)
	}

	return &movie, nil
}

// TopCast returns up to n cast member names for a film. A film with no
// credits yields an empty slice, not an error.
func (c *Client) TopCast(ctx context.Context, movieID int64, n int) ([]string, error) {
	u := fmt.Sprintf("%s/movie/%d/credits?api_key=%s", c.cfg.BaseURL, movieID, c.cfg.APIKey)

	var credits creditsResponse
	if err := c.doGet(ctx, u, &credits); err != nil {
		return nil, fmt.Errorf("fetch credits for %d: %w", movieID, err)
	}

	names := make([]string, 0, n)
	for _, member := range credits.Cast {
		if len(names) == n {
			break
		}
		if member.Name != "" {
			names = append(names, member.Name)
		}
	}

	return names, nil
}

// Trailer returns the first YouTube trailer for a film, nil when none exists.
func (c *Client) Trailer(ctx context.Context, movieID int64) (*Video, error) {
	u := fmt.Sprintf("%s/movie/%d/videos?api_key=%s", c.cfg.BaseURL, movieID, c.cfg.APIKey)

	var videos videosResponse
	if err := c.doGet(ctx, u, &videos); err != nil {
		return nil, fmt.Errorf("fetch videos for %d: %w", movieID, err)
	}

	for _, v := range videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return &v, nil
		}
	}

	return nil, nil
}

// SearchMovies queries TMDb full-text movie search.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	u := fmt.Sprintf("%s/search/movie?api_key=%s&language=en-US&query=%s",
		c.cfg.BaseURL, c.cfg.APIKey, url.QueryEscape(query))

	var resp searchResponse
	if err := c.doGet(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("search movies %q: %w", query, err)
	}

	return resp.Results, nil
}

// PopularMovies returns the first page of TMDb popular movies.
func (c *Client) PopularMovies(ctx context.Context) ([]Movie, error) {
	u := fmt.Sprintf("%s/movie/popular?api_key=%s&language=en-US&page=1", c.cfg.BaseURL, c.cfg.APIKey)

	var resp searchResponse
	if err := c.doGet(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch popular movies: %w", err)
	}

	return resp.Results, nil
}

func (c *Client) doGet(ctx context.Context, url string, result any) error {
	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrUnavailable
		}
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal tmdb response: %w", err)
	}

	return nil
}
