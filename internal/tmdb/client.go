// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

var (
	// ErrDecode is wrapped when a 2xx response body is not valid JSON.
	ErrDecode = errors.New("tmdb: malformed response body")

	// ErrRateLimited is wrapped when the outbound limiter cannot grant a
	// token before the caller's deadline.
	ErrRateLimited = errors.New("tmdb: outbound rate limit")
)

// StatusError reports a non-2xx response from the metadata service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: unexpected status %d", e.StatusCode)
}

// NotFound reports whether the service answered 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Fetcher looks up the poster path of a movie. An empty path with a nil
// error means the movie exists but has no poster.
// Client and BreakerClient implement this interface.
type Fetcher interface {
	PosterPath(ctx context.Context, tmdbID int64) (string, error)
}

var _ Fetcher = (*Client)(nil)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL of the v3 API, e.g. https://api.themoviedb.org/3
	BaseURL string
	APIKey  string

	// Timeout bounds each request. Default: 10s.
	Timeout time.Duration

	// RequestsPerSecond and Burst pace outbound calls. A zero rate disables pacing.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the default client; its Timeout is left as is.
	HTTPClient *http.Client
}

// Client is a minimal TMDB v3 client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// movieResponse is the subset of GET /movie/{id} that Reelview reads.
type movieResponse struct {
	PosterPath *string `json:"poster_path"`
}

// NewClient creates a client for the given configuration.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// PosterPath performs GET {base}/movie/{id}?api_key=KEY and returns the
// poster_path field. Non-2xx answers return a *StatusError.
func (c *Client) PosterPath(ctx context.Context, tmdbID int64) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	endpoint := c.baseURL + "/movie/" + strconv.FormatInt(tmdbID, 10) + "?api_key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", redactURLError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	var movie movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if movie.PosterPath == nil {
		return "", nil
	}
	return *movie.PosterPath, nil
}

// redactURLError strips the api_key query parameter from a transport error
// so it never reaches the logs.
func redactURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	if u, perr := url.Parse(uerr.URL); perr == nil {
		q := u.Query()
		if q.Has("api_key") {
			q.Set("api_key", "REDACTED")
			u.RawQuery = q.Encode()
			uerr.URL = u.String()
		}
	}
	return uerr
}
