// Package wikipedia enriches book records with genre and language scraped
// from a book's Wikipedia infobox. Pages are located through the Google
// Custom Search API, so the client is inert without search credentials.
package wikipedia

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/myscribe/myscribe-server/internal/ratelimit"
)

const (
	// Rate limit: 1 request per second, burst of 2. Applies separately to
	// the search API and the page fetches.
	defaultRPS   = 1.0
	defaultBurst = 2

	defaultTimeout = 30 * time.Second

	defaultSearchBaseURL = "https://www.googleapis.com/customsearch/v1"
)

// Client locates and scrapes Wikipedia pages for books.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
	searchID  string // Google CSE engine ID
	searchKey string // Google CSE API key
	searchURL string
}

// Option configures a Client.
type Option func(*Client)

// WithSearchBaseURL overrides the search endpoint. Used by tests.
func WithSearchBaseURL(baseURL string) Option {
	return func(c *Client) { c.searchURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Wikipedia client. Both search credentials are required for
// lookups; without them Lookup returns ErrDisabled.
func New(logger *slog.Logger, searchID, searchKey string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   ratelimit.New(defaultRPS, defaultBurst),
		logger:    logger,
		searchID:  searchID,
		searchKey: searchKey,
		searchURL: defaultSearchBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has search credentials.
func (c *Client) Enabled() bool {
	return c.searchID != "" && c.searchKey != ""
}

// findPage resolves the Wikipedia page URL for a book through the custom
// search engine. Returns the first result link.
func (c *Client) findPage(ctx context.Context, title, author string) (string, error) {
	q := title + " wikipedia"
	if author != "" {
		q = fmt.Sprintf("%s by %s wikipedia", title, author)
	}

	query := url.Values{}
	query.Set("key", c.searchKey)
	query.Set("cx", c.searchID)
	query.Set("q", q)

	body, err := c.get(ctx, "search", c.searchURL+"?"+query.Encode())
	if err != nil {
		return "", err
	}

	var resp struct {
		Items []struct {
			Link string `json:"link"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", ErrNoResults
	}
	return resp.Items[0].Link, nil
}

// get executes a rate-limited GET and returns the body.
func (c *Client) get(ctx context.Context, limiterKey, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "MyScribe/1.0")

	c.logger.Debug("wikipedia request", "url", fullURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
