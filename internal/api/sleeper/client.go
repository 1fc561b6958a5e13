// Package sleeper is a read-only client for the public Sleeper API. Calls
// are rate-limited and cached on disk so repeat runs stay cheap; the big
// players dump in particular only refetches weekly.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"waiverwire/internal/cache"
)

const baseURL = "https://api.sleeper.app/v1"

// Sleeper allows 100 calls per minute per IP.
const callsPerMinute = 100

// Cache lifetimes per endpoint family.
const (
	ttlPlayers      = 168 * time.Hour
	ttlLeague       = 24 * time.Hour
	ttlUsers        = 24 * time.Hour
	ttlRosters      = time.Hour
	ttlStats        = 6 * time.Hour
	ttlProjections  = 6 * time.Hour
	ttlTrending     = time.Hour
	ttlTransactions = time.Hour
)

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
}

func NewClient(c *cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/callsPerMinute), 5),
		cache:      c,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status code %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// getCached serves from the cache when the entry is younger than ttl,
// otherwise fetches and stores. Cache write failures are logged, not fatal:
// the fetched data is still good for this run.
func (c *Client) getCached(ctx context.Context, endpoint, key string, ttl time.Duration, result any) error {
	hit, err := c.cache.Get(key, ttl, result)
	if err != nil {
		slog.Warn("Cache read failed, refetching", "key", key, "error", err)
	}
	if hit {
		slog.Debug("Cache hit", "key", key)
		return nil
	}

	if err := c.get(ctx, endpoint, result); err != nil {
		return err
	}
	if err := c.cache.Put(key, result); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
	return nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() error {
	return c.cache.Clear()
}
