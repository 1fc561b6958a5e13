// Package cache is a TTL'd JSON cache with one file per key, used to keep
// Sleeper responses across runs. Freshness is decided by the caller's TTL at
// read time, so the same entry can serve endpoints with different lifetimes.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

type Cache struct {
	dir   string
	clock clockwork.Clock
}

type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

func New(dir string) *Cache {
	return NewWithClock(dir, clockwork.NewRealClock())
}

func NewWithClock(dir string, clock clockwork.Clock) *Cache {
	return &Cache{dir: dir, clock: clock}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get unmarshals the cached payload for key into v if the entry exists and is
// younger than ttl. The boolean reports whether v was populated.
func (c *Cache) Get(key string, ttl time.Duration, v any) (bool, error) {
	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A corrupt entry behaves like a miss and gets overwritten on Put.
		return false, nil
	}
	if c.clock.Since(env.FetchedAt) > ttl {
		return false, nil
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Put(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	data, err := json.Marshal(envelope{FetchedAt: c.clock.Now(), Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding cache envelope %s: %w", key, err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Clear removes every cache entry but leaves the directory in place.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cache dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("removing cache entry %s: %w", e.Name(), err)
		}
	}
	return nil
}
