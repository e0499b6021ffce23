// Package cache is a Badger-backed TTL cache for catalog search results.
// It sits in front of the Google Books client so repeated lookups for
// popular titles stay off the network.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
)

const (
	searchPrefix = "catalog:search:"

	// Search results change rarely for a given query; a day is plenty.
	searchCacheDuration = 24 * time.Hour
)

// Cache wraps a Badger database used only for metadata caching.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open creates the cache database at the given path.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Cache{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// CachedSearch wraps catalog search results with cache info.
type CachedSearch struct {
	Results   []googlebooks.Volume `json:"results"`
	FetchedAt time.Time            `json:"fetched_at"`
	Query     string               `json:"query"`
}

// searchCacheKey generates a cache key for search results.
// Uses a hash to handle long query strings.
func searchCacheKey(query string) []byte {
	hash := sha256.Sum256([]byte(query))
	hashStr := hex.EncodeToString(hash[:8]) // First 8 bytes = 16 hex chars
	return fmt.Appendf(nil, "%s%s", searchPrefix, hashStr)
}

// GetSearch retrieves cached search results for a query.
// Returns nil, nil if not found or expired.
func (c *Cache) GetSearch(ctx context.Context, query string) (*CachedSearch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := searchCacheKey(query)

	var cached CachedSearch
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached search: %w", err)
	}

	if time.Since(cached.FetchedAt) > searchCacheDuration {
		return nil, nil // Treat as cache miss
	}
	return &cached, nil
}

// SetSearch stores search results for a query.
func (c *Cache) SetSearch(ctx context.Context, query string, results []googlebooks.Volume) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedSearch{
		Results:   results,
		FetchedAt: time.Now(),
		Query:     query,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached search: %w", err)
	}

	key := searchCacheKey(query)

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data).WithTTL(searchCacheDuration)
		return txn.SetEntry(entry)
	})
}

// DeleteSearch removes cached results for a query. Idempotent.
func (c *Cache) DeleteSearch(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := searchCacheKey(query)

	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
