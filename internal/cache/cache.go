// Package cache keeps derived ledger views (settlements, balances) in Redis.
//
// Every ledger owner has a version counter. Cached entries embed the version
// in their key, so bumping the counter after a write makes all previous
// entries unreachable; they expire on their own TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "settleup"

// Cache wraps Redis based caching with per-owner versioning.
// A nil *Cache (or one without a client) always calls the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New instantiates the cache helper.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func versionKey(userID string) string {
	return strings.Join([]string{keyPrefix, "ledger", userID, "version"}, ":")
}

// Version returns the owner's current ledger version. Missing versions read as 0.
func (c *Cache) Version(ctx context.Context, userID string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Key composes the cache key of a view for the given version.
func Key(userID, view string, version int64) string {
	return fmt.Sprintf("%s:%s:%s:v%d", keyPrefix, view, userID, version)
}

// FetchJSON loads the owner's cached view into dest, or populates it with
// loader. It reports whether the value came from the cache.
//
// Redis failures degrade to calling loader; only loader and encoding errors
// are returned.
func (c *Cache) FetchJSON(ctx context.Context, userID, view string, dest any, loader func(context.Context) (any, error)) (bool, error) {
	if loader == nil {
		return false, errors.New("cache: loader required")
	}
	if !c.enabled() {
		return false, load(ctx, dest, loader)
	}

	ver, err := c.Version(ctx, userID)
	if err != nil {
		slog.Warn("Cache version lookup failed", "user_id", userID, "error", err)
		return false, load(ctx, dest, loader)
	}
	key := Key(userID, view, ver)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if err := json.Unmarshal(payload, dest); err == nil {
			return true, nil
		}
		slog.Warn("Discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Cache read failed", "key", key, "error", err)
		return false, load(ctx, dest, loader)
	}

	value, err := loader(ctx)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
	return false, json.Unmarshal(raw, dest)
}

func load(ctx context.Context, dest any, loader func(context.Context) (any, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate bumps the owner's ledger version.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, versionKey(userID)).Err()
}
