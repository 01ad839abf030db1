// Package cache keeps the game listing in Redis so repeated catalog loads do
// not hit the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"annochess/internal/catalog"
	"annochess/internal/logging"
	"annochess/internal/stats"
)

// DefaultKey is the Redis key holding the encoded listing.
const DefaultKey = "annochess:catalog:games"

// DefaultTTL bounds how stale a cached listing can get.
const DefaultTTL = 5 * time.Minute

// Lister yields the full game listing.
type Lister interface {
	ListGames(ctx context.Context) ([]catalog.Game, error)
}

// Catalog is a Redis-backed cache of the game listing.
type Catalog struct {
	rdb   *redis.Client
	key   string
	ttl   time.Duration
	stats stats.Collector
}

// Open connects to the Redis server at redisURL (redis:// or rediss://).
func Open(ctx context.Context, redisURL string, ttl time.Duration, coll stats.Collector) (*Catalog, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, ttl, coll), nil
}

// New wraps an existing client.
func New(rdb *redis.Client, ttl time.Duration, coll stats.Collector) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Catalog{rdb: rdb, key: DefaultKey, ttl: ttl, stats: stats.OrNoop(coll)}
}

// Get returns the cached listing. A miss is (nil, false, nil).
func (c *Catalog) Get(ctx context.Context) ([]catalog.Game, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var games []catalog.Game
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, false, fmt.Errorf("decode cached games: %w", err)
	}
	return games, true, nil
}

// Set stores games under the cache key with the configured TTL.
func (c *Catalog) Set(ctx context.Context, games []catalog.Game) error {
	if games == nil {
		games = []catalog.Game{}
	}
	raw, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("encode games: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing.
func (c *Catalog) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *Catalog) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Through returns a Lister that reads from the cache and falls back to src,
// filling the cache on a miss. Redis failures are logged and bypassed.
func (c *Catalog) Through(src Lister) Lister {
	return &readThrough{cache: c, src: src}
}

type readThrough struct {
	cache *Catalog
	src   Lister
}

func (r *readThrough) ListGames(ctx context.Context) ([]catalog.Game, error) {
	games, ok, err := r.cache.Get(ctx)
	if err != nil {
		logging.L().Warn("catalog cache read failed", zap.Error(err))
	}
	if ok {
		r.cache.stats.IncCounter(stats.MetricCatalogCacheHits, 1)
		return games, nil
	}
	r.cache.stats.IncCounter(stats.MetricCatalogCacheMisses, 1)

	games, err = r.src.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, games); err != nil {
		logging.L().Warn("catalog cache write failed", zap.Error(err))
	}
	return games, nil
}
