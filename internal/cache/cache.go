// Package cache keeps recent match results in Redis. Matching is
// deterministic for a given input, so results are keyed by a hash of the
// inputs and dropped after a TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vijay-prabhu/smartmatch/internal/config"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

const keyPrefix = "smartmatch:matches:"

// Cache stores match results by key
type Cache interface {
	// Get returns the cached results and whether the key was present
	Get(ctx context.Context, key string) ([]matching.MatchResult, bool, error)
	Set(ctx context.Context, key string, results []matching.MatchResult) error
}

// RedisCache is a Cache backed by Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache from the [cache] config section
func NewRedis(cfg config.CacheConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewRedisWithClient(rdb, cfg.TTL())
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]matching.MatchResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	var results []matching.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("cache entry %s is corrupt: %w", key, err)
	}
	return results, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, results []matching.MatchResult) error {
	if results == nil {
		results = []matching.MatchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// keyInput is everything that determines the output of one matching call
type keyInput struct {
	Enquiry    matching.Enquiry     `json:"enquiry"`
	Candidates []matching.Candidate `json:"candidates"`
	Config     matching.MatchConfig `json:"config"`
	Engine     string               `json:"engine"`
}

// Key derives the cache key for one matching call. engine identifies the
// engine's lookup tables and text matcher. Candidate order does not affect
// the key.
func Key(enq matching.Enquiry, candidates []matching.Candidate, cfg matching.MatchConfig, engine string) (string, error) {
	sorted := make([]matching.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	data, err := json.Marshal(keyInput{
		Enquiry:    enq,
		Candidates: sorted,
		Config:     cfg,
		Engine:     engine,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}

	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Fingerprint hashes the engine settings that influence scoring
func Fingerprint(textMatcher string, table matching.RegionTable, categories map[string][]string) (string, error) {
	data, err := json.Marshal(struct {
		TextMatcher string               `json:"text_matcher"`
		Regions     matching.RegionTable `json:"regions"`
		Categories  map[string][]string  `json:"categories"`
	}{textMatcher, table, categories})
	if err != nil {
		return "", fmt.Errorf("failed to encode engine fingerprint: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}
