// Package cache keeps listing search results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/logger"
)

const (
	generationKey = "listings:search:gen"
	keyPrefix     = "listings:search"
)

// SearchCache is a cache-aside store for listing searches. Every write to a
// listing bumps a generation counter, which orphans all previously cached
// pages; the TTL then reclaims them.
type SearchCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSearchCache(client redis.Cmdable, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// NewRedisClient connects to addr and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Get looks up the cached page for f. It also returns the key the lookup used,
// which pins the generation read before the caller queries the database. A
// miss should be filled with Set under that same key, so a write that
// invalidates in between leaves the filled page orphaned.
func (c *SearchCache) Get(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, string, bool, error) {
	key, err := c.key(ctx, f)
	if err != nil {
		return nil, "", false, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, false, nil
	}
	if err != nil {
		return nil, "", false, fmt.Errorf("redis get: %w", err)
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, "", false, fmt.Errorf("decode cached listings: %w", err)
	}
	logger.DebugContext(ctx, "Listing search served from cache", "key", key, "count", len(listings))
	return listings, key, true, nil
}

// Set stores listings under a key returned by Get
func (c *SearchCache) Set(ctx context.Context, key string, listings []domain.Listing) error {
	if key == "" {
		return errors.New("missing search cache key")
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encode listings: %w", err)
	}
	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *SearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}

func (c *SearchCache) key(ctx context.Context, f domain.ListingFilter) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", fmt.Errorf("redis get generation: %w", err)
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, gen, filterKey(f)), nil
}

// filterKey renders f in a canonical form so equal searches share an entry
func filterKey(f domain.ListingFilter) string {
	parts := []string{
		"q=" + strings.ToLower(strings.TrimSpace(f.Search)),
		"min=" + optFloat(f.MinPrice),
		"max=" + optFloat(f.MaxPrice),
		"bed=" + optInt(f.MinBedrooms),
		"city=" + strings.ToLower(strings.TrimSpace(f.City)),
		"state=" + strings.ToLower(strings.TrimSpace(f.State)),
		"limit=" + strconv.Itoa(f.Limit),
	}
	return strings.Join(parts, "|")
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optInt(v *int32) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(int(*v))
}
