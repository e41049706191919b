package storefront

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"upsell.GO/core/cache"
	"upsell.GO/upsell"
)

// CacheTag marks catalog entries in the in-process cache so the flush job can
// drop them in one sweep.
const CacheTag = "catalog"

const redisPrefix = "upsell:catalog:"

// CachedCatalog wraps a CatalogQuerier with a read-through cache. Redis is
// used when configured; otherwise the in-process cache serves. Concurrent
// identical lookups are collapsed with singleflight either way.
type CachedCatalog struct {
	next  upsell.CatalogQuerier
	redis *redis.Client // nil disables the shared tier
	local *cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedCatalog(next upsell.CatalogQuerier, rdb *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		next:  next,
		redis: rdb,
		local: cache.GetInstance(),
		ttl:   ttl,
	}
}

func (c *CachedCatalog) ProductCollections(ctx context.Context, productIDs []string, perProduct int) ([]string, error) {
	key := "collections|" + strings.Join(productIDs, ",") + "|" + strconv.Itoa(perProduct)

	var cached []string
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		handles, err := c.next.ProductCollections(ctx, productIDs, perProduct)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, handles)
		return handles, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *CachedCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]upsell.CandidateProduct, error) {
	key := "candidates|" + query + "|" + strconv.Itoa(limit)

	var cached []upsell.CandidateProduct
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		candidates, err := c.next.SearchProducts(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, candidates)
		return candidates, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]upsell.CandidateProduct), nil
}

// lookup tries redis first, then the in-process cache. Cache misses and
// decode failures both read as a miss; the caller refetches.
func (c *CachedCatalog) lookup(ctx context.Context, key string, out interface{}) bool {
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, redisPrefix+key).Result()
		if err == nil && json.Unmarshal([]byte(raw), out) == nil {
			return true
		}
		return false
	}
	raw, ok := c.local.Get(key)
	if !ok {
		return false
	}
	b, ok := raw.([]byte)
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func (c *CachedCatalog) store(ctx context.Context, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if c.redis != nil {
		// Best effort; a write failure just means a refetch later.
		c.redis.Set(ctx, redisPrefix+key, b, c.ttl)
		return
	}
	c.local.Set(key, b, int64(c.ttl/time.Second), []string{CacheTag})
}

// FlushLocal drops all in-process catalog entries (redis entries expire via TTL).
func FlushLocal() {
	cache.GetInstance().DeleteByTag(CacheTag)
}
