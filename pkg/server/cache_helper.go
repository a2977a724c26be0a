package server

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
)

type CacheHelper[T any] struct {
	Cache *Cache
}

func NewCacheHelper[T any](cache *Cache) *CacheHelper[T] {
	return &CacheHelper[T]{Cache: cache}
}

// Handle fills out from the cache or from fn, returning whether it was a hit.
// Cache failures are logged and never fail the request.
func (c *CacheHelper[T]) Handle(ctx context.Context, key string, out *T, fn func() T, expiration time.Duration) bool {
	if c == nil || c.Cache == nil {
		*out = fn()
		return false
	}
	err := c.Cache.Get(ctx, key, out)
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("Cache get %s failed: %v", key, err)
	}
	*out = fn()
	if err = c.Cache.Set(ctx, key, out, expiration); err != nil {
		log.Printf("Cache set %s failed: %v", key, err)
	}
	return false
}

// CacheKey hashes the json form of a request together with the catalog
// fingerprint, a different snapshot never serves stale entries.
func CacheKey(prefix string, fingerprint string, request any) (string, error) {
	data, err := sonic.Marshal(request)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%x", prefix, fingerprint, md5.Sum(data)), nil
}
