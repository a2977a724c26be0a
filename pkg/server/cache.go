package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const DefaultLocalEntries = 10000

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache keeps encoded values in redis with a short lived local copy in front
// of it. Without redis only the local layer is used.
type Cache struct {
	Addr     string
	DB       int
	client   *redis.Client
	mu       sync.RWMutex
	memCache map[string]LocalEntry
	localTtl time.Duration
	maxLocal int
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{Addr: addr, DB: db, client: rdb, memCache: make(map[string]LocalEntry), localTtl: time.Minute, maxLocal: DefaultLocalEntries}
}

func NewMemoryCache() *Cache {
	return &Cache{memCache: make(map[string]LocalEntry), localTtl: time.Minute, maxLocal: DefaultLocalEntries}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.RLock()
	local, found := c.memCache[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if local.Expires.Before(time.Now()) {
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
		return nil, false
	}
	return local.Data, true
}

func (c *Cache) setLocal(key string, data []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.memCache[key]; !found && c.maxLocal > 0 && len(c.memCache) >= c.maxLocal {
		c.sweep(time.Now())
		// still full, drop arbitrary entries
		for k := range c.memCache {
			if len(c.memCache) < c.maxLocal {
				break
			}
			delete(c.memCache, k)
		}
	}
	c.memCache[key] = LocalEntry{Expires: time.Now().Add(min(expiration, c.localTtl)), Data: data}
}

func (c *Cache) sweep(now time.Time) int {
	removed := 0
	for k, e := range c.memCache {
		if e.Expires.Before(now) {
			delete(c.memCache, k)
			removed++
		}
	}
	return removed
}

// Sweep drops expired local entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweep(time.Now())
}

func (c *Cache) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Len is the number of entries in the local layer.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memCache)
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	data, found := c.getLocal(key)
	if !found {
		if c.client == nil {
			return ErrCacheMiss
		}
		s, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		if err != nil {
			return err
		}
		data = []byte(s)
		c.setLocal(key, data, c.localTtl)
	}
	return sonic.Unmarshal(data, out)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.setLocal(key, data, expiration)
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Clear drops the local layer, redis entries expire on their own.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.memCache)
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
