package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is the time to live for the cached value, zero uses the client's default
	TTL time.Duration
	// CacheName namespaces the cache keys as CacheName::key
	CacheName string
}

// NewCacheOptions creates a new cache options with default values
func NewCacheOptions(cacheName string) *CacheOptions {
	return &CacheOptions{CacheName: cacheName}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// Cache stores JSON values under a named namespace
type Cache struct {
	client *Client
	opts   *CacheOptions
}

// NewCache creates a new cache instance
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions("")
	}
	return &Cache{
		client: client,
		opts:   opts,
	}
}

func (c *Cache) getTTL() time.Duration {
	if c.opts.TTL > 0 {
		return c.opts.TTL
	}
	return c.client.config.DefaultCacheTTL
}

// buildCacheKey constructs the full cache key using prefix:CacheName::cacheKey format
func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		key = c.opts.CacheName + "::" + key
	}
	return c.client.config.Key(key)
}

// Get retrieves a value from cache and deserializes it, ErrNotFound when absent
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores a value in cache with serialization
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return c.client.Set(ctx, c.buildCacheKey(key), data, c.getTTL())
}

// Delete removes a value from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.buildCacheKey(key))
}
