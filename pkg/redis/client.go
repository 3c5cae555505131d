package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("redis: key not found")

// setChunk bounds the members sent in one SADD/SMISMEMBER call
const setChunk = 500

// Client wraps the Redis client with additional functionality
type Client struct {
	rdb    *redis.Client
	config *Config
}

// NewClient creates a new Redis client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = NewRedisConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Redis configuration: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	})

	return &Client{
		rdb:    rdb,
		config: config,
	}, nil
}

// Ping tests the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetConfig returns the Redis configuration
func (c *Client) GetConfig() *Config {
	return c.config
}

// Set stores a key-value pair with optional expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// GetBytes retrieves a value by key, returning ErrNotFound when it is missing
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Delete removes keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// SAdd adds members to a set, chunking large batches in one pipeline
func (c *Client) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for start := 0; start < len(members); start += setChunk {
		end := min(start+setChunk, len(members))
		chunk := make([]interface{}, 0, end-start)
		for _, member := range members[start:end] {
			chunk = append(chunk, member)
		}
		pipe.SAdd(ctx, key, chunk...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// SMIsMember reports membership of every candidate, in order
func (c *Client) SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error) {
	result := make([]bool, 0, len(members))
	for start := 0; start < len(members); start += setChunk {
		end := min(start+setChunk, len(members))
		chunk := make([]interface{}, 0, end-start)
		for _, member := range members[start:end] {
			chunk = append(chunk, member)
		}
		found, err := c.rdb.SMIsMember(ctx, key, chunk...).Result()
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}

// SCard returns the set cardinality
func (c *Client) SCard(ctx context.Context, key string) (int64, error) {
	return c.rdb.SCard(ctx, key).Result()
}
