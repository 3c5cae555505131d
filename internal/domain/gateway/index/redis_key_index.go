package index

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
	"lindas-hydro/pkg/redis"
)

// RedisKeyIndex mirrors the file's keys into a Redis set.
// The set is rebuilt from the file once per process and again after any Redis
// failure. While Redis is unavailable lookups read the file.
type RedisKeyIndex struct {
	client   *redis.Client
	store    file.ObservationStore
	fallback *FileKeyIndex
	key      string

	mu     sync.Mutex
	seeded bool
}

var _ KeyIndex = (*RedisKeyIndex)(nil)

func NewRedisKeyIndex(client *redis.Client, store file.ObservationStore) *RedisKeyIndex {
	return &RedisKeyIndex{
		client:   client,
		store:    store,
		fallback: NewFileKeyIndex(store),
		key:      client.GetConfig().Key("keys", filepath.Base(store.Path())),
	}
}

// Key is the Redis set holding the collected keys.
func (index *RedisKeyIndex) Key() string {
	return index.key
}

func (index *RedisKeyIndex) seed(ctx context.Context) error {
	index.mu.Lock()
	defer index.mu.Unlock()
	if index.seeded {
		return nil
	}

	keys, err := index.store.Keys()
	if err != nil {
		return err
	}

	members := make([]string, 0, len(keys))
	for key := range keys {
		members = append(members, key)
	}
	if err = index.client.Delete(ctx, index.key); err != nil {
		return fmt.Errorf("fail to reset key index: %w", err)
	}
	if err = index.client.SAdd(ctx, index.key, members...); err != nil {
		return fmt.Errorf("fail to seed key index: %w", err)
	}

	index.seeded = true
	return nil
}

func (index *RedisKeyIndex) invalidate() {
	index.mu.Lock()
	index.seeded = false
	index.mu.Unlock()
}

func (index *RedisKeyIndex) Known(ctx context.Context, candidates []string) (map[string]struct{}, error) {
	known, err := index.lookup(ctx, candidates)
	if err == nil {
		return known, nil
	}

	log.Warn(msg.GetMessage("index.redis-fallback", err))
	index.invalidate()
	return index.fallback.Known(ctx, candidates)
}

func (index *RedisKeyIndex) lookup(ctx context.Context, candidates []string) (map[string]struct{}, error) {
	if err := index.seed(ctx); err != nil {
		return nil, err
	}

	found, err := index.client.SMIsMember(ctx, index.key, candidates...)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{})
	for i, ok := range found {
		if ok {
			known[candidates[i]] = struct{}{}
		}
	}
	return known, nil
}

// Add mirrors freshly appended keys. A failed write forces a reseed on the next lookup.
func (index *RedisKeyIndex) Add(ctx context.Context, keys []string) error {
	if err := index.client.SAdd(ctx, index.key, keys...); err != nil {
		index.invalidate()
		return err
	}
	return nil
}

// Size counts the keys currently mirrored in Redis.
func (index *RedisKeyIndex) Size(ctx context.Context) (int64, error) {
	return index.client.SCard(ctx, index.key)
}
