package cache

import (
	"context"
	"errors"
	"sort"
	"time"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/pkg/redis"
)

const latestKey = "observations"

type RedisLatestCache struct {
	cache *redis.Cache
}

var _ LatestCache = (*RedisLatestCache)(nil)

func NewRedisLatestCache(client *redis.Client, ttl time.Duration) *RedisLatestCache {
	return &RedisLatestCache{
		cache: redis.NewCache(client, redis.NewCacheOptions("latest").WithTTL(ttl)),
	}
}

func (c *RedisLatestCache) load(ctx context.Context) (map[string]entity.Observation, error) {
	latest := make(map[string]entity.Observation)
	err := c.cache.Get(ctx, latestKey, &latest)
	if errors.Is(err, redis.ErrNotFound) {
		return make(map[string]entity.Observation), nil
	}
	return latest, err
}

// Put merges observations into the cache, a later reading replaces an older one.
func (c *RedisLatestCache) Put(ctx context.Context, observations []entity.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	latest, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, observation := range observations {
		if current, ok := latest[observation.StationID]; ok && current.Timestamp > observation.Timestamp {
			continue
		}
		latest[observation.StationID] = observation
	}
	return c.cache.Set(ctx, latestKey, latest)
}

func (c *RedisLatestCache) All(ctx context.Context) ([]entity.Observation, error) {
	latest, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Observation, 0, len(latest))
	for _, observation := range latest {
		result = append(result, observation)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StationID < result[j].StationID
	})
	return result, nil
}
