package cache

import (
	"context"
	"strconv"
	"time"

	"lindas-hydro/internal/domain/model"
	"lindas-hydro/pkg/redis"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

// KeyCounter reports how many collected keys are mirrored in Redis.
type KeyCounter interface {
	Size(ctx context.Context) (int64, error)
}

type RedisHealthGateway struct {
	checker *redis.HealthChecker
	keys    KeyCounter
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

// NewRedisHealthGateway checks client. keys is optional.
func NewRedisHealthGateway(client *redis.Client, keys KeyCounter) *RedisHealthGateway {
	return &RedisHealthGateway{checker: redis.NewHealthChecker(client), keys: keys}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck()
	status := model.ComponentHealthStatus{
		Status:  model.HealthStatus(check.Status),
		Details: check.Details,
	}
	if status.Status != model.StatusUp || gateway.keys == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if size, err := gateway.keys.Size(ctx); err == nil {
		status.Details["indexedKeys"] = strconv.FormatInt(size, 10)
	}
	return status
}
