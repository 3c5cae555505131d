package redis

import (
	"context"
	"strconv"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker pings Redis and round-trips a scratch key
type HealthChecker struct {
	client  *Client
	timeout time.Duration
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{client: client, timeout: 2 * time.Second}
}

// HealthCheck performs a health check on the Redis connection
func (h *HealthChecker) HealthCheck() RedisHealthCheck {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	config := h.client.config
	details := map[string]string{
		"host":     config.Host,
		"port":     strconv.Itoa(config.Port),
		"database": strconv.Itoa(config.Database),
	}

	if err := h.roundTrip(ctx); err != nil {
		details["message"] = err.Error()
		return RedisHealthCheck{Status: StatusDown, Details: details}
	}

	details["message"] = string(StatusUp)
	return RedisHealthCheck{Status: StatusUp, Details: details}
}

func (h *HealthChecker) roundTrip(ctx context.Context) error {
	if err := h.client.Ping(ctx); err != nil {
		return err
	}

	key := h.client.config.Key("health_check")
	if err := h.client.Set(ctx, key, time.Now().Unix(), time.Minute); err != nil {
		return err
	}
	if _, err := h.client.GetBytes(ctx, key); err != nil {
		return err
	}
	return h.client.Delete(ctx, key)
}
