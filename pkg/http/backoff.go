package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BackoffConfig configures exponential retries for transport failures, 5xx and 429 responses.
// Other 4xx responses and decode failures are never retried.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultBackoffConfig returns 3 retries starting at 1s and capped at 10s.
func DefaultBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
	}
}

func (c *BackoffConfig) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		b.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		b.MaxInterval = c.MaxInterval
	}
	if c.Multiplier > 0 {
		b.Multiplier = c.Multiplier
	}
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.MaxRetries)), ctx)
}

// doRequestWithBackoff runs doRequest under the request's backoff, falling back to the client's default.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, cfg *BackoffConfig) (any, any, int, error) {
	if cfg == nil {
		cfg = hc.backoff
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	maxRetries := 0
	if cfg != nil && cfg.MaxRetries > 0 {
		policy = cfg.policy(ctx)
		maxRetries = cfg.MaxRetries
	}

	var ex *exchange
	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()

		var err error
		ex, err = hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		latency := time.Since(start).Milliseconds()

		if err == nil {
			if hc.logger != nil {
				hc.logger.LogResponseSuccess(method, ex.url, ex.headers, string(ex.requestBody), ex.status, string(ex.body), latency)
			}
			return nil
		}

		if attempt > maxRetries || !retryable(ctx, ex, err) {
			if hc.logger != nil {
				hc.logger.LogResponseError(method, ex.url, ex.headers, string(ex.requestBody), ex.status, string(ex.body), latency, err)
			}
			return backoff.Permanent(err)
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, ex.url, ex.headers, string(ex.requestBody), ex.status, string(ex.body), latency, err, attempt, maxRetries)
		}
		return err
	}

	err := backoff.Retry(operation, policy)
	if ex == nil {
		return nil, nil, 0, err
	}
	return ex.successResp, ex.errorResp, ex.status, err
}

func retryable(ctx context.Context, ex *exchange, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}

	// no response means the transport failed
	return ex == nil || ex.status == 0
}
