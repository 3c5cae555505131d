package http

import "go.uber.org/zap"

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response (error HTTP status)
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}
// ZapLogger writes HTTPLogger events to a zap logger. Bodies are logged at debug level only.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates an HTTPLogger backed by logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) LogRequest(method, url string, headers map[string]string, body string) {
	l.logger.Debug("http request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Any("headers", headers),
		zap.Int("body_size", len(body)))
}

func (l *ZapLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	l.logger.Info("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int("response_size", len(responseBody)),
		zap.Int64("latency_ms", latency))
}

func (l *ZapLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	l.logger.Error("http request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
	l.logger.Debug("http request failed body", zap.String("body", body), zap.String("response_body", responseBody))
}

func (l *ZapLogger) LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int) {
	l.logger.Warn("http request retry",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}
