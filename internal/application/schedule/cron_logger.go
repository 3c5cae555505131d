package schedule

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"lindas-hydro/pkg/log"
)

// cronLogger routes robfig/cron internals to the application logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

var _ cron.Logger = cronLogger{}

func newCronLogger() cronLogger {
	return cronLogger{logger: log.Named("cron").Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
