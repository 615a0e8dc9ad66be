package helpers

import (
	"github.com/douhashi/labeler/internal/logger"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger creates a logger.Logger whose entries are recorded for assertions.
// Values pass through the same sanitizer as production loggers.
func NewObservedLogger(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return logger.NewWithCore(core), recorded
}

// Fields returns the context fields of the only entry logged with msg,
// or nil when there is not exactly one.
func Fields(recorded *observer.ObservedLogs, msg string) map[string]interface{} {
	entries := recorded.FilterMessage(msg).All()
	if len(entries) != 1 {
		return nil
	}
	return entries[0].ContextMap()
}
