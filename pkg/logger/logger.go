/* pkg/logger/logger.go */

package logger

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var log *zap.Logger

// L returns the global logger, initializing the console fallback if needed.
func L() *zap.Logger {
	if log == nil {
		log = NewFallbackLogger()
		install(log)
	}
	return log
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

// install makes l the logger behind zap.L() and otelzap.Ctx().
func install(l *zap.Logger) {
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}
