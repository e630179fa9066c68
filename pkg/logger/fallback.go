/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger logs to stderr only. Stdout is reserved for status lines.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		ParseLogLevel(os.Getenv("LOG_LEVEL"), zapcore.WarnLevel),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback tees a console core on stderr with a JSON core on the first
// writable log file. Without a writable path only the console core is used.
func InitializeWithFallback() {
	consoleLevel := ParseLogLevel(os.Getenv("LOG_LEVEL"), zapcore.WarnLevel)
	fileLevel := ParseLogLevel(os.Getenv("LOG_LEVEL"), zapcore.InfoLevel)

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	path, writer, err := FindWritableLogPath(PlatformLogPaths())
	if err != nil {
		fmt.Fprintln(os.Stderr, "No writable log path found. Logging to console only.")
		log = zap.New(console, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		install(log)
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		console,
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, fileLevel),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	install(log)
	log.Debug("Logger initialized",
		zap.String("log_level", os.Getenv("LOG_LEVEL")),
		zap.String("log_path", path),
	)
}
