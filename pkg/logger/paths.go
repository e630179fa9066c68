/* pkg/logger/paths.go */

package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"go.uber.org/zap/zapcore"
)

// PlatformLogPaths returns candidate log paths in order of priority.
func PlatformLogPaths() []string {
	paths := []string{shared.TflLogs}
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		paths = append(paths, filepath.Join(state, shared.TflID, "tfl.log"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "state", shared.TflID, "tfl.log"))
	}
	return append(paths, shared.TflLogsPWD)
}

// GetLogFileWriter opens path for appending, creating its directory with 0700.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first candidate that can be opened.
func FindWritableLogPath(candidates []string) (string, zapcore.WriteSyncer, error) {
	for _, path := range candidates {
		if w, err := GetLogFileWriter(path); err == nil {
			return path, w, nil
		}
	}
	return "", nil, fmt.Errorf("no writable log path found")
}
