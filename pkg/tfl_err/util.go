// pkg/tfl_err/util.go

package tfl_err

import (
	"errors"
	"fmt"
	"io"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var debugMode bool

func SetDebugMode(enabled bool) {
	debugMode = enabled
}

func DebugEnabled() bool {
	return debugMode
}

// ExtractSummary extracts a concise error summary from full command output.
// Lines mentioning an error are preferred; otherwise the first non-empty line is used.
func ExtractSummary(output string, maxCandidates int) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "No output provided."
	}

	lines := strings.Split(trimmed, "\n")
	var candidates []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lowerLine := strings.ToLower(line)
		if strings.Contains(lowerLine, "error") ||
			strings.Contains(lowerLine, "failed") ||
			strings.Contains(lowerLine, "cannot") ||
			strings.Contains(lowerLine, "fatal") ||
			strings.Contains(lowerLine, "emerg") {
			candidates = append(candidates, line)
		}
	}

	if len(candidates) > 0 {
		if maxCandidates > 0 && len(candidates) > maxCandidates {
			candidates = candidates[:maxCandidates]
		}
		return strings.Join(candidates, " - ")
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}

	return "Unknown error."
}

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// PrintError writes err for the operator. Expected user errors become a
// notice; everything else is printed with its hints, and with the full
// stack in debug mode.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if IsExpectedUserError(err) {
		zap.L().Warn("Command completed with user error", zap.Error(err))
		fmt.Fprintf(w, "Notice: %v\n", err)
		return
	}
	zap.L().Error("Command failed", zap.Error(err))
	if DebugEnabled() {
		fmt.Fprintf(w, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	if hint := cerr.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	if !DebugEnabled() {
		fmt.Fprintln(w, "Tip: rerun with --debug for more details.")
	}
}
