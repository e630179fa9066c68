// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	DefaultYesPrompt = "Y/n"
	DefaultNoPrompt  = "y/N"
)

const (
	YesShort = "y"
	YesLong  = "yes"
	NoShort  = "n"
	NoLong   = "no"
)

// IsTerminal reports whether f is attached to a terminal. Replaced in tests.
var IsTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PromptYesNo asks a yes/no question on w and reads the answer from r.
// Empty or unrecognised input yields defaultYes. EOF also yields the default.
func PromptYesNo(ctx context.Context, r io.Reader, w io.Writer, prompt string, defaultYes bool) (bool, error) {
	logger := otelzap.Ctx(ctx)

	defPrompt := DefaultYesPrompt
	if !defaultYes {
		defPrompt = DefaultNoPrompt
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	input, err := ReadLine(ctx, bufio.NewReader(r), w, label)
	if err != nil && !errors.Is(err, io.EOF) {
		return defaultYes, err
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		logger.Info("User input parsed", zap.String("prompt", prompt), zap.Bool("answer", answer))
		return answer, nil
	}

	logger.Info("Default applied", zap.String("prompt", prompt), zap.Bool("default_yes", defaultYes))
	return defaultYes, nil
}

// NormalizeYesNoInput returns (answer, recognised).
func NormalizeYesNoInput(input string) (bool, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	switch input {
	case YesShort, YesLong:
		return true, true
	case NoShort, NoLong:
		return false, true
	}
	return false, false
}
