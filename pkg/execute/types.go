// pkg/execute/types.go

package execute

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"go.uber.org/zap"
)

// Options describes one external command.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Env is appended to the current process environment.
	Env []string
	// Stdin, when set, is connected to the command's standard input.
	Stdin io.Reader
	// Stream mirrors combined output while the command runs (e.g. os.Stdout).
	Stream io.Writer
	// Capture returns the combined output on success as well as on failure.
	Capture bool
	// Timeout of zero means the command may block indefinitely.
	Timeout time.Duration
	Logger  *zap.Logger
}

// String renders the command line for logs.
func (o Options) String() string {
	return buildCommandString(o.Command, o.Args...)
}

// Runner executes external commands. Stages receive a Runner so tests can record calls.
type Runner interface {
	Run(ctx context.Context, opts Options) (string, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, opts Options) (string, error)

func (f RunnerFunc) Run(ctx context.Context, opts Options) (string, error) {
	return f(ctx, opts)
}

// CommandError carries the failing tool's output verbatim.
type CommandError struct {
	Command string
	Code    int
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "command `%s` failed", e.Command)
	if e.Code > 0 {
		fmt.Fprintf(&sb, " (exit %d)", e.Code)
	} else if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		sb.WriteString("\n")
		sb.WriteString(out)
	}
	return sb.String()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode is the tool's own exit status, so a failed stage exits the way the
// tool did.
func (e *CommandError) ExitCode() int {
	return e.Code
}

// Summary returns the most relevant lines of the command output.
func (e *CommandError) Summary() string {
	return tfl_err.ExtractSummary(e.Output, 2)
}
