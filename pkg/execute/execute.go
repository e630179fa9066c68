// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultRunner executes commands on the local machine.
var DefaultRunner Runner = RunnerFunc(Run)

// Run executes a command without a shell, with structured logging and a span.
// Commands are never retried.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := opts.String()

	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	ctx, span := telemetry.Start(ctx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	logger.Info("Starting execution", zap.String("command", cmdStr), zap.String("dir", opts.Dir))

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	var buf bytes.Buffer
	var writer io.Writer = &buf
	if opts.Stream != nil {
		writer = io.MultiWriter(opts.Stream, &buf)
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		cmdErr := &CommandError{Command: cmdStr, Output: output, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.Code = exitErr.ExitCode()
		}
		span.RecordError(err)
		logger.Error("Execution failed",
			zap.String("command", cmdStr),
			zap.Int("exit_code", cmdErr.Code),
			zap.String("summary", cmdErr.Summary()),
			zap.Error(err))
		return output, cmdErr
	}

	logger.Info("Execution succeeded", zap.String("command", cmdStr))
	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// LookPath reports whether name resolves on PATH. Replaced in tests.
var LookPath = exec.LookPath
