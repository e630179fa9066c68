// pkg/tfl_io/context.go

package tfl_io

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/telemetry"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	RunID      string
	Attributes map[string]string
}

// NewContext sets up tracing and logging for one command invocation.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := telemetry.Start(parent, cmdName)
	runID := uuid.New().String()

	comp, _ := resolveCallContext(3)
	logger := zap.L().With(
		zap.String("component", comp),
		zap.String("command", cmdName),
		zap.String("run_id", runID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	).Named(comp)

	logEnv(logger)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        logger,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		RunID:      runID,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome and closes the command span with key attributes.
func (rc *RuntimeContext) End(errPtr *error) {
	if rc.Span != nil {
		defer rc.Span.End()
	}

	duration := time.Since(rc.Timestamp)
	var err error
	if errPtr != nil {
		err = *errPtr
	}

	if err == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else if tfl_err.IsExpectedUserError(err) {
		rc.Log.Warn("Command completed with user error", zap.Duration("duration", duration), zap.Error(err))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	if rc.Span == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("version", shared.Version),
		attribute.String("run_id", rc.RunID),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
	if err != nil {
		rc.Span.RecordError(err)
	}
}

func logEnv(log *zap.Logger) {
	if u, err := user.Current(); err == nil {
		log.Debug("user context",
			zap.String("username", u.Username),
			zap.String("uid", u.Uid),
			zap.Int("euid", os.Geteuid()),
		)
	}
	if exe, err := os.Executable(); err == nil {
		log.Debug("executable path", zap.String("path", exe))
	}
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	} else {
		component = "unknown"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if tfl_err.IsExpectedUserError(err) {
		return "user"
	}
	return tfl_err.CategoryOf(err).String()
}
