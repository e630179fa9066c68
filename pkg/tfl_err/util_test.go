package tfl_err

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		output        string
		maxCandidates int
		want          string
	}{
		{
			name:          "empty output",
			output:        "",
			maxCandidates: 3,
			want:          "No output provided.",
		},
		{
			name:          "whitespace only",
			output:        "   \n\n   ",
			maxCandidates: 3,
			want:          "No output provided.",
		},
		{
			name:          "single error line",
			output:        "E: Unable to locate package pyhton3\nError: apt failed",
			maxCandidates: 1,
			want:          "Error: apt failed",
		},
		{
			name:          "nginx emerg lines",
			output:        "nginx: [emerg] unknown directive \"proxy_pas\"\nnginx: configuration file /etc/nginx/nginx.conf test failed",
			maxCandidates: 2,
			want:          "nginx: [emerg] unknown directive \"proxy_pas\" - nginx: configuration file /etc/nginx/nginx.conf test failed",
		},
		{
			name:          "no keywords falls back to first line",
			output:        "\nHit:1 http://deb.debian.org bookworm InRelease\nReading package lists...",
			maxCandidates: 2,
			want:          "Hit:1 http://deb.debian.org bookworm InRelease",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractSummary(tt.output, tt.maxCandidates)
			if got != tt.want {
				t.Errorf("ExtractSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewExpectedError(t *testing.T) {
	t.Parallel()

	if err := NewExpectedError(nil); err != nil {
		t.Error("NewExpectedError(nil) should return nil")
	}

	originalErr := errors.New("edge proxy declined")
	wrappedErr := NewExpectedError(originalErr)

	var userErr *UserError
	if !errors.As(wrappedErr, &userErr) {
		t.Error("NewExpectedError should return a UserError")
	}
	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Wrapped error should preserve the original error")
	}
}

func TestIsExpectedUserError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "regular error", err: errors.New("system error"), want: false},
		{name: "user error", err: NewUserError("host %s unreachable", "10.0.0.5"), want: true},
		{name: "wrapped user error", err: WrapValidationError(NewExpectedError(errors.New("bad port"))), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsExpectedUserError(tt.err); got != tt.want {
				t.Errorf("IsExpectedUserError() = %v, want %v", got, tt.want)
			}
		})
	}
}

type toolError struct{ code int }

func (e *toolError) Error() string { return "tool failed" }
func (e *toolError) ExitCode() int { return e.code }

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: errors.New("boom"), want: 1},
		{name: "user error", err: NewUserError("nothing to do"), want: 0},
		{name: "validation", err: NewValidationError("port out of range"), want: 2},
		{name: "dependency", err: NewDependencyError("scp", "file transfer"), want: 1},
		{name: "cancelled", err: NewUserCancelledError("provision"), want: 130},
		{name: "internal", err: NewInternalError("nil stage", nil), want: 3},
		{name: "wrapped classified", err: WrapStageError(NewValidationError("bad")), want: 2},
		{name: "tool exit code", err: WrapStageError(&toolError{code: 100}), want: 100},
		{name: "tool killed by signal", err: WrapStageError(&toolError{code: -1}), want: 1},
		{name: "classified wraps tool", err: NewNetworkError("mkdir failed", &toolError{code: 255}), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifiedError_Message(t *testing.T) {
	t.Parallel()

	err := NewDependencyError("scp", "file transfer", "Install OpenSSH client", "Check PATH")
	msg := err.Error()
	if !strings.Contains(msg, "scp is required for file transfer but not found") {
		t.Errorf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "1. Install OpenSSH client") || !strings.Contains(msg, "2. Check PATH") {
		t.Errorf("remediation steps missing: %q", msg)
	}
	if CategoryOf(err) != CategoryDependency {
		t.Errorf("CategoryOf() = %v, want dependency", CategoryOf(err))
	}

	ordering := NewOrderingError("DB_INIT", "ENV_FILE")
	if CategoryOf(ordering).String() != "ordering" {
		t.Errorf("expected ordering category, got %s", CategoryOf(ordering))
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error printed %q", buf.String())
	}

	PrintError(&buf, NewUserError("no runs recorded yet"))
	if got := buf.String(); !strings.HasPrefix(got, "Notice: no runs recorded yet") {
		t.Errorf("user error = %q", got)
	}

	buf.Reset()
	PrintError(&buf, WrapStageError(errors.New("apt-get exited 100")))
	got := buf.String()
	if !strings.Contains(got, "Error: apt-get exited 100") {
		t.Errorf("missing error line: %q", got)
	}
	if !strings.Contains(got, "Hint: fix the cause above and re-run `tfl provision`") {
		t.Errorf("missing re-run hint: %q", got)
	}
}
