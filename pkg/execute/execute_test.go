package execute

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRun_CaptureOutput(t *testing.T) {
	requireUnix(t)

	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo provisioned"},
		Capture: true,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "provisioned\n", out)
}

func TestRun_NoCaptureReturnsEmpty(t *testing.T) {
	requireUnix(t)

	var stream bytes.Buffer
	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo streamed"},
		Stream:  &stream,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "streamed\n", stream.String())
}

func TestRun_FailureKeepsOutputVerbatim(t *testing.T) {
	requireUnix(t)

	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo 'E: Unable to locate package nginx' >&2; exit 100"},
		Logger:  zaptest.NewLogger(t),
	})
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 100, cmdErr.Code)
	assert.Contains(t, out, "E: Unable to locate package nginx")
	assert.Contains(t, err.Error(), "E: Unable to locate package nginx")
	assert.Contains(t, err.Error(), "(exit 100)")
	assert.Equal(t, 100, tfl_err.GetExitCode(tfl_err.WrapStageError(err)))
}

func TestRun_EnvAndDir(t *testing.T) {
	requireUnix(t)

	dir := t.TempDir()
	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo $TFL_MARKER; pwd"},
		Env:     []string{"TFL_MARKER=hello"},
		Dir:     dir,
		Capture: true,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "hello", lines[0])
	assert.Contains(t, lines[1], dir)
}

func TestRun_Timeout(t *testing.T) {
	requireUnix(t)

	_, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
		Logger:  zaptest.NewLogger(t),
	})
	assert.Error(t, err)
}

func TestOptionsString(t *testing.T) {
	assert.Equal(t, "systemctl", Options{Command: "systemctl"}.String())
	assert.Equal(t, "systemctl enable taxi-tracker",
		Options{Command: "systemctl", Args: []string{"enable", "taxi-tracker"}}.String())
}
