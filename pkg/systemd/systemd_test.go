package systemd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) (*host.State, *testutil.FakeRunner) {
	runner := testutil.NewFakeRunner()
	return host.NewState(t.TempDir(), runner, host.DefaultProfile(), host.DefaultSettings()), runner
}

func TestRenderUnit_RequiredDirectives(t *testing.T) {
	st, _ := newState(t)
	content, err := RenderUnit(UnitFor(st))
	require.NoError(t, err)

	for _, want := range []string{
		"User=pi",
		"Group=pi",
		"WorkingDirectory=/home/pi/TFL",
		"EnvironmentFile=/home/pi/TFL/.env",
		"ExecStart=/home/pi/TFL/venv/bin/gunicorn -c gunicorn.conf.py --bind 0.0.0.0:5000 --workers 2 wsgi:app",
		"Restart=always",
		"RestartSec=5",
		"WantedBy=multi-user.target",
	} {
		assert.Contains(t, content, want)
	}
}

func TestInstallUnit_OverwritesAndReloads(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)
	unitPath := filepath.Join(st.Root, "etc/systemd/system/taxi-tracker.service")
	testutil.WriteFile(t, st.Root, "etc/systemd/system/taxi-tracker.service", "stale --bind 0.0.0.0:8080", 0o644)

	require.NoError(t, InstallUnit(rc, st))

	content := testutil.ReadFile(t, unitPath)
	assert.NotContains(t, content, "8080")
	assert.Contains(t, content, "0.0.0.0:5000")
	assert.Equal(t, []string{"systemctl daemon-reload"}, runner.Lines())
}

func TestServiceVerbs(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)

	require.NoError(t, Enable(rc, st))
	require.NoError(t, Start(rc, st))
	require.NoError(t, Restart(rc, st))
	require.NoError(t, Stop(rc, st))
	require.NoError(t, ReloadUnit(rc, st, "nginx"))

	assert.Equal(t, []string{
		"systemctl enable taxi-tracker",
		"systemctl start taxi-tracker",
		"systemctl restart taxi-tracker",
		"systemctl stop taxi-tracker",
		"systemctl reload nginx",
	}, runner.Lines())
}

func TestStatus_InactiveIsNotAnError(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)
	runner.On("systemctl status", func(execute.Options) (string, error) {
		out := "taxi-tracker.service - Taxi Fleet Ledger\n   Active: inactive (dead)"
		return out, &execute.CommandError{Command: "systemctl status", Code: 3, Output: out, Err: errors.New("exit status 3")}
	})

	out, err := Status(rc, st)
	require.NoError(t, err)
	assert.Contains(t, out, "inactive (dead)")
}

func TestStatus_OtherFailure(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)
	runner.Fail("systemctl status", "Failed to connect to bus", errors.New("exit status 1"))

	_, err := Status(rc, st)
	assert.Error(t, err)
}

func TestActiveState(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)
	assert.Equal(t, "unknown", ActiveState(rc, st))

	runner.Respond("systemctl is-active", "active\n")
	assert.Equal(t, "active", ActiveState(rc, st))
}

func TestLogs(t *testing.T) {
	rc := testutil.NewTestContext(t)
	st, runner := newState(t)

	var buf bytes.Buffer
	require.NoError(t, Logs(rc, st, &buf, 50, true))
	require.NoError(t, Logs(rc, st, &buf, 0, false))
	assert.Equal(t, []string{
		"journalctl -u taxi-tracker --no-pager -n 50 -f",
		"journalctl -u taxi-tracker --no-pager -n all",
	}, runner.Lines())
}
