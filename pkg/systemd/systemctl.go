// pkg/systemd/systemctl.go

package systemd

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// RunSystemctl executes systemctl with args through the host's runner.
func RunSystemctl(rc *tfl_io.RuntimeContext, st *host.State, args ...string) error {
	logger := otelzap.Ctx(rc.Ctx)
	logger.Debug("Executing systemctl command", zap.Strings("args", args))

	_, err := st.Runner.Run(rc.Ctx, execute.Options{Command: "systemctl", Args: args})
	if err != nil {
		return err
	}
	logger.Debug("Systemctl command completed successfully", zap.Strings("args", args))
	return nil
}

func DaemonReload(rc *tfl_io.RuntimeContext, st *host.State) error {
	return RunSystemctl(rc, st, "daemon-reload")
}

func Enable(rc *tfl_io.RuntimeContext, st *host.State) error {
	return RunSystemctl(rc, st, "enable", st.Settings.ServiceName)
}

func Start(rc *tfl_io.RuntimeContext, st *host.State) error {
	return RunSystemctl(rc, st, "start", st.Settings.ServiceName)
}

func Stop(rc *tfl_io.RuntimeContext, st *host.State) error {
	return RunSystemctl(rc, st, "stop", st.Settings.ServiceName)
}

// Restart starts the unit if stopped, and restarts it so a changed descriptor takes effect.
func Restart(rc *tfl_io.RuntimeContext, st *host.State) error {
	return RunSystemctl(rc, st, "restart", st.Settings.ServiceName)
}

func ReloadUnit(rc *tfl_io.RuntimeContext, st *host.State, unit string) error {
	return RunSystemctl(rc, st, "reload", unit)
}

// Status returns `systemctl status` output. systemctl exits 3 for an inactive
// unit, which is a status rather than a failure, so output is returned with a
// nil error in that case.
func Status(rc *tfl_io.RuntimeContext, st *host.State) (string, error) {
	out, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"status", st.Settings.ServiceName, "--no-pager"},
		Capture: true,
	})
	var cmdErr *execute.CommandError
	if err != nil && errors.As(err, &cmdErr) && cmdErr.Code == 3 {
		return out, nil
	}
	return out, err
}

// ActiveState returns the first line of `systemctl is-active`, e.g. "active" or "failed".
func ActiveState(rc *tfl_io.RuntimeContext, st *host.State) string {
	out, _ := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-active", st.Settings.ServiceName},
		Capture: true,
	})
	state := strings.TrimSpace(out)
	if state == "" {
		return "unknown"
	}
	if i := strings.IndexByte(state, '\n'); i >= 0 {
		state = state[:i]
	}
	return state
}

// Logs streams the unit's journal to w. follow blocks until the context ends.
func Logs(rc *tfl_io.RuntimeContext, st *host.State, w io.Writer, lines int, follow bool) error {
	n := "all"
	if lines > 0 {
		n = strconv.Itoa(lines)
	}
	args := []string{"-u", st.Settings.ServiceName, "--no-pager", "-n", n}
	if follow {
		args = append(args, "-f")
	}
	_, err := st.Runner.Run(rc.Ctx, execute.Options{Command: "journalctl", Args: args, Stream: w})
	return err
}
