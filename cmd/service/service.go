// cmd/service/service.go

package service

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/systemd"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagKeys = map[string]string{
	"service-name": "app.service_name",
}

// ServiceCmd groups the day-two verbs for the installed service.
var ServiceCmd = &cobra.Command{
	Use:   "service",
	Short: "Start, stop, restart or inspect the installed service",
	Long: `Manage the systemd service written by 'tfl provision'.

Examples:
  sudo tfl service restart
  tfl service status
  tfl service logs -f`,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the service",
	Args:  cobra.NoArgs,
	RunE:  control("start", systemd.Start, "Service %s started"),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the service",
	Args:  cobra.NoArgs,
	RunE:  control("stop", systemd.Stop, "Service %s stopped"),
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the service",
	Args:  cobra.NoArgs,
	RunE:  control("restart", systemd.Restart, "Service %s restarted"),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show systemctl status for the service",
	Args:  cobra.NoArgs,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		st, err := localState(cmd)
		if err != nil {
			return err
		}
		out, err := systemd.Status(rc, st)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	}),
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the service's journal",
	Args:  cobra.NoArgs,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		st, err := localState(cmd)
		if err != nil {
			return err
		}
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")
		err = systemd.Logs(rc, st, os.Stdout, lines, follow)
		if follow && rc.Ctx.Err() != nil {
			// Ctrl-C is how -f ends.
			return nil
		}
		return err
	}),
}

type controlFunc func(rc *tfl_io.RuntimeContext, st *host.State) error

func control(verb string, fn controlFunc, done string) func(cmd *cobra.Command, args []string) error {
	return tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		if err := platform.RequireRoot(verb + " the service"); err != nil {
			return err
		}
		st, err := localState(cmd)
		if err != nil {
			return err
		}
		rc.Log.Info("Changing service state", zap.String("verb", verb), zap.String("service", st.Settings.ServiceName))
		if err := fn(rc, st); err != nil {
			return err
		}
		output.Stdout().Success(done, st.Settings.ServiceName)
		return nil
	})
}

func localState(cmd *cobra.Command) (*host.State, error) {
	cfg, _, err := tfl_cli.LoadConfig(cmd, flagKeys)
	if err != nil {
		return nil, err
	}
	st := host.NewState("/", execute.DefaultRunner, cfg.Host, cfg.App)
	st.Out = os.Stderr
	return st, nil
}

func init() {
	ServiceCmd.PersistentFlags().String("service-name", host.DefaultSettings().ServiceName, "systemd service name")

	logsCmd.Flags().BoolP("follow", "f", false, "Follow the journal")
	logsCmd.Flags().IntP("lines", "n", 100, "Number of lines to show (0 for all)")

	ServiceCmd.AddCommand(startCmd, stopCmd, restartCmd, statusCmd, logsCmd)
}
