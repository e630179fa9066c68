/* cmd/root.go */

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CodeMonkeyCybersecurity/tfl/cmd/config"
	"github.com/CodeMonkeyCybersecurity/tfl/cmd/history"
	"github.com/CodeMonkeyCybersecurity/tfl/cmd/provision"
	"github.com/CodeMonkeyCybersecurity/tfl/cmd/service"
	"github.com/CodeMonkeyCybersecurity/tfl/cmd/transfer"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/telemetry"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for tfl.
var RootCmd = &cobra.Command{
	Use:   "tfl",
	Short: "Deploy the Taxi Fleet Ledger web application to a Raspberry Pi",
	Long: `tfl copies the Taxi Fleet Ledger application to a host and provisions it there:
system packages, a Python virtual environment, the environment file, the database,
a systemd service and optionally an nginx reverse proxy.

Typical use:
  tfl transfer --host 192.168.1.100          # on your workstation
  sudo tfl provision                         # on the Raspberry Pi`,
	Version:       shared.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		tfl_err.SetDebugMode(debug)
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.PersistentFlags().String(tfl_cli.ConfigFlag, "", "Path to tfl.yaml (default: ./tfl.yaml, ~/.config/tfl, /etc/tfl)")
	RootCmd.PersistentFlags().Bool("debug", false, "Print stack traces for errors")

	for _, subCmd := range []*cobra.Command{
		provision.ProvisionCmd,
		transfer.TransferCmd,
		service.ServiceCmd,
		history.HistoryCmd,
		config.ConfigCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command, then exits with the
// code of the error category or of the external tool that failed.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	RegisterCommands()
	err := RootCmd.ExecuteContext(ctx)
	stop()

	code := tfl_err.GetExitCode(err)
	tfl_err.PrintError(os.Stderr, err)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if serr := telemetry.Shutdown(shutdownCtx); serr != nil {
		logger.L().Warn("Failed to flush telemetry", zap.Error(serr))
	}
	cancel()
	if serr := logger.Sync(); serr != nil {
		logger.L().Debug("Failed to flush logs", zap.Error(serr))
	}
	os.Exit(code)
}
