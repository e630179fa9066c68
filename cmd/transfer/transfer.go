// cmd/transfer/transfer.go

package transfer

import (
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/transfer"
	"github.com/spf13/cobra"
)

var flagKeys = map[string]string{
	"host":     "host.address",
	"user":     "host.user",
	"path":     "host.install_path",
	"port":     "host.ssh_port",
	"identity": "host.identity_file",
	"source":   "transfer.source_dir",
}

// TransferCmd copies the application files to the target host.
var TransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Copy the application to the Raspberry Pi over scp",
	Long: `Copy every file and directory the application needs to the target host.

Entries are copied one at a time. A failed entry does not stop the others;
the command exits non-zero after the summary if any entry failed. Optional
directories (static, instance) are skipped when absent.

Examples:
  tfl transfer --host 192.168.1.100
  tfl transfer --host pi.local --user pi --path /home/pi/TFL --identity ~/.ssh/id_ed25519`,
	Args: cobra.NoArgs,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, _, err := tfl_cli.LoadConfig(cmd, flagKeys)
		if err != nil {
			return err
		}
		if err := transfer.CheckClients(execute.LookPath); err != nil {
			return err
		}
		if err := cfg.Host.ValidateRemote(); err != nil {
			return err
		}

		_, err = transfer.Run(rc, transfer.Config{
			SourceDir: cfg.Transfer.SourceDir,
			Profile:   cfg.Host,
			Copier:    transfer.NewSCPCopier(execute.DefaultRunner, cfg.Host),
			Printer:   output.Stdout(),
		})
		return err
	}),
}

func init() {
	d := host.DefaultProfile()
	f := TransferCmd.Flags()
	f.String("host", "", "Address or hostname of the target")
	f.String("user", d.User, "SSH user on the target")
	f.String("path", d.InstallPath, "Install path on the target")
	f.Int("port", d.SSHPort, "SSH port")
	f.String("identity", "", "SSH private key file")
	f.String("source", ".", "Local directory containing the application")
}
