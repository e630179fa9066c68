// cmd/provision/provision.go

package provision

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/provision"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagKeys = map[string]string{
	"install-path":     "host.install_path",
	"user":             "host.user",
	"service-name":     "app.service_name",
	"port":             "app.bind_port",
	"workers":          "app.workers",
	"edge-proxy":       "provision.edge_proxy",
	"skip-packages":    "provision.skip_packages",
	"metrics-textfile": "provision.metrics_textfile",
	"journal":          "provision.journal_path",
}

// ProvisionCmd turns the local host into a running taxi tracker deployment.
var ProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Install and start the taxi tracker on this host",
	Long: `Run every provisioning stage in order on the local host:

  PKG_UPDATE, PKG_INSTALL, ENV_SETUP, DEP_INSTALL, ENV_FILE, DB_INIT,
  SERVICE_INSTALL, SERVICE_ENABLE, SERVICE_START, [PROXY_CONFIGURE],
  PERMISSIONS, REPORT

The first failing stage stops the run. Re-running is safe: the virtual
environment, environment file and database are kept if they already exist.

Must be run as root from the directory the application was transferred to,
or with --install-path pointing at it.

Examples:
  sudo tfl provision
  sudo tfl provision --edge-proxy=yes
  sudo tfl provision --skip-packages --metrics-textfile /var/lib/node_exporter/textfile_collector/tfl.prom`,
	Args: cobra.NoArgs,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, _, err := tfl_cli.LoadConfig(cmd, flagKeys)
		if err != nil {
			return err
		}
		if err := platform.RequireRoot("provision the host"); err != nil {
			return err
		}

		edgeProxy, err := provision.ResolveEdgeProxy(rc, cfg.Provision.EdgeProxy,
			os.Stdin, os.Stderr, interaction.IsTerminal(os.Stdin))
		if err != nil {
			return err
		}

		rc.Log.Info("Starting provisioning",
			zap.String("install_path", cfg.Host.InstallPath),
			zap.String("service", cfg.App.ServiceName),
			zap.Bool("edge_proxy", edgeProxy))

		st := host.NewState("/", execute.DefaultRunner, cfg.Host, cfg.App)
		st.Out = os.Stderr

		_, err = provision.Run(rc, st, provision.Options{
			EdgeProxy:       edgeProxy,
			SkipPackages:    cfg.Provision.SkipPackages,
			MetricsTextfile: cfg.Provision.MetricsTextfile,
			JournalPath:     cfg.Provision.JournalPath,
			Printer:         output.Stdout(),
		})
		return err
	}),
}

func init() {
	d := host.DefaultProfile()
	s := host.DefaultSettings()
	f := ProvisionCmd.Flags()
	f.String("install-path", d.InstallPath, "Directory holding the transferred application")
	f.String("user", d.User, "Account the service runs as and that owns the install path")
	f.String("service-name", s.ServiceName, "systemd service and nginx site name")
	f.Int("port", s.BindPort, "Port gunicorn binds to")
	f.Int("workers", s.Workers, "Number of gunicorn workers")
	f.String("edge-proxy", "ask", "Configure nginx in front of the app: ask, yes or no")
	f.Bool("skip-packages", false, "Skip apt-get update/install")
	f.String("metrics-textfile", "", "Write stage metrics to this node_exporter textfile")
	f.String("journal", shared.TflJournalFile, "Run journal database (empty disables it)")
}
