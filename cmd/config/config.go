// cmd/config/config.go

package config

import (
	"fmt"
	"os"

	cfgpkg "github.com/CodeMonkeyCybersecurity/tfl/pkg/config"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/spf13/cobra"
)

// ConfigCmd inspects the resolved configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect tfl configuration",
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved host profile and app settings as YAML",
	Long: `Print the configuration every command would use, after applying defaults,
tfl.yaml and TFL_* environment variables (for example TFL_HOST_ADDRESS).`,
	Args: cobra.NoArgs,
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, v, err := tfl_cli.LoadConfig(cmd, nil)
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return tfl_err.NewInternalError("rendering configuration", err)
		}
		source := cfgpkg.Source(v)
		if source == "" {
			source = "defaults and environment"
		}
		fmt.Fprintf(os.Stdout, "# source: %s\n", source)
		_, err = os.Stdout.Write(out)
		return err
	}),
}

func init() {
	ConfigCmd.AddCommand(showCmd)
}
