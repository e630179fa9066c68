// pkg/tfl_cli/config.go

package tfl_cli

import (
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/config"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFlag is the persistent flag naming an explicit tfl.yaml.
const ConfigFlag = "config"

// LoadConfig resolves configuration for cmd: defaults, then tfl.yaml, then
// TFL_* environment variables, then the flags named in keys.
func LoadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, *viper.Viper, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags(), keys); err != nil {
		return nil, nil, tfl_err.NewInternalError("binding command flags to configuration", err)
	}
	file, _ := cmd.Flags().GetString(ConfigFlag)
	cfg, err := config.Load(v, file)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}
