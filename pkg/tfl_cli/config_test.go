package tfl_cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := &cobra.Command{Use: "provision"}
	cmd.Flags().String(ConfigFlag, "", "")
	cmd.Flags().String("edge-proxy", "ask", "")
	cmd.Flags().String("service-name", "taxi-tracker", "")
	require.NoError(t, cmd.ParseFlags([]string{"--edge-proxy=no", "--service-name=fleet"}))

	cfg, v, err := LoadConfig(cmd, map[string]string{
		"edge-proxy":   "provision.edge_proxy",
		"service-name": "app.service_name",
	})
	require.NoError(t, err)
	assert.Equal(t, "no", cfg.Provision.EdgeProxy)
	assert.Equal(t, "fleet", cfg.App.ServiceName)
	assert.Empty(t, v.ConfigFileUsed())
}

func TestLoadConfig_UnknownFlagIsInternalError(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	_, _, err := LoadConfig(cmd, map[string]string{"missing": "host.user"})
	assert.Error(t, err)
}
