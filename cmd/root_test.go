package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommands(t *testing.T) {
	RegisterCommands()

	for _, path := range [][]string{
		{"provision"},
		{"transfer"},
		{"service", "start"},
		{"service", "stop"},
		{"service", "restart"},
		{"service", "status"},
		{"service", "logs"},
		{"history"},
		{"config", "show"},
	} {
		found, _, err := RootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}

	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("debug"))

	provision, _, err := RootCmd.Find([]string{"provision"})
	require.NoError(t, err)
	for _, name := range []string{"install-path", "edge-proxy", "skip-packages", "metrics-textfile", "journal"} {
		assert.NotNil(t, provision.Flags().Lookup(name), name)
	}
}
