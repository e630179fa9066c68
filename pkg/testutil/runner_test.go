package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner_RecordsAndMatches(t *testing.T) {
	r := NewFakeRunner().
		Respond("hostname -I", "192.168.1.20 \n").
		Fail("nginx -t", "emerg: unexpected }", errors.New("exit status 1"))

	ctx := context.Background()
	_, err := r.Run(ctx, execute.Options{Command: "apt-get", Args: []string{"update"}})
	require.NoError(t, err)

	out, err := r.Run(ctx, execute.Options{Command: "hostname", Args: []string{"-I"}})
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20 \n", out)

	_, err = r.Run(ctx, execute.Options{Command: "nginx", Args: []string{"-t"}})
	var cmdErr *execute.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Output, "unexpected }")

	assert.Equal(t, []string{"apt-get update", "hostname -I", "nginx -t"}, r.Lines())
	assert.True(t, r.Ran("apt-get"))
	assert.False(t, r.Ran("systemctl"))
	assert.Equal(t, 1, r.Index("hostname"))
	assert.Equal(t, -1, r.Index("scp"))
}
