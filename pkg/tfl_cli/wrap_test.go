package tfl_cli

import (
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PassesContext(t *testing.T) {
	var got *tfl_io.RuntimeContext
	cmd := &cobra.Command{Use: "status"}
	run := Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		got = rc
		return nil
	})

	require.NoError(t, run(cmd, nil))
	require.NotNil(t, got)
	assert.Equal(t, "status", got.Command)
}

func TestWrap_RecoversPanic(t *testing.T) {
	cmd := &cobra.Command{Use: "boom"}
	run := Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		panic("unexpected nil host state")
	})

	err := run(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected nil host state")
}

func TestWrap_PreservesUserErrors(t *testing.T) {
	cmd := &cobra.Command{Use: "transfer"}
	userErr := tfl_err.NewUserError("nothing to transfer")
	run := Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return userErr
	})

	err := run(cmd, nil)
	assert.Same(t, userErr, err)

	plain := errors.New("ssh exited 255")
	run = Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return plain
	})
	err = run(cmd, nil)
	assert.ErrorIs(t, err, plain)
}
