// pkg/tfl_cli/wrap.go

package tfl_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap gives a command handler a RuntimeContext, panic recovery and outcome logging.
func Wrap(fn func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		rc := tfl_io.NewContext(parent, cmd.CommandPath())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Command invoked", zap.Strings("args", args))

		err = fn(rc, cmd, args)
		if err != nil && !tfl_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
