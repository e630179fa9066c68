// pkg/tfl_err/wrap.go

package tfl_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapValidationError points the operator at the configuration sources.
func WrapValidationError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "check tfl.yaml, TFL_* environment variables and command flags")
}

// WrapStageError attaches the re-run hint every provisioning failure carries.
func WrapStageError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "fix the cause above and re-run `tfl provision`; completed stages are safe to repeat")
}
