package tfl_err

import (
	"errors"
	"testing"

	cerr "github.com/cockroachdb/errors"
)

func TestWrapStageError(t *testing.T) {
	t.Parallel()

	if WrapStageError(nil) != nil {
		t.Fatal("WrapStageError(nil) should return nil")
	}

	base := errors.New("apt-get exited 100")
	wrapped := WrapStageError(base)
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should preserve the original error")
	}

	hints := cerr.GetAllHints(wrapped)
	if len(hints) == 0 {
		t.Fatal("expected a re-run hint")
	}
}

func TestWrapValidationError(t *testing.T) {
	t.Parallel()

	base := errors.New("host.address is required")
	wrapped := WrapValidationError(base)
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should preserve the original error")
	}
	if len(cerr.GetAllHints(wrapped)) == 0 {
		t.Error("expected validation hint")
	}
}
