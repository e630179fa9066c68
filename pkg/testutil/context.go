// pkg/testutil/context.go

package testutil

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap/zaptest"
)

// NewTestContext returns a RuntimeContext whose logger writes through t.
// The otelzap globals are replaced so otelzap.Ctx(rc.Ctx) logs to the test too.
func NewTestContext(t *testing.T) *tfl_io.RuntimeContext {
	t.Helper()

	logger := zaptest.NewLogger(t)
	restore := otelzap.ReplaceGlobals(otelzap.New(logger))
	t.Cleanup(restore)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rc := tfl_io.NewContext(ctx, t.Name())
	rc.Log = logger
	return rc
}
