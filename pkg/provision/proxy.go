// pkg/provision/proxy.go

package provision

import (
	"io"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/config"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ResolveEdgeProxy turns the configured mode into a decision before any stage
// runs. "ask" prompts once when interactive and answers no otherwise.
func ResolveEdgeProxy(rc *tfl_io.RuntimeContext, mode string, in io.Reader, out io.Writer, interactive bool) (bool, error) {
	logger := otelzap.Ctx(rc.Ctx)

	switch mode {
	case config.EdgeProxyYes:
		return true, nil
	case config.EdgeProxyNo:
		return false, nil
	case config.EdgeProxyAsk, "":
	default:
		return false, tfl_err.NewValidationError("unknown edge proxy mode "+mode, "use --edge-proxy=ask|yes|no")
	}

	if !interactive {
		logger.Info("stdin is not a terminal, not configuring the edge proxy",
			zap.String("hint", "pass --edge-proxy=yes to configure it unattended"))
		return false, nil
	}
	return interaction.PromptYesNo(rc.Ctx, in, out, "Configure nginx as a reverse proxy on port 80?", false)
}
