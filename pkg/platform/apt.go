// pkg/platform/apt.go

package platform

import (
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// AptUpdate refreshes the package index.
func AptUpdate(rc *tfl_io.RuntimeContext, st *host.State) error {
	otelzap.Ctx(rc.Ctx).Info("Updating apt package index")
	_, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"update"},
		Env:     aptEnv,
		Stream:  st.Out,
	})
	return err
}

// AptInstall installs packages non-interactively. apt skips packages that are
// already at the candidate version.
func AptInstall(rc *tfl_io.RuntimeContext, st *host.State, packages ...string) error {
	otelzap.Ctx(rc.Ctx).Info("Installing system packages", zap.Strings("packages", packages))
	args := append([]string{"install", "-y"}, packages...)
	_, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    args,
		Env:     aptEnv,
		Stream:  st.Out,
	})
	return err
}
