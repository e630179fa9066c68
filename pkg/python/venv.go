// pkg/python/venv.go

package python

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// VenvExists reports whether the interpreter of the install's venv is present.
func VenvExists(st *host.State) bool {
	_, err := os.Stat(st.Path(st.VenvBin("python")))
	return err == nil
}

// CreateVenv builds the virtual environment. created is false when one
// already exists, in which case nothing is run.
func CreateVenv(rc *tfl_io.RuntimeContext, st *host.State) (created bool, err error) {
	logger := otelzap.Ctx(rc.Ctx)

	if VenvExists(st) {
		logger.Info("Virtual environment already present", zap.String("path", st.VenvDir()))
		return false, nil
	}

	logger.Info("Creating virtual environment", zap.String("path", st.VenvDir()))
	if _, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "python3",
		Args:    []string{"-m", "venv", st.VenvDir()},
		Dir:     st.InstallPath(),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// Pip runs the venv's pip with args in the install directory.
func Pip(rc *tfl_io.RuntimeContext, st *host.State, args ...string) error {
	otelzap.Ctx(rc.Ctx).Info("Running pip", zap.Strings("args", args))
	_, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: st.VenvBin("pip"),
		Args:    args,
		Dir:     st.InstallPath(),
		Stream:  st.Out,
	})
	return err
}

// InstallRequirements upgrades pip, installs requirements.txt, then the WSGI server.
func InstallRequirements(rc *tfl_io.RuntimeContext, st *host.State) error {
	steps := [][]string{
		{"install", "--upgrade", "pip"},
		{"install", "-r", st.RequirementsFile()},
		{"install", "gunicorn"},
	}
	for _, args := range steps {
		if err := Pip(rc, st, args...); err != nil {
			return err
		}
	}
	return nil
}

// RunSnippet executes code with the venv interpreter inside the install directory.
func RunSnippet(rc *tfl_io.RuntimeContext, st *host.State, code string, env []string) (string, error) {
	return st.Runner.Run(rc.Ctx, execute.Options{
		Command: st.VenvBin("python"),
		Args:    []string{"-c", code},
		Dir:     st.InstallPath(),
		Env:     env,
		Capture: true,
	})
}
