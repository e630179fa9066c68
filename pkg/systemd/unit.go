// pkg/systemd/unit.go

package systemd

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/templates"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

//go:embed unit.service.tmpl
var unitTemplate string

// Unit is the data rendered into the service descriptor.
type Unit struct {
	Description      string
	User             string
	Group            string
	WorkingDirectory string
	EnvironmentFile  string
	BinDir           string
	ExecStart        string
}

// UnitFor derives the descriptor from the host state. The bind address and
// worker count are passed on the command line so they override gunicorn.conf.py.
func UnitFor(st *host.State) Unit {
	execStart := strings.Join([]string{
		st.VenvBin("gunicorn"),
		"-c", shared.GunicornConfigFile,
		"--bind", fmt.Sprintf("%s:%d", st.Settings.BindHost, st.Settings.BindPort),
		"--workers", fmt.Sprint(st.Settings.Workers),
		shared.WSGIEntryPoint,
	}, " ")

	return Unit{
		Description:      "Taxi Fleet Ledger web application (" + st.Settings.ServiceName + ")",
		User:             st.Profile.User,
		Group:            st.Profile.User,
		WorkingDirectory: st.InstallPath(),
		EnvironmentFile:  st.EnvFile(),
		BinDir:           filepath.Dir(st.VenvBin("gunicorn")),
		ExecStart:        execStart,
	}
}

func RenderUnit(u Unit) (string, error) {
	return templates.Render("unit", unitTemplate, u)
}

// InstallUnit overwrites the descriptor and reloads systemd so it is picked up.
func InstallUnit(rc *tfl_io.RuntimeContext, st *host.State) error {
	logger := otelzap.Ctx(rc.Ctx)

	content, err := RenderUnit(UnitFor(st))
	if err != nil {
		return err
	}

	logger.Info("Installing service descriptor", zap.String("path", st.UnitPath()))
	ops := fileops.NewFileSystemOperations(rc.Log)
	if err := ops.WriteFile(rc.Ctx, st.Path(st.UnitPath()), []byte(content), shared.FilePermStandard); err != nil {
		return err
	}
	return DaemonReload(rc, st)
}
