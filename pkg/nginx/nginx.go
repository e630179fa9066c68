// pkg/nginx/nginx.go

package nginx

import (
	_ "embed"
	"fmt"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/systemd"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/templates"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

//go:embed site.conf.tmpl
var siteTemplate string

// Site is the data rendered into the virtual host.
type Site struct {
	Upstream  string
	StaticDir string
}

// SiteFor proxies to the loopback address on the service's bound port.
func SiteFor(st *host.State) Site {
	return Site{
		Upstream:  fmt.Sprintf("http://127.0.0.1:%d", st.Settings.BindPort),
		StaticDir: st.StaticDir(),
	}
}

func RenderSite(s Site) (string, error) {
	return templates.Render("site", siteTemplate, s)
}

// Result describes how far Configure got.
type Result struct {
	Valid    bool
	Reloaded bool
	// Output holds `nginx -t` output when validation failed.
	Output string
}

// InstallSite writes the site, enables it and disables the distribution's default site.
func InstallSite(rc *tfl_io.RuntimeContext, st *host.State) error {
	logger := otelzap.Ctx(rc.Ctx)

	content, err := RenderSite(SiteFor(st))
	if err != nil {
		return err
	}

	ops := fileops.NewFileSystemOperations(rc.Log)
	logger.Info("Installing nginx site", zap.String("path", st.SitePath()))
	if err := ops.WriteFile(rc.Ctx, st.Path(st.SitePath()), []byte(content), shared.FilePermStandard); err != nil {
		return err
	}
	if err := ops.Symlink(rc.Ctx, st.SitePath(), st.Path(st.SiteLink())); err != nil {
		return err
	}
	return ops.Remove(rc.Ctx, st.Path(shared.NginxDefaultSiteLink))
}

// Validate runs `nginx -t` and returns its output.
func Validate(rc *tfl_io.RuntimeContext, st *host.State) (string, error) {
	return st.Runner.Run(rc.Ctx, execute.Options{
		Command: "nginx",
		Args:    []string{"-t"},
		Capture: true,
	})
}

// Configure installs the site, then reloads nginx only if the configuration
// validates. A validation failure is reported in Result, not as an error;
// errors are reserved for failures to write the site or reload.
func Configure(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if err := InstallSite(rc, st); err != nil {
		return Result{}, err
	}

	out, err := Validate(rc, st)
	if err != nil {
		logger.Warn("nginx configuration test failed, not reloading", zap.String("output", out), zap.Error(err))
		return Result{Valid: false, Output: out}, nil
	}

	if err := systemd.ReloadUnit(rc, st, "nginx"); err != nil {
		return Result{Valid: true}, err
	}
	return Result{Valid: true, Reloaded: true}, nil
}
