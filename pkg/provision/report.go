// pkg/provision/report.go

package provision

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/systemd"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// AccessURLs are printed at the end of a run.
type AccessURLs struct {
	Direct string
	Proxy  string
}

func accessURLs(address string, st *host.State, edgeProxy bool) AccessURLs {
	urls := AccessURLs{Direct: fmt.Sprintf("http://%s:%d", address, st.Settings.BindPort)}
	if edgeProxy {
		urls.Proxy = fmt.Sprintf("http://%s/", address)
	}
	return urls
}

// primaryAddress returns the first address from `hostname -I`.
func primaryAddress(rc *tfl_io.RuntimeContext, st *host.State) (string, error) {
	out, err := st.Runner.Run(rc.Ctx, execute.Options{Command: "hostname", Args: []string{"-I"}, Capture: true})
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return "", cerr.New("hostname -I returned no addresses")
	}
	return fields[0], nil
}

// CheatSheet lists follow-up management commands for the service.
func CheatSheet(st *host.State, edgeProxy bool) [][2]string {
	svc := st.Settings.ServiceName
	rows := [][2]string{
		{"tfl service status", "sudo systemctl status " + svc},
		{"tfl service start", "sudo systemctl start " + svc},
		{"tfl service stop", "sudo systemctl stop " + svc},
		{"tfl service restart", "sudo systemctl restart " + svc},
		{"tfl service logs -f", "sudo journalctl -u " + svc + " -f"},
		{"tfl history", "previous provisioning runs"},
	}
	if edgeProxy {
		rows = append(rows, [2]string{"sudo nginx -t", "sudo systemctl reload nginx"})
	}
	return rows
}

func reportStage(opts Options) StageFunc {
	return func(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
		logger := otelzap.Ctx(rc.Ctx)
		p := opts.printer()
		var problems []string

		status, err := systemd.Status(rc, st)
		if err != nil {
			logger.Warn("Could not query service status", zap.Error(err))
			problems = append(problems, "service status unavailable")
		}

		address, err := primaryAddress(rc, st)
		if err != nil {
			logger.Warn("Could not determine host address", zap.Error(err))
			problems = append(problems, "host address unknown")
			address = "localhost"
		}
		urls := accessURLs(address, st, opts.EdgeProxy)

		p.Title("Service status")
		if s := strings.TrimSpace(status); s != "" {
			p.Plain("%s", s)
		}

		p.Title("Access")
		pairs := [][2]string{{"Direct", urls.Direct}}
		if urls.Proxy != "" {
			pairs = append(pairs, [2]string{"Via nginx", urls.Proxy})
		}
		_ = output.KeyValue(p.Writer(), pairs)

		p.Title("Management commands")
		table := output.NewTableTo(p.Writer()).WithBorder(false)
		for _, row := range CheatSheet(st, opts.EdgeProxy) {
			table.AddRow(row[0], row[1])
		}
		_ = table.Render()

		state := systemd.ActiveState(rc, st)
		if state != "active" {
			logger.Warn("Service is not active after start", zap.String("state", state))
			problems = append(problems, "not active, check `tfl service logs`")
		}
		if len(problems) > 0 {
			return Warned("%s is %s (%s)", st.Settings.ServiceName, state, strings.Join(problems, ", ")), nil
		}
		return Done("%s is %s at %s", st.Settings.ServiceName, state, urls.Direct), nil
	}
}
