// Package provision converges a host to the state "application installed,
// service enabled and running" through a fixed, fail-fast sequence of stages.
package provision

import (
	"strconv"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/journal"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Run executes the full plan for opts against st.
func Run(rc *tfl_io.RuntimeContext, st *host.State, opts Options) (*Summary, error) {
	logger := otelzap.Ctx(rc.Ctx)
	rc.Attributes["service"] = st.Settings.ServiceName
	rc.Attributes["edge_proxy"] = strconv.FormatBool(opts.EdgeProxy)

	observers := []Observer{newPrinterObserver(opts.printer())}

	if opts.JournalPath != "" {
		j, err := journal.Open(st.Path(opts.JournalPath))
		if err != nil {
			logger.Warn("Run journal unavailable, continuing without it", zap.Error(err))
		} else {
			defer func() {
				if err := j.Close(); err != nil {
					logger.Warn("Failed to close run journal", zap.Error(err))
				}
			}()
			observers = append(observers, &journalObserver{j: j})
		}
	}
	if opts.MetricsTextfile != "" {
		observers = append(observers, newMetricsObserver(st.Path(opts.MetricsTextfile)))
	}

	logger.Info("Starting provisioning",
		zap.String("install_path", st.InstallPath()),
		zap.String("service", st.Settings.ServiceName),
		zap.Bool("edge_proxy", opts.EdgeProxy),
		zap.Bool("skip_packages", opts.SkipPackages))

	seq := NewSequencer(Plan(opts), observers...)
	seq.EdgeProxy = opts.EdgeProxy
	return seq.Run(rc, st)
}
