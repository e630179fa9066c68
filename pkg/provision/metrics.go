// pkg/provision/metrics.go

package provision

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// metricsObserver writes run gauges for node_exporter's textfile collector
// once the run finishes. Write failures are logged only.
type metricsObserver struct {
	path     string
	registry *prometheus.Registry

	stageDuration *prometheus.GaugeVec
	lastRun       prometheus.Gauge
	lastSuccess   prometheus.Gauge
	runDuration   prometheus.Gauge
}

func newMetricsObserver(path string) *metricsObserver {
	m := &metricsObserver{
		path:     path,
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: shared.TflID,
			Subsystem: "provision",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each provisioning stage in the last run.",
		}, []string{"stage", "status"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: shared.TflID,
			Subsystem: "provision",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last provisioning run finished.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: shared.TflID,
			Subsystem: "provision",
			Name:      "last_run_success",
			Help:      "1 if the last provisioning run completed, 0 if it halted.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: shared.TflID,
			Subsystem: "provision",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last provisioning run.",
		}),
	}
	m.registry.MustRegister(m.stageDuration, m.lastRun, m.lastSuccess, m.runDuration)
	return m
}

func (m *metricsObserver) RunStarted(*tfl_io.RuntimeContext, *Summary, []Stage) {}

func (m *metricsObserver) StageFinished(_ *tfl_io.RuntimeContext, o StageOutcome) {
	m.stageDuration.WithLabelValues(string(o.Stage.ID), string(o.Result.Status)).Set(o.Duration.Seconds())
}

func (m *metricsObserver) RunFinished(rc *tfl_io.RuntimeContext, s *Summary) {
	m.lastRun.Set(float64(s.FinishedAt.Unix()))
	m.runDuration.Set(s.FinishedAt.Sub(s.StartedAt).Seconds())
	if s.Succeeded() {
		m.lastSuccess.Set(1)
	} else {
		m.lastSuccess.Set(0)
	}

	logger := otelzap.Ctx(rc.Ctx)
	if err := os.MkdirAll(filepath.Dir(m.path), shared.DirPermStandard); err != nil {
		logger.Warn("Cannot create metrics directory", zap.String("path", m.path), zap.Error(err))
		return
	}
	if err := prometheus.WriteToTextfile(m.path, m.registry); err != nil {
		logger.Warn("Cannot write metrics textfile", zap.String("path", m.path), zap.Error(err))
		return
	}
	logger.Info("Metrics written", zap.String("path", m.path))
}
