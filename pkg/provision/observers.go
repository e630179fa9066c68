// pkg/provision/observers.go

package provision

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/journal"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// printerObserver writes one colour-coded line per stage.
type printerObserver struct {
	p     *output.Printer
	total int
}

func newPrinterObserver(p *output.Printer) *printerObserver {
	return &printerObserver{p: p}
}

func (o *printerObserver) RunStarted(_ *tfl_io.RuntimeContext, s *Summary, plan []Stage) {
	o.total = len(plan)
	o.p.Title("Provisioning taxi fleet ledger (run %s)", shortID(s.RunID))
	if !s.EdgeProxy {
		o.p.Info("Edge proxy not requested; nginx configuration will not be touched")
	}
}

func (o *printerObserver) StageFinished(_ *tfl_io.RuntimeContext, out StageOutcome) {
	prefix := fmt.Sprintf("[%d/%d] %s", out.Seq, o.total, out.Stage.Name)
	switch out.Result.Status {
	case StatusOK:
		o.p.Success("%s: %s", prefix, out.Result.Message)
	case StatusSkipped:
		o.p.Info("%s: %s", prefix, out.Result.Message)
	case StatusWarned:
		o.p.Warn("%s: %s", prefix, out.Result.Message)
	case StatusFailed:
		o.p.Error("%s", prefix)
		o.p.Plain("%s", strings.TrimSpace(out.Err.Error()))
	}
}

func (o *printerObserver) RunFinished(_ *tfl_io.RuntimeContext, s *Summary) {
	if s.Succeeded() {
		o.p.Success("Provisioning complete in %s", s.FinishedAt.Sub(s.StartedAt).Round(100*time.Millisecond))
		return
	}
	o.p.Error("Provisioning halted at %s. Fix the cause above and re-run `sudo tfl provision`.", s.FailedStage)
}

// journalObserver records the run. Journal failures are logged and never fail provisioning.
type journalObserver struct {
	j        *journal.Journal
	disabled bool
}

// journalCtx lets an interrupted run still record how it ended.
func journalCtx(rc *tfl_io.RuntimeContext) context.Context {
	return context.WithoutCancel(rc.Ctx)
}

func (o *journalObserver) warn(rc *tfl_io.RuntimeContext, err error) {
	otelzap.Ctx(rc.Ctx).Warn("Run journal unavailable, continuing without it", zap.Error(err))
	o.disabled = true
}

func (o *journalObserver) RunStarted(rc *tfl_io.RuntimeContext, s *Summary, _ []Stage) {
	hostname, _ := os.Hostname()
	run := &journal.Run{
		ID:          s.RunID,
		Hostname:    hostname,
		Version:     shared.Version,
		ServiceName: rc.Attributes["service"],
		EdgeProxy:   s.EdgeProxy,
		StartedAt:   s.StartedAt,
	}
	if err := o.j.BeginRun(journalCtx(rc), run); err != nil {
		o.warn(rc, err)
	}
}

func (o *journalObserver) StageFinished(rc *tfl_io.RuntimeContext, out StageOutcome) {
	if o.disabled {
		return
	}
	rec := &journal.StageRecord{
		RunID:      rc.RunID,
		Seq:        out.Seq,
		Stage:      string(out.Stage.ID),
		Status:     string(out.Result.Status),
		DurationMS: out.Duration.Milliseconds(),
		Message:    tfl_err.ExtractSummary(out.Result.Message, 3),
	}
	if out.Result.Status != StatusFailed {
		rec.Message = firstLine(out.Result.Message)
	}
	if err := o.j.RecordStage(journalCtx(rc), rec); err != nil {
		o.warn(rc, err)
	}
}

func (o *journalObserver) RunFinished(rc *tfl_io.RuntimeContext, s *Summary) {
	if o.disabled {
		return
	}
	outcome, errMsg := journal.OutcomeSuccess, ""
	if !s.Succeeded() {
		outcome, errMsg = journal.OutcomeFailed, s.Err.Error()
	}
	if err := o.j.FinishRun(journalCtx(rc), s.RunID, outcome, string(s.FailedStage), errMsg, s.FinishedAt); err != nil {
		o.warn(rc, err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
