// pkg/provision/sequencer.go

package provision

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/telemetry"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StageOutcome is passed to observers after each stage.
type StageOutcome struct {
	Seq      int
	Stage    Stage
	Result   Result
	Err      error
	Duration time.Duration
}

// Summary describes a whole run.
type Summary struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	EdgeProxy   bool
	Outcomes    []StageOutcome
	FailedStage StageID
	Err         error
}

func (s *Summary) Succeeded() bool {
	return s.Err == nil
}

// Observer is notified as the run progresses. Observers must not fail the run.
type Observer interface {
	RunStarted(rc *tfl_io.RuntimeContext, s *Summary, plan []Stage)
	StageFinished(rc *tfl_io.RuntimeContext, o StageOutcome)
	RunFinished(rc *tfl_io.RuntimeContext, s *Summary)
}

// Sequencer runs stages strictly in order and stops at the first failure.
// Nothing is retried; re-running from the start is the recovery path.
type Sequencer struct {
	Stages    []Stage
	Observers []Observer
	EdgeProxy bool
	now       func() time.Time
}

func NewSequencer(stages []Stage, observers ...Observer) *Sequencer {
	return &Sequencer{Stages: stages, Observers: observers, now: time.Now}
}

func (s *Sequencer) Run(rc *tfl_io.RuntimeContext, st *host.State) (*Summary, error) {
	logger := otelzap.Ctx(rc.Ctx)
	if s.now == nil {
		s.now = time.Now
	}

	summary := &Summary{RunID: rc.RunID, StartedAt: s.now(), EdgeProxy: s.EdgeProxy}
	for _, o := range s.Observers {
		o.RunStarted(rc, summary, s.Stages)
	}

	for i, stage := range s.Stages {
		if err := rc.Ctx.Err(); err != nil {
			logger.Warn("Provisioning interrupted before stage", zap.String("stage", string(stage.ID)), zap.Error(err))
			summary.FailedStage = stage.ID
			summary.Err = tfl_err.WrapStageError(&StageError{Stage: stage.ID, Err: tfl_err.NewUserCancelledError("provision")})
			break
		}

		outcome := s.runStage(rc, st, i+1, stage)
		summary.Outcomes = append(summary.Outcomes, outcome)
		for _, o := range s.Observers {
			o.StageFinished(rc, outcome)
		}

		if outcome.Err != nil {
			logger.Error("Stage failed, halting provisioning",
				zap.String("stage", string(stage.ID)),
				zap.Error(outcome.Err))
			cause := outcome.Err
			if rc.Ctx.Err() != nil {
				// The tool was killed by the interrupt; its own exit status is meaningless.
				cause = cerr.WithSecondaryError(tfl_err.NewUserCancelledError("provision"), outcome.Err)
			}
			summary.FailedStage = stage.ID
			summary.Err = tfl_err.WrapStageError(&StageError{Stage: stage.ID, Err: cause})
			break
		}
	}

	summary.FinishedAt = s.now()
	for _, o := range s.Observers {
		o.RunFinished(rc, summary)
	}
	return summary, summary.Err
}

func (s *Sequencer) runStage(rc *tfl_io.RuntimeContext, st *host.State, seq int, stage Stage) StageOutcome {
	ctx, span := telemetry.Start(rc.Ctx, "provision."+string(stage.ID),
		attribute.String("stage", string(stage.ID)),
		attribute.Int("seq", seq))
	defer span.End()

	stageRC := *rc
	stageRC.Ctx = ctx
	stageRC.Log = rc.Log.With(zap.String("stage", string(stage.ID)))

	otelzap.Ctx(ctx).Info("Stage starting", zap.String("stage", string(stage.ID)), zap.String("name", stage.Name))

	start := s.now()
	res, err := stage.Run(&stageRC, st)
	duration := s.now().Sub(start)

	if err != nil {
		span.RecordError(err)
		res = Result{Status: StatusFailed, Message: err.Error()}
	}
	span.SetAttributes(attribute.String("status", string(res.Status)))

	otelzap.Ctx(ctx).Info("Stage finished",
		zap.String("stage", string(stage.ID)),
		zap.String("status", string(res.Status)),
		zap.Duration("duration", duration))

	return StageOutcome{Seq: seq, Stage: stage, Result: res, Err: err, Duration: duration}
}
