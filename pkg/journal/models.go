// pkg/journal/models.go

package journal

import "time"

// Run outcomes.
const (
	OutcomeRunning = "running"
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Run is one invocation of `tfl provision`.
type Run struct {
	ID          string `gorm:"primaryKey;size:36"`
	Hostname    string
	Version     string
	ServiceName string
	EdgeProxy   bool
	StartedAt   time.Time `gorm:"index"`
	FinishedAt  *time.Time
	Outcome     string `gorm:"size:16;index"`
	FailedStage string `gorm:"size:32"`
	Error       string
	Stages      []StageRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// Duration is zero while the run is in progress.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// StageRecord is the outcome of one stage within a run.
type StageRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"size:36;index"`
	Seq        int
	Stage      string `gorm:"size:32"`
	Status     string `gorm:"size:16"`
	DurationMS int64
	Message    string
	CreatedAt  time.Time
}
