// pkg/provision/stage.go

package provision

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
)

// StageID names a step of the provisioning state machine.
type StageID string

const (
	StagePkgUpdate      StageID = "PKG_UPDATE"
	StagePkgInstall     StageID = "PKG_INSTALL"
	StageEnvSetup       StageID = "ENV_SETUP"
	StageDepInstall     StageID = "DEP_INSTALL"
	StageEnvFile        StageID = "ENV_FILE"
	StageDBInit         StageID = "DB_INIT"
	StageServiceInstall StageID = "SERVICE_INSTALL"
	StageServiceEnable  StageID = "SERVICE_ENABLE"
	StageServiceStart   StageID = "SERVICE_START"
	StageProxyConfigure StageID = "PROXY_CONFIGURE"
	StagePermissions    StageID = "PERMISSIONS"
	StageReport         StageID = "REPORT"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusWarned  Status = "warned"
	StatusFailed  Status = "failed"
)

// Result is what a stage reports when it did not fail.
type Result struct {
	Status  Status
	Message string
}

func Done(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// Skipped means the stage found its work already done.
func Skipped(format string, args ...any) Result {
	return Result{Status: StatusSkipped, Message: fmt.Sprintf(format, args...)}
}

// Warned means the stage completed part of its work and the run continues.
func Warned(format string, args ...any) Result {
	return Result{Status: StatusWarned, Message: fmt.Sprintf(format, args...)}
}

type StageFunc func(rc *tfl_io.RuntimeContext, st *host.State) (Result, error)

type Stage struct {
	ID   StageID
	Name string
	Run  StageFunc
}

// StageError identifies the stage that halted the run. Err carries the
// failing tool's output unmodified.
type StageError struct {
	Stage StageID
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
