// pkg/host/state.go

package host

import (
	"io"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
)

// State is the handle to the host being converged. Every stage receives it.
//
// Host paths (InstallPath, UnitPath, ...) are always absolute paths as the
// host sees them; they are what external commands receive. File access from
// this process goes through Path, which prefixes Root.
type State struct {
	Root     string
	Runner   execute.Runner
	Profile  Profile
	Settings Settings
	// Out receives the live output of long-running tools (apt, pip). Nil discards it.
	Out io.Writer
}

func NewState(root string, runner execute.Runner, profile Profile, settings Settings) *State {
	if root == "" {
		root = "/"
	}
	if runner == nil {
		runner = execute.DefaultRunner
	}
	return &State{Root: root, Runner: runner, Profile: profile, Settings: settings}
}

// Path maps an absolute host path onto the local filesystem.
func (s *State) Path(hostPath string) string {
	return filepath.Join(s.Root, hostPath)
}

func (s *State) InstallPath() string {
	return filepath.Clean(s.Profile.InstallPath)
}

func (s *State) VenvDir() string {
	return filepath.Join(s.InstallPath(), shared.VenvDirName)
}

// VenvBin returns the path of an executable inside the virtual environment.
func (s *State) VenvBin(name string) string {
	return filepath.Join(s.VenvDir(), "bin", name)
}

func (s *State) EnvFile() string {
	return filepath.Join(s.InstallPath(), shared.EnvFileName)
}

func (s *State) RequirementsFile() string {
	return filepath.Join(s.InstallPath(), shared.RequirementsFile)
}

func (s *State) DeployScript() string {
	return filepath.Join(s.InstallPath(), shared.DeployScript)
}

func (s *State) LogsDir() string {
	return filepath.Join(s.InstallPath(), shared.LogsDirName)
}

func (s *State) StaticDir() string {
	if filepath.IsAbs(s.Settings.StaticDir) {
		return filepath.Clean(s.Settings.StaticDir)
	}
	return filepath.Join(s.InstallPath(), s.Settings.StaticDir)
}

// DatabasePath is absolute; relative settings are anchored at InstallPath.
func (s *State) DatabasePath() string {
	if filepath.IsAbs(s.Settings.DatabaseFile) {
		return filepath.Clean(s.Settings.DatabaseFile)
	}
	return filepath.Join(s.InstallPath(), s.Settings.DatabaseFile)
}

// DatabaseURI is the SQLAlchemy form of DatabasePath.
func (s *State) DatabaseURI() string {
	return "sqlite:///" + s.DatabasePath()
}

func (s *State) UnitPath() string {
	return filepath.Join(shared.SystemdUnitDir, s.Settings.ServiceName+".service")
}

func (s *State) SitePath() string {
	return filepath.Join(shared.NginxSitesAvailable, s.Settings.ServiceName)
}

func (s *State) SiteLink() string {
	return filepath.Join(shared.NginxSitesEnabled, s.Settings.ServiceName)
}

// DatabasePathFromURI strips the sqlite scheme from uri. ok is false for
// other schemes and in-memory databases.
func DatabasePathFromURI(uri string) (path string, ok bool) {
	const scheme = "sqlite:///"
	if len(uri) <= len(scheme) || uri[:len(scheme)] != scheme {
		return "", false
	}
	path = uri[len(scheme):]
	if path == ":memory:" {
		return "", false
	}
	return path, true
}
