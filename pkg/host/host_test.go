package host

import (
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultProfile().Validate())
	assert.NoError(t, DefaultSettings().Validate())
}

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"ip address", func(p *Profile) { p.Address = "192.168.1.100" }, false},
		{"hostname", func(p *Profile) { p.Address = "raspberrypi.local" }, false},
		{"relative install path", func(p *Profile) { p.InstallPath = "TFL" }, true},
		{"empty user", func(p *Profile) { p.User = "" }, true},
		{"user with at sign", func(p *Profile) { p.User = "pi@host" }, true},
		{"port out of range", func(p *Profile) { p.SSHPort = 70000 }, true},
		{"bad address", func(p *Profile) { p.Address = "not a host!" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tfl_err.CategoryValidation, tfl_err.CategoryOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRemote_RequiresAddress(t *testing.T) {
	p := DefaultProfile()
	require.Error(t, p.ValidateRemote())

	p.Address = "10.0.0.5"
	require.NoError(t, p.ValidateRemote())
	assert.Equal(t, "pi@10.0.0.5", p.Target())
}

func TestSettingsValidation(t *testing.T) {
	s := DefaultSettings()
	s.Environment = "staging"
	err := s.Validate()
	require.Error(t, err)
	assert.Equal(t, 2, tfl_err.GetExitCode(err))
	assert.Contains(t, cerr.GetAllHints(err), "check tfl.yaml, TFL_* environment variables and command flags")

	s = DefaultSettings()
	s.Workers = 0
	assert.Error(t, s.Validate())
}

func TestStatePaths(t *testing.T) {
	root := t.TempDir()
	s := NewState(root, nil, DefaultProfile(), DefaultSettings())

	assert.Equal(t, "/home/pi/TFL/venv/bin/pip", s.VenvBin("pip"))
	assert.Equal(t, "/home/pi/TFL/.env", s.EnvFile())
	assert.Equal(t, "/home/pi/TFL/instance/taxi_tracker.db", s.DatabasePath())
	assert.Equal(t, "sqlite:////home/pi/TFL/instance/taxi_tracker.db", s.DatabaseURI())
	assert.Equal(t, "/etc/systemd/system/taxi-tracker.service", s.UnitPath())
	assert.Equal(t, "/etc/nginx/sites-available/taxi-tracker", s.SitePath())
	assert.Equal(t, "/etc/nginx/sites-enabled/taxi-tracker", s.SiteLink())
	assert.Equal(t, "/home/pi/TFL/static", s.StaticDir())
	assert.Equal(t, filepath.Join(root, "home/pi/TFL/.env"), s.Path(s.EnvFile()))
	assert.NotNil(t, s.Runner)
}

func TestDatabasePathFromURI(t *testing.T) {
	path, ok := DatabasePathFromURI("sqlite:////home/pi/TFL/instance/taxi_tracker.db")
	require.True(t, ok)
	assert.Equal(t, "/home/pi/TFL/instance/taxi_tracker.db", path)

	path, ok = DatabasePathFromURI("sqlite:///instance/taxi_tracker.db")
	require.True(t, ok)
	assert.Equal(t, "instance/taxi_tracker.db", path)

	_, ok = DatabasePathFromURI("sqlite:///:memory:")
	assert.False(t, ok)
	_, ok = DatabasePathFromURI("postgresql://db/tfl")
	assert.False(t, ok)
}
