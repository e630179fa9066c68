// pkg/host/profile.go

package host

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/go-playground/validator/v10"
)

// Profile identifies the target host. It does not change during a run.
type Profile struct {
	Address      string `mapstructure:"address" yaml:"address" validate:"omitempty,hostname_rfc1123|ip"`
	User         string `mapstructure:"user" yaml:"user" validate:"required,excludesall=@:/"`
	InstallPath  string `mapstructure:"install_path" yaml:"install_path" validate:"required,startswith=/"`
	SSHPort      int    `mapstructure:"ssh_port" yaml:"ssh_port" validate:"min=1,max=65535"`
	IdentityFile string `mapstructure:"identity_file" yaml:"identity_file,omitempty"`
}

// Settings describes how the application is served on the host.
type Settings struct {
	ServiceName  string `mapstructure:"service_name" yaml:"service_name" validate:"required,excludesall=/"`
	BindHost     string `mapstructure:"bind_host" yaml:"bind_host" validate:"required,ip"`
	BindPort     int    `mapstructure:"bind_port" yaml:"bind_port" validate:"min=1,max=65535"`
	Environment  string `mapstructure:"environment" yaml:"environment" validate:"oneof=production development testing"`
	DatabaseFile string `mapstructure:"database_file" yaml:"database_file" validate:"required"`
	Workers      int    `mapstructure:"workers" yaml:"workers" validate:"min=1"`
	StaticDir    string `mapstructure:"static_dir" yaml:"static_dir" validate:"required"`
}

func DefaultProfile() Profile {
	return Profile{
		User:        shared.DefaultUser,
		InstallPath: shared.DefaultInstallPath,
		SSHPort:     shared.DefaultSSHPort,
	}
}

func DefaultSettings() Settings {
	return Settings{
		ServiceName:  shared.DefaultServiceName,
		BindHost:     shared.DefaultBindHost,
		BindPort:     shared.DefaultBindPort,
		Environment:  shared.DefaultEnvironment,
		DatabaseFile: shared.DefaultDatabase,
		Workers:      shared.DefaultWorkers,
		StaticDir:    shared.DefaultStaticDir,
	}
}

var validate = validator.New()

func (p Profile) Validate() error {
	return validationError("host profile", validate.Struct(p))
}

// ValidateRemote additionally requires an address, which only transfers need.
func (p Profile) ValidateRemote() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Address == "" {
		return tfl_err.NewValidationError("host profile: address is required",
			"pass --host <ip-or-hostname> or set host.address in tfl.yaml")
	}
	return nil
}

// Target returns user@address.
func (p Profile) Target() string {
	return p.User + "@" + p.Address
}

func (s Settings) Validate() error {
	return validationError("app settings", validate.Struct(s))
}

func validationError(what string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return tfl_err.NewInternalError(what+" validation", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return tfl_err.WrapValidationError(tfl_err.NewValidationError(what + ": " + strings.Join(msgs, "; ")))
}
