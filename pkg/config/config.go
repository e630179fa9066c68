// pkg/config/config.go

package config

import (
	"errors"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "tfl"
	EnvPrefix = "TFL"
)

// Edge proxy decisions accepted by provision.edge_proxy.
const (
	EdgeProxyAsk = "ask"
	EdgeProxyYes = "yes"
	EdgeProxyNo  = "no"
)

// SearchPaths are tried in order for tfl.yaml.
var SearchPaths = []string{".", "$HOME/.config/tfl", "/etc/tfl"}

type Config struct {
	Host      host.Profile    `mapstructure:"host" yaml:"host"`
	App       host.Settings   `mapstructure:"app" yaml:"app"`
	Provision ProvisionConfig `mapstructure:"provision" yaml:"provision"`
	Transfer  TransferConfig  `mapstructure:"transfer" yaml:"transfer"`
}

type ProvisionConfig struct {
	EdgeProxy       string `mapstructure:"edge_proxy" yaml:"edge_proxy"`
	SkipPackages    bool   `mapstructure:"skip_packages" yaml:"skip_packages"`
	MetricsTextfile string `mapstructure:"metrics_textfile" yaml:"metrics_textfile,omitempty"`
	JournalPath     string `mapstructure:"journal_path" yaml:"journal_path"`
}

type TransferConfig struct {
	SourceDir string `mapstructure:"source_dir" yaml:"source_dir"`
}

// New returns a viper instance with every key defaulted, so environment
// variables such as TFL_HOST_ADDRESS resolve during Unmarshal.
func New() *viper.Viper {
	v := viper.New()
	p := host.DefaultProfile()
	s := host.DefaultSettings()

	v.SetDefault("host.address", p.Address)
	v.SetDefault("host.user", p.User)
	v.SetDefault("host.install_path", p.InstallPath)
	v.SetDefault("host.ssh_port", p.SSHPort)
	v.SetDefault("host.identity_file", p.IdentityFile)

	v.SetDefault("app.service_name", s.ServiceName)
	v.SetDefault("app.bind_host", s.BindHost)
	v.SetDefault("app.bind_port", s.BindPort)
	v.SetDefault("app.environment", s.Environment)
	v.SetDefault("app.database_file", s.DatabaseFile)
	v.SetDefault("app.workers", s.Workers)
	v.SetDefault("app.static_dir", s.StaticDir)

	v.SetDefault("provision.edge_proxy", EdgeProxyAsk)
	v.SetDefault("provision.skip_packages", false)
	v.SetDefault("provision.metrics_textfile", "")
	v.SetDefault("provision.journal_path", shared.TflJournalFile)

	v.SetDefault("transfer.source_dir", ".")

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	for _, path := range SearchPaths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each named flag to its config key. Flags absent from fs
// are reported together.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	var result error
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			result = multierror.Append(result, cerr.Newf("flag --%s is not defined", flag))
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "bind --%s to %s", flag, key))
		}
	}
	return result
}

// Load reads the optional config file (explicit path wins over the search
// paths), then unmarshals and validates the result.
func Load(v *viper.Viper, explicitFile string) (*Config, error) {
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, tfl_err.NewValidationError("cannot read config file: "+err.Error(),
				"check the YAML syntax of tfl.yaml")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, tfl_err.NewValidationError("cannot decode configuration: "+err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the host profile, app settings and provision options.
func (c *Config) Validate() error {
	var result *multierror.Error
	result = multierror.Append(result, c.Host.Validate(), c.App.Validate())
	switch c.Provision.EdgeProxy {
	case EdgeProxyAsk, EdgeProxyYes, EdgeProxyNo:
	default:
		result = multierror.Append(result, tfl_err.NewValidationError(
			"provision.edge_proxy must be one of ask, yes, no (got "+c.Provision.EdgeProxy+")"))
	}
	if err := result.ErrorOrNil(); err != nil {
		if len(result.Errors) == 1 {
			return result.Errors[0]
		}
		return tfl_err.NewValidationError(err.Error())
	}
	return nil
}

// YAML renders the resolved configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Source returns the config file viper read, or "" when defaults were used.
func Source(v *viper.Viper) string {
	return v.ConfigFileUsed()
}
