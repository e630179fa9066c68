// pkg/provision/stages.go

package provision

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/envfile"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/nginx"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/python"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/systemd"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// createTablesSnippet is the application's one-time schema initializer.
const createTablesSnippet = "from app import create_tables; create_tables()"

// Plan returns the stages for opts in state-machine order.
func Plan(opts Options) []Stage {
	var stages []Stage
	if !opts.SkipPackages {
		stages = append(stages,
			Stage{ID: StagePkgUpdate, Name: "Update package index", Run: pkgUpdate},
			Stage{ID: StagePkgInstall, Name: "Install system packages", Run: pkgInstall},
		)
	}
	stages = append(stages,
		Stage{ID: StageEnvSetup, Name: "Create virtual environment", Run: envSetup},
		Stage{ID: StageDepInstall, Name: "Install Python dependencies", Run: depInstall},
		Stage{ID: StageEnvFile, Name: "Write environment file", Run: envFile},
		Stage{ID: StageDBInit, Name: "Initialize database", Run: dbInit},
		Stage{ID: StageServiceInstall, Name: "Install service descriptor", Run: serviceInstall},
		Stage{ID: StageServiceEnable, Name: "Enable service at boot", Run: serviceEnable},
		Stage{ID: StageServiceStart, Name: "Start service", Run: serviceStart},
	)
	if opts.EdgeProxy {
		stages = append(stages, Stage{ID: StageProxyConfigure, Name: "Configure nginx edge proxy", Run: proxyConfigure})
	}
	stages = append(stages,
		Stage{ID: StagePermissions, Name: "Normalize ownership and permissions", Run: permissions},
		Stage{ID: StageReport, Name: "Report status", Run: reportStage(opts)},
	)
	return stages
}

func pkgUpdate(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	logger := otelzap.Ctx(rc.Ctx)
	if rel, err := platform.ReadOSRelease(st); err == nil {
		logger.Info("Detected operating system", zap.String("os", rel.Pretty), zap.String("id", rel.ID))
		if !rel.IsDebianBased() {
			logger.Warn("Host does not look Debian-based; apt-get may be unavailable", zap.String("id", rel.ID))
		}
	}
	if err := platform.AptUpdate(rc, st); err != nil {
		return Result{}, err
	}
	return Done("package index updated"), nil
}

func pkgInstall(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if err := platform.AptInstall(rc, st, shared.SystemPackages...); err != nil {
		return Result{}, err
	}
	return Done("installed %d packages", len(shared.SystemPackages)), nil
}

func envSetup(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if _, err := os.Stat(st.Path(st.InstallPath())); err != nil {
		return Result{}, tfl_err.NewOrderingError(string(StageEnvSetup), "the application transfer to "+st.InstallPath(),
			"copy the application with `tfl transfer` from the operator machine first")
	}
	created, err := python.CreateVenv(rc, st)
	if err != nil {
		return Result{}, err
	}
	if !created {
		return Skipped("virtual environment already exists at %s", st.VenvDir()), nil
	}
	return Done("virtual environment created at %s", st.VenvDir()), nil
}

func depInstall(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if err := python.InstallRequirements(rc, st); err != nil {
		return Result{}, err
	}
	return Done("dependencies installed from %s", shared.RequirementsFile), nil
}

func envFile(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	logger := otelzap.Ctx(rc.Ctx)

	created, err := envfile.Ensure(st.Path(st.EnvFile()), func() (envfile.Values, error) {
		secret, err := crypto.GenerateSecretKey()
		if err != nil {
			return envfile.Values{}, err
		}
		logger.Info("Generated secret key", zap.String("secret_key", crypto.Redact(secret)))
		return envfile.Values{
			SecretKey:   secret,
			Environment: st.Settings.Environment,
			DatabaseURI: st.DatabaseURI(),
			Host:        st.Settings.BindHost,
			Port:        st.Settings.BindPort,
		}, nil
	})
	if err != nil {
		return Result{}, err
	}
	if !created {
		logger.Info("Environment file exists, leaving it untouched", zap.String("path", st.EnvFile()))
		return Skipped("kept existing %s", st.EnvFile()), nil
	}
	return Done("created %s", st.EnvFile()), nil
}

func dbInit(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	logger := otelzap.Ctx(rc.Ctx)

	exists, err := envfile.Exists(st.Path(st.EnvFile()))
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, tfl_err.NewOrderingError(string(StageDBInit), string(StageEnvFile),
			"the environment file "+st.EnvFile()+" is missing")
	}
	values, err := envfile.Read(st.Path(st.EnvFile()))
	if err != nil {
		return Result{}, err
	}
	uri := values[envfile.KeyDatabaseURI]
	if uri == "" {
		return Result{}, tfl_err.NewOrderingError(string(StageDBInit), string(StageEnvFile),
			envfile.KeyDatabaseURI+" is not set in "+st.EnvFile())
	}

	dbPath, ok := host.DatabasePathFromURI(uri)
	if !ok {
		return Skipped("%s is not a SQLite file database; nothing to initialize", envfile.KeyDatabaseURI), nil
	}
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(st.InstallPath(), dbPath)
	}

	if _, err := os.Stat(st.Path(dbPath)); err == nil {
		logger.Info("Database exists, not reinitializing", zap.String("path", dbPath))
		return Skipped("database %s already exists", dbPath), nil
	}

	ops := fileops.NewFileSystemOperations(rc.Log)
	if err := ops.CreateDirectory(rc.Ctx, st.Path(filepath.Dir(dbPath)), shared.DirPermStandard); err != nil {
		return Result{}, err
	}
	if _, err := python.RunSnippet(rc, st, createTablesSnippet, envfile.Environ(values)); err != nil {
		return Result{}, err
	}
	return Done("database initialized at %s", dbPath), nil
}

// serviceInstall also prepares the gunicorn log directory, which must exist
// and be writable by the service user before the unit first starts.
func serviceInstall(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if err := prepareLogsDir(rc, st); err != nil {
		return Result{}, err
	}
	if err := systemd.InstallUnit(rc, st); err != nil {
		return Result{}, err
	}
	return Done("installed %s", st.UnitPath()), nil
}

func serviceEnable(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if err := systemd.Enable(rc, st); err != nil {
		return Result{}, err
	}
	return Done("%s enabled at boot", st.Settings.ServiceName), nil
}

func serviceStart(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	if err := systemd.Restart(rc, st); err != nil {
		return Result{}, err
	}
	return Done("%s started", st.Settings.ServiceName), nil
}

func proxyConfigure(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	res, err := nginx.Configure(rc, st)
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return Warned("nginx configuration test failed, reload skipped:\n%s", res.Output), nil
	}
	return Done("nginx proxying port 80 to %s", nginx.SiteFor(st).Upstream), nil
}

func permissions(rc *tfl_io.RuntimeContext, st *host.State) (Result, error) {
	ops := fileops.NewFileSystemOperations(rc.Log)
	owner := serviceOwner(st)

	if err := ops.CreateDirectory(rc.Ctx, st.Path(st.LogsDir()), shared.DirPermStandard); err != nil {
		return Result{}, err
	}
	if _, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "chown",
		Args:    []string{"-R", owner, st.InstallPath()},
	}); err != nil {
		return Result{}, err
	}

	if info, err := os.Stat(st.Path(st.DeployScript())); err == nil {
		if err := ops.Chmod(rc.Ctx, st.Path(st.DeployScript()), info.Mode().Perm()|0o111); err != nil {
			return Result{}, err
		}
	}
	if err := ops.Chmod(rc.Ctx, st.Path(st.EnvFile()), shared.FilePermOwnerReadWrite); err != nil {
		return Result{}, err
	}
	return Done("%s owned by %s", st.InstallPath(), owner), nil
}

func serviceOwner(st *host.State) string {
	return st.Profile.User + ":" + st.Profile.User
}

func prepareLogsDir(rc *tfl_io.RuntimeContext, st *host.State) error {
	ops := fileops.NewFileSystemOperations(rc.Log)
	if err := ops.CreateDirectory(rc.Ctx, st.Path(st.LogsDir()), shared.DirPermStandard); err != nil {
		return err
	}
	_, err := st.Runner.Run(rc.Ctx, execute.Options{
		Command: "chown",
		Args:    []string{serviceOwner(st), st.LogsDir()},
	})
	return err
}
