// pkg/shared/constants.go

package shared

const (
	TflID = "tfl"

	// Version is overridden at build time with -ldflags.
	Version = "0.3.0"
)

const (
	TflLogDir  = "/var/log/tfl/"
	TflLogs    = TflLogDir + "tfl.log"
	TflLogsPWD = "./tfl.log"

	TflStateDir    = "/var/lib/tfl"
	TflJournalFile = TflStateDir + "/journal.db"
)

const (
	// Permission modes (in octal)
	DirPermStandard        = 0755
	FilePermOwnerRWX       = 0700
	FilePermStandard       = 0644
	FilePermOwnerReadWrite = 0600
	FilePermExecutable     = 0755
)

// Defaults for the taxi tracker deployment on a Raspberry Pi.
const (
	DefaultServiceName = "taxi-tracker"
	DefaultUser        = "pi"
	DefaultInstallPath = "/home/pi/TFL"
	DefaultBindHost    = "0.0.0.0"
	DefaultBindPort    = 5000
	DefaultEnvironment = "production"
	DefaultDatabase    = "instance/taxi_tracker.db"
	DefaultStaticDir   = "static"
	DefaultWorkers     = 2
	DefaultSSHPort     = 22
)

// Layout of an installed application directory.
const (
	VenvDirName        = "venv"
	EnvFileName        = ".env"
	RequirementsFile   = "requirements.txt"
	GunicornConfigFile = "gunicorn.conf.py"
	WSGIEntryPoint     = "wsgi:app"
	DeployScript       = "deploy.sh"
	LogsDirName        = "logs"
)

// System locations on the target host.
const (
	SystemdUnitDir       = "/etc/systemd/system"
	NginxSitesAvailable  = "/etc/nginx/sites-available"
	NginxSitesEnabled    = "/etc/nginx/sites-enabled"
	NginxDefaultSiteLink = NginxSitesEnabled + "/default"
)

// SystemPackages are installed by apt before anything else.
var SystemPackages = []string{
	"python3",
	"python3-pip",
	"python3-venv",
	"nginx",
	"sqlite3",
}
