// pkg/transfer/manifest.go

package transfer

// Kind distinguishes files from directories, which are copied recursively.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// Entry is one path, relative to the source directory, to copy to the host.
// Optional entries that are absent locally are skipped without error.
type Entry struct {
	Path     string
	Kind     Kind
	Required bool
}

// DefaultManifest lists what the host needs to run `tfl provision`.
var DefaultManifest = []Entry{
	{Path: "app.py", Kind: KindFile, Required: true},
	{Path: "config.py", Kind: KindFile, Required: true},
	{Path: "wsgi.py", Kind: KindFile, Required: true},
	{Path: "requirements.txt", Kind: KindFile, Required: true},
	{Path: ".env.example", Kind: KindFile, Required: true},
	{Path: "gunicorn.conf.py", Kind: KindFile, Required: true},
	{Path: "taxi-tracker.service", Kind: KindFile, Required: true},
	{Path: "deploy.sh", Kind: KindFile, Required: true},
	{Path: "DEPLOYMENT.md", Kind: KindFile, Required: true},
	{Path: "templates", Kind: KindDir, Required: true},
	{Path: "static", Kind: KindDir, Required: false},
	{Path: "instance", Kind: KindDir, Required: false},
}
