// pkg/envfile/envfile.go

package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Keys understood by the application's config module.
const (
	KeySecret      = "SECRET_KEY"
	KeyEnvironment = "FLASK_ENV"
	KeyDatabaseURI = "DATABASE_URI"
	KeyHost        = "HOST"
	KeyPort        = "PORT"
)

// RequiredKeys must all be present in a generated file.
var RequiredKeys = []string{KeySecret, KeyEnvironment, KeyDatabaseURI, KeyHost, KeyPort}

// Values holds the variables written on first creation.
type Values struct {
	SecretKey   string
	Environment string
	DatabaseURI string
	Host        string
	Port        int
}

func (v Values) Map() map[string]string {
	return map[string]string{
		KeySecret:      v.SecretKey,
		KeyEnvironment: v.Environment,
		KeyDatabaseURI: v.DatabaseURI,
		KeyHost:        v.Host,
		KeyPort:        strconv.Itoa(v.Port),
	}
}

// Render produces the file content in dotenv syntax.
func Render(v Values) (string, error) {
	out, err := godotenv.Marshal(v.Map())
	if err != nil {
		return "", cerr.Wrap(err, "render env file")
	}
	return out + "\n", nil
}

// Exists reports whether path is present. Errors other than not-exist are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, cerr.Wrapf(err, "stat %s", path)
}

// Ensure writes the file with mode 0600 only if it does not exist yet.
// gen is called only when a new file is written, so an existing file keeps
// its secret and any operator edits. created reports which case applied.
func Ensure(path string, gen func() (Values, error)) (created bool, err error) {
	exists, err := Exists(path)
	if err != nil || exists {
		return false, err
	}

	values, err := gen()
	if err != nil {
		return false, err
	}
	content, err := Render(values)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), shared.DirPermStandard); err != nil {
		return false, cerr.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, shared.FilePermOwnerReadWrite)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, cerr.Wrapf(err, "create %s", path)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, cerr.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return false, cerr.Wrapf(err, "close %s", path)
	}
	return true, nil
}

// Read parses an existing env file.
func Read(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, cerr.Wrapf(err, "read env file %s", path)
	}
	return values, nil
}

// Environ converts values to KEY=VALUE pairs for a child process.
func Environ(values map[string]string) []string {
	env := make([]string, 0, len(values))
	for k, v := range values {
		env = append(env, k+"="+v)
	}
	return env
}
