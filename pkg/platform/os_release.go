// pkg/platform/os_release.go

package platform

import (
	"bufio"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
)

// OSRelease holds the fields of /etc/os-release that tfl cares about.
type OSRelease struct {
	ID     string
	IDLike string
	Pretty string
}

// ReadOSRelease parses /etc/os-release on the host.
func ReadOSRelease(st *host.State) (OSRelease, error) {
	var rel OSRelease
	f, err := os.Open(st.Path("/etc/os-release"))
	if err != nil {
		return rel, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			rel.ID = value
		case "ID_LIKE":
			rel.IDLike = value
		case "PRETTY_NAME":
			rel.Pretty = value
		}
	}
	return rel, scanner.Err()
}

// IsDebianBased reports whether apt is the expected package manager.
func (r OSRelease) IsDebianBased() bool {
	if r.ID == "debian" || r.ID == "ubuntu" || r.ID == "raspbian" {
		return true
	}
	for _, like := range strings.Fields(r.IDLike) {
		if like == "debian" || like == "ubuntu" {
			return true
		}
	}
	return false
}
