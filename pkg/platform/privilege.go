// pkg/platform/privilege.go

package platform

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
)

// Geteuid is replaced in tests.
var Geteuid = os.Geteuid

// RequireRoot fails unless the process runs with euid 0.
func RequireRoot(operation string) error {
	if Geteuid() == 0 {
		return nil
	}
	return tfl_err.NewPermissionError("root privileges", operation,
		"re-run with sudo, e.g. `sudo tfl provision`")
}
