// pkg/execute/helpers.go

package execute

import (
	"strings"
)

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
