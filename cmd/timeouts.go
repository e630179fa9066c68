/* cmd/timeouts.go */

package cmd

import "time"

const shutdownTimeout = 5 * time.Second
