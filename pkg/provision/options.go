// pkg/provision/options.go

package provision

import (
	"io"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
)

// Options are resolved before the run starts; nothing is asked mid-sequence.
type Options struct {
	EdgeProxy    bool
	SkipPackages bool
	// MetricsTextfile is a host path for node_exporter's textfile collector. Empty disables it.
	MetricsTextfile string
	// JournalPath is a host path for the run journal. Empty disables it.
	JournalPath string
	Printer     *output.Printer
}

func (o Options) printer() *output.Printer {
	if o.Printer == nil {
		return output.New(io.Discard)
	}
	return o.Printer
}
