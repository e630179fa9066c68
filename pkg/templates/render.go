// pkg/templates/render.go
//
// Rendering of the configuration files tfl installs on the host.

package templates

import (
	"bytes"
	"text/template"

	cerr "github.com/cockroachdb/errors"
)

// DefaultMaxTemplateSize bounds rendered output.
const DefaultMaxTemplateSize = 1 * 1024 * 1024

// Render parses text and executes it against data. Missing keys are errors so
// a renamed field cannot silently produce an empty directive.
func Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", cerr.Wrapf(err, "parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", cerr.Wrapf(err, "render template %s", name)
	}
	if buf.Len() > DefaultMaxTemplateSize {
		return "", cerr.Newf("template %s rendered %d bytes, limit is %d", name, buf.Len(), DefaultMaxTemplateSize)
	}
	return buf.String(), nil
}
