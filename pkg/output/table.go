// Package output renders operator-facing status lines and tables.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TableWriter provides a fluent interface for building and displaying tables
type TableWriter struct {
	writer     *tabwriter.Writer
	headers    []string
	rows       [][]string
	separator  string
	showBorder bool
}

// NewTableTo creates a new table writer that outputs to the specified writer
func NewTableTo(w io.Writer) *TableWriter {
	return &TableWriter{
		writer:     tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		separator:  "-",
		showBorder: true,
	}
}

// WithHeaders sets the column headers for the table
func (t *TableWriter) WithHeaders(headers ...string) *TableWriter {
	t.headers = headers
	return t
}

func (t *TableWriter) WithBorder(show bool) *TableWriter {
	t.showBorder = show
	return t
}

// AddRow adds a row of data to the table. Missing cells are rendered empty.
func (t *TableWriter) AddRow(values ...string) *TableWriter {
	t.rows = append(t.rows, values)
	return t
}

// Render outputs the table to the writer
func (t *TableWriter) Render() error {
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, strings.Join(t.headers, "\t"))
		if t.showBorder {
			separators := make([]string, len(t.headers))
			for i, h := range t.headers {
				separators[i] = strings.Repeat(t.separator, len(h))
			}
			fmt.Fprintln(t.writer, strings.Join(separators, "\t"))
		}
	}

	for _, row := range t.rows {
		cells := row
		if pad := len(t.headers) - len(row); pad > 0 {
			cells = append(append([]string(nil), row...), make([]string, pad)...)
		}
		fmt.Fprintln(t.writer, strings.Join(cells, "\t"))
	}

	return t.writer.Flush()
}

// KeyValue renders ordered key/value pairs as a two-column table without borders.
func KeyValue(w io.Writer, pairs [][2]string) error {
	t := NewTableTo(w).WithBorder(false)
	for _, kv := range pairs {
		t.AddRow(kv[0]+":", kv[1])
	}
	return t.Render()
}
