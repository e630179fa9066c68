// pkg/output/printer.go

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorSuccess = lipgloss.Color("#00ff00")
	ColorWarning = lipgloss.Color("#ffaa00")
	ColorError   = lipgloss.Color("#ff0000")
	ColorInfo    = lipgloss.Color("#0099ff")
	ColorPrimary = lipgloss.Color("#00ffff")
	ColorMuted   = lipgloss.Color("#666666")
)

// Printer writes colour-coded status lines for operators. Colour is dropped
// automatically when w is not a terminal.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	fail    lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		warn:    r.NewStyle().Foreground(ColorWarning).Bold(true),
		info:    r.NewStyle().Foreground(ColorInfo),
		fail:    r.NewStyle().Foreground(ColorError).Bold(true),
		title:   r.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true),
		muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// Stdout returns a printer for the process's standard output.
func Stdout() *Printer {
	return New(os.Stdout)
}

func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, "[OK]", format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, "[WARN]", format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, "[INFO]", format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.line(p.fail, "[FAIL]", format, args...)
}

func (p *Printer) Title(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf(format, args...)))
}

// Plain writes an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Muted writes a dimmed line, used for commands in cheat-sheets.
func (p *Printer) Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) line(style lipgloss.Style, tag, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", style.Render(tag), fmt.Sprintf(format, args...))
}
