package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes results to Out and notices to Err.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	Format Format
	Wide   bool

	formatter Formatter
	plain     bool
	styles    styles
}

type styles struct {
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	info    lipgloss.Style
	subtle  lipgloss.Style
}

// NewPrinter creates a printer. Colors are used only when color is true and
// errOut is a terminal.
func NewPrinter(out, errOut io.Writer, format Format, wide, color bool) *Printer {
	r := lipgloss.NewRenderer(errOut)
	plain := !color || !IsTerminal(errOut)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		Out:       out,
		Err:       errOut,
		Format:    format,
		Wide:      wide,
		formatter: NewFormatter(format, wide),
		plain:     plain,
		styles: styles{
			success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			warn:    r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			info:    r.NewStyle().Foreground(lipgloss.Color("6")),
			subtle:  r.NewStyle().Faint(true),
		},
	}
}

// Print renders data in the configured format.
func (p *Printer) Print(data any) error {
	return p.formatter.Format(p.Out, data)
}

// Machine reports whether output is meant for programs rather than people.
func (p *Printer) Machine() bool {
	return p.Format == FormatJSON || p.Format == FormatYAML
}

// Success writes a success notice.
func (p *Printer) Success(format string, args ...any) {
	p.notice(p.styles.success, "✓", format, args...)
}

// Warn writes a warning notice.
func (p *Printer) Warn(format string, args ...any) {
	p.notice(p.styles.warn, "!", format, args...)
}

// Error writes an error notice.
func (p *Printer) Error(format string, args ...any) {
	p.notice(p.styles.fail, "✗", format, args...)
}

// Info writes an informational line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Err, p.render(p.styles.info, fmt.Sprintf(format, args...)))
}

// Hint writes a faint hint line.
func (p *Printer) Hint(format string, args ...any) {
	fmt.Fprintln(p.Err, p.render(p.styles.subtle, fmt.Sprintf(format, args...)))
}

func (p *Printer) notice(style lipgloss.Style, mark, format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", p.render(style, mark), fmt.Sprintf(format, args...))
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

// Spinner returns a spinner on Err, or a silent one when Err is not a
// terminal or output is machine readable.
func (p *Printer) Spinner(message string) *Spinner {
	if p.Machine() || !IsTerminal(p.Err) {
		return NewSpinner(io.Discard, message)
	}
	return NewSpinner(p.Err, message)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
