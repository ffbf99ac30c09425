// Package console prints the human-facing messages of ape and spe, with or
// without colour.
package console

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pyvenv/ape/internal/venv"
)

// Color palette shared by all output.
const (
	ColorError   = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorInfo    = lipgloss.Color("#06B6D4")
	ColorMuted   = lipgloss.Color("#6B7280")
)

// Console writes styled messages to an output and an error stream.
type Console struct {
	Out io.Writer
	Err io.Writer

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style

	printer *message.Printer
}

// New creates a Console. With noColor set every style renders as plain text.
func New(out, errOut io.Writer, noColor bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Console{
		Out:          out,
		Err:          errOut,
		errorStyle:   r.NewStyle().Bold(true).Foreground(ColorError),
		warningStyle: r.NewStyle().Bold(true).Foreground(ColorWarning),
		successStyle: r.NewStyle().Foreground(ColorSuccess),
		infoStyle:    r.NewStyle().Foreground(ColorInfo),
		mutedStyle:   r.NewStyle().Foreground(ColorMuted),
		printer:      message.NewPrinter(language.English),
	}
}

// Sprintf formats with locale-aware digit grouping ("12,345").
func (c *Console) Sprintf(format string, args ...any) string {
	return c.printer.Sprintf(format, args...)
}

// Error prints "Error: msg" to the error stream.
func (c *Console) Error(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.errorStyle.Render("Error:"), c.Sprintf(format, args...))
}

// Warning prints "Warning: msg" to the error stream.
func (c *Console) Warning(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.warningStyle.Render("Warning:"), c.Sprintf(format, args...))
}

// Success prints a green line to the output stream.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.Out, c.successStyle.Render(c.Sprintf(format, args...)))
}

// Info prints a cyan line to the output stream.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.Out, c.infoStyle.Render(c.Sprintf(format, args...)))
}

// Print prints s to the output stream without a newline.
func (c *Console) Print(s string) {
	fmt.Fprint(c.Out, s)
}

// Println prints an unstyled line to the output stream.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.Out, a...)
}

// Hint prints an unstyled line to the error stream.
func (c *Console) Hint(a ...any) {
	fmt.Fprintln(c.Err, a...)
}

// Muted renders s in the de-emphasized style.
func (c *Console) Muted(s string) string {
	return c.mutedStyle.Render(s)
}

// List prints envs as a numbered two-line listing.
func (c *Console) List(envs []venv.Environment) {
	for i, env := range envs {
		fmt.Fprintf(c.Out, "  %d. %s (%s)\n", i+1, env.Name, env.Kind)
		fmt.Fprintf(c.Out, "     %s\n\n", c.Muted(env.Path))
	}
}

// Table prints envs as a numbered table.
func (c *Console) Table(envs []venv.Environment) error {
	w := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tNAME\tTYPE\tPATH")
	for i, env := range envs {
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%s\n", i+1, env.Name, env.Kind, env.Path)
	}
	return w.Flush()
}
