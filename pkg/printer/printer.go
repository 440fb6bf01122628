package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Printer handles status lines and structured output for one writer.
type Printer struct {
	out        io.Writer
	outputType OutputType
	wide       bool

	success lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	muted   lipgloss.Style
}

// New creates a new printer with the specified output type writing to stdout.
func New(outputType OutputType, wide bool) *Printer {
	p := &Printer{outputType: outputType, wide: wide}
	p.SetOutput(os.Stdout)
	return p
}

// SetOutput sets the output writer. Colors are only used when out is a terminal.
func (p *Printer) SetOutput(out io.Writer) {
	p.out = out
	r := lipgloss.NewRenderer(out)
	p.success = r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	p.warning = r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	p.errorS = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	p.muted = r.NewStyle().Faint(true)
}

// Output returns the writer the printer writes to.
func (p *Printer) Output() io.Writer {
	return p.out
}

// OutputType returns the configured structured output format.
func (p *Printer) OutputType() OutputType {
	return p.outputType
}

// Wide reports whether wide output was requested.
func (p *Printer) Wide() bool {
	return p.wide
}

// PrintJSON prints data in JSON format
func (p *Printer) PrintJSON(data any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML prints data in YAML format
func (p *Printer) PrintYAML(data any) error {
	encoder := yaml.NewEncoder(p.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Success prints a success message with kubectl-style formatting
func (p *Printer) Success(message string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.success.Render("✓"), message)
}

// Skipped prints a message for an item that was left unchanged
func (p *Printer) Skipped(message string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.muted.Render("-"), message)
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.warning.Render("Warning:"), message)
}

// Error prints an error message. Errors go to the same writer as everything
// else so that scripted callers see them in order.
func (p *Printer) Error(message string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.errorS.Render("Error:"), message)
}

// Info prints an info message
func (p *Printer) Info(message string) {
	_, _ = fmt.Fprintf(p.out, "%s\n", message)
}

// Banner prints lines framed by horizontal rules.
func (p *Printer) Banner(lines ...string) {
	rule := p.muted.Render(strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(p.out, "\n%s\n", rule)
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, line)
	}
	_, _ = fmt.Fprintf(p.out, "%s\n\n", rule)
}
