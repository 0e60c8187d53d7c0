// Package output renders lint findings for terminals, scripts and
// machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dbtune-labs/connlint/pkg/lint"
)

// Mode selects the rendering format.
type Mode string

// Rendering modes.
const (
	ModeText  Mode = "text"
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
)

// FileFindings groups the diagnostics reported for one file.
type FileFindings struct {
	Path        string            `json:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// Renderer writes lint results in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the renderer's output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Printf writes formatted output to the standard stream.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted output to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format, args...)
}

var severityStyles = map[lint.Severity]lipgloss.Style{
	lint.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	lint.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	lint.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lint.SeverityHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

func styledSeverity(s lint.Severity) string {
	if style, ok := severityStyles[s]; ok {
		return style.Render(s.String())
	}
	return s.String()
}

// diagnosticJSON is the machine-readable shape of one finding.
type diagnosticJSON struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	RuleID   string `json:"rule_id"`
	Message  string `json:"message"`
	DocsURL  string `json:"docs_url,omitempty"`
}

// RenderFindings writes all findings in the renderer's mode and
// returns the total number of diagnostics rendered.
func (r *Renderer) RenderFindings(findings []FileFindings) (int, error) {
	total := 0
	for _, f := range findings {
		total += len(f.Diagnostics)
	}

	switch r.mode {
	case ModeJSON:
		out := make([]diagnosticJSON, 0, total)
		for _, f := range findings {
			for _, d := range f.Diagnostics {
				out = append(out, diagnosticJSON{
					Path:     f.Path,
					Line:     d.Pos.Line,
					Column:   d.Pos.Column,
					Severity: d.Severity.String(),
					RuleID:   d.RuleID,
					Message:  d.Message,
					DocsURL:  d.DocumentationURL,
				})
			}
		}
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return total, enc.Encode(out)

	case ModeTable:
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.AppendHeader(table.Row{"FILE", "LOCATION", "SEVERITY", "RULE", "MESSAGE"})
		for _, f := range findings {
			for _, d := range f.Diagnostics {
				t.AppendRow(table.Row{
					f.Path,
					fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column),
					d.Severity.String(),
					d.RuleID,
					d.Message,
				})
			}
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return total, nil

	default: // ModeText
		for _, f := range findings {
			for _, d := range f.Diagnostics {
				fmt.Fprintf(r.out, "%s:%d:%d: %s %s: %s\n",
					f.Path, d.Pos.Line, d.Pos.Column,
					styledSeverity(d.Severity), d.RuleID, d.Message)
			}
		}
		return total, nil
	}
}

// RenderJSON writes an arbitrary value as indented JSON.
func (r *Renderer) RenderJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
