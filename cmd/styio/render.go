package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
	"github.com/styio-lang/styio/pkg/printer"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorTitle   = lipgloss.Color("#8B5CF6")
)

// styles holds the lipgloss styles for terminal output. The zero value
// renders plain text.
type styles struct {
	err   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
	title lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{err: plain, warn: plain, muted: plain, title: plain}
	}
	return styles{
		err:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		muted: lipgloss.NewStyle().Foreground(colorMuted),
		title: lipgloss.NewStyle().Foreground(colorTitle).Bold(true),
	}
}

// printDiagnostics writes diags to w: styled text when pretty, one JSON array
// otherwise.
func (a *app) printDiagnostics(w io.Writer, diags []diagnostics.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	if !a.cfg.Output.Pretty {
		fmt.Fprintln(w, diagnostics.FormatDiagnostics(diags, false))
		return
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = a.styleDiagnostic(d)
	}
	fmt.Fprintln(w, strings.Join(parts, "\n\n"))
}

func (a *app) styleDiagnostic(d diagnostics.Diagnostic) string {
	lines := strings.Split(diagnostics.FormatDiagnostic(d, true), "\n")
	head := a.styles.err
	if d.IsWarning() {
		head = a.styles.warn
	}
	lines[0] = head.Render(lines[0])
	for i := 1; i < len(lines); i++ {
		lines[i] = a.styles.muted.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

// writeTree writes n in the given format.
func (a *app) writeTree(w io.Writer, n ast.Node, format string) error {
	switch format {
	case "json":
		var (
			data []byte
			err  error
		)
		if a.cfg.Output.Pretty {
			data, err = json.MarshalIndent(printer.Tree(n), "", "  ")
		} else {
			data, err = json.Marshal(printer.Tree(n))
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(printer.Tree(n)); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(w, printer.Dump(n))
	return err
}
