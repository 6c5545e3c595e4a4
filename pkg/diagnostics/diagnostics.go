// Package diagnostics defines Styio diagnostic types for parse and inference problems.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/styio-lang/styio/pkg/ast"
)

// Diagnostic code constants.
const (
	ESyntax         = "E_SYNTAX"
	EParse          = "E_PARSE"
	ENotImplemented = "E_NOT_IMPLEMENTED"
	EIO             = "E_IO"
	EBackend        = "E_BACKEND"

	WUnknownFn    = "W_UNKNOWN_FN"
	WArgCount     = "W_ARG_COUNT"
	WCallConflict = "W_CALL_CONFLICT"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Diagnostic represents a parse or inference diagnostic.
type Diagnostic struct {
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Span     *ast.Span `json:"span,omitempty"`
	Hint     string    `json:"hint,omitempty"`
	Severity string    `json:"severity"`
}

// MakeDiag creates a new error Diagnostic.
func MakeDiag(code, message string, span *ast.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:     code,
		Message:  message,
		Span:     span,
		Hint:     hint,
		Severity: SeverityError,
	}
}

// MakeWarning creates a new warning Diagnostic.
func MakeWarning(code, message string, span *ast.Span, hint string) Diagnostic {
	d := MakeDiag(code, message, span, hint)
	d.Severity = SeverityWarning
	return d
}

// IsWarning reports whether d does not stop compilation.
func (d Diagnostic) IsWarning() bool { return d.Severity == SeverityWarning }

// HasErrors reports whether any diagnostic in diags is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if !d.IsWarning() {
			return true
		}
	}
	return false
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	sev := d.Severity
	if sev == "" {
		sev = SeverityError
	}
	out := fmt.Sprintf("%s[%s]: %s\n  --> %s", sev, d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}
