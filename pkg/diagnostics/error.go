package diagnostics

import (
	"errors"
	"fmt"

	"github.com/styio-lang/styio/pkg/ast"
)

// Error carries a fatal diagnostic through the parser's error returns.
// AtEOF is set when the failure happened because input ran out.
type Error struct {
	Diag  Diagnostic
	AtEOF bool
}

func (e *Error) Error() string {
	if e.Diag.Span == nil {
		return e.Diag.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Diag.Span.File, e.Diag.Span.StartLine, e.Diag.Span.StartCol, e.Diag.Message)
}

// Code returns the diagnostic code of the error.
func (e *Error) Code() string { return e.Diag.Code }

// Syntax builds an E_SYNTAX error at span.
func Syntax(span ast.Span, format string, args ...any) *Error {
	return &Error{Diag: MakeDiag(ESyntax, fmt.Sprintf(format, args...), &span, "")}
}

// Parse builds an E_PARSE error at span.
func Parse(span ast.Span, format string, args ...any) *Error {
	return &Error{Diag: MakeDiag(EParse, fmt.Sprintf(format, args...), &span, "")}
}

// NotImplemented builds an E_NOT_IMPLEMENTED error at span.
func NotImplemented(span ast.Span, format string, args ...any) *Error {
	return &Error{Diag: MakeDiag(ENotImplemented, fmt.Sprintf(format, args...), &span, "")}
}

// WithHint sets the hint and returns e.
func (e *Error) WithHint(hint string) *Error {
	e.Diag.Hint = hint
	return e
}

// AsDiagnostic extracts the diagnostic behind err. Errors that did not come
// from this package become an E_PARSE diagnostic without a span.
func AsDiagnostic(err error) Diagnostic {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag
	}
	return MakeDiag(EParse, err.Error(), nil, "")
}
