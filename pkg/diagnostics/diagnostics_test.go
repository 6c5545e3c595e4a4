package diagnostics_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

func TestMakeDiag(t *testing.T) {
	span := &ast.Span{File: "test.styio", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	d := diagnostics.MakeDiag(diagnostics.ESyntax, "unexpected character", span, "check syntax")

	if d.Code != diagnostics.ESyntax {
		t.Errorf("got Code = %q, want %q", d.Code, diagnostics.ESyntax)
	}
	if d.Message != "unexpected character" {
		t.Errorf("got Message = %q, want %q", d.Message, "unexpected character")
	}
	if d.IsWarning() {
		t.Error("MakeDiag should build an error")
	}
}

func TestFormatDiagnosticPretty(t *testing.T) {
	span := &ast.Span{File: "test.styio", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 10}
	d := diagnostics.MakeDiag(diagnostics.EParse, "unexpected '}'", span, "did you forget a value?")

	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.Contains(out, "error[E_PARSE]") {
		t.Errorf("expected error code in output, got: %s", out)
	}
	if !strings.Contains(out, "test.styio:3:5") {
		t.Errorf("expected location in output, got: %s", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("expected hint in output, got: %s", out)
	}
}

func TestFormatWarningPretty(t *testing.T) {
	d := diagnostics.MakeWarning(diagnostics.WUnknownFn, "function 'f' does not exist", nil, "")
	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.HasPrefix(out, "warning[W_UNKNOWN_FN]") {
		t.Errorf("got: %s", out)
	}
	if !strings.Contains(out, "<unknown>") {
		t.Errorf("expected unknown location, got: %s", out)
	}
}

func TestFormatDiagnosticJSON(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.ESyntax, "bad character", nil, "")
	out := diagnostics.FormatDiagnostic(d, false)
	if !strings.Contains(out, `"code":"E_SYNTAX"`) {
		t.Errorf("expected JSON code in output, got: %s", out)
	}
	if !strings.Contains(out, `"severity":"error"`) {
		t.Errorf("expected severity in output, got: %s", out)
	}
}

func TestHasErrors(t *testing.T) {
	warn := diagnostics.MakeWarning(diagnostics.WArgCount, "x", nil, "")
	if diagnostics.HasErrors([]diagnostics.Diagnostic{warn}) {
		t.Error("warnings alone are not errors")
	}
	if !diagnostics.HasErrors([]diagnostics.Diagnostic{warn, diagnostics.MakeDiag(diagnostics.EIO, "y", nil, "")}) {
		t.Error("expected an error")
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	span := ast.Span{File: "a.styio", StartLine: 2, StartCol: 7}
	base := diagnostics.Syntax(span, "expected %q, got %q", ")", "]").WithHint("close the tuple")
	wrapped := fmt.Errorf("parsing: %w", base)

	var de *diagnostics.Error
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As failed")
	}
	if de.Code() != diagnostics.ESyntax {
		t.Errorf("code = %q", de.Code())
	}
	if got := base.Error(); got != `a.styio:2:7: expected ")", got "]"` {
		t.Errorf("Error() = %q", got)
	}
	d := diagnostics.AsDiagnostic(wrapped)
	if d.Hint != "close the tuple" {
		t.Errorf("hint = %q", d.Hint)
	}
	if diagnostics.AsDiagnostic(errors.New("boom")).Code != diagnostics.EParse {
		t.Error("foreign errors should map to E_PARSE")
	}
}
