package compiler_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/compiler"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

type failingBackend struct {
	compiler.NopBackend
}

func (failingBackend) Generate(context.Context, *ast.Program) error {
	return errors.New("no code for you")
}

type recordingBackend struct {
	compiler.NopBackend
	got *ast.Program
}

func (b *recordingBackend) Generate(_ context.Context, p *ast.Program) error {
	b.got = p
	return nil
}

func TestCompileRunsPipeline(t *testing.T) {
	backend := &recordingBackend{}
	c := compiler.New(compiler.WithBackend(backend), compiler.WithSessionID("s-1"))
	res, err := c.Compile(context.Background(), "x = 1 + 2.5\ng(1)", "test.styio")
	if err != nil {
		t.Fatal(err)
	}
	if res.SessionID != "s-1" {
		t.Errorf("session = %q", res.SessionID)
	}
	if backend.got != res.Program {
		t.Error("backend did not receive the program")
	}
	bind := res.Program.Stmts[0].(*ast.FlexBind)
	if bind.Var.Type != ast.F64 {
		t.Errorf("x = %s, want f64", bind.Var.Type)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != diagnostics.WUnknownFn {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestCompileGeneratesSessionIDs(t *testing.T) {
	c := compiler.New()
	a, err := c.Compile(context.Background(), "x = 1", "a.styio")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compile(context.Background(), "x = 1", "b.styio")
	if err != nil {
		t.Fatal(err)
	}
	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Errorf("expected distinct ids, got %q and %q", a.SessionID, b.SessionID)
	}
}

func TestCompileParseError(t *testing.T) {
	c := compiler.New()
	_, err := c.Compile(context.Background(), `x = "open`, "test.styio")
	var de *compiler.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("expected DiagnosticError, got %v", err)
	}
	if de.Code() != diagnostics.ESyntax {
		t.Errorf("code = %s", de.Code())
	}
	if !strings.HasPrefix(de.Error(), "E_SYNTAX: ") {
		t.Errorf("error text = %q", de.Error())
	}
}

func TestCompileBackendError(t *testing.T) {
	c := compiler.New(compiler.WithBackend(failingBackend{}))
	res, err := c.Compile(context.Background(), "x = 1", "test.styio")
	var de *compiler.DiagnosticError
	if !errors.As(err, &de) || de.Code() != diagnostics.EBackend {
		t.Fatalf("expected E_BACKEND, got %v", err)
	}
	if res == nil || res.Program == nil {
		t.Error("the typed program should still be returned")
	}
}

func TestCompileHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := compiler.New().Compile(ctx, "x = 1", "test.styio")
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestStatementHookSeesEachStatement(t *testing.T) {
	var kinds []string
	c := compiler.New(compiler.WithStatementHook(func(n ast.Node) {
		kinds = append(kinds, n.Kind())
	}))
	if _, err := c.Compile(context.Background(), "x = 1\n# f = (a) => a\n...", "test.styio"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(kinds, ","); got != "FlexBind,Func,Pass" {
		t.Errorf("got %s", got)
	}
}

func TestInferenceCanBeDisabled(t *testing.T) {
	c := compiler.New(compiler.WithInference(false))
	prog, diags := c.Check("x = 1\ng()", "test.styio")
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics %v", diags)
	}
	if prog.Stmts[0].(*ast.FlexBind).Var.Type != ast.Undefined {
		t.Error("types should stay unresolved")
	}
}

func TestCheck(t *testing.T) {
	c := compiler.New()
	if _, diags := c.Check("[1..", "test.styio"); len(diags) != 1 || diags[0].IsWarning() {
		t.Errorf("expected one error, got %v", diags)
	}
	if _, diags := c.Check("f(1)", "test.styio"); len(diags) != 1 || !diags[0].IsWarning() {
		t.Errorf("expected one warning, got %v", diags)
	}
}

func TestLoggerCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := compiler.New(compiler.WithLogger(logger), compiler.WithSessionID("abc"))
	if _, err := c.Compile(context.Background(), "x = 1", "test.styio"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "session=abc") {
		t.Errorf("log output missing session: %s", buf.String())
	}
}

func TestTypeTableBackend(t *testing.T) {
	var out bytes.Buffer
	c := compiler.New(compiler.WithBackend(&compiler.TypeTableBackend{Out: &out}))
	src := "y = 2.5\nx: i8 = 1\nz = a\n# f = (n, m: i64) => n\nf(1, 2)"
	if _, err := c.Compile(context.Background(), src, "test.styio"); err != nil {
		t.Fatal(err)
	}
	want := "f.m\ti64\nf.n\ti32\nx\ti8\ny\tf64\nz\t?\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRegistry(t *testing.T) {
	r := compiler.NewRegistry()
	compiler.RegisterDefaults(r)
	if got := strings.Join(r.Names(), ","); got != "nop,types" {
		t.Errorf("names = %s", got)
	}
	if _, ok := r.Get("types", &bytes.Buffer{}); !ok {
		t.Error("types backend missing")
	}
	if _, ok := r.Get("llvm", nil); ok {
		t.Error("unknown backend should not resolve")
	}
}

func TestNopBackendResolveType(t *testing.T) {
	b := compiler.NopBackend{}
	if name, err := b.ResolveType(ast.I16); err != nil || name != "i16" {
		t.Errorf("got %q, %v", name, err)
	}
	if _, err := b.ResolveType(ast.Undefined); err == nil {
		t.Error("undefined should not resolve")
	}
}
