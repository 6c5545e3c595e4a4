package infer_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
	"github.com/styio-lang/styio/pkg/infer"
	"github.com/styio-lang/styio/pkg/parser"
)

// helper parses source and infers it, fataling on parse errors so tests focus on inference.
func mustInfer(t *testing.T, source string) (*ast.Program, []diagnostics.Diagnostic) {
	t.Helper()
	prog, parseErrs := parser.Parse(source, "test.styio")
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse error: %s", parseErrs[0].Message)
	}
	return prog, infer.Infer(prog)
}

func assertNoDiags(t *testing.T, diags []diagnostics.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Errorf("expected no diagnostics, got %d:\n  %s", len(diags), strings.Join(msgs, "\n  "))
	}
}

func assertCodes(t *testing.T, diags []diagnostics.Diagnostic, codes ...string) {
	t.Helper()
	if len(diags) != len(codes) {
		t.Fatalf("expected %d diagnostics, got %d: %v", len(codes), len(diags), diags)
	}
	for i, code := range codes {
		if diags[i].Code != code {
			t.Errorf("diagnostic %d: got %s, want %s", i, diags[i].Code, code)
		}
		if !diags[i].IsWarning() {
			t.Errorf("diagnostic %d should be a warning", i)
		}
	}
}

func bindOf(t *testing.T, prog *ast.Program, i int) (*ast.Param, ast.Node) {
	t.Helper()
	switch b := prog.Stmts[i].(type) {
	case *ast.FlexBind:
		return b.Var, b.Value
	case *ast.FinalBind:
		return b.Var, b.Value
	}
	t.Fatalf("statement %d is %T, not a binding", i, prog.Stmts[i])
	return nil, nil
}

func TestIntegerDefaultsToI32(t *testing.T) {
	prog, diags := mustInfer(t, "x = 42")
	assertNoDiags(t, diags)
	v, value := bindOf(t, prog, 0)
	if value.(*ast.IntLit).Type != ast.I32 {
		t.Errorf("literal type = %s", value.(*ast.IntLit).Type)
	}
	if v.Type != ast.I32 {
		t.Errorf("variable type = %s, want i32", v.Type)
	}
}

func TestIntPlusFloatIsFloat(t *testing.T) {
	prog, diags := mustInfer(t, "x = 1 + 2.0")
	assertNoDiags(t, diags)
	v, value := bindOf(t, prog, 0)
	bin := value.(*ast.BinOp)
	if !bin.Type.IsFloat() {
		t.Errorf("binop type = %s, want a float type", bin.Type)
	}
	if v.Type != bin.Type {
		t.Errorf("variable type = %s, want %s", v.Type, bin.Type)
	}
}

func TestBinaryPromotion(t *testing.T) {
	tests := []struct {
		source string
		want   ast.DataType
	}{
		{"x = 1 + 2", ast.I32},
		{"x = 1 - 2", ast.I32},
		{"x = 6 / 3", ast.I32},
		{"x = 2.0 * 3.0", ast.F64},
		{"x = 2.5 - 1", ast.F64},
		{"x = 1 + 2 * 3", ast.I32},
		{"x = 1 * 2 + 0.5", ast.F64},
		{"x = 7 % 2.0", ast.Undefined},
		{"x = 2 ** 3", ast.Undefined},
		{"x = 2 ** 3 % 5", ast.Undefined},
		{"x = 1 + 2 % 3", ast.Undefined},
		{"x = 1 += 2", ast.I32},
		{"x = 1 %= 2", ast.Undefined},
		{"x = a + 1", ast.Undefined},
		{"x = 1 + f(2)", ast.Undefined},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			prog, _ := mustInfer(t, tt.source)
			_, value := bindOf(t, prog, 0)
			if got := value.(*ast.BinOp).Type; got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeclaredTypeIsPushedDown(t *testing.T) {
	prog, diags := mustInfer(t, "x: i64 = 1 + 2 * 3")
	assertNoDiags(t, diags)
	v, value := bindOf(t, prog, 0)
	if v.Type != ast.I64 {
		t.Errorf("variable type = %s", v.Type)
	}
	outer := value.(*ast.BinOp)
	if outer.Type != ast.I64 {
		t.Errorf("outer type = %s, want i64", outer.Type)
	}
	inner := outer.Left.(*ast.BinOp)
	if inner.Type != ast.I64 {
		t.Errorf("inner type = %s, want forced i64", inner.Type)
	}
	if lit := outer.Right.(*ast.IntLit); lit.Type != ast.I32 {
		t.Errorf("plain operand should still default, got %s", lit.Type)
	}
}

func TestDeclaredTypeOnLiterals(t *testing.T) {
	tests := []struct {
		source  string
		varType ast.DataType
		litType ast.DataType
	}{
		{"x: i8 = 5", ast.I8, ast.I8},
		{"x: f32 := 1.5", ast.F32, ast.F32},
		{"x: f64 = 5", ast.F64, ast.I32},
		{"x: str = 5", ast.Undefined, ast.I32},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			prog, _ := mustInfer(t, tt.source)
			v, value := bindOf(t, prog, 0)
			if v.Type != tt.varType {
				t.Errorf("variable type = %s, want %s", v.Type, tt.varType)
			}
			var got ast.DataType
			switch lit := value.(type) {
			case *ast.IntLit:
				got = lit.Type
			case *ast.FloatLit:
				got = lit.Type
			}
			if got != tt.litType {
				t.Errorf("literal type = %s, want %s", got, tt.litType)
			}
		})
	}
}

func TestCollectionConsistency(t *testing.T) {
	tests := []struct {
		source     string
		consistent bool
		elem       ast.DataType
	}{
		{"x = [1, 2, 3]", true, ast.I32},
		{"x = [1, 2.0]", false, ast.Undefined},
		{"x = [1.0, 2.5]", true, ast.F64},
		{"x = []", false, ast.Undefined},
		{"x = [a, b]", false, ast.Undefined},
		{"x = [true, false]", true, ast.Bool},
		{"x = (1, 2)", true, ast.I32},
		{`x = (1, "a")`, false, ast.Undefined},
		{"x = {1, 2}", true, ast.I32},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			prog, _ := mustInfer(t, tt.source)
			_, value := bindOf(t, prog, 0)
			var consistent bool
			var elem ast.DataType
			switch c := value.(type) {
			case *ast.List:
				consistent, elem = c.Consistent, c.ElemType
			case *ast.Tuple:
				consistent, elem = c.Consistent, c.ElemType
			case *ast.Set:
				consistent, elem = c.Consistent, c.ElemType
			default:
				t.Fatalf("unexpected %T", value)
			}
			if consistent != tt.consistent || elem != tt.elem {
				t.Errorf("got (%v, %s), want (%v, %s)", consistent, elem, tt.consistent, tt.elem)
			}
		})
	}
}

func TestTupleBindingTakesElementType(t *testing.T) {
	prog, _ := mustInfer(t, "t = (1, 2)")
	v, _ := bindOf(t, prog, 0)
	if v.Type != ast.I32 {
		t.Errorf("got %s, want i32", v.Type)
	}
}

func TestCallTypesParameters(t *testing.T) {
	prog, diags := mustInfer(t, "# f = (a, b: i8) => a\nf(1.5, 2)")
	assertNoDiags(t, diags)
	fn := prog.Stmts[0].(*ast.Func)
	params := fn.Forward.Params.Params
	if params[0].Type != ast.F64 {
		t.Errorf("a = %s, want f64", params[0].Type)
	}
	if params[1].Type != ast.I8 {
		t.Errorf("declared b should stay i8, got %s", params[1].Type)
	}
}

func TestDeclaredParameterKeepsAnnotation(t *testing.T) {
	prog, diags := mustInfer(t, "# f = (a: i64) => a\nf(1.5)\nf(2)")
	assertNoDiags(t, diags)
	fn := prog.Stmts[0].(*ast.Func)
	if got := fn.Forward.Params.Params[0].Type; got != ast.I64 {
		t.Errorf("got %s, want declared i64", got)
	}
}

func TestCallBeforeDefinition(t *testing.T) {
	prog, diags := mustInfer(t, "f(1)\n# f = (a) => a")
	assertNoDiags(t, diags)
	fn := prog.Stmts[1].(*ast.Func)
	if fn.Forward.Params.Params[0].Type != ast.I32 {
		t.Errorf("got %s", fn.Forward.Params.Params[0].Type)
	}
}

func TestCallWarnings(t *testing.T) {
	_, diags := mustInfer(t, "g(1)")
	assertCodes(t, diags, diagnostics.WUnknownFn)
	if !strings.Contains(diags[0].Message, "'g'") {
		t.Errorf("got %q", diags[0].Message)
	}

	_, diags = mustInfer(t, "# f = (a, b) => a\nf(1)")
	assertCodes(t, diags, diagnostics.WArgCount)

	_, diags = mustInfer(t, "# f = { ... }\nf()")
	assertNoDiags(t, diags)
}

func TestConflictingCallsKeepFirstTyping(t *testing.T) {
	prog, diags := mustInfer(t, "# f = (a) => a\nf(1)\nf(2.5)\nf(3)")
	assertCodes(t, diags, diagnostics.WCallConflict)
	fn := prog.Stmts[0].(*ast.Func)
	if got := fn.Forward.Params.Params[0].Type; got != ast.I32 {
		t.Errorf("got %s, want first typing i32", got)
	}
}

func TestNestedBlocksAreInferred(t *testing.T) {
	prog, diags := mustInfer(t, "[1..3] >> (i) => {\n  y = 2 * 2\n  ?(y > 1) \\t\\ { z = 1.5 }\n}")
	assertNoDiags(t, diags)
	iter := prog.Stmts[0].(*ast.Iter)
	block := iter.Forward.Body.(*ast.Block)
	y := block.Stmts[0].(*ast.FlexBind)
	if y.Var.Type != ast.I32 {
		t.Errorf("y = %s", y.Var.Type)
	}
	flow := block.Stmts[1].(*ast.CondFlow)
	z := flow.Then.Stmts[0].(*ast.FlexBind)
	if z.Var.Type != ast.F64 {
		t.Errorf("z = %s", z.Var.Type)
	}
	rng := iter.Collection.(*ast.Range)
	if rng.Start.Type != ast.I32 || rng.Step.Type != ast.I32 {
		t.Error("range bounds should default to i32")
	}
}

func TestCasesAndCallsInsideFunctions(t *testing.T) {
	_, diags := mustInfer(t, "# f = (x) ?= {\n  1 => g(x)\n  _ => 0\n}")
	assertCodes(t, diags, diagnostics.WUnknownFn)
}

func TestInferIsRepeatable(t *testing.T) {
	prog, _ := mustInfer(t, "# f = (a) => a\nf(1)")
	if diags := infer.Infer(prog); len(diags) != 0 {
		t.Errorf("second pass should start from an empty table, got %v", diags)
	}
}

func TestLoggerReceivesDebugTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	prog, _ := parser.Parse("# f = (a) => a\nf(1)", "test.styio")
	infer.Infer(prog, infer.WithLogger(logger))
	out := buf.String()
	if !strings.Contains(out, "registered function") || !strings.Contains(out, "typed parameter") {
		t.Errorf("unexpected log output: %s", out)
	}
}
