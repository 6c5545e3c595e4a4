// Package infer annotates a parsed Styio program with scalar types.
//
// The pass never fails. Problems it notices along the way, such as calls to
// unknown functions, are returned as warnings.
package infer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

// funcInfo is a registered function plus the parameter types calls have assigned.
type funcInfo struct {
	fn      *ast.Func
	typedBy map[int]ast.DataType
}

func (f *funcInfo) params() []*ast.Param {
	if f.fn.Forward == nil || f.fn.Forward.Params == nil {
		return nil
	}
	return f.fn.Forward.Params.Params
}

type inferencer struct {
	funcs  map[string]*funcInfo
	diags  []diagnostics.Diagnostic
	logger *slog.Logger
}

// Option configures a pass.
type Option func(*inferencer)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(in *inferencer) {
		in.logger = l
	}
}

// Infer resolves types in place and returns the warnings it produced.
// The function table lives only for the duration of the call.
func Infer(program *ast.Program, opts ...Option) []diagnostics.Diagnostic {
	in := &inferencer{
		funcs:  make(map[string]*funcInfo),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	if program != nil {
		in.block(program.Stmts)
	}
	return in.diags
}

func (in *inferencer) warn(code string, span ast.Span, hint, format string, args ...any) {
	in.diags = append(in.diags, diagnostics.MakeWarning(code, fmt.Sprintf(format, args...), &span, hint))
}

// block hoists the named functions of a block before walking it, so calls may
// precede definitions.
func (in *inferencer) block(stmts []ast.Node) {
	for _, s := range stmts {
		if fn, ok := s.(*ast.Func); ok {
			in.register(fn)
		}
	}
	for _, s := range stmts {
		in.node(s)
	}
}

func (in *inferencer) register(fn *ast.Func) {
	if fn.Name == nil {
		return
	}
	if cur, ok := in.funcs[fn.Name.Name]; ok && cur.fn == fn {
		return
	}
	in.funcs[fn.Name.Name] = &funcInfo{fn: fn, typedBy: make(map[int]ast.DataType)}
	in.logger.Debug("registered function", "name", fn.Name.Name, "final", fn.Final)
}

func (in *inferencer) nodes(ns []ast.Node) {
	for _, n := range ns {
		in.node(n)
	}
}

func (in *inferencer) node(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.IntLit:
		if n.Type == ast.Undefined {
			n.Type = ast.I32
		}
	case *ast.FloatLit:
		if n.Type == ast.Undefined {
			n.Type = ast.F64
		}
	case *ast.BinOp:
		in.binOp(n)
	case *ast.FlexBind:
		in.bind(n.Var, n.Value)
	case *ast.FinalBind:
		in.bind(n.Var, n.Value)
	case *ast.List:
		in.nodes(n.Elements)
		n.ElemType, n.Consistent = consistentType(n.Elements)
	case *ast.Tuple:
		in.nodes(n.Elements)
		n.ElemType, n.Consistent = consistentType(n.Elements)
	case *ast.Set:
		in.nodes(n.Elements)
		n.ElemType, n.Consistent = consistentType(n.Elements)
	case *ast.Range:
		in.node(n.Start)
		in.node(n.End)
		in.node(n.Step)
	case *ast.Infinite:
		in.node(n.Start)
		in.node(n.Increment)
	case *ast.Func:
		in.register(n)
		in.forward(n.Forward)
	case *ast.Call:
		in.call(n)
	case *ast.Forward:
		in.forward(n)
	case *ast.Block:
		in.block(n.Stmts)
	case *ast.Iter:
		in.node(n.Collection)
		in.forward(n.Forward)
	case *ast.Loop:
		if n.Start != nil {
			in.node(n.Start)
		}
		in.forward(n.Forward)
	case *ast.CondFlow:
		in.node(n.Cond)
		if n.Then != nil {
			in.block(n.Then.Stmts)
		}
		if n.Else != nil {
			in.block(n.Else.Stmts)
		}
	case *ast.Cond:
		in.node(n.Left)
		in.node(n.Right)
	case *ast.BinComp:
		in.node(n.Left)
		in.node(n.Right)
	case *ast.CheckEq:
		in.node(n.Value)
	case *ast.CheckIsIn:
		in.node(n.Iterable)
	case *ast.Cases:
		for _, c := range n.Cases {
			in.node(c.Pattern)
			in.node(c.Result)
		}
		in.node(n.Default)
	case *ast.Return:
		in.node(n.Value)
	case *ast.Print:
		in.nodes(n.Exprs)
	case *ast.FmtString:
		in.nodes(n.Exprs)
	case *ast.SizeOf:
		in.node(n.Value)
	case *ast.ListOp:
		in.node(n.List)
		in.node(n.Index)
		in.node(n.Value)
		in.nodes(n.Values)
	case *ast.ResourceBlock:
		for _, e := range n.Entries {
			in.node(e.Value)
		}
		if n.Then != nil {
			in.block(n.Then.Stmts)
		}
	}
}

func (in *inferencer) forward(f *ast.Forward) {
	if f == nil {
		return
	}
	if f.Guard != nil {
		in.node(f.Guard)
	}
	in.node(f.Body)
}

// bind types a binding. A declared type is pushed into the value and the
// variable keeps it; otherwise the variable takes the value's type.
func (in *inferencer) bind(v *ast.Param, value ast.Node) {
	if v.Declared() {
		if v.Type != ast.Undefined {
			pushDown(value, v.Type)
		}
		in.node(value)
		return
	}

	in.node(value)
	switch val := value.(type) {
	case *ast.IntLit:
		v.Type = val.Type
	case *ast.FloatLit:
		v.Type = val.Type
	case *ast.BinOp:
		v.Type = val.Type
	case *ast.Tuple:
		v.Type = val.ElemType
	}
}

// pushDown forces t onto a binary operation, or onto a literal of the same family.
func pushDown(value ast.Node, t ast.DataType) {
	switch val := value.(type) {
	case *ast.BinOp:
		val.Type = t
	case *ast.IntLit:
		if t.IsInteger() {
			val.Type = t
		}
	case *ast.FloatLit:
		if t.IsFloat() {
			val.Type = t
		}
	}
}

// binOp types an arithmetic node. A resolved node forces its type onto
// operand operations; an unresolved one promotes its operand types when the
// operator has a promotion rule.
func (in *inferencer) binOp(b *ast.BinOp) {
	if b.Type != ast.Undefined {
		for _, side := range []ast.Node{b.Left, b.Right} {
			if child, ok := side.(*ast.BinOp); ok {
				child.Type = b.Type
				in.binOp(child)
			} else {
				in.node(side)
			}
		}
		return
	}

	in.node(b.Left)
	in.node(b.Right)
	lt, lok := operandType(b.Left)
	rt, rok := operandType(b.Right)
	if lok && rok && promotes(b.Op) {
		b.Type = ast.Promote(lt, rt)
	}
}

// promotes reports whether op derives its type from its operands.
// `%` and `**` stay undefined, in place or not.
func promotes(op ast.BinaryOp) bool {
	switch op.Base() {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		return true
	}
	return false
}

// operandType reports the type of the operand kinds promotion understands.
func operandType(n ast.Node) (ast.DataType, bool) {
	switch n := n.(type) {
	case *ast.IntLit:
		return n.Type, true
	case *ast.FloatLit:
		return n.Type, true
	case *ast.BinOp:
		return n.Type, true
	}
	return ast.Undefined, false
}

// scalarType is the resolved type of a scalar node, or Undefined.
func scalarType(n ast.Node) ast.DataType {
	if n, ok := n.(*ast.BoolLit); ok && n != nil {
		return ast.Bool
	}
	t, _ := operandType(n)
	return t
}

// consistentType reports the shared element type when every element has the
// same defined type. Empty collections are not consistent.
func consistentType(elems []ast.Node) (ast.DataType, bool) {
	if len(elems) == 0 {
		return ast.Undefined, false
	}
	first := scalarType(elems[0])
	if first == ast.Undefined {
		return ast.Undefined, false
	}
	for _, e := range elems[1:] {
		if scalarType(e) != first {
			return ast.Undefined, false
		}
	}
	return first, true
}

// call checks a call against the function table and copies argument types
// onto undeclared parameters. The first call to type a parameter wins.
func (in *inferencer) call(c *ast.Call) {
	in.nodes(c.Args)

	name := c.Name.Name
	info, ok := in.funcs[name]
	if !ok {
		in.warn(diagnostics.WUnknownFn, c.Span, "", "function '%s' does not exist", name)
		return
	}
	params := info.params()
	if len(params) != len(c.Args) {
		in.warn(diagnostics.WArgCount, c.Span, "",
			"function '%s' takes %d arguments, got %d", name, len(params), len(c.Args))
		return
	}

	for i, p := range params {
		if p.Declared() {
			continue
		}
		at := scalarType(c.Args[i])
		if at == ast.Undefined {
			continue
		}
		prev, seen := info.typedBy[i]
		if !seen {
			p.Type = at
			info.typedBy[i] = at
			in.logger.Debug("typed parameter", "function", name, "param", p.Name, "type", at.String())
			continue
		}
		if prev != at {
			in.warn(diagnostics.WCallConflict, c.Args[i].NodeSpan(),
				"the parameter keeps the type from the first call",
				"call to '%s' passes %s for parameter '%s', an earlier call passed %s", name, at, p.Name, prev)
		}
	}
}
