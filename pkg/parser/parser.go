// Package parser implements the Styio recursive-descent parser. Parsing works
// directly on characters through a cursor.Cursor; every function leaves the
// cursor just past what it consumed and the first error stops the parse.
package parser

import (
	"errors"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/cursor"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

type parser struct {
	cur   *cursor.Cursor
	scope *scope
	emit  func(ast.Node)
}

// scope tracks the final bindings of one block.
type scope struct {
	finals map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{finals: make(map[string]bool), parent: parent}
}

func (s *scope) isFinal(name string) bool { return s.finals[name] }
func (s *scope) markFinal(name string)    { s.finals[name] = true }

// Parse parses source into a program. On failure it returns a single diagnostic.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	prog, err := ParseStatements(source, filename, nil)
	if err != nil {
		return nil, []diagnostics.Diagnostic{diagnostics.AsDiagnostic(err)}
	}
	return prog, nil
}

// ParseStatements parses source and calls emit with every top-level statement
// as soon as it is complete. emit may be nil.
func ParseStatements(source, filename string, emit func(ast.Node)) (*ast.Program, error) {
	p := &parser{cur: cursor.New(source, filename), emit: emit}
	return p.parseProgram()
}

// IsIncomplete reports whether err was caused by input ending early, so more
// input could still make the source valid.
func IsIncomplete(err error) bool {
	var de *diagnostics.Error
	return errors.As(err, &de) && de.AtEOF
}

func (p *parser) pushScope() { p.scope = newScope(p.scope) }
func (p *parser) popScope()  { p.scope = p.scope.parent }

// checkAssign rejects rebinding a name that is final in the current scope.
func (p *parser) checkAssign(name *ast.Name) error {
	if p.scope.isFinal(name.Name) {
		return diagnostics.Syntax(name.Span, "final binding '%s' is already assigned in this scope", name.Name).
			WithHint("use '=' when declaring a binding that changes")
	}
	return nil
}

// parseErr builds an E_PARSE error at the current position.
func (p *parser) parseErr(format string, args ...any) *diagnostics.Error {
	err := diagnostics.Parse(p.cur.Here(), format, args...)
	err.AtEOF = p.cur.AtEnd()
	return err
}

func join(a, b ast.Span) ast.Span {
	return ast.Span{
		File:      a.File,
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
	}
}

// --- Program and blocks ---

func (p *parser) parseProgram() (*ast.Program, error) {
	start := p.cur.Mark()
	p.pushScope()
	defer p.popScope()

	var stmts []ast.Node
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, ok := stmt.(*ast.End); ok {
			break
		}
		if p.emit != nil {
			p.emit(stmt)
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Span: p.cur.SpanFrom(start), Stmts: stmts}, nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	c := p.cur
	c.SkipTrivia()
	start := c.Mark()
	if err := c.Expect('{'); err != nil {
		return nil, err
	}
	p.pushScope()
	defer p.popScope()

	var stmts []ast.Node
	for {
		c.SkipTrivia()
		if c.Check('}') {
			c.Advance()
			break
		}
		if c.AtEnd() {
			return nil, c.Errorf("expected '}' to close block, got end of input")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Block{Span: c.SpanFrom(start), Stmts: stmts}, nil
}

// --- Statements ---

// parseStatement dispatches on the first significant character.
func (p *parser) parseStatement() (ast.Node, error) {
	c := p.cur
	c.SkipTrivia()
	if c.AtEnd() {
		return &ast.End{Span: c.Here()}, nil
	}

	ch := c.Peek()
	switch {
	case cursor.IsAlpha(ch):
		return p.parseNameStatement()
	case cursor.IsDigit(ch), ch == '"', ch == '\'', ch == '$', ch == '[':
		return p.parseExpr()
	case ch == '?':
		return p.parseCondFlow()
	case ch == '!':
		return nil, diagnostics.NotImplemented(c.Here(), "statements starting with '!' are not implemented")
	case ch == '#':
		return p.parseFunc()
	case ch == '.':
		start := c.Mark()
		c.TakeWhile(func(b byte) bool { return b == '.' })
		return &ast.Pass{Span: c.SpanFrom(start)}, nil
	case ch == '^':
		start := c.Mark()
		c.TakeWhile(func(b byte) bool { return b == '^' })
		return &ast.Break{Span: c.SpanFrom(start)}, nil
	case ch == '@':
		return p.parseResourceStatement()
	case c.CheckString("=>"):
		return p.parseReturn()
	case c.CheckString(">_"):
		return p.parsePrint()
	}
	return nil, c.Errorf("unrecognized character %s at start of statement", c.Describe())
}

// parseNameStatement handles everything that starts with an identifier:
// bindings, file reads, iteration, list operations, calls and expressions.
func (p *parser) parseNameStatement() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	name := p.parseName()
	c.SkipSpaces()

	switch {
	case c.CheckString(":="):
		c.Move(2)
		return p.finishFinalBind(start, &ast.Param{Span: name.Span, Name: name.Name}, name)

	case c.Check(':'):
		c.Advance()
		c.SkipSpaces()
		if !cursor.IsAlpha(c.Peek()) {
			return nil, c.Errorf("expected a type name after ':', got %s", c.Describe())
		}
		typeName := p.parseName().Name
		v := &ast.Param{Span: name.Span, Name: name.Name, TypeName: typeName, Type: ast.ParseDataType(typeName)}
		c.SkipSpaces()
		switch {
		case c.CheckString(":="):
			c.Move(2)
			return p.finishFinalBind(start, v, name)
		case isAssign(c):
			c.Advance()
			return p.finishFlexBind(start, v, name)
		}
		return nil, c.Errorf("expected '=' or ':=' after type annotation, got %s", c.Describe())

	case isAssign(c):
		c.Advance()
		return p.finishFlexBind(start, &ast.Param{Span: name.Span, Name: name.Name}, name)

	case c.CheckString("<-"):
		c.Move(2)
		c.SkipTrivia()
		if !c.Check('@') {
			return nil, c.Errorf("reading a file requires an '@(...)' resource, got %s", c.Describe())
		}
		src, err := p.parseResourceLiteral()
		if err != nil {
			return nil, err
		}
		return &ast.ReadFile{Span: c.SpanFrom(start), Var: name, Source: src}, nil
	}

	node, err := p.parsePostfix(name)
	if err != nil {
		return nil, err
	}
	node, err = p.parseBinaryChain(node)
	if err != nil {
		return nil, err
	}
	if op, ok := node.(*ast.BinOp); ok && op.Op.InPlace() {
		if target, ok := op.Left.(*ast.Name); ok {
			if err := p.checkAssign(target); err != nil {
				return nil, err
			}
		}
	}
	return node, nil
}

// isAssign reports a single '=' that is not part of '==' or '=>'.
func isAssign(c *cursor.Cursor) bool {
	return c.Check('=') && c.PeekAt(1) != '=' && c.PeekAt(1) != '>'
}

func (p *parser) finishFlexBind(start cursor.Mark, v *ast.Param, name *ast.Name) (ast.Node, error) {
	if err := p.checkAssign(name); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FlexBind{Span: p.cur.SpanFrom(start), Var: v, Value: value}, nil
}

func (p *parser) finishFinalBind(start cursor.Mark, v *ast.Param, name *ast.Name) (ast.Node, error) {
	if err := p.checkAssign(name); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.scope.markFinal(name.Name)
	return &ast.FinalBind{Span: p.cur.SpanFrom(start), Var: v, Value: value}, nil
}

func (p *parser) parseReturn() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Move(2)
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Span: c.SpanFrom(start), Value: value}, nil
}

func (p *parser) parsePrint() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Move(2)
	c.SkipSpaces()
	if !c.Check('(') {
		return nil, c.Errorf("expected '(' after '>_', got %s", c.Describe())
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Span: c.SpanFrom(start), Exprs: args}, nil
}
