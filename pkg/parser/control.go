package parser

import (
	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/cursor"
)

// parseForward reads `[(params)] guard-or-body`. The guard decides the
// variant; equality and membership guards need `=> body` after them.
func (p *parser) parseForward() (*ast.Forward, error) {
	c := p.cur
	c.SkipTrivia()
	start := c.Mark()

	var params *ast.VarTuple
	if c.Check('(') {
		var err error
		if params, err = p.parseParams(); err != nil {
			return nil, err
		}
	}
	c.SkipTrivia()

	switch {
	case c.CheckString("?="):
		gStart := c.Mark()
		c.Move(2)
		c.SkipTrivia()
		if c.Check('{') {
			cases, err := p.parseCases()
			if err != nil {
				return nil, err
			}
			return ast.NewForward(c.SpanFrom(start), params, cases, nil), nil
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		guard := &ast.CheckEq{Span: c.SpanFrom(gStart), Value: value}
		body, err := p.parseArrowBody("equality guard")
		if err != nil {
			return nil, err
		}
		return ast.NewForward(c.SpanFrom(start), params, guard, body), nil

	case c.CheckString("?^"):
		gStart := c.Mark()
		c.Move(2)
		iterable, err := p.parseMembership()
		if err != nil {
			return nil, err
		}
		guard := &ast.CheckIsIn{Span: c.SpanFrom(gStart), Iterable: iterable}
		body, err := p.parseArrowBody("membership guard")
		if err != nil {
			return nil, err
		}
		return ast.NewForward(c.SpanFrom(start), params, guard, body), nil

	case c.CheckString("?("):
		flow, err := p.parseCondFlow()
		if err != nil {
			return nil, err
		}
		return ast.NewForward(c.SpanFrom(start), params, flow, nil), nil

	case c.CheckString("=>"):
		c.Move(2)
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewForward(c.SpanFrom(start), params, nil, body), nil

	case c.Check('{'):
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewForward(c.SpanFrom(start), params, nil, block), nil
	}
	return nil, c.Errorf("expected '=>', '{' or a guard in forward, got %s", c.Describe())
}

// parseParams reads `(a, b: i32, ...)`.
func (p *parser) parseParams() (*ast.VarTuple, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume (
	vt := &ast.VarTuple{}
	for {
		c.SkipTrivia()
		if c.Check(')') {
			break
		}
		if !cursor.IsAlpha(c.Peek()) {
			return nil, c.Errorf("expected a parameter name, got %s", c.Describe())
		}
		name := p.parseName()
		param := &ast.Param{Span: name.Span, Name: name.Name}
		c.SkipSpaces()
		if c.Check(':') {
			c.Advance()
			c.SkipSpaces()
			if !cursor.IsAlpha(c.Peek()) {
				return nil, c.Errorf("expected a type name after ':', got %s", c.Describe())
			}
			param.TypeName = p.parseName().Name
			param.Type = ast.ParseDataType(param.TypeName)
			param.Span = c.Extend(name.Span)
		}
		vt.Params = append(vt.Params, param)
		if !c.FindDrop(',') {
			break
		}
	}
	if err := c.Expect(')'); err != nil {
		return nil, err
	}
	vt.Span = c.SpanFrom(start)
	return vt, nil
}

// parseMembership reads the collection after `?^`.
func (p *parser) parseMembership() (ast.Node, error) {
	c := p.cur
	c.SkipTrivia()
	switch ch := c.Peek(); {
	case ch == '(':
		return p.parseTuple()
	case ch == '[':
		return p.parseBracket()
	case ch == '{':
		return p.parseSet()
	case cursor.IsAlpha(ch):
		return p.parseName(), nil
	}
	return nil, c.Errorf("membership guard expects a collection or a name, got %s", c.Describe())
}

// parseArrowBody requires `=> body` after a guard.
func (p *parser) parseArrowBody(after string) (ast.Node, error) {
	c := p.cur
	if !c.FindDropString("=>") {
		return nil, c.Errorf("expected '=>' after %s, got %s", after, c.Describe())
	}
	return p.parseBody()
}

// parseBody reads a block, a print or an expression.
func (p *parser) parseBody() (ast.Node, error) {
	c := p.cur
	c.SkipTrivia()
	switch {
	case c.Check('{'):
		return p.parseBlock()
	case c.CheckString(">_"):
		return p.parsePrint()
	}
	return p.parseExpr()
}

// parseCondFlow reads `?(cond) \t\ {...} \f\ {...}` with one or both branches.
func (p *parser) parseCondFlow() (*ast.CondFlow, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume ?
	if !c.Check('(') {
		return nil, c.Errorf("expected '(' after '?', got %s", c.Describe())
	}
	c.Advance()
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := c.Expect(')'); err != nil {
		return nil, err
	}

	flow := &ast.CondFlow{Cond: cond}
	c.SkipTrivia()
	switch {
	case c.CheckString(`\t\`):
		c.Move(3)
		if flow.Then, err = p.parseBlock(); err != nil {
			return nil, err
		}
		flow.Branches = ast.TrueOnly
		if c.FindDropString(`\f\`) {
			if flow.Else, err = p.parseBlock(); err != nil {
				return nil, err
			}
			flow.Branches = ast.BothBranches
		}
	case c.CheckString(`\f\`):
		c.Move(3)
		if flow.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
		flow.Branches = ast.FalseOnly
	default:
		return nil, c.Errorf(`expected a branch marker '\t\' or '\f\' after condition, got %s`, c.Describe())
	}
	flow.Span = c.SpanFrom(start)
	return flow, nil
}

// parseCases reads `{ pattern => body ... _ => body }`. The default branch
// is mandatory and closes the table.
func (p *parser) parseCases() (*ast.Cases, error) {
	c := p.cur
	start := c.Mark()
	if err := c.Expect('{'); err != nil {
		return nil, err
	}
	cases := &ast.Cases{}
	for {
		c.SkipTrivia()
		if c.AtEnd() {
			return nil, c.Errorf("expected '}' to close cases, got end of input")
		}
		if c.Check('}') {
			return nil, c.ErrorAt(start, "cases block is missing its default branch").
				WithHint("add '_ => ...' as the last case")
		}
		if c.Check('_') && !cursor.IsAlphaNumeric(c.PeekAt(1)) {
			c.Advance()
			def, err := p.parseArrowBody("default pattern '_'")
			if err != nil {
				return nil, err
			}
			cases.Default = def
			if err := c.Expect('}'); err != nil {
				return nil, err
			}
			cases.Span = c.SpanFrom(start)
			return cases, nil
		}

		caseStart := c.Mark()
		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result, err := p.parseArrowBody("case pattern")
		if err != nil {
			return nil, err
		}
		cases.Cases = append(cases.Cases, &ast.Case{Span: c.SpanFrom(caseStart), Pattern: pattern, Result: result})
	}
}

// parseFunc reads `# name := forward`, `# name : type = forward` and the
// anonymous `# forward`.
func (p *parser) parseFunc() (*ast.Func, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume #
	c.SkipSpaces()

	fn := &ast.Func{}
	if cursor.IsAlpha(c.Peek()) {
		fn.Name = p.parseName()
		c.SkipSpaces()
		switch {
		case c.CheckString(":="):
			c.Move(2)
			fn.Final = true
		case c.Check(':'):
			c.Advance()
			c.SkipSpaces()
			if !cursor.IsAlpha(c.Peek()) {
				return nil, c.Errorf("expected a return type after ':', got %s", c.Describe())
			}
			fn.RetTypeName = p.parseName().Name
			fn.RetType = ast.ParseDataType(fn.RetTypeName)
			c.SkipSpaces()
			switch {
			case c.CheckString(":="):
				c.Move(2)
				fn.Final = true
			case isAssign(c):
				c.Advance()
			default:
				return nil, c.Errorf("expected '=' or ':=' after return type, got %s", c.Describe())
			}
		case isAssign(c):
			c.Advance()
		default:
			return nil, c.Errorf("expected '=' or ':=' after function name, got %s", c.Describe())
		}
		if err := p.checkAssign(fn.Name); err != nil {
			return nil, err
		}
		if fn.Final {
			p.scope.markFinal(fn.Name.Name)
		}
	}

	fwd, err := p.parseForward()
	if err != nil {
		return nil, err
	}
	fn.Forward = fwd
	fn.Span = c.SpanFrom(start)
	return fn, nil
}
