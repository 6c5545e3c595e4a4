package parser

import (
	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/cursor"
)

// parseExpr parses a value followed by an optional arithmetic chain.
func (p *parser) parseExpr() (ast.Node, error) {
	lhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryChain(lhs)
}

// parseValue parses one operand: a literal, a name with its postfix
// operations, a collection, a size-of, a resource or an anonymous function.
func (p *parser) parseValue() (ast.Node, error) {
	c := p.cur
	c.SkipTrivia()
	ch := c.Peek()

	switch {
	case cursor.IsAlpha(ch):
		return p.parsePostfix(p.parseName())
	case cursor.IsDigit(ch), ch == '-' && cursor.IsDigit(c.PeekAt(1)):
		return p.parseNumber(), nil
	case ch == '"':
		return p.parseString()
	case ch == '\'':
		return p.parseCharOrString()
	case ch == '$':
		return p.parseFmtString()
	case ch == '[':
		coll, err := p.parseBracket()
		if err != nil {
			return nil, err
		}
		return p.parseCollectionTail(coll)
	case ch == '(':
		v, err := p.parseTupleOrGroup()
		if err != nil {
			return nil, err
		}
		if _, ok := v.(*ast.Tuple); ok {
			return p.parseCollectionTail(v)
		}
		return v, nil
	case ch == '{':
		set, err := p.parseSet()
		if err != nil {
			return nil, err
		}
		return p.parseCollectionTail(set)
	case ch == '|':
		return p.parseSizeOf()
	case ch == '@':
		return p.parseResourceLiteral()
	case ch == '#':
		return p.parseFunc()
	}
	if c.AtEnd() {
		return nil, p.parseErr("expected a value, got end of input")
	}
	return nil, p.parseErr("unexpected %s at start of expression", c.Describe())
}

// peekBinaryOp reports the arithmetic operator at the cursor and its width.
// `->` and comment openers are not operators.
func peekBinaryOp(c *cursor.Cursor) (ast.BinaryOp, int, bool) {
	switch c.Peek() {
	case '+':
		return ast.OpAdd, 1, true
	case '-':
		if c.PeekAt(1) == '>' {
			return "", 0, false
		}
		return ast.OpSub, 1, true
	case '*':
		if c.PeekAt(1) == '*' {
			return ast.OpPow, 2, true
		}
		return ast.OpMul, 1, true
	case '/':
		if c.PeekAt(1) == '/' || c.PeekAt(1) == '*' {
			return "", 0, false
		}
		return ast.OpDiv, 1, true
	case '%':
		return ast.OpMod, 1, true
	}
	return "", 0, false
}

// parseBinaryChain folds operators on the same line into a left-leaning tree,
// so `1 + 2 * 3` reads as `(1 + 2) * 3`. An operator directly followed by '='
// builds the in-place form, takes a whole expression and ends the chain. Block
// comments that close on the same line may sit before an operator.
func (p *parser) parseBinaryChain(lhs ast.Node) (ast.Node, error) {
	c := p.cur
	for {
		c.SkipInline()
		op, width, ok := peekBinaryOp(c)
		if !ok {
			return lhs, nil
		}
		c.Move(width)

		if c.Check('=') {
			c.Advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.BinOp{Span: join(lhs.NodeSpan(), rhs.NodeSpan()), Op: op.Assign(), Left: lhs, Right: rhs}, nil
		}

		rhs, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Span: join(lhs.NodeSpan(), rhs.NodeSpan()), Op: op, Left: lhs, Right: rhs}
	}
}

// parsePostfix turns a name into a boolean, a call and/or a chain of list
// operations and iteration.
func (p *parser) parsePostfix(name *ast.Name) (ast.Node, error) {
	switch name.Name {
	case "true":
		return &ast.BoolLit{Span: name.Span, Value: true}, nil
	case "false":
		return &ast.BoolLit{Span: name.Span, Value: false}, nil
	}

	var node ast.Node = name
	c := p.cur
	c.SkipSpaces()
	if c.Check('(') {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		node = &ast.Call{Span: c.Extend(name.Span), Name: name, Args: args}
	}
	return p.parseCollectionTail(node)
}

// parseCollectionTail applies `[...]` list operations and a final `>> forward`.
func (p *parser) parseCollectionTail(node ast.Node) (ast.Node, error) {
	c := p.cur
	for {
		c.SkipSpaces()
		switch {
		case c.Check('['):
			op, err := p.parseListOp(node)
			if err != nil {
				return nil, err
			}
			node = op
		case c.CheckString(">>"):
			c.Move(2)
			fwd, err := p.parseForward()
			if err != nil {
				return nil, err
			}
			span := join(node.NodeSpan(), fwd.Span)
			if inf, ok := node.(*ast.Infinite); ok {
				loop := &ast.Loop{Span: span, Forward: fwd}
				if inf.Explicit() {
					loop.Start = inf
				}
				return loop, nil
			}
			return &ast.Iter{Span: span, Collection: node, Forward: fwd}, nil
		default:
			return node, nil
		}
	}
}

// parseArgs reads `(a, b, ...)` as a list of expressions.
func (p *parser) parseArgs() ([]ast.Node, error) {
	c := p.cur
	if err := c.Expect('('); err != nil {
		return nil, err
	}
	var args []ast.Node
	for {
		c.SkipTrivia()
		if c.Check(')') {
			break
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !c.FindDrop(',') {
			break
		}
	}
	if err := c.Expect(')'); err != nil {
		return nil, err
	}
	return args, nil
}

// --- Collections ---

func isDot(b byte) bool { return b == '.' }

// parseBracket reads everything that starts with '[': empty lists, lists,
// ranges and infinite sequences.
func (p *parser) parseBracket() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume [
	c.SkipTrivia()

	if c.Check(']') {
		c.Advance()
		return &ast.List{Span: c.SpanFrom(start)}, nil
	}

	if c.Check('.') {
		dots := c.TakeWhile(isDot)
		if len(dots) < 2 {
			return nil, c.ErrorAt(start, "'[.]' is not a valid sequence").WithHint("write '[...]' for an infinite sequence")
		}
		c.SkipTrivia()
		if c.Check(']') {
			c.Advance()
			return &ast.Infinite{Span: c.SpanFrom(start)}, nil
		}
		return nil, c.Errorf("a finite list must have both start and end values, got %s after '%s'", c.Describe(), dots)
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	c.SkipTrivia()

	if c.CheckString("..") {
		c.TakeWhile(isDot)
		end, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := c.Expect(']'); err != nil {
			return nil, err
		}
		return rangeOf(c.SpanFrom(start), first, end, c)
	}

	elems := []ast.Node{first}
	for c.FindDrop(',') {
		c.SkipTrivia()
		if c.Check(']') {
			break
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := c.Expect(']'); err != nil {
		return nil, err
	}
	return &ast.List{Span: c.SpanFrom(start), Elements: elems}, nil
}

// rangeOf resolves `[start .. end]`. Integer bounds give a Range with step 1,
// an integer start with a named end gives an Infinite with start and increment.
func rangeOf(span ast.Span, first, end ast.Node, c *cursor.Cursor) (ast.Node, error) {
	startLit, ok := first.(*ast.IntLit)
	if !ok {
		err := c.Errorf("range start must be an integer literal, got %s", first.Kind())
		err.Diag.Span = &span
		return nil, err
	}
	switch e := end.(type) {
	case *ast.IntLit:
		step := &ast.IntLit{Span: span, Text: "1"}
		return &ast.Range{Span: span, Start: startLit, End: e, Step: step}, nil
	case *ast.Name:
		return &ast.Infinite{Span: span, Start: startLit, Increment: e}, nil
	}
	err := c.Errorf("range end must be an integer literal or a name, got %s", end.Kind())
	err.Diag.Span = &span
	return nil, err
}

// parseTupleOrGroup reads `(a, b)` as a tuple and `(a)` as the grouped value.
func (p *parser) parseTupleOrGroup() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume (
	c.SkipTrivia()
	if c.Check(')') {
		c.Advance()
		return &ast.Tuple{Span: c.SpanFrom(start)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if c.FindDrop(')') {
		return first, nil
	}
	elems, err := p.parseElements(first, ')')
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{Span: c.SpanFrom(start), Elements: elems}, nil
}

// parseTuple reads `( ... )` and always yields a tuple.
func (p *parser) parseTuple() (*ast.Tuple, error) {
	c := p.cur
	start := c.Mark()
	if err := c.Expect('('); err != nil {
		return nil, err
	}
	c.SkipTrivia()
	if c.Check(')') {
		c.Advance()
		return &ast.Tuple{Span: c.SpanFrom(start)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	elems, err := p.parseElements(first, ')')
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{Span: c.SpanFrom(start), Elements: elems}, nil
}

func (p *parser) parseSet() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume {
	c.SkipTrivia()
	if c.Check('}') {
		c.Advance()
		return &ast.Set{Span: c.SpanFrom(start)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	elems, err := p.parseElements(first, '}')
	if err != nil {
		return nil, err
	}
	return &ast.Set{Span: c.SpanFrom(start), Elements: elems}, nil
}

// parseElements continues a comma-separated list after its first element
// and consumes the closing character. A trailing comma is allowed.
func (p *parser) parseElements(first ast.Node, closing byte) ([]ast.Node, error) {
	c := p.cur
	elems := []ast.Node{first}
	for c.FindDrop(',') {
		c.SkipTrivia()
		if c.Check(closing) {
			break
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := c.Expect(closing); err != nil {
		return nil, err
	}
	return elems, nil
}

func (p *parser) parseSizeOf() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume |
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := c.Expect('|'); err != nil {
		return nil, err
	}
	return &ast.SizeOf{Span: c.SpanFrom(start), Value: value}, nil
}

// --- List operations ---

// parseListOp reads one `[...]` operation applied to list.
func (p *parser) parseListOp(list ast.Node) (ast.Node, error) {
	c := p.cur
	c.Advance() // consume [
	c.SkipTrivia()

	op := &ast.ListOp{List: list}
	var err error
	switch {
	case c.Check('<'):
		c.Advance()
		op.Op = ast.ListReverse
	case c.CheckString("?="):
		c.Move(2)
		op.Op = ast.ListIndexOf
		op.Value, err = p.parseExpr()
	case c.CheckString("?^"):
		c.Move(2)
		op.Op = ast.ListIndicesOf
		op.Values, err = p.parseValueGroup()
	case c.CheckString("+:"):
		c.Move(2)
		op.Op = ast.ListAppend
		op.Value, err = p.parseExpr()
		if err == nil && c.FindDropString("<-") {
			op.Op = ast.ListInsert
			op.Index = op.Value
			op.Value, err = p.parseExpr()
		}
	case c.CheckString("-:"):
		c.Move(2)
		c.SkipTrivia()
		switch {
		case c.CheckString("?="):
			c.Move(2)
			op.Op = ast.ListRemoveValue
			op.Value, err = p.parseExpr()
		case c.CheckString("?^"):
			c.Move(2)
			op.Op = ast.ListRemoveValues
			op.Values, err = p.parseValueGroup()
		case c.Check('^'), c.Check('('):
			if c.Check('^') {
				c.Advance()
			}
			op.Op = ast.ListRemoveIndices
			op.Values, err = p.parseValueGroup()
		default:
			op.Op = ast.ListRemoveAt
			op.Index, err = p.parseExpr()
		}
	case c.Check('"'):
		op.Op = ast.ListGetKey
		op.Index, err = p.parseString()
	case cursor.IsAlphaNumeric(c.Peek()), c.Check('-') && cursor.IsDigit(c.PeekAt(1)):
		op.Op = ast.ListGetIndex
		op.Index, err = p.parseExpr()
	default:
		return nil, c.Errorf("unrecognized list operation starting with %s", c.Describe())
	}
	if err != nil {
		return nil, err
	}
	if err := c.Expect(']'); err != nil {
		return nil, err
	}
	op.Span = c.Extend(list.NodeSpan())
	return op, nil
}

// parseValueGroup reads `(v0, v1, ...)` for the many-values list operations.
func (p *parser) parseValueGroup() ([]ast.Node, error) {
	c := p.cur
	c.SkipTrivia()
	if !c.Check('(') {
		return nil, c.Errorf("expected '(' to start a value group, got %s", c.Describe())
	}
	t, err := p.parseTuple()
	if err != nil {
		return nil, err
	}
	return t.Elements, nil
}

// --- Conditions ---

// parseCond reads a condition up to, not including, the closing ')'.
// `^` is read as an inclusive or, like `|` and `||`.
func (p *parser) parseCond() (*ast.Cond, error) {
	c := p.cur
	lhs, err := p.parseCondOperand()
	if err != nil {
		return nil, err
	}
	for {
		c.SkipTrivia()
		var logic ast.LogicOp
		width := 1
		switch {
		case c.CheckString("&&"):
			logic, width = ast.LogicAnd, 2
		case c.Check('&'):
			logic = ast.LogicAnd
		case c.CheckString("||"):
			logic, width = ast.LogicOr, 2
		case c.Check('|'), c.Check('^'):
			logic = ast.LogicOr
		default:
			return lhs, nil
		}
		c.Move(width)
		rhs, err := p.parseCondOperand()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Cond{Span: join(lhs.Span, rhs.Span), Logic: logic, Left: lhs, Right: rhs}
	}
}

func (p *parser) parseCondOperand() (*ast.Cond, error) {
	c := p.cur
	c.SkipTrivia()
	start := c.Mark()

	switch {
	case c.Check('!') && c.PeekAt(1) != '=':
		c.Advance()
		c.SkipSpaces()
		if !c.Check('(') {
			return nil, c.Errorf("expected '(' after '!', got %s", c.Describe())
		}
		c.Advance()
		inner, err := p.parseCond()
		if err != nil {
			return nil, err
		}
		if err := c.Expect(')'); err != nil {
			return nil, err
		}
		return &ast.Cond{Span: c.SpanFrom(start), Logic: ast.LogicNot, Left: inner}, nil
	case c.Check('('):
		c.Advance()
		inner, err := p.parseCond()
		if err != nil {
			return nil, err
		}
		if err := c.Expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	}

	value, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return &ast.Cond{Span: c.SpanFrom(start), Logic: ast.LogicRaw, Left: value}, nil
}

var compareOps = []ast.CompareOp{ast.CmpEq, ast.CmpNeq, ast.CmpGtEq, ast.CmpLtEq, ast.CmpGt, ast.CmpLt}

// parseComparison reads an expression optionally followed by a comparison.
func (p *parser) parseComparison() (ast.Node, error) {
	c := p.cur
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	c.SkipTrivia()
	for _, op := range compareOps {
		if c.CheckString(string(op)) {
			c.Move(len(op))
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.BinComp{Span: join(lhs.NodeSpan(), rhs.NodeSpan()), Op: op, Left: lhs, Right: rhs}, nil
		}
	}
	return lhs, nil
}
