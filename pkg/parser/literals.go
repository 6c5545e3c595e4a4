package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/cursor"
)

// parseName reads an identifier. The caller has checked the first character.
func (p *parser) parseName() *ast.Name {
	c := p.cur
	start := c.Mark()
	text := c.TakeWhile(cursor.IsAlphaNumeric)
	return &ast.Name{Span: c.SpanFrom(start), Name: text}
}

// parseNumber reads an integer or a float. A '.' only starts a fraction when
// a digit follows it, so `1..5` and `x.1.` leave the dots alone.
func (p *parser) parseNumber() ast.Node {
	c := p.cur
	start := c.Mark()
	if c.Check('-') {
		c.Advance()
	}
	c.TakeWhile(cursor.IsDigit)
	if c.Check('.') && cursor.IsDigit(c.PeekAt(1)) {
		c.Advance()
		c.TakeWhile(cursor.IsDigit)
		return &ast.FloatLit{Span: c.SpanFrom(start), Text: c.Text(start)}
	}
	return &ast.IntLit{Span: c.SpanFrom(start), Text: c.Text(start)}
}

// readQuoted reads a double-quoted string with escapes and returns its value.
func (p *parser) readQuoted() (string, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume opening "

	var buf strings.Builder
	for !c.AtEnd() {
		ch := c.Peek()
		if ch == '"' {
			c.Advance()
			return buf.String(), nil
		}
		if ch == '\\' {
			c.Advance()
			if c.AtEnd() {
				break
			}
			esc := c.Advance()
			switch esc {
			case '"', '\\', '\'':
				buf.WriteByte(esc)
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case '0':
				buf.WriteByte(0)
			default:
				return "", c.ErrorAt(start, "invalid escape character: \\%c", esc)
			}
			continue
		}
		buf.WriteByte(c.Advance())
	}
	return "", c.ErrorAt(start, "unterminated string literal")
}

func (p *parser) parseString() (ast.Node, error) {
	start := p.cur.Mark()
	s, err := p.readQuoted()
	if err != nil {
		return nil, err
	}
	return &ast.StringLit{Span: p.cur.SpanFrom(start), Value: s}, nil
}

// parseCharOrString reads a single-quoted literal: one character is a Char,
// anything else a String.
func (p *parser) parseCharOrString() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume opening '
	body := c.Mark()
	for !c.AtEnd() && !c.Check('\'') {
		c.Advance()
	}
	if c.AtEnd() {
		return nil, c.ErrorAt(start, "unterminated character literal")
	}
	text := c.Text(body)
	c.Advance() // consume closing '
	if utf8.RuneCountInString(text) == 1 {
		return &ast.CharLit{Span: c.SpanFrom(start), Value: text}, nil
	}
	return &ast.StringLit{Span: c.SpanFrom(start), Value: text}, nil
}

// parseFmtString reads `$"text {expr} text"`. `{{` and `}}` are literal braces.
func (p *parser) parseFmtString() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume $
	if !c.Check('"') {
		return nil, c.Errorf("expected '\"' after '$', got %s", c.Describe())
	}
	c.Advance()

	fs := &ast.FmtString{}
	var buf strings.Builder
	for {
		if c.AtEnd() {
			return nil, c.ErrorAt(start, "unterminated formatted string")
		}
		ch := c.Peek()
		switch {
		case ch == '"':
			c.Advance()
			fs.Fragments = append(fs.Fragments, buf.String())
			fs.Span = c.SpanFrom(start)
			return fs, nil
		case c.CheckString("{{"):
			c.Move(2)
			buf.WriteByte('{')
		case c.CheckString("}}"):
			c.Move(2)
			buf.WriteByte('}')
		case ch == '{':
			c.Advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := c.Expect('}'); err != nil {
				return nil, err
			}
			fs.Fragments = append(fs.Fragments, buf.String())
			fs.Exprs = append(fs.Exprs, expr)
			buf.Reset()
		case ch == '}':
			return nil, c.Errorf("single '}' in formatted string, write '}}' for a literal brace")
		case ch == '\\':
			c.Advance()
			switch esc := c.Advance(); esc {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case cursor.EOF:
			default:
				buf.WriteByte(esc)
			}
		default:
			buf.WriteByte(c.Advance())
		}
	}
}

// --- Resources ---

var resourcePrefixes = []struct {
	prefix string
	build  func(span ast.Span, s string) ast.Node
}{
	{"http://", webURL},
	{"https://", webURL},
	{"postgres://", dbURL},
	{"postgresql://", dbURL},
	{"mysql://", dbURL},
	{"sqlite://", dbURL},
	{"mongodb://", dbURL},
	{"redis://", dbURL},
	{"ssh://", remotePath},
	{"ftp://", remotePath},
	{"sftp://", remotePath},
	{"//", remotePath},
}

func webURL(span ast.Span, s string) ast.Node     { return &ast.WebURL{Span: span, URL: s} }
func dbURL(span ast.Span, s string) ast.Node      { return &ast.DBURL{Span: span, URL: s} }
func remotePath(span ast.Span, s string) ast.Node { return &ast.RemotePath{Span: span, Path: s} }

func classifyResource(span ast.Span, s string) ast.Node {
	for _, rp := range resourcePrefixes {
		if strings.HasPrefix(s, rp.prefix) {
			return rp.build(span, s)
		}
	}
	return &ast.LocalPath{Span: span, Path: s}
}

// parseResourceLiteral reads `@("path")`.
func (p *parser) parseResourceLiteral() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume @
	if !c.Check('(') {
		return nil, c.Errorf("external resource must be wrapped with '(' and ')', got %s", c.Describe())
	}
	c.Advance()
	c.SkipTrivia()
	return p.finishResourcePath(start)
}

// finishResourcePath reads `"path")` once `@(` has been consumed.
func (p *parser) finishResourcePath(start cursor.Mark) (ast.Node, error) {
	c := p.cur
	if !c.Check('"') {
		return nil, c.Errorf("expected '\"' to start a resource path, got %s", c.Describe())
	}
	path, err := p.readQuoted()
	if err != nil {
		return nil, err
	}
	c.SkipTrivia()
	if !c.Check(')') {
		return nil, c.Errorf("expected ')' after resource path, got %s", c.Describe())
	}
	c.Advance()
	return classifyResource(c.SpanFrom(start), path), nil
}

// parseResourceStatement handles `@("path")`, `@[ "pkg", ... ]` and
// `@(name <- value, ...) -> { ... }`.
func (p *parser) parseResourceStatement() (ast.Node, error) {
	c := p.cur
	start := c.Mark()
	c.Advance() // consume @

	if c.Check('[') {
		return p.finishExtPack(start)
	}
	if !c.Check('(') {
		return nil, c.Errorf("external resource must be wrapped with '(' and ')', got %s", c.Describe())
	}
	c.Advance()
	c.SkipTrivia()
	if c.Check('"') {
		return p.finishResourcePath(start)
	}

	rb := &ast.ResourceBlock{}
	for {
		c.SkipTrivia()
		if c.Check(')') {
			break
		}
		if !cursor.IsAlpha(c.Peek()) {
			return nil, c.Errorf("expected a resource name, got %s", c.Describe())
		}
		entryStart := c.Mark()
		name := p.parseName()
		if err := c.ExpectString("<-"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rb.Entries = append(rb.Entries, &ast.ResourceBinding{Span: c.SpanFrom(entryStart), Name: name, Value: value})
		if !c.FindDrop(',') {
			break
		}
	}
	if err := c.Expect(')'); err != nil {
		return nil, err
	}
	if c.FindDropString("->") {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		rb.Then = block
	}
	rb.Span = c.SpanFrom(start)
	return rb, nil
}

func (p *parser) finishExtPack(start cursor.Mark) (ast.Node, error) {
	c := p.cur
	c.Advance() // consume [
	ext := &ast.ExtPack{}
	for {
		c.SkipTrivia()
		if c.Check(']') {
			break
		}
		if !c.Check('"') {
			return nil, c.Errorf("expected a quoted package name, got %s", c.Describe())
		}
		pkg, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		ext.Packages = append(ext.Packages, pkg)
		if !c.FindDrop(',') {
			break
		}
	}
	if err := c.Expect(']'); err != nil {
		return nil, err
	}
	ext.Span = c.SpanFrom(start)
	return ext, nil
}
