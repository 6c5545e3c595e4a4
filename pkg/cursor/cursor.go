// Package cursor provides the position-tracking view over Styio source that
// every parser function reads from. There is no token stream: parsers look at
// raw characters and decide what to consume.
package cursor

import (
	"fmt"
	"strings"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

// EOF is the end marker returned by Peek once the source is exhausted.
const EOF byte = 0

// Mark is a saved position used to build spans. It is never used to rewind.
type Mark struct {
	pos  int
	line int
	col  int
}

// Cursor walks a source buffer forward, tracking line and column.
type Cursor struct {
	source   string
	filename string
	pos      int
	line     int
	col      int
}

func New(source, filename string) *Cursor {
	return &Cursor{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (c *Cursor) Filename() string { return c.filename }

func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.source)
}

func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return EOF
	}
	return c.source[c.pos]
}

func (c *Cursor) PeekAt(offset int) byte {
	p := c.pos + offset
	if p >= len(c.source) {
		return EOF
	}
	return c.source[p]
}

// Check reports whether the current character is ch.
func (c *Cursor) Check(ch byte) bool {
	return !c.AtEnd() && c.source[c.pos] == ch
}

// CheckString reports whether the input at the current position starts with s.
func (c *Cursor) CheckString(s string) bool {
	return len(c.source)-c.pos >= len(s) && c.source[c.pos:c.pos+len(s)] == s
}

// Advance consumes one character. At the end of input it returns EOF and stays put.
func (c *Cursor) Advance() byte {
	if c.AtEnd() {
		return EOF
	}
	ch := c.source[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return ch
}

// Move consumes n characters.
func (c *Cursor) Move(n int) {
	for i := 0; i < n && !c.AtEnd(); i++ {
		c.Advance()
	}
}

func (c *Cursor) Mark() Mark {
	return Mark{pos: c.pos, line: c.line, col: c.col}
}

// SpanFrom returns the span between m and the current position.
func (c *Cursor) SpanFrom(m Mark) ast.Span {
	return ast.Span{
		File:      c.filename,
		StartLine: m.line,
		StartCol:  m.col,
		EndLine:   c.line,
		EndCol:    c.col,
	}
}

// Extend returns s stretched to end at the current position.
func (c *Cursor) Extend(s ast.Span) ast.Span {
	s.EndLine = c.line
	s.EndCol = c.col
	return s
}

// Here returns a one-character span at the current position.
func (c *Cursor) Here() ast.Span {
	return ast.Span{
		File:      c.filename,
		StartLine: c.line,
		StartCol:  c.col,
		EndLine:   c.line,
		EndCol:    c.col + 1,
	}
}

// Text returns the source consumed since m.
func (c *Cursor) Text(m Mark) string {
	return c.source[m.pos:c.pos]
}

// TakeWhile consumes characters while pred holds and returns them.
func (c *Cursor) TakeWhile(pred func(byte) bool) string {
	start := c.pos
	for !c.AtEnd() && pred(c.source[c.pos]) {
		c.Advance()
	}
	return c.source[start:c.pos]
}

// SkipSpaces skips blanks on the current line.
func (c *Cursor) SkipSpaces() {
	for !c.AtEnd() {
		switch c.Peek() {
		case ' ', '\t', '\r':
			c.Advance()
		default:
			return
		}
	}
}

// SkipInline skips blanks and block comments that close on the current line.
func (c *Cursor) SkipInline() {
	for {
		c.SkipSpaces()
		if !c.CheckString("/*") {
			return
		}
		body := c.source[c.pos+2:]
		end := strings.Index(body, "*/")
		if end < 0 || strings.IndexByte(body[:end], '\n') >= 0 {
			return
		}
		c.Move(end + 4)
	}
}

// SkipTrivia skips whitespace, line comments and block comments.
// An unterminated block comment runs to the end of input.
func (c *Cursor) SkipTrivia() {
	for !c.AtEnd() {
		ch := c.Peek()
		switch {
		case IsSpace(ch):
			c.Advance()
		case ch == '/' && c.PeekAt(1) == '/':
			for !c.AtEnd() && c.Peek() != '\n' {
				c.Advance()
			}
		case ch == '/' && c.PeekAt(1) == '*':
			c.Move(2)
			for !c.AtEnd() && !c.CheckString("*/") {
				c.Advance()
			}
			c.Move(2)
		default:
			return
		}
	}
}

// FindDrop skips trivia and consumes ch if it comes next.
func (c *Cursor) FindDrop(ch byte) bool {
	c.SkipTrivia()
	if c.Check(ch) {
		c.Advance()
		return true
	}
	return false
}

// FindDropString skips trivia and consumes s if it comes next.
func (c *Cursor) FindDropString(s string) bool {
	c.SkipTrivia()
	if c.CheckString(s) {
		c.Move(len(s))
		return true
	}
	return false
}

// Expect is FindDrop that fails with a syntax error naming what was found instead.
func (c *Cursor) Expect(ch byte) error {
	if c.FindDrop(ch) {
		return nil
	}
	return c.Errorf("expected '%c', got %s", ch, c.Describe())
}

// ExpectString is FindDropString that fails with a syntax error.
func (c *Cursor) ExpectString(s string) error {
	if c.FindDropString(s) {
		return nil
	}
	return c.Errorf("expected '%s', got %s", s, c.Describe())
}

// Describe names the current character for error messages.
func (c *Cursor) Describe() string {
	if c.AtEnd() {
		return "end of input"
	}
	ch := c.Peek()
	switch ch {
	case '\n':
		return "newline"
	case '\t':
		return "tab"
	}
	if ch < 0x20 || ch >= 0x7f {
		return fmt.Sprintf("byte 0x%02x", ch)
	}
	return fmt.Sprintf("'%c'", ch)
}

// Errorf builds a syntax error at the current position.
func (c *Cursor) Errorf(format string, args ...any) *diagnostics.Error {
	err := diagnostics.Syntax(c.Here(), format, args...)
	err.AtEOF = c.AtEnd()
	return err
}

// ErrorAt builds a syntax error spanning from m to the current position.
func (c *Cursor) ErrorAt(m Mark, format string, args ...any) *diagnostics.Error {
	err := diagnostics.Syntax(c.SpanFrom(m), format, args...)
	err.AtEOF = c.AtEnd()
	return err
}

func IsAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func IsDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func IsAlphaNumeric(ch byte) bool {
	return IsAlpha(ch) || IsDigit(ch)
}

func IsSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
