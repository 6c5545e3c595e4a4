package cursor_test

import (
	"strings"
	"testing"

	"github.com/styio-lang/styio/pkg/cursor"
	"github.com/styio-lang/styio/pkg/diagnostics"
)

func TestPeekAndAdvance(t *testing.T) {
	c := cursor.New("ab", "t.styio")
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != cursor.EOF {
		t.Fatal("unexpected lookahead")
	}
	if c.Advance() != 'a' || c.Advance() != 'b' {
		t.Fatal("unexpected advance")
	}
	if !c.AtEnd() || c.Peek() != cursor.EOF {
		t.Fatal("expected end of input")
	}
	if c.Advance() != cursor.EOF {
		t.Fatal("advance past end should return EOF")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	c := cursor.New("x\n  y", "t.styio")
	c.Advance()
	c.SkipTrivia()
	span := c.Here()
	if span.StartLine != 2 || span.StartCol != 3 {
		t.Errorf("got %d:%d, want 2:3", span.StartLine, span.StartCol)
	}
}

func TestSkipTriviaComments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   byte
	}{
		{"line comment", "// hi\n  x", 'x'},
		{"block comment", "/* a\n b */ y", 'y'},
		{"mixed", "  /* a */ // b\n\t z", 'z'},
		{"unterminated block", "/* never closed", cursor.EOF},
		{"division is not trivia", "/ 2", '/'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New(tt.source, "t.styio")
			c.SkipTrivia()
			if got := c.Peek(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkipSpacesStopsAtNewline(t *testing.T) {
	c := cursor.New("  \t\n x", "t.styio")
	c.SkipSpaces()
	if c.Peek() != '\n' {
		t.Errorf("got %q, want newline", c.Peek())
	}
}

func TestSkipInline(t *testing.T) {
	tests := []struct {
		source string
		want   byte
	}{
		{"  /* note */ + 2", '+'},
		{"/* a */ /* b */*", '*'},
		{" /* open\n */ +", '/'},
		{" /* never closed", '/'},
		{" // line", '/'},
		{"  \n+", '\n'},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			c := cursor.New(tt.source, "t.styio")
			c.SkipInline()
			if c.Peek() != tt.want {
				t.Errorf("got %q, want %q", c.Peek(), tt.want)
			}
		})
	}
}

func TestExtend(t *testing.T) {
	c := cursor.New("ab\ncd", "t.styio")
	start := c.Here()
	c.Move(4)
	span := c.Extend(start)
	if span.StartLine != 1 || span.StartCol != 1 || span.EndLine != 2 || span.EndCol != 2 {
		t.Errorf("span = %+v", span)
	}
}

func TestFindDrop(t *testing.T) {
	c := cursor.New("  := 1", "t.styio")
	if c.FindDrop('=') {
		t.Fatal("should not drop '=' before ':'")
	}
	if !c.FindDropString(":=") {
		t.Fatal("expected to drop ':='")
	}
	if !c.FindDrop('1') || !c.AtEnd() {
		t.Fatal("expected to consume everything")
	}
}

func TestExpectNamesExpectedAndActual(t *testing.T) {
	c := cursor.New("  ]", "t.styio")
	err := c.Expect(')')
	if err == nil {
		t.Fatal("expected error")
	}
	de := err.(*diagnostics.Error)
	if de.Code() != diagnostics.ESyntax {
		t.Errorf("code = %s", de.Code())
	}
	if !strings.Contains(de.Diag.Message, "')'") || !strings.Contains(de.Diag.Message, "']'") {
		t.Errorf("message = %q", de.Diag.Message)
	}
	if de.AtEOF {
		t.Error("error is not at end of input")
	}
}

func TestExpectAtEndIsIncomplete(t *testing.T) {
	c := cursor.New("{ ", "t.styio")
	c.Advance()
	err := c.Expect('}').(*diagnostics.Error)
	if !err.AtEOF {
		t.Error("expected AtEOF")
	}
	if !strings.Contains(err.Diag.Message, "end of input") {
		t.Errorf("message = %q", err.Diag.Message)
	}
}

func TestTakeWhileAndText(t *testing.T) {
	c := cursor.New("abc123 rest", "t.styio")
	m := c.Mark()
	if got := c.TakeWhile(cursor.IsAlphaNumeric); got != "abc123" {
		t.Errorf("TakeWhile = %q", got)
	}
	if got := c.Text(m); got != "abc123" {
		t.Errorf("Text = %q", got)
	}
	span := c.SpanFrom(m)
	if span.StartCol != 1 || span.EndCol != 7 {
		t.Errorf("span = %+v", span)
	}
}
