package lexer

import (
	"testing"

	"github.com/lorylang/lory/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `x = 5
y = 3.25
name = "al\"ice"
xs = [1, 2]
h = {"k": true}
fn add(a, b = 1)
  return a + b
end
n += 2 ** 3
r = [1..4]
s = xs[0:2:1]
@field = self
# a comment
a && b || !c
i <<= 1
`

	tests := []struct {
		wantType    token.Type
		wantLiteral string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, ""},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.FLOAT, "3.25"},
		{token.NEWLINE, ""},
		{token.IDENT, "name"},
		{token.ASSIGN, "="},
		{token.STRING, `al"ice`},
		{token.NEWLINE, ""},
		{token.IDENT, "xs"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, ""},
		{token.IDENT, "h"},
		{token.ASSIGN, "="},
		{token.LBRACE, "{"},
		{token.STRING, "k"},
		{token.COLON, ":"},
		{token.TRUE, "true"},
		{token.RBRACE, "}"},
		{token.NEWLINE, ""},
		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.NEWLINE, ""},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.NEWLINE, ""},
		{token.END, "end"},
		{token.NEWLINE, ""},
		{token.IDENT, "n"},
		{token.PLUS_ASSIGN, "+="},
		{token.INT, "2"},
		{token.POWER, "**"},
		{token.INT, "3"},
		{token.NEWLINE, ""},
		{token.IDENT, "r"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.RANGE, ".."},
		{token.INT, "4"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, ""},
		{token.IDENT, "s"},
		{token.ASSIGN, "="},
		{token.IDENT, "xs"},
		{token.LBRACKET, "["},
		{token.INT, "0"},
		{token.COLON, ":"},
		{token.INT, "2"},
		{token.COLON, ":"},
		{token.INT, "1"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, ""},
		{token.IDENT, "@field"},
		{token.ASSIGN, "="},
		{token.SELF, "self"},
		{token.NEWLINE, ""},
		{token.NEWLINE, ""},
		{token.IDENT, "a"},
		{token.AND, "&&"},
		{token.IDENT, "b"},
		{token.OR, "||"},
		{token.BANG, "!"},
		{token.IDENT, "c"},
		{token.NEWLINE, ""},
		{token.IDENT, "i"},
		{token.SHL_ASSIGN, "<<="},
		{token.INT, "1"},
		{token.NEWLINE, ""},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("tests[%d]: wrong type, expected %q, got %q (literal %q)",
				i, tt.wantType, tok.Type, tok.Literal)
		}
		if tt.wantLiteral != "" && tok.Literal != tt.wantLiteral {
			t.Fatalf("tests[%d]: wrong literal, expected %q, got %q",
				i, tt.wantLiteral, tok.Literal)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("x = 1\n  y = 2\n")

	tok := l.NextToken() // x
	if tok.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Line)
	}

	for tok.Type != token.NEWLINE {
		tok = l.NextToken()
	}
	tok = l.NextToken() // y
	if tok.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Line)
	}
	if tok.Lexeme != "y" {
		t.Fatalf("expected y, got %q", tok.Lexeme)
	}
}

func TestIntVersusFloatAndMemberDot(t *testing.T) {
	l := New("1.5 1.size 2..3")

	tok := l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal != "1.5" {
		t.Fatalf("expected float 1.5, got %q %q", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("expected int 1, got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.DOT {
		t.Fatalf("expected dot, got %q", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.IDENT || tok.Lexeme != "size" {
		t.Fatalf("expected ident size, got %q %q", tok.Type, tok.Lexeme)
	}

	tok = l.NextToken()
	if tok.Type != token.INT {
		t.Fatalf("expected int 2, got %q", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.RANGE {
		t.Fatalf("expected range, got %q", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal != "3" {
		t.Fatalf("expected int 3, got %q %q", tok.Type, tok.Literal)
	}
}

func TestUnterminatedStringStopsAtEOF(t *testing.T) {
	l := New(`"open`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "open" {
		t.Fatalf("expected string token, got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.EOF {
		t.Fatalf("expected eof, got %q", tok.Type)
	}
}

func TestScopeToken(t *testing.T) {
	l := New("p::f(xs[::2])")
	want := []token.Type{
		token.IDENT, token.SCOPE, token.IDENT, token.LPAREN,
		token.IDENT, token.LBRACKET, token.SCOPE, token.INT,
		token.RBRACKET, token.RPAREN, token.EOF,
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, tok.Type, tok.Lexeme)
		}
	}
}
