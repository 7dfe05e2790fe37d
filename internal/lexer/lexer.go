package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/lorylang/lory/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = l.newToken(token.NEWLINE, "\\n")
	case '#':
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return l.NextToken()
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.EQ, "==")
		} else {
			tok = l.newToken(token.ASSIGN, "=")
		}
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.PLUS_ASSIGN, "+=")
		} else {
			tok = l.newToken(token.PLUS, "+")
		}
	case '-':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.MINUS_ASSIGN, "-=")
		} else {
			tok = l.newToken(token.MINUS, "-")
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.newToken(token.POW_ASSIGN, "**=")
			} else {
				tok = l.newToken(token.POWER, "**")
			}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.MUL_ASSIGN, "*=")
		} else {
			tok = l.newToken(token.ASTERISK, "*")
		}
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.DIV_ASSIGN, "/=")
		} else {
			tok = l.newToken(token.SLASH, "/")
		}
	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.MOD_ASSIGN, "%=")
		} else {
			tok = l.newToken(token.PERCENT, "%")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "!=")
		} else {
			tok = l.newToken(token.BANG, "!")
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LT_EQ, "<=")
		} else if l.peekChar() == '<' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.newToken(token.SHL_ASSIGN, "<<=")
			} else {
				tok = l.newToken(token.SHL, "<<")
			}
		} else {
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GT_EQ, ">=")
		} else if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.newToken(token.SHR_ASSIGN, ">>=")
			} else {
				tok = l.newToken(token.SHR, ">>")
			}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.newToken(token.AND, "&&")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.AND_ASSIGN, "&=")
		} else {
			tok = l.newToken(token.BIT_AND, "&")
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.newToken(token.OR, "||")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.OR_ASSIGN, "|=")
		} else {
			tok = l.newToken(token.BIT_OR, "|")
		}
	case '^':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.XOR_ASSIGN, "^=")
		} else {
			tok = l.newToken(token.BIT_XOR, "^")
		}
	case '~':
		tok = l.newToken(token.TILDE, "~")
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			tok = l.newToken(token.RANGE, "..")
		} else {
			tok = l.newToken(token.DOT, ".")
		}
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = l.newToken(token.SCOPE, "::")
		} else {
			tok = l.newToken(token.COLON, ":")
		}
	case '?':
		tok = l.newToken(token.QUESTION, "?")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case '"':
		line, col := l.line, l.column
		str := l.readString()
		tok = token.Token{Type: token.STRING, Lexeme: str, Literal: str, Line: line, Column: col}
	case 0:
		tok = token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	default:
		if l.ch == '@' || isLetter(l.ch) {
			line, col := l.line, l.column
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Literal: lit, Line: line, Column: col}
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.Type, lexeme string) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	if l.ch == '@' {
		l.readChar()
	}
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	position := l.position
	line, col := l.line, l.column
	isFloat := false

	for unicode.IsDigit(l.ch) {
		l.readChar()
	}

	// A '.' begins a fraction only when a digit follows; ".." is a range.
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}

	lit := l.input[position:l.position]
	t := token.Type(token.INT)
	if isFloat {
		t = token.FLOAT
	}
	return token.Token{Type: t, Lexeme: lit, Literal: lit, Line: line, Column: col}
}

func (l *Lexer) readString() string {
	var out []rune
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, '\\', l.ch)
			}
			continue
		}
		out = append(out, l.ch)
	}
	return string(out)
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || unicode.IsLetter(ch)
}
