package token

type Type string

type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Identifiers and literals
	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	POWER    = "**"
	BANG     = "!"
	TILDE    = "~"

	PLUS_ASSIGN    = "+="
	MINUS_ASSIGN   = "-="
	MUL_ASSIGN     = "*="
	DIV_ASSIGN     = "/="
	MOD_ASSIGN     = "%="
	POW_ASSIGN     = "**="
	AND_ASSIGN     = "&="
	OR_ASSIGN      = "|="
	XOR_ASSIGN     = "^="
	SHL_ASSIGN     = "<<="
	SHR_ASSIGN     = ">>="

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LT_EQ  = "<="
	GT_EQ  = ">="

	AND = "&&"
	OR  = "||"

	BIT_AND = "&"
	BIT_OR  = "|"
	BIT_XOR = "^"
	SHL     = "<<"
	SHR     = ">>"

	DOT      = "."
	RANGE    = ".."
	COMMA    = ","
	COLON    = ":"
	SCOPE    = "::"
	QUESTION = "?"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	LBRACE   = "{"
	RBRACE   = "}"

	// Keywords
	FN       = "FN"
	END      = "END"
	RETURN   = "RETURN"
	IF       = "IF"
	ELSIF    = "ELSIF"
	ELSE     = "ELSE"
	CASE     = "CASE"
	WHEN     = "WHEN"
	WHILE    = "WHILE"
	FOR      = "FOR"
	IN       = "IN"
	DO       = "DO"
	REPEAT   = "REPEAT"
	AS       = "AS"
	BREAK    = "BREAK"
	NEXT     = "NEXT"
	TRY      = "TRY"
	CATCH    = "CATCH"
	FINALLY  = "FINALLY"
	THROW    = "THROW"
	LAMBDA   = "LAMBDA"
	CLASS    = "CLASS"
	SELF     = "SELF"
	PRIVATE  = "PRIVATE"
	STATIC   = "STATIC"
	PACKAGE  = "PACKAGE"
	IMPORT   = "IMPORT"
	EXPORT   = "EXPORT"
	EXIT     = "EXIT"
	PRINT    = "PRINT"
	PRINTLN  = "PRINTLN"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NULL     = "NULL"
)

var keywords = map[string]Type{
	"fn":      FN,
	"end":     END,
	"return":  RETURN,
	"if":      IF,
	"elsif":   ELSIF,
	"else":    ELSE,
	"case":    CASE,
	"when":    WHEN,
	"while":   WHILE,
	"for":     FOR,
	"in":      IN,
	"do":      DO,
	"repeat":  REPEAT,
	"as":      AS,
	"break":   BREAK,
	"next":    NEXT,
	"try":     TRY,
	"catch":   CATCH,
	"finally": FINALLY,
	"throw":   THROW,
	"lambda":  LAMBDA,
	"class":   CLASS,
	"self":    SELF,
	"private": PRIVATE,
	"static":  STATIC,
	"package": PACKAGE,
	"import":  IMPORT,
	"export":  EXPORT,
	"exit":    EXIT,
	"print":   PRINT,
	"println": PRINTLN,
	"true":    TRUE,
	"false":   FALSE,
	"null":    NULL,
}

// LookupIdent returns the keyword type for an identifier lexeme, or IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
