package parser

import (
	"fmt"
	"strconv"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/lexer"
	"github.com/lorylang/lory/internal/token"
)

const (
	_ int = iota
	LOWEST
	TERNARY     // ?:
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // | ^
	BITWISE_AND // &
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SHIFT       // << >>
	SUM         // + -
	PRODUCT     // * / %
	POWER       // **
	PREFIX      // -x !x ~x
	CALL        // foo(x) xs[i] a.b
)

var precedences = map[token.Type]int{
	token.QUESTION: TERNARY,
	token.OR:       LOGICAL_OR,
	token.AND:      LOGICAL_AND,
	token.BIT_OR:   BITWISE_OR,
	token.BIT_XOR:  BITWISE_OR,
	token.BIT_AND:  BITWISE_AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.SHL:      SHIFT,
	token.SHR:      SHIFT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.POWER:    POWER,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

var assignOps = map[token.Type]bool{
	token.ASSIGN:       true,
	token.PLUS_ASSIGN:  true,
	token.MINUS_ASSIGN: true,
	token.MUL_ASSIGN:   true,
	token.DIV_ASSIGN:   true,
	token.MOD_ASSIGN:   true,
	token.POW_ASSIGN:   true,
	token.AND_ASSIGN:   true,
	token.OR_ASSIGN:    true,
	token.XOR_ASSIGN:   true,
	token.SHL_ASSIGN:   true,
	token.SHR_ASSIGN:   true,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken   token.Token
	peekToken  token.Token
	peek2Token token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierPrefix)
	p.registerPrefix(token.SELF, p.parseSelf)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.BANG, p.parseUnary)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.TILDE, p.parseUnary)
	p.registerPrefix(token.LPAREN, p.parseGrouped)
	p.registerPrefix(token.LBRACKET, p.parseListOrRange)
	p.registerPrefix(token.LBRACE, p.parseHashLiteral)
	p.registerPrefix(token.LAMBDA, p.parseLambdaLiteral)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.POWER, token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ,
		token.GT_EQ, token.AND, token.OR, token.BIT_AND, token.BIT_OR,
		token.BIT_XOR, token.SHL, token.SHR,
	} {
		p.registerInfix(t, p.parseBinary)
	}
	p.registerInfix(token.QUESTION, p.parseTernary)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSlice)
	p.registerInfix(token.DOT, p.parseMemberOrMethod)

	// Read three tokens so curToken, peekToken and peek2Token are all set.
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curToken.Line, msg))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.peek2Token
	p.peek2Token = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool   { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool  { return p.peekToken.Type == t }
func (p *Parser) peek2TokenIs(t token.Type) bool { return p.peek2Token.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %s", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// skipNewlines advances past any newline tokens at the current position.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram consumes the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
		p.skipNewlines()
	}

	return program
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError("unexpected token %q", p.curToken.Lexeme)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

// parseIdentifierPrefix parses a plain or package-qualified name, then a
// call when '(' follows. Inside slice brackets '::' can also separate
// bounds, so the qualifier is folded only when an identifier follows it.
func (p *Parser) parseIdentifierPrefix() ast.Expression {
	tok := p.curToken
	name := p.curToken.Lexeme
	for p.peekTokenIs(token.SCOPE) && p.peek2TokenIs(token.IDENT) {
		p.nextToken() // onto '::'
		p.nextToken() // onto the qualified part
		name += "::" + p.curToken.Lexeme
	}
	if p.peekTokenIs(token.LPAREN) {
		return p.parseFunctionCall(tok, name)
	}
	return &ast.Identifier{Token: tok, Name: name}
}

func (p *Parser) parseSelf() ast.Expression {
	return &ast.SelfExpression{Token: p.curToken}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as float", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseUnary() ast.Expression {
	expr := &ast.UnaryOperation{Token: p.curToken, Op: p.curToken.Type}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	expr := &ast.BinaryOperation{Token: p.curToken, Op: p.curToken.Type, Left: left}
	precedence := p.curPrecedence()
	if expr.Op == token.POWER {
		// Right-associative.
		precedence--
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	expr := &ast.TernaryOperation{Token: p.curToken, Condition: cond}
	p.nextToken()
	expr.WhenTrue = p.parseExpression(TERNARY)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	expr.WhenFalse = p.parseExpression(TERNARY)
	return expr
}

func (p *Parser) parseGrouped() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseListOrRange parses [a, b, ...] or the inclusive range form [a..b].
func (p *Parser) parseListOrRange() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: tok}
	}

	p.nextToken()
	p.skipNewlines()
	first := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.RANGE) {
		rl := &ast.RangeLiteral{Token: tok, Start: first}
		p.nextToken()
		p.nextToken()
		rl.Stop = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return rl
	}

	list := &ast.ListLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		p.skipNewlines()
		list.Elements = append(list.Elements, p.parseExpression(LOWEST))
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return list
}

// skipPeekNewlines discards newlines sitting between the current token and
// the next meaningful one, used inside bracketed constructs.
func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return hash
	}

	for {
		p.nextToken()
		p.skipNewlines()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		hash.Keys = append(hash.Keys, key)
		hash.Vals = append(hash.Vals, value)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return hash
}

func (p *Parser) parseLambdaLiteral() ast.Expression {
	lit := &ast.LambdaLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	lit.Parameters = p.parseParameters()

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	lit.Body = p.parseBlock(token.END)
	return lit
}

// parseParameters parses a parenthesized parameter list with optional
// default expressions; curToken must be LPAREN on entry and is RPAREN on
// exit.
func (p *Parser) parseParameters() []ast.Parameter {
	var params []ast.Parameter

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return params
		}
		param := ast.Parameter{Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseFunctionCall(tok token.Token, name string) ast.Expression {
	call := &ast.FunctionCall{Token: tok, Name: name}
	p.nextToken() // onto '('
	call.Arguments = p.parseArguments()
	return call
}

// parseArguments parses a parenthesized argument list; curToken must be
// LPAREN on entry and is RPAREN on exit.
func (p *Parser) parseArguments() []ast.Expression {
	var args []ast.Expression

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	p.skipNewlines()
	args = append(args, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		p.skipNewlines()
		args = append(args, p.parseExpression(LOWEST))
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RPAREN) {
		return args
	}
	return args
}

// parseIndexOrSlice parses xs[i], xs[a:b] and xs[a:b:c]; open slice bounds
// may be omitted on either side of the colon. Adjacent colons lex as one
// '::' token, which stands for both separators with the stop omitted.
func (p *Parser) parseIndexOrSlice(object ast.Expression) ast.Expression {
	tok := p.curToken // '['

	var start ast.Expression
	if p.peekTokenIs(token.COLON) || p.peekTokenIs(token.SCOPE) {
		p.nextToken() // onto the separator
	} else {
		p.nextToken()
		start = p.parseExpression(LOWEST)
		if !p.peekTokenIs(token.COLON) && !p.peekTokenIs(token.SCOPE) {
			idx := &ast.IndexExpression{Token: tok, Object: object, Index: start}
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			return idx
		}
		p.nextToken() // onto the separator
	}

	slice := &ast.SliceExpression{Token: tok, Object: object, Start: start}

	if p.curTokenIs(token.SCOPE) {
		if !p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			slice.Step = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return slice
	}

	if !p.peekTokenIs(token.RBRACKET) && !p.peekTokenIs(token.COLON) {
		p.nextToken()
		slice.Stop = p.parseExpression(LOWEST)
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			slice.Step = p.parseExpression(LOWEST)
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return slice
}

func (p *Parser) parseMemberOrMethod(object ast.Expression) ast.Expression {
	tok := p.curToken // '.'

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme

	if p.peekTokenIs(token.LPAREN) {
		call := &ast.MethodCall{Token: tok, Object: object, Method: name}
		p.nextToken() // onto '('
		call.Arguments = p.parseArguments()
		return call
	}

	return &ast.MemberAccess{Token: tok, Object: object, Member: name}
}
