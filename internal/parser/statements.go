package parser

import (
	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.FN, token.PRIVATE, token.STATIC:
		return p.parseFunctionDeclaration()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.PACKAGE:
		return p.parsePackageDeclaration()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.EXIT:
		return p.parseExitStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.NEXT:
		return p.parseNextStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.WHILE:
		return p.parseWhileLoop()
	case token.FOR:
		return p.parseForLoop()
	case token.REPEAT:
		return p.parseRepeatLoop()
	case token.TRY:
		return p.parseTryStatement()
	case token.PRINT, token.PRINTLN:
		return p.parsePrintStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock consumes statements until one of the stop keywords is the
// current token. The stop token itself is not consumed.
func (p *Parser) parseBlock(stops ...token.Type) []ast.Statement {
	stopSet := make(map[token.Type]bool, len(stops))
	for _, s := range stops {
		stopSet[s] = true
	}

	var body []ast.Statement
	p.skipNewlines()
	for !stopSet[p.curToken.Type] && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		p.nextToken()
		p.skipNewlines()
	}
	if p.curTokenIs(token.EOF) && !stopSet[token.EOF] {
		p.addError("unterminated block, expected %s", stops[0])
	}
	return body
}

// parseGuard consumes an optional trailing `when` condition.
func (p *Parser) parseGuard() ast.Expression {
	if !p.peekTokenIs(token.WHEN) {
		return nil
	}
	p.nextToken()
	p.nextToken()
	return p.parseExpression(LOWEST)
}

func (p *Parser) statementEnds() bool {
	return p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) ||
		p.peekTokenIs(token.END) || p.peekTokenIs(token.WHEN)
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	decl := &ast.FunctionDeclaration{Token: p.curToken}

	for p.curTokenIs(token.PRIVATE) || p.curTokenIs(token.STATIC) {
		if p.curTokenIs(token.PRIVATE) {
			decl.IsPrivate = true
		} else {
			decl.IsStatic = true
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.FN) {
		p.addError("expected fn after modifier, got %s", p.curToken.Type)
		return nil
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Lexeme

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	decl.Parameters = p.parseParameters()

	p.nextToken()
	decl.Body = p.parseBlock(token.END)
	return decl
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	decl := &ast.ClassDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.BaseClass = p.curToken.Lexeme
	}

	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		stmt := p.parseFunctionDeclaration()
		if method, ok := stmt.(*ast.FunctionDeclaration); ok {
			decl.Methods = append(decl.Methods, method)
		} else if stmt != nil {
			p.addError("class body may only contain methods")
		}
		p.nextToken()
		p.skipNewlines()
	}
	if p.curTokenIs(token.EOF) {
		p.addError("unterminated class %s", decl.Name)
	}
	return decl
}

func (p *Parser) parsePackageDeclaration() ast.Statement {
	decl := &ast.PackageDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Lexeme

	p.nextToken()
	decl.Body = p.parseBlock(token.END)
	return decl
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	p.nextToken()
	stmt.Name = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	stmt := &ast.ExportStatement{Token: p.curToken}
	p.nextToken()
	stmt.Name = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseExitStatement() ast.Statement {
	stmt := &ast.ExitStatement{Token: p.curToken}
	if !p.statementEnds() {
		p.nextToken()
		stmt.Code = p.parseExpression(LOWEST)
	}
	stmt.Condition = p.parseGuard()
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	if !p.statementEnds() {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	stmt.Condition = p.parseGuard()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if !p.statementEnds() {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	stmt.Condition = p.parseGuard()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	stmt.Condition = p.parseGuard()
	return stmt
}

func (p *Parser) parseNextStatement() ast.Statement {
	stmt := &ast.NextStatement{Token: p.curToken}
	stmt.Condition = p.parseGuard()
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken, Newline: p.curTokenIs(token.PRINTLN)}
	if !p.statementEnds() {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	p.nextToken()
	stmt.Body = p.parseBlock(token.ELSIF, token.ELSE, token.END)

	for p.curTokenIs(token.ELSIF) {
		clause := &ast.ElseIf{}
		p.nextToken()
		clause.Condition = p.parseExpression(LOWEST)
		p.nextToken()
		clause.Body = p.parseBlock(token.ELSIF, token.ELSE, token.END)
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.ElseBody = p.parseBlock(token.END)
	}
	return stmt
}

func (p *Parser) parseCaseStatement() ast.Statement {
	stmt := &ast.CaseStatement{Token: p.curToken}

	p.nextToken()
	stmt.Subject = p.parseExpression(LOWEST)

	p.nextToken()
	p.skipNewlines()
	for p.curTokenIs(token.WHEN) {
		clause := &ast.WhenClause{}
		p.nextToken()
		clause.Condition = p.parseExpression(LOWEST)
		p.nextToken()
		clause.Body = p.parseBlock(token.WHEN, token.ELSE, token.END)
		stmt.Whens = append(stmt.Whens, clause)
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.ElseBody = p.parseBlock(token.END)
	}
	if !p.curTokenIs(token.END) {
		p.addError("unterminated case, expected end")
	}
	return stmt
}

func (p *Parser) parseWhileLoop() ast.Statement {
	loop := &ast.WhileLoop{Token: p.curToken}

	p.nextToken()
	loop.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	loop.Body = p.parseBlock(token.END)
	return loop
}

func (p *Parser) parseForLoop() ast.Statement {
	loop := &ast.ForLoop{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	loop.Value = p.curToken.Lexeme

	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		loop.Index = p.curToken.Lexeme
	}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	loop.Iterable = p.parseExpression(LOWEST)

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	loop.Body = p.parseBlock(token.END)
	return loop
}

func (p *Parser) parseRepeatLoop() ast.Statement {
	loop := &ast.RepeatLoop{Token: p.curToken}

	p.nextToken()
	loop.Count = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		loop.Alias = p.curToken.Lexeme
	}

	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	loop.Body = p.parseBlock(token.END)
	return loop
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}

	p.nextToken()
	stmt.Body = p.parseBlock(token.CATCH, token.FINALLY, token.END)

	if p.curTokenIs(token.CATCH) {
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			if !p.peekTokenIs(token.RPAREN) {
				if !p.expectPeek(token.IDENT) {
					return nil
				}
				stmt.ErrorType = p.curToken.Lexeme
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					if !p.expectPeek(token.IDENT) {
						return nil
					}
					stmt.ErrorMessage = p.curToken.Lexeme
				}
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		p.nextToken()
		stmt.CatchBody = p.parseBlock(token.FINALLY, token.END)
	}

	if p.curTokenIs(token.FINALLY) {
		p.nextToken()
		stmt.FinallyBody = p.parseBlock(token.END)
	}
	if !p.curTokenIs(token.END) {
		p.addError("unterminated try, expected end")
	}
	return stmt
}

// parseExpressionStatement handles plain expressions and all assignment
// statement forms; which one it is only becomes clear after the left side
// has been parsed.
func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if assignOps[p.peekToken.Type] {
		return p.parseAssignmentTail(tok, expr)
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseAssignmentTail(tok token.Token, target ast.Expression) ast.Statement {
	p.nextToken()
	op := p.curToken.Type
	p.nextToken()
	value := p.parseExpression(LOWEST)

	switch t := target.(type) {
	case *ast.Identifier:
		return &ast.Assignment{Token: tok, Name: t.Name, Op: op, Value: value}
	case *ast.IndexExpression, *ast.SliceExpression:
		return &ast.IndexAssignment{Token: tok, Target: target, Op: op, Value: value}
	case *ast.MemberAccess:
		return &ast.MemberAssignment{Token: tok, Object: t.Object, Member: t.Member, Op: op, Value: value}
	default:
		p.addError("invalid assignment target")
		return nil
	}
}
