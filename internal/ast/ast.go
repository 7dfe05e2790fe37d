package ast

import (
	"github.com/lorylang/lory/internal/token"
)

// TokenProvider is implemented by every node that can report its primary
// token, used to attribute runtime errors to source positions.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	TokenProvider
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	TokenProvider
	expressionNode()
}

// Program is the root node of every parsed unit.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Parameter is a declared parameter with an optional default expression.
type Parameter struct {
	Name    string
	Default Expression // nil when the parameter is required
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// FunctionDeclaration declares a named function or, inside a class body, a
// method. Parameters may carry default-value expressions.
type FunctionDeclaration struct {
	Token      token.Token // the 'fn' token
	Name       string
	Parameters []Parameter
	Body       []Statement
	IsPrivate  bool
	IsStatic   bool
}

func (fd *FunctionDeclaration) statementNode()        {}
func (fd *FunctionDeclaration) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token { return fd.Token }

// ClassDeclaration declares a class with an optional single base class.
type ClassDeclaration struct {
	Token     token.Token
	Name      string
	BaseClass string // empty when the class has no parent
	Methods   []*FunctionDeclaration
}

func (cd *ClassDeclaration) statementNode()        {}
func (cd *ClassDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token { return cd.Token }

// PackageDeclaration registers a named package body for later import.
type PackageDeclaration struct {
	Token token.Token
	Name  string
	Body  []Statement
}

func (pd *PackageDeclaration) statementNode()        {}
func (pd *PackageDeclaration) TokenLiteral() string  { return pd.Token.Lexeme }
func (pd *PackageDeclaration) GetToken() token.Token { return pd.Token }

// ImportStatement imports a registered package or an external script path.
type ImportStatement struct {
	Token token.Token
	Name  Expression
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// ExportStatement re-exports a package from the current unit.
type ExportStatement struct {
	Token token.Token
	Name  Expression
}

func (es *ExportStatement) statementNode()        {}
func (es *ExportStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExportStatement) GetToken() token.Token { return es.Token }

// ExitStatement terminates the process with an integer code when its
// optional guard condition holds.
type ExitStatement struct {
	Token     token.Token
	Code      Expression
	Condition Expression // nil means unconditional
}

func (es *ExitStatement) statementNode()        {}
func (es *ExitStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExitStatement) GetToken() token.Token { return es.Token }

// ThrowStatement raises a user error. The payload may be a string message or
// a hash carrying "error" and "message" keys.
type ThrowStatement struct {
	Token     token.Token
	Value     Expression
	Condition Expression
}

func (ts *ThrowStatement) statementNode()        {}
func (ts *ThrowStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *ThrowStatement) GetToken() token.Token { return ts.Token }

// ReturnStatement returns from the enclosing invocation when its optional
// guard condition holds.
type ReturnStatement struct {
	Token     token.Token
	Value     Expression // nil returns Null
	Condition Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BreakStatement leaves the innermost loop when its guard holds.
type BreakStatement struct {
	Token     token.Token
	Condition Expression
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// NextStatement skips to the next loop iteration when its guard holds.
type NextStatement struct {
	Token     token.Token
	Condition Expression
}

func (ns *NextStatement) statementNode()        {}
func (ns *NextStatement) TokenLiteral() string  { return ns.Token.Lexeme }
func (ns *NextStatement) GetToken() token.Token { return ns.Token }

// PrintStatement writes a serialized value to the interpreter output.
type PrintStatement struct {
	Token   token.Token
	Value   Expression
	Newline bool
}

func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }

// Assignment assigns to a plain variable or instance variable. Op is the
// assignment operator token type ("=", "+=", ...).
type Assignment struct {
	Token token.Token
	Name  string
	Op    token.Type
	Value Expression
}

func (a *Assignment) statementNode()        {}
func (a *Assignment) expressionNode()       {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Token }

// IndexAssignment assigns through an index or slice target.
type IndexAssignment struct {
	Token  token.Token
	Target Expression // *IndexExpression or *SliceExpression
	Op     token.Type
	Value  Expression
}

func (ia *IndexAssignment) statementNode()        {}
func (ia *IndexAssignment) TokenLiteral() string  { return ia.Token.Lexeme }
func (ia *IndexAssignment) GetToken() token.Token { return ia.Token }

// MemberAssignment assigns to a member of a hash value (h.key = v).
type MemberAssignment struct {
	Token  token.Token
	Object Expression
	Member string
	Op     token.Type
	Value  Expression
}

func (ma *MemberAssignment) statementNode()        {}
func (ma *MemberAssignment) TokenLiteral() string  { return ma.Token.Lexeme }
func (ma *MemberAssignment) GetToken() token.Token { return ma.Token }

// IfStatement with elsif chain and optional else body.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
	ElseIfs   []*ElseIf
	ElseBody  []Statement
}

type ElseIf struct {
	Condition Expression
	Body      []Statement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// CaseStatement scans when clauses for structural equality with the subject.
type CaseStatement struct {
	Token    token.Token
	Subject  Expression
	Whens    []*WhenClause
	ElseBody []Statement
}

type WhenClause struct {
	Condition Expression
	Body      []Statement
}

func (cs *CaseStatement) statementNode()        {}
func (cs *CaseStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *CaseStatement) GetToken() token.Token { return cs.Token }

// WhileLoop re-evaluates its condition before each iteration.
type WhileLoop struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (wl *WhileLoop) statementNode()        {}
func (wl *WhileLoop) TokenLiteral() string  { return wl.Token.Lexeme }
func (wl *WhileLoop) GetToken() token.Token { return wl.Token }

// ForLoop iterates a list (value, optional index) or a hash (key, optional
// value) in container order.
type ForLoop struct {
	Token    token.Token
	Value    string
	Index    string // empty when no second iterator was declared
	Iterable Expression
	Body     []Statement
}

func (fl *ForLoop) statementNode()        {}
func (fl *ForLoop) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *ForLoop) GetToken() token.Token { return fl.Token }

// RepeatLoop iterates an integer count with an optional 1-based alias.
type RepeatLoop struct {
	Token token.Token
	Count Expression
	Alias string
	Body  []Statement
}

func (rl *RepeatLoop) statementNode()        {}
func (rl *RepeatLoop) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RepeatLoop) GetToken() token.Token { return rl.Token }

// TryStatement runs its body under a local error boundary.
type TryStatement struct {
	Token        token.Token
	Body         []Statement
	CatchBody    []Statement
	ErrorType    string // catch (errorType, errorMessage); either may be empty
	ErrorMessage string
	FinallyBody  []Statement
}

func (ts *TryStatement) statementNode()        {}
func (ts *TryStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token { return ts.Token }

// Identifier names a variable, instance variable (@ prefix), class or lambda.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// SelfExpression yields the current object context.
type SelfExpression struct {
	Token token.Token
}

func (se *SelfExpression) expressionNode()       {}
func (se *SelfExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SelfExpression) GetToken() token.Token { return se.Token }

// IntegerLiteral is a 64-bit signed integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral is a double-precision literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NullLiteral is the null constant.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()       {}
func (nl *NullLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token { return nl.Token }

// ListLiteral is an ordered element list.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// RangeLiteral is an inclusive integer range [start..stop].
type RangeLiteral struct {
	Token token.Token
	Start Expression
	Stop  Expression
}

func (rl *RangeLiteral) expressionNode()       {}
func (rl *RangeLiteral) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RangeLiteral) GetToken() token.Token { return rl.Token }

// HashLiteral preserves the written key order.
type HashLiteral struct {
	Token token.Token
	Keys  []Expression
	Vals  []Expression
}

func (hl *HashLiteral) expressionNode()       {}
func (hl *HashLiteral) TokenLiteral() string  { return hl.Token.Lexeme }
func (hl *HashLiteral) GetToken() token.Token { return hl.Token }

// LambdaLiteral is an anonymous function value.
type LambdaLiteral struct {
	Token      token.Token
	Parameters []Parameter
	Body       []Statement
}

func (ll *LambdaLiteral) expressionNode()       {}
func (ll *LambdaLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *LambdaLiteral) GetToken() token.Token { return ll.Token }

// UnaryOperation applies a prefix operator.
type UnaryOperation struct {
	Token   token.Token
	Op      token.Type
	Operand Expression
}

func (uo *UnaryOperation) expressionNode()       {}
func (uo *UnaryOperation) TokenLiteral() string  { return uo.Token.Lexeme }
func (uo *UnaryOperation) GetToken() token.Token { return uo.Token }

// BinaryOperation applies an infix operator; && and || short-circuit.
type BinaryOperation struct {
	Token token.Token
	Op    token.Type
	Left  Expression
	Right Expression
}

func (bo *BinaryOperation) expressionNode()       {}
func (bo *BinaryOperation) TokenLiteral() string  { return bo.Token.Lexeme }
func (bo *BinaryOperation) GetToken() token.Token { return bo.Token }

// TernaryOperation is cond ? whenTrue : whenFalse.
type TernaryOperation struct {
	Token     token.Token
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

func (to *TernaryOperation) expressionNode()       {}
func (to *TernaryOperation) TokenLiteral() string  { return to.Token.Lexeme }
func (to *TernaryOperation) GetToken() token.Token { return to.Token }

// IndexExpression reads one element of a list, hash or string.
type IndexExpression struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// SliceExpression reads a (start, stop, step) sub-range; open ends are nil.
type SliceExpression struct {
	Token  token.Token
	Object Expression
	Start  Expression
	Stop   Expression
	Step   Expression
}

func (se *SliceExpression) expressionNode()       {}
func (se *SliceExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SliceExpression) GetToken() token.Token { return se.Token }

// MemberAccess reads a member of a hash value (h.key).
type MemberAccess struct {
	Token  token.Token
	Object Expression
	Member string
}

func (ma *MemberAccess) expressionNode()       {}
func (ma *MemberAccess) TokenLiteral() string  { return ma.Token.Lexeme }
func (ma *MemberAccess) GetToken() token.Token { return ma.Token }

// FunctionCall invokes a bare name: function, lambda, builtin or method of
// the current object context, in that resolution order.
type FunctionCall struct {
	Token     token.Token
	Name      string
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()       {}
func (fc *FunctionCall) TokenLiteral() string  { return fc.Token.Lexeme }
func (fc *FunctionCall) GetToken() token.Token { return fc.Token }

// MethodCall invokes a method on a receiver expression.
type MethodCall struct {
	Token     token.Token
	Object    Expression
	Method    string
	Arguments []Expression
}

func (mc *MethodCall) expressionNode()       {}
func (mc *MethodCall) TokenLiteral() string  { return mc.Token.Lexeme }
func (mc *MethodCall) GetToken() token.Token { return mc.Token }
