package interpreter

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/lexer"
	"github.com/lorylang/lory/internal/parser"
)

// maxCallDepth bounds interpreter recursion before the Go stack does.
const maxCallDepth = 1000

// Interpreter is one evaluation session. It owns the call stack and every
// registry, so independent sessions never share state.
type Interpreter struct {
	stack *CallStack

	functions map[string]*ast.FunctionDeclaration
	classes   map[string]*Class
	lambdas   map[string]*Lambda
	packages  map[string]*ast.PackageDeclaration

	// packageStack holds the names of packages whose bodies are being
	// imported; the innermost name prefixes function declarations.
	packageStack []string

	dbs map[string]*sql.DB

	out     io.Writer
	baseDir string

	// ExitHandler receives the code of an exit statement. The default
	// terminates the process.
	ExitHandler func(code int)

	callDepth int
}

func New() *Interpreter {
	return &Interpreter{
		stack:     newCallStack(),
		functions: make(map[string]*ast.FunctionDeclaration),
		classes:   make(map[string]*Class),
		lambdas:   make(map[string]*Lambda),
		packages:  make(map[string]*ast.PackageDeclaration),
		dbs:       make(map[string]*sql.DB),
		out:       os.Stdout,
		ExitHandler: func(code int) {
			os.Exit(code)
		},
	}
}

// SetOutput redirects print and println.
func (i *Interpreter) SetOutput(w io.Writer) { i.out = w }

// SetBaseDir sets the directory dot-relative imports resolve against,
// normally the directory of the running script.
func (i *Interpreter) SetBaseDir(dir string) { i.baseDir = dir }

// Run lexes, parses and interprets source in this session.
func (i *Interpreter) Run(source string) (Object, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &Error{Kind: SyntaxError, Message: strings.Join(errs, "; ")}
	}
	return i.Interpret(program)
}

// Interpret evaluates a program in the session's root frame. Runtime errors
// that reach the top become Go errors; an exit statement invokes the
// ExitHandler.
func (i *Interpreter) Interpret(program *ast.Program) (Object, error) {
	result := i.evalStatements(program.Statements)
	switch r := result.(type) {
	case *Error:
		return nil, r
	case *ExitSignal:
		i.ExitHandler(r.Code)
		return NULL, nil
	case *ReturnValue:
		return r.Value, nil
	case nil:
		return NULL, nil
	}
	return result, nil
}

// evalStatements runs a statement list and yields the last produced value.
// Any signal stops the walk and propagates.
func (i *Interpreter) evalStatements(stmts []ast.Statement) Object {
	var result Object = NULL
	for _, stmt := range stmts {
		result = i.evalStatement(stmt)
		if isAbrupt(result) {
			return result
		}
	}
	return result
}

func (i *Interpreter) evalStatement(stmt ast.Statement) Object {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return i.evalExpression(s.Expression)
	case *ast.Assignment:
		return i.evalAssignment(s)
	case *ast.IndexAssignment:
		return i.evalIndexAssignment(s)
	case *ast.MemberAssignment:
		return i.evalMemberAssignment(s)
	case *ast.FunctionDeclaration:
		name := s.Name
		if n := len(i.packageStack); n > 0 {
			name = i.packageStack[n-1] + "::" + name
		}
		i.functions[name] = s
		return NULL
	case *ast.ClassDeclaration:
		return i.evalClassDeclaration(s)
	case *ast.PackageDeclaration:
		i.packages[s.Name] = s
		return NULL
	case *ast.ImportStatement:
		return i.evalImport(s)
	case *ast.ExportStatement:
		return i.evalExport(s)
	case *ast.IfStatement:
		return i.evalIf(s)
	case *ast.CaseStatement:
		return i.evalCase(s)
	case *ast.WhileLoop:
		return i.evalWhile(s)
	case *ast.ForLoop:
		return i.evalFor(s)
	case *ast.RepeatLoop:
		return i.evalRepeat(s)
	case *ast.TryStatement:
		return i.evalTry(s)
	case *ast.ReturnStatement:
		return i.evalReturn(s)
	case *ast.BreakStatement:
		return i.evalBreak(s)
	case *ast.NextStatement:
		return i.evalNext(s)
	case *ast.ThrowStatement:
		return i.evalThrow(s)
	case *ast.ExitStatement:
		return i.evalExit(s)
	case *ast.PrintStatement:
		return i.evalPrint(s)
	}
	return newError(InvalidOperationError, "unhandled statement %T", stmt)
}

func (i *Interpreter) evalExpression(expr ast.Expression) Object {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: e.Value}
	case *ast.FloatLiteral:
		return &Float{Value: e.Value}
	case *ast.StringLiteral:
		return &String{Value: e.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(e.Value)
	case *ast.NullLiteral:
		return NULL
	case *ast.Identifier:
		return i.evalIdentifier(e)
	case *ast.SelfExpression:
		return i.evalSelf(e)
	case *ast.ListLiteral:
		return i.evalListLiteral(e)
	case *ast.RangeLiteral:
		return i.evalRangeLiteral(e)
	case *ast.HashLiteral:
		return i.evalHashLiteral(e)
	case *ast.LambdaLiteral:
		return i.evalLambdaLiteral(e)
	case *ast.UnaryOperation:
		return i.evalUnaryOperation(e)
	case *ast.BinaryOperation:
		return i.evalBinaryOperation(e)
	case *ast.TernaryOperation:
		return i.evalTernary(e)
	case *ast.IndexExpression:
		return i.evalIndexExpression(e)
	case *ast.SliceExpression:
		return i.evalSliceExpression(e)
	case *ast.MemberAccess:
		return i.evalMemberAccess(e)
	case *ast.FunctionCall:
		return i.evalFunctionCall(e)
	case *ast.MethodCall:
		return i.evalMethodCall(e)
	case *ast.Assignment:
		return i.evalAssignment(e)
	}
	return newError(InvalidOperationError, "unhandled expression %T", expr)
}

// Stringify renders a value the way print does.
func (i *Interpreter) Stringify(obj Object) string { return obj.Inspect() }

func (i *Interpreter) evalPrint(s *ast.PrintStatement) Object {
	text := ""
	if s.Value != nil {
		v := i.evalExpression(s.Value)
		if isSignal(v) {
			return v
		}
		text = i.Stringify(v)
	}
	if s.Newline {
		fmt.Fprintln(i.out, text)
	} else {
		fmt.Fprint(i.out, text)
	}
	return NULL
}
