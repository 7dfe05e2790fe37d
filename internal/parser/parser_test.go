package parser

import (
	"testing"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/lexer"
	"github.com/lorylang/lory/internal/token"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v\nsource:\n%s", errs, input)
	}
	return program
}

func parseSingle(t *testing.T, input string) ast.Statement {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	return program.Statements[0]
}

func TestOperatorPrecedence(t *testing.T) {
	stmt := parseSingle(t, "1 + 2 * 3")
	expr := stmt.(*ast.ExpressionStatement).Expression
	bin := expr.(*ast.BinaryOperation)
	if bin.Op != token.PLUS {
		t.Fatalf("expected + at the top, got %s", bin.Op)
	}
	right := bin.Right.(*ast.BinaryOperation)
	if right.Op != token.ASTERISK {
		t.Fatalf("expected * below, got %s", right.Op)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	stmt := parseSingle(t, "2 ** 3 ** 2")
	bin := stmt.(*ast.ExpressionStatement).Expression.(*ast.BinaryOperation)
	if bin.Op != token.POWER {
		t.Fatalf("expected ** at the top, got %s", bin.Op)
	}
	if _, ok := bin.Right.(*ast.BinaryOperation); !ok {
		t.Fatalf("expected nested ** on the right, got %T", bin.Right)
	}
	if _, ok := bin.Left.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected literal on the left, got %T", bin.Left)
	}
}

func TestAssignmentForms(t *testing.T) {
	stmt := parseSingle(t, "x = 1")
	assign := stmt.(*ast.Assignment)
	if assign.Name != "x" || assign.Op != token.ASSIGN {
		t.Fatalf("unexpected assignment %+v", assign)
	}

	stmt = parseSingle(t, "x += 1")
	assign = stmt.(*ast.Assignment)
	if assign.Op != token.PLUS_ASSIGN {
		t.Fatalf("expected +=, got %s", assign.Op)
	}

	stmt = parseSingle(t, "xs[0] = 1")
	idxAssign := stmt.(*ast.IndexAssignment)
	if _, ok := idxAssign.Target.(*ast.IndexExpression); !ok {
		t.Fatalf("expected index target, got %T", idxAssign.Target)
	}

	stmt = parseSingle(t, "xs[1:3] = [1]")
	idxAssign = stmt.(*ast.IndexAssignment)
	if _, ok := idxAssign.Target.(*ast.SliceExpression); !ok {
		t.Fatalf("expected slice target, got %T", idxAssign.Target)
	}

	stmt = parseSingle(t, "h.key = 1")
	memAssign := stmt.(*ast.MemberAssignment)
	if memAssign.Member != "key" {
		t.Fatalf("expected member key, got %q", memAssign.Member)
	}
}

func TestSliceForms(t *testing.T) {
	tests := []struct {
		input             string
		start, stop, step bool
	}{
		{"xs[1:2]", true, true, false},
		{"xs[:2]", false, true, false},
		{"xs[1:]", true, false, false},
		{"xs[:]", false, false, false},
		{"xs[::2]", false, false, true},
		{"xs[1:2:3]", true, true, true},
	}
	for _, tt := range tests {
		stmt := parseSingle(t, tt.input)
		slice := stmt.(*ast.ExpressionStatement).Expression.(*ast.SliceExpression)
		if (slice.Start != nil) != tt.start {
			t.Fatalf("%s: start presence mismatch", tt.input)
		}
		if (slice.Stop != nil) != tt.stop {
			t.Fatalf("%s: stop presence mismatch", tt.input)
		}
		if (slice.Step != nil) != tt.step {
			t.Fatalf("%s: step presence mismatch", tt.input)
		}
	}

	stmt := parseSingle(t, "xs[1]")
	if _, ok := stmt.(*ast.ExpressionStatement).Expression.(*ast.IndexExpression); !ok {
		t.Fatal("expected plain index expression")
	}
}

func TestRangeVersusList(t *testing.T) {
	stmt := parseSingle(t, "[1..5]")
	if _, ok := stmt.(*ast.ExpressionStatement).Expression.(*ast.RangeLiteral); !ok {
		t.Fatal("expected range literal")
	}

	stmt = parseSingle(t, "[1, 5]")
	list, ok := stmt.(*ast.ExpressionStatement).Expression.(*ast.ListLiteral)
	if !ok || len(list.Elements) != 2 {
		t.Fatal("expected two-element list literal")
	}
}

func TestFunctionDeclaration(t *testing.T) {
	input := `
fn add(a, b = 10)
  return a + b
end
`
	stmt := parseProgram(t, input).Statements[0]
	decl := stmt.(*ast.FunctionDeclaration)
	if decl.Name != "add" {
		t.Fatalf("expected add, got %q", decl.Name)
	}
	if len(decl.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(decl.Parameters))
	}
	if decl.Parameters[0].Default != nil {
		t.Fatal("first parameter must have no default")
	}
	if decl.Parameters[1].Default == nil {
		t.Fatal("second parameter must have a default")
	}
	if len(decl.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(decl.Body))
	}
}

func TestClassDeclaration(t *testing.T) {
	input := `
class Dog < Animal
  fn speak()
    return "woof"
  end

  private fn secret()
  end

  static fn kind()
    return "canine"
  end
end
`
	decl := parseProgram(t, input).Statements[0].(*ast.ClassDeclaration)
	if decl.Name != "Dog" || decl.BaseClass != "Animal" {
		t.Fatalf("unexpected class header %q < %q", decl.Name, decl.BaseClass)
	}
	if len(decl.Methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(decl.Methods))
	}
	if !decl.Methods[1].IsPrivate {
		t.Fatal("expected second method private")
	}
	if !decl.Methods[2].IsStatic {
		t.Fatal("expected third method static")
	}
}

func TestIfElsifElseShape(t *testing.T) {
	input := `
if a
  x = 1
elsif b
  x = 2
elsif c
  x = 3
else
  x = 4
end
`
	stmt := parseProgram(t, input).Statements[0].(*ast.IfStatement)
	if len(stmt.ElseIfs) != 2 {
		t.Fatalf("expected 2 elsif clauses, got %d", len(stmt.ElseIfs))
	}
	if stmt.ElseBody == nil {
		t.Fatal("expected else body")
	}
}

func TestLoopHeaders(t *testing.T) {
	input := `
for v, i in xs do
  print v
end
`
	loop := parseProgram(t, input).Statements[0].(*ast.ForLoop)
	if loop.Value != "v" || loop.Index != "i" {
		t.Fatalf("unexpected iterators %q %q", loop.Value, loop.Index)
	}

	input = `
repeat n as k do
end
`
	rep := parseProgram(t, input).Statements[0].(*ast.RepeatLoop)
	if rep.Alias != "k" {
		t.Fatalf("expected alias k, got %q", rep.Alias)
	}
}

func TestGuardClauses(t *testing.T) {
	input := `
while true do
  break when x > 3
  next when x == 2
end
`
	loop := parseProgram(t, input).Statements[0].(*ast.WhileLoop)
	brk := loop.Body[0].(*ast.BreakStatement)
	if brk.Condition == nil {
		t.Fatal("expected guard on break")
	}
	nxt := loop.Body[1].(*ast.NextStatement)
	if nxt.Condition == nil {
		t.Fatal("expected guard on next")
	}

	ret := parseSingle(t, "return 1 when ready").(*ast.ReturnStatement)
	if ret.Value == nil || ret.Condition == nil {
		t.Fatal("expected value and guard on return")
	}
}

func TestTryCatchFinallyShape(t *testing.T) {
	input := `
try
  risky()
catch (t, m)
  log(t)
finally
  cleanup()
end
`
	stmt := parseProgram(t, input).Statements[0].(*ast.TryStatement)
	if stmt.ErrorType != "t" || stmt.ErrorMessage != "m" {
		t.Fatalf("unexpected catch bindings %q %q", stmt.ErrorType, stmt.ErrorMessage)
	}
	if len(stmt.Body) != 1 || len(stmt.CatchBody) != 1 || len(stmt.FinallyBody) != 1 {
		t.Fatal("unexpected body shapes")
	}

	bare := parseProgram(t, "try\ncatch\nend").Statements[0].(*ast.TryStatement)
	if bare.ErrorType != "" || bare.ErrorMessage != "" {
		t.Fatal("expected no catch bindings")
	}
}

func TestLambdaLiteral(t *testing.T) {
	stmt := parseSingle(t, `f = lambda (a, b) do
  return a + b
end`)
	assign := stmt.(*ast.Assignment)
	lit, ok := assign.Value.(*ast.LambdaLiteral)
	if !ok {
		t.Fatalf("expected lambda literal, got %T", assign.Value)
	}
	if len(lit.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(lit.Parameters))
	}
}

func TestMethodCallChain(t *testing.T) {
	stmt := parseSingle(t, `xs.map(f).join(",")`)
	call := stmt.(*ast.ExpressionStatement).Expression.(*ast.MethodCall)
	if call.Method != "join" {
		t.Fatalf("expected join outermost, got %q", call.Method)
	}
	inner := call.Object.(*ast.MethodCall)
	if inner.Method != "map" {
		t.Fatalf("expected map inside, got %q", inner.Method)
	}
}

func TestTernary(t *testing.T) {
	stmt := parseSingle(t, "x > 0 ? x : -x")
	ter := stmt.(*ast.ExpressionStatement).Expression.(*ast.TernaryOperation)
	if _, ok := ter.Condition.(*ast.BinaryOperation); !ok {
		t.Fatalf("expected comparison condition, got %T", ter.Condition)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []string{
		"fn missing_paren\nend",
		"if x\n", // unterminated block
		"xs[1 = 2",
		"1 +",
	}
	for _, input := range cases {
		l := lexer.New(input)
		p := New(l)
		p.ParseProgram()
		if len(p.Errors()) == 0 {
			t.Fatalf("expected parser error for %q", input)
		}
	}
}

func TestQualifiedCall(t *testing.T) {
	stmt := parseSingle(t, "mathutil::triple(4)")
	call := stmt.(*ast.ExpressionStatement).Expression.(*ast.FunctionCall)
	if call.Name != "mathutil::triple" {
		t.Fatalf("expected qualified name, got %q", call.Name)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Arguments))
	}
}

// '::' inside brackets is the double slice separator, not a qualifier,
// when no identifier follows it.
func TestDoubleColonSliceStillParses(t *testing.T) {
	stmt := parseSingle(t, "xs[::-1]")
	slice := stmt.(*ast.ExpressionStatement).Expression.(*ast.SliceExpression)
	if slice.Start != nil || slice.Stop != nil {
		t.Fatalf("expected open start and stop, got %+v", slice)
	}
	if slice.Step == nil {
		t.Fatalf("expected a step expression")
	}

	stmt = parseSingle(t, "xs[1::2]")
	slice = stmt.(*ast.ExpressionStatement).Expression.(*ast.SliceExpression)
	if slice.Start == nil || slice.Stop != nil || slice.Step == nil {
		t.Fatalf("expected start and step only, got %+v", slice)
	}
}
