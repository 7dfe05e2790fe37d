package interpreter

import (
	"testing"
)

func TestIfElsifElse(t *testing.T) {
	source := `
fn grade(score)
  if score >= 90
    return "A"
  elsif score >= 80
    return "B"
  elsif score >= 70
    return "C"
  else
    return "F"
  end
end
grade(95) + grade(85) + grade(72) + grade(10)
`
	result, _ := runSource(t, source)
	expectString(t, result, "ABCF")
}

func TestCaseStatement(t *testing.T) {
	source := `
fn describe(x)
  case x
  when 1
    return "one"
  when "two"
    return "two"
  when [3]
    return "list"
  else
    return "other"
  end
end
describe(1) + " " + describe("two") + " " + describe([3]) + " " + describe(99)
`
	result, _ := runSource(t, source)
	expectString(t, result, "one two list other")
}

func TestWhileLoop(t *testing.T) {
	source := `
total = 0
n = 1
while n <= 5 do
  total += n
  n += 1
end
total
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 15)
}

func TestForLoopWithIndex(t *testing.T) {
	source := `
acc = []
for v, i in ["a", "b", "c"] do
  acc.push(i.to_string() + v)
end
acc.join(",")
`
	result, _ := runSource(t, source)
	expectString(t, result, "0a,1b,2c")
}

// Iterator variables do not survive the loop.
func TestForLoopVariableCleanup(t *testing.T) {
	runError(t, `
for v, i in [1, 2] do
end
v
`, UndefinedNameError)

	runError(t, `
for v, i in [1, 2] do
end
i
`, UndefinedNameError)
}

func TestForLoopOverHash(t *testing.T) {
	source := `
acc = []
for k, v in {"x": 1, "y": 2} do
  acc.push(k + "=" + v.to_string())
end
acc.join(",")
`
	result, _ := runSource(t, source)
	expectString(t, result, "x=1,y=2")
}

func TestRepeatLoop(t *testing.T) {
	source := `
acc = []
repeat 3 as i do
  acc.push(i)
end
acc
`
	result, _ := runSource(t, source)
	list := result.(*List)
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 iterations, got %d", len(list.Elements))
	}
	// The alias counts from 1.
	expectInteger(t, list.Elements[0], 1)
	expectInteger(t, list.Elements[2], 3)

	runError(t, "repeat 2 as i do\nend\ni", UndefinedNameError)
}

func TestBreakAndNextGuards(t *testing.T) {
	source := `
acc = []
for v in [1..10] do
  next when v % 2 == 0
  break when v > 7
  acc.push(v)
end
acc
`
	result, _ := runSource(t, source)
	list := result.(*List)
	want := []int64{1, 3, 5, 7}
	if len(list.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %s", len(want), list.Inspect())
	}
	for i, w := range want {
		expectInteger(t, list.Elements[i], w)
	}
}

func TestBreakInnerLoopOnly(t *testing.T) {
	source := `
count = 0
for a in [1, 2, 3] do
  for b in [1, 2, 3] do
    break when b == 2
    count += 1
  end
end
count
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 3)
}

func TestBreakOutsideLoop(t *testing.T) {
	runError(t, `
fn nope()
  break
end
nope()
`, InvalidContextError)
}

func TestReturnGuard(t *testing.T) {
	source := `
fn clamp(x)
  return 100 when x > 100
  return x
end
clamp(250) + clamp(7)
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 107)
}

func TestTryCatch(t *testing.T) {
	source := `
result = ""
try
  throw "boom"
  result = "unreachable"
catch (t, m)
  result = t + ":" + m
end
result
`
	result, _ := runSource(t, source)
	expectString(t, result, "LoryError:boom")
}

func TestThrowHashPayload(t *testing.T) {
	source := `
result = ""
try
  throw { "error": "CustomError", "message": "went wrong" }
catch (t, m)
  result = t + "/" + m
end
result
`
	result, _ := runSource(t, source)
	expectString(t, result, "CustomError/went wrong")
}

func TestCatchRuntimeError(t *testing.T) {
	source := `
kind = ""
try
  x = 1 / 0
catch (t)
  kind = t
end
kind
`
	result, _ := runSource(t, source)
	expectString(t, result, DivideByZeroError)
}

// Catch binding names are erased once the catch body finishes.
func TestCatchBindingCleanup(t *testing.T) {
	runError(t, `
try
  throw "x"
catch (t, m)
end
t
`, UndefinedNameError)
}

func TestFinallyAlwaysRuns(t *testing.T) {
	source := `
log = []
try
  try
    throw "inner"
  finally
    log.push("finally")
  end
catch (t, m)
  log.push("caught " + m)
end
log.join(";")
`
	result, _ := runSource(t, source)
	expectString(t, result, "finally;caught inner")
}

func TestUncaughtThrowGuard(t *testing.T) {
	result, _ := runSource(t, `
throw "never" when 1 > 2
"survived"
`)
	expectString(t, result, "survived")

	runError(t, `throw "always" when 2 > 1`, "always")
}

func TestNestedFunctionFrames(t *testing.T) {
	// A called function sees a copy of caller locals; writes to shared
	// names flow back on return.
	source := `
x = 1
fn bump()
  x = x + 2
end
bump()
x
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 3)

	// Names created only inside the callee stay there.
	runError(t, `
fn maker()
  created = 9
end
maker()
created
`, UndefinedNameError)
}
