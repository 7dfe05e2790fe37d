package interpreter

import (
	"testing"
)

func TestFunctionDefaults(t *testing.T) {
	source := `
fn greet(name, greeting = "hello")
  return greeting + ", " + name
end
greet("world") + " / " + greet("world", "hi")
`
	result, _ := runSource(t, source)
	expectString(t, result, "hello, world / hi, world")
}

// Later defaults may refer to earlier parameters.
func TestDefaultSeesEarlierParams(t *testing.T) {
	source := `
fn pad(s, width = s.size() + 2)
  return width
end
pad("abc")
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 5)
}

func TestParameterCountMismatch(t *testing.T) {
	runError(t, `
fn two(a, b)
  return a + b
end
two(1)
`, ParameterCountMismatchError)

	runError(t, `
fn one(a)
  return a
end
one(1, 2)
`, ParameterCountMismatchError)
}

func TestRecursion(t *testing.T) {
	source := `
fn fib(n)
  return n when n < 2
  return fib(n - 1) + fib(n - 2)
end
fib(12)
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 144)
}

func TestRecursionDepthLimit(t *testing.T) {
	runError(t, `
fn dive(n)
  return dive(n + 1)
end
dive(0)
`, StackOverflowError)
}

func TestLambdaBasics(t *testing.T) {
	source := `
double = lambda (x) do
  return x * 2
end
double(5) + double.call(3)
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 16)
}

// A lambda captures its defining frame; captured state persists across
// invocations of the same lambda.
func TestClosureState(t *testing.T) {
	source := `
fn counter()
  n = 0
  return lambda () do
    n = n + 1
    return n
  end
end
c = counter()
first = c()
second = c()
third = c()
[first, second, third]
`
	result, _ := runSource(t, source)
	list := result.(*List)
	expectInteger(t, list.Elements[0], 1)
	expectInteger(t, list.Elements[1], 2)
	expectInteger(t, list.Elements[2], 3)
}

func TestLambdasAreIndependent(t *testing.T) {
	source := `
fn counter()
  n = 0
  return lambda () do
    n = n + 1
    return n
  end
end
a = counter()
b = counter()
a()
a()
b()
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 1)
}

func TestLambdaAsArgument(t *testing.T) {
	source := `
fn apply_twice(f, x)
  return f(f(x))
end
apply_twice(lambda (n) do
  return n + 3
end, 10)
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 16)
}

func TestClassInstantiation(t *testing.T) {
	source := `
class Point
  fn initialize(x, y)
    @x = x
    @y = y
  end

  fn sum()
    return @x + @y
  end
end
p = Point.new(3, 4)
p.sum()
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 7)
}

func TestInstancesDoNotShareFields(t *testing.T) {
	source := `
class Box
  fn initialize(v)
    @v = v
  end

  fn get()
    return @v
  end
end
a = Box.new(1)
b = Box.new(2)
a.get() * 10 + b.get()
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 12)
}

// Method lookup walks the whole inheritance chain.
func TestInheritanceChain(t *testing.T) {
	source := `
class Animal
  fn initialize(name)
    @name = name
  end

  fn describe()
    return @name + " says " + speak()
  end

  fn speak()
    return "..."
  end
end

class Dog < Animal
  fn speak()
    return "woof"
  end
end

class Puppy < Dog
end

d = Puppy.new("rex")
d.describe()
`
	result, _ := runSource(t, source)
	expectString(t, result, "rex says woof")
}

func TestPrivateMethods(t *testing.T) {
	source := `
class Vault
  private fn combination()
    return 1234
  end

  fn open()
    return combination()
  end
end
Vault.new().open()
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 1234)

	runError(t, `
class Vault
  private fn combination()
    return 1234
  end
end
Vault.new().combination()
`, InvalidContextError)
}

func TestStaticMethods(t *testing.T) {
	source := `
class MathUtil
  static fn double(x)
    return x * 2
  end
end
MathUtil.double(21)
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 42)

	runError(t, `
class Greeter
  fn hello()
    return "hi"
  end
end
Greeter.hello()
`, InvalidContextError)
}

func TestSelfOutsideMethod(t *testing.T) {
	runError(t, "self", InvalidContextError)
	runError(t, "@field", InvalidContextError)
}

func TestMemberAccessOnInstance(t *testing.T) {
	source := `
class Config
  fn initialize()
    @host = "localhost"
  end
end
c = Config.new()
c.host
`
	result, _ := runSource(t, source)
	expectString(t, result, "localhost")
}

func TestMemberAssignmentOnInstance(t *testing.T) {
	source := `
class Config
  fn initialize()
    @port = 80
  end
end
c = Config.new()
c.port = 8080
c.port
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 8080)
}

func TestConstructorWithoutInitialize(t *testing.T) {
	source := `
class Empty
end
e = Empty.new()
e.type()
`
	result, _ := runSource(t, source)
	expectString(t, result, "Empty")

	runError(t, `
class Empty
end
Empty.new(1)
`, ParameterCountMismatchError)
}

// A free builtin wins over a same-named method for a bare call; an
// explicit receiver still reaches the method.
func TestBuiltinBeatsMethodOnBareName(t *testing.T) {
	source := `
class Ids
  fn uuid()
    return "custom"
  end

  fn fresh()
    return uuid()
  end
end

ids = Ids.new()
[ids.fresh().size(), ids.uuid()]
`
	result, _ := runSource(t, source)
	list := result.(*List)
	expectInteger(t, list.Elements[0], 36)
	expectString(t, list.Elements[1], "custom")
}
