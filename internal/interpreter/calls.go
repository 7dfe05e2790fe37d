package interpreter

import (
	"strings"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/token"
)

// callable is the resolved target of a bare-name call.
type callable struct {
	function *ast.FunctionDeclaration
	lambda   *Lambda
	method   *Method
	self     *Instance // receiver for method, nil otherwise
	builtin  string    // builtin name when no function or lambda matched
}

// resolveCallable resolves a bare name in call position: a local variable
// holding a lambda reference wins, then free functions, then builtins,
// then methods of the current object context.
func (i *Interpreter) resolveCallable(name string) (*callable, bool) {
	if v, ok := i.stack.current().get(name); ok {
		if ref, isRef := v.(*LambdaRef); isRef {
			if l, found := i.lambdas[ref.ID]; found {
				return &callable{lambda: l}, true
			}
		}
	}
	if fn, ok := i.functions[name]; ok {
		return &callable{function: fn}, true
	}
	if hasBuiltin(name) {
		return &callable{builtin: name}, true
	}
	if self := i.stack.self(); self != nil {
		if m, ok := self.Class.FindMethod(name); ok {
			return &callable{method: m, self: self}, true
		}
	}
	return nil, false
}

func (i *Interpreter) evalFunctionCall(e *ast.FunctionCall) Object {
	target, ok := i.resolveCallable(e.Name)
	if !ok {
		return newErrorAt(e.Token, UndefinedNameError, "undefined function %q", e.Name)
	}

	args, sig := i.evalArguments(e.Arguments)
	if sig != nil {
		return sig
	}

	switch {
	case target.lambda != nil:
		return withPos(i.callLambda(target.lambda, args), e.Token)
	case target.function != nil:
		return withPos(i.callFunction(target.function, args), e.Token)
	case target.method != nil:
		return withPos(i.callMethod(target.method, target.self, args), e.Token)
	default:
		result, handled := i.callBuiltin(e.Token, target.builtin, args)
		if !handled {
			return newErrorAt(e.Token, UndefinedNameError, "undefined function %q", e.Name)
		}
		return result
	}
}

func (i *Interpreter) evalArguments(exprs []ast.Expression) ([]Object, Object) {
	args := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		v := i.evalExpression(expr)
		if isSignal(v) {
			return nil, v
		}
		args = append(args, v)
	}
	return args, nil
}

// bindParameters binds arguments into the already-pushed frame. Default
// expressions are evaluated in the callee frame, so earlier parameters are
// visible to later defaults.
func (i *Interpreter) bindParameters(name string, params []ast.Parameter, args []Object) Object {
	if len(args) > len(params) {
		return newError(ParameterCountMismatchError,
			"%s expects at most %d arguments, got %d", name, len(params), len(args))
	}
	frame := i.stack.current()
	for idx, p := range params {
		if idx < len(args) {
			frame.set(p.Name, args[idx])
			continue
		}
		if p.Default == nil {
			return newError(ParameterCountMismatchError,
				"%s expects argument %q", name, p.Name)
		}
		v := i.evalExpression(p.Default)
		if isSignal(v) {
			return v
		}
		frame.set(p.Name, v)
	}
	return nil
}

// finishCall unwraps a return value and rejects loop signals that escaped
// the invocation.
func finishCall(result Object) Object {
	switch r := result.(type) {
	case *ReturnValue:
		return r.Value
	case *BreakSignal:
		return newError(InvalidContextError, "break used outside of a loop")
	case *ContinueSignal:
		return newError(InvalidContextError, "next used outside of a loop")
	case nil:
		return NULL
	}
	if isAbrupt(result) {
		return result
	}
	return NULL
}

func (i *Interpreter) enterCall() Object {
	i.callDepth++
	if i.callDepth > maxCallDepth {
		return newError(StackOverflowError, "call depth exceeded %d", maxCallDepth)
	}
	return nil
}

func (i *Interpreter) callFunction(fn *ast.FunctionDeclaration, args []Object) Object {
	if err := i.enterCall(); err != nil {
		return err
	}
	defer func() { i.callDepth-- }()

	i.stack.push(true)
	defer i.stack.pop()

	if err := i.bindParameters(fn.Name, fn.Parameters, args); err != nil {
		return err
	}
	return finishCall(i.evalStatements(fn.Body))
}

// callLambda runs a lambda in a frame seeded from its captured environment.
// Mutations to captured variables are written back to the capture, so state
// held in a closure survives across invocations.
func (i *Interpreter) callLambda(l *Lambda, args []Object) Object {
	if err := i.enterCall(); err != nil {
		return err
	}
	defer func() { i.callDepth-- }()

	frame := &Frame{vars: make(map[string]Object, len(l.Captured)), self: l.Self, method: true}
	for k, v := range l.Captured {
		frame.vars[k] = v
	}
	i.stack.frames = append(i.stack.frames, frame)
	defer func() {
		for k := range l.Captured {
			if v, ok := frame.vars[k]; ok {
				l.Captured[k] = v
			}
		}
		i.stack.frames = i.stack.frames[:len(i.stack.frames)-1]
	}()

	if err := i.bindParameters("lambda", l.Parameters, args); err != nil {
		return err
	}
	return finishCall(i.evalStatements(l.Body))
}

func (i *Interpreter) callMethod(m *Method, self *Instance, args []Object) Object {
	if err := i.enterCall(); err != nil {
		return err
	}
	defer func() { i.callDepth-- }()

	if m.Decl.IsStatic {
		i.stack.pushMethod(nil)
	} else {
		i.stack.pushMethod(self)
	}
	defer i.stack.pop()

	if err := i.bindParameters(m.Class.Name+"."+m.Decl.Name, m.Decl.Parameters, args); err != nil {
		return err
	}
	return finishCall(i.evalStatements(m.Decl.Body))
}

func classIsOrInherits(cls, target *Class) bool {
	for c := cls; c != nil; c = c.Base {
		if c == target {
			return true
		}
	}
	return false
}

// checkPrivate enforces that private methods are reachable only from inside
// the declaring class or one of its subclasses.
func (i *Interpreter) checkPrivate(tok token.Token, m *Method) Object {
	if !m.Decl.IsPrivate {
		return nil
	}
	self := i.stack.self()
	if self == nil || !classIsOrInherits(self.Class, m.Class) {
		return newErrorAt(tok, InvalidContextError,
			"method %q of class %s is private", m.Decl.Name, m.Class.Name)
	}
	return nil
}

func (i *Interpreter) evalMethodCall(e *ast.MethodCall) Object {
	receiver := i.evalExpression(e.Object)
	if isSignal(receiver) {
		return receiver
	}
	args, sig := i.evalArguments(e.Arguments)
	if sig != nil {
		return sig
	}

	switch r := receiver.(type) {
	case *Class:
		if e.Method == "new" {
			return withPos(i.instantiate(r, args), e.Token)
		}
		m, ok := r.FindMethod(e.Method)
		if !ok {
			return newErrorAt(e.Token, UndefinedNameError,
				"class %s has no method %q", r.Name, e.Method)
		}
		if !m.Decl.IsStatic {
			return newErrorAt(e.Token, InvalidContextError,
				"method %q of class %s requires an instance", e.Method, r.Name)
		}
		if err := i.checkPrivate(e.Token, m); err != nil {
			return err
		}
		return withPos(i.callMethod(m, nil, args), e.Token)
	case *Instance:
		if m, ok := r.Class.FindMethod(e.Method); ok {
			if err := i.checkPrivate(e.Token, m); err != nil {
				return err
			}
			return withPos(i.callMethod(m, r, args), e.Token)
		}
	case *LambdaRef:
		if e.Method == "call" {
			l, found := i.lambdas[r.ID]
			if !found {
				return newErrorAt(e.Token, UndefinedNameError, "lambda is no longer registered")
			}
			return withPos(i.callLambda(l, args), e.Token)
		}
	}

	result, handled := i.callBuiltinMethod(e.Token, receiver, e.Method, args)
	if !handled {
		return newErrorAt(e.Token, UndefinedNameError, "no method %q on %s",
			e.Method, strings.ToLower(string(receiver.Type())))
	}
	return result
}

// instantiate builds an instance and runs its initialize method when the
// class chain declares one.
func (i *Interpreter) instantiate(cls *Class, args []Object) Object {
	inst := &Instance{Class: cls, Fields: make(map[string]Object)}
	ctor, ok := cls.FindMethod("initialize")
	if !ok {
		if len(args) > 0 {
			return newError(ParameterCountMismatchError,
				"class %s has no initialize method but got %d arguments", cls.Name, len(args))
		}
		return inst
	}
	if result := i.callMethod(ctor, inst, args); isError(result) {
		return result
	}
	return inst
}
