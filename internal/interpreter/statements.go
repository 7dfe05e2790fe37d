package interpreter

import (
	"github.com/lorylang/lory/internal/ast"
)

// evalGuard evaluates an optional `when` condition; a nil condition holds.
func (i *Interpreter) evalGuard(cond ast.Expression) (bool, Object) {
	if cond == nil {
		return true, nil
	}
	v := i.evalExpression(cond)
	if isSignal(v) {
		return false, v
	}
	return isTruthy(v), nil
}

func (i *Interpreter) evalReturn(s *ast.ReturnStatement) Object {
	ok, sig := i.evalGuard(s.Condition)
	if sig != nil {
		return sig
	}
	if !ok {
		return NULL
	}
	var value Object = NULL
	if s.Value != nil {
		value = i.evalExpression(s.Value)
		if isSignal(value) {
			return value
		}
	}
	return &ReturnValue{Value: value}
}

func (i *Interpreter) evalBreak(s *ast.BreakStatement) Object {
	ok, sig := i.evalGuard(s.Condition)
	if sig != nil {
		return sig
	}
	if !ok {
		return NULL
	}
	return &BreakSignal{}
}

func (i *Interpreter) evalNext(s *ast.NextStatement) Object {
	ok, sig := i.evalGuard(s.Condition)
	if sig != nil {
		return sig
	}
	if !ok {
		return NULL
	}
	return &ContinueSignal{}
}

// evalThrow raises a user error. A string payload becomes the message of a
// generic error; a hash payload may carry "error" and "message" keys to
// pick the kind and message.
func (i *Interpreter) evalThrow(s *ast.ThrowStatement) Object {
	ok, sig := i.evalGuard(s.Condition)
	if sig != nil {
		return sig
	}
	if !ok {
		return NULL
	}

	err := &Error{Kind: LoryError, Message: "an error occurred", Line: s.Token.Line, Column: s.Token.Column}
	if s.Value == nil {
		return err
	}
	payload := i.evalExpression(s.Value)
	if isSignal(payload) {
		return payload
	}

	switch p := payload.(type) {
	case *String:
		err.Message = p.Value
	case *Hash:
		if v, ok := p.Get("error"); ok {
			if sv, ok := v.(*String); ok {
				err.Kind = sv.Value
			}
		}
		if v, ok := p.Get("message"); ok {
			if sv, ok := v.(*String); ok {
				err.Message = sv.Value
			}
		}
	default:
		err.Message = payload.Inspect()
	}
	return err
}

func (i *Interpreter) evalExit(s *ast.ExitStatement) Object {
	ok, sig := i.evalGuard(s.Condition)
	if sig != nil {
		return sig
	}
	if !ok {
		return NULL
	}
	code := 0
	if s.Code != nil {
		v := i.evalExpression(s.Code)
		if isSignal(v) {
			return v
		}
		iv, isInt := v.(*Integer)
		if !isInt {
			return newErrorAt(s.Token, TypeError, "exit code must be an integer")
		}
		code = int(iv.Value)
	}
	return &ExitSignal{Code: code}
}

func (i *Interpreter) evalIf(s *ast.IfStatement) Object {
	cond := i.evalExpression(s.Condition)
	if isSignal(cond) {
		return cond
	}
	if isTruthy(cond) {
		return i.evalStatements(s.Body)
	}
	for _, clause := range s.ElseIfs {
		c := i.evalExpression(clause.Condition)
		if isSignal(c) {
			return c
		}
		if isTruthy(c) {
			return i.evalStatements(clause.Body)
		}
	}
	if s.ElseBody != nil {
		return i.evalStatements(s.ElseBody)
	}
	return NULL
}

// evalCase runs the first when clause whose value equals the subject.
func (i *Interpreter) evalCase(s *ast.CaseStatement) Object {
	subject := i.evalExpression(s.Subject)
	if isSignal(subject) {
		return subject
	}
	for _, clause := range s.Whens {
		v := i.evalExpression(clause.Condition)
		if isSignal(v) {
			return v
		}
		if objectsEqual(subject, v) {
			return i.evalStatements(clause.Body)
		}
	}
	if s.ElseBody != nil {
		return i.evalStatements(s.ElseBody)
	}
	return NULL
}

// runLoopBody executes one iteration. It absorbs next signals, reports
// break, and propagates everything else.
func (i *Interpreter) runLoopBody(body []ast.Statement) (stop bool, sig Object) {
	result := i.evalStatements(body)
	switch result.(type) {
	case *BreakSignal:
		return true, nil
	case *ContinueSignal:
		return false, nil
	}
	if isAbrupt(result) {
		return true, result
	}
	return false, nil
}

func (i *Interpreter) evalWhile(s *ast.WhileLoop) Object {
	for {
		cond := i.evalExpression(s.Condition)
		if isSignal(cond) {
			return cond
		}
		if !isTruthy(cond) {
			return NULL
		}
		stop, sig := i.runLoopBody(s.Body)
		if sig != nil {
			return sig
		}
		if stop {
			return NULL
		}
	}
}

// evalFor iterates a list (value, optional position) or a hash (key,
// optional value) in container order. Iterator variables are removed from
// the frame once the loop finishes.
func (i *Interpreter) evalFor(s *ast.ForLoop) Object {
	iterable := i.evalExpression(s.Iterable)
	if isSignal(iterable) {
		return iterable
	}

	frame := i.stack.current()
	defer func() {
		frame.unset(s.Value)
		if s.Index != "" {
			frame.unset(s.Index)
		}
	}()

	switch it := iterable.(type) {
	case *List:
		for idx, el := range it.Elements {
			frame.set(s.Value, el)
			if s.Index != "" {
				frame.set(s.Index, &Integer{Value: int64(idx)})
			}
			stop, sig := i.runLoopBody(s.Body)
			if sig != nil {
				return sig
			}
			if stop {
				break
			}
		}
		return NULL
	case *Hash:
		// Iterate a copy of the key order so body mutations cannot skip
		// or repeat entries.
		keys := make([]string, len(it.Keys))
		copy(keys, it.Keys)
		for _, key := range keys {
			frame.set(s.Value, &String{Value: key})
			if s.Index != "" {
				v, ok := it.Get(key)
				if !ok {
					v = NULL
				}
				frame.set(s.Index, v)
			}
			stop, sig := i.runLoopBody(s.Body)
			if sig != nil {
				return sig
			}
			if stop {
				break
			}
		}
		return NULL
	case *String:
		for _, r := range it.Value {
			frame.set(s.Value, &String{Value: string(r)})
			stop, sig := i.runLoopBody(s.Body)
			if sig != nil {
				return sig
			}
			if stop {
				break
			}
		}
		return NULL
	}
	return newErrorAt(s.Token, TypeError, "cannot iterate %s",
		string(iterable.Type()))
}

// evalRepeat runs its body count times; the optional alias counts from 1.
func (i *Interpreter) evalRepeat(s *ast.RepeatLoop) Object {
	count := i.evalExpression(s.Count)
	if isSignal(count) {
		return count
	}
	n, ok := count.(*Integer)
	if !ok {
		return newErrorAt(s.Token, TypeError, "repeat count must be an integer")
	}

	frame := i.stack.current()
	if s.Alias != "" {
		defer frame.unset(s.Alias)
	}

	for k := int64(1); k <= n.Value; k++ {
		if s.Alias != "" {
			frame.set(s.Alias, &Integer{Value: k})
		}
		stop, sig := i.runLoopBody(s.Body)
		if sig != nil {
			return sig
		}
		if stop {
			break
		}
	}
	return NULL
}

// evalTry runs its body under an error boundary. The catch body sees the
// error's kind and message through its declared names, which are removed
// again afterwards. The finally body always runs; if it produces its own
// signal, that signal wins.
func (i *Interpreter) evalTry(s *ast.TryStatement) Object {
	result := i.evalStatements(s.Body)

	if err, ok := result.(*Error); ok && s.CatchBody != nil {
		frame := i.stack.current()
		if s.ErrorType != "" {
			frame.set(s.ErrorType, &String{Value: err.Kind})
		}
		if s.ErrorMessage != "" {
			frame.set(s.ErrorMessage, &String{Value: err.Message})
		}
		result = i.evalStatements(s.CatchBody)
		if s.ErrorType != "" {
			frame.unset(s.ErrorType)
		}
		if s.ErrorMessage != "" {
			frame.unset(s.ErrorMessage)
		}
	}

	if s.FinallyBody != nil {
		if fin := i.evalStatements(s.FinallyBody); isAbrupt(fin) {
			return fin
		}
	}

	if isAbrupt(result) {
		return result
	}
	return NULL
}

func (i *Interpreter) evalClassDeclaration(s *ast.ClassDeclaration) Object {
	cls := &Class{Name: s.Name, Methods: make(map[string]*Method)}
	if s.BaseClass != "" {
		base, ok := i.classes[s.BaseClass]
		if !ok {
			return newErrorAt(s.Token, UndefinedNameError,
				"base class %q is not defined", s.BaseClass)
		}
		cls.Base = base
	}
	for _, m := range s.Methods {
		cls.Methods[m.Name] = &Method{Decl: m, Class: cls}
	}
	i.classes[s.Name] = cls
	return NULL
}
