package interpreter

import (
	"strings"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/token"
)

// compoundOp maps a compound assignment operator onto its binary operator.
var compoundOp = map[token.Type]token.Type{
	token.PLUS_ASSIGN:  token.PLUS,
	token.MINUS_ASSIGN: token.MINUS,
	token.MUL_ASSIGN:   token.ASTERISK,
	token.DIV_ASSIGN:   token.SLASH,
	token.MOD_ASSIGN:   token.PERCENT,
	token.POW_ASSIGN:   token.POWER,
	token.AND_ASSIGN:   token.BIT_AND,
	token.OR_ASSIGN:    token.BIT_OR,
	token.XOR_ASSIGN:   token.BIT_XOR,
	token.SHL_ASSIGN:   token.SHL,
	token.SHR_ASSIGN:   token.SHR,
}

// applyCompound folds the current value into the assigned one for compound
// operators; plain assignment passes the value through.
func (i *Interpreter) applyCompound(op token.Type, current, value Object) Object {
	if op == token.ASSIGN {
		return value
	}
	binOp, ok := compoundOp[op]
	if !ok {
		return newError(InvalidOperationError, "unknown assignment operator %s", op)
	}
	return i.evalBinary(binOp, current, value)
}

func (i *Interpreter) evalAssignment(s *ast.Assignment) Object {
	value := i.evalExpression(s.Value)
	if isSignal(value) {
		return value
	}

	if isInstanceVar(s.Name) {
		self := i.stack.self()
		if self == nil {
			return newErrorAt(s.Token, InvalidContextError,
				"%s used outside of an object context", s.Name)
		}
		if s.Op != token.ASSIGN {
			current, ok := self.Fields[s.Name]
			if !ok {
				return newErrorAt(s.Token, UndefinedNameError, "undefined name %q", s.Name)
			}
			value = i.applyCompound(s.Op, current, value)
			if isSignal(value) {
				return withPos(value, s.Token)
			}
		}
		self.Fields[s.Name] = value
		return value
	}

	frame := i.stack.current()
	if s.Op != token.ASSIGN {
		current, ok := frame.get(s.Name)
		if !ok {
			return newErrorAt(s.Token, UndefinedNameError, "undefined name %q", s.Name)
		}
		value = i.applyCompound(s.Op, current, value)
		if isSignal(value) {
			return withPos(value, s.Token)
		}
	}
	frame.set(s.Name, value)
	return value
}

func (i *Interpreter) evalIndexAssignment(s *ast.IndexAssignment) Object {
	switch target := s.Target.(type) {
	case *ast.IndexExpression:
		return i.assignThroughIndex(s, target)
	case *ast.SliceExpression:
		return i.assignThroughSlice(s, target)
	}
	return newErrorAt(s.Token, InvalidOperationError, "invalid assignment target")
}

func (i *Interpreter) assignThroughIndex(s *ast.IndexAssignment, target *ast.IndexExpression) Object {
	container := i.evalExpression(target.Object)
	if isSignal(container) {
		return container
	}
	index := i.evalExpression(target.Index)
	if isSignal(index) {
		return index
	}
	value := i.evalExpression(s.Value)
	if isSignal(value) {
		return value
	}

	switch c := container.(type) {
	case *List:
		idx, ok := index.(*Integer)
		if !ok {
			return newErrorAt(s.Token, TypeError, "list index must be an integer, got %s",
				strings.ToLower(string(index.Type())))
		}
		n, ok := normalizeIndex(idx.Value, int64(len(c.Elements)))
		if !ok {
			return newErrorAt(s.Token, IndexError,
				"list index %d out of range for length %d", idx.Value, len(c.Elements))
		}
		if s.Op != token.ASSIGN {
			value = i.applyCompound(s.Op, c.Elements[n], value)
			if isSignal(value) {
				return withPos(value, s.Token)
			}
		}
		c.Elements[n] = value
		return value
	case *Hash:
		key, ok := index.(*String)
		if !ok {
			return newErrorAt(s.Token, TypeError, "hash key must be a string, got %s",
				strings.ToLower(string(index.Type())))
		}
		if s.Op != token.ASSIGN {
			current, found := c.Get(key.Value)
			if !found {
				return newErrorAt(s.Token, KeyError, "key %q not found", key.Value)
			}
			value = i.applyCompound(s.Op, current, value)
			if isSignal(value) {
				return withPos(value, s.Token)
			}
		}
		c.Set(key.Value, value)
		return value
	case *String:
		return i.assignStringIndex(s, target, c, index, value)
	}
	return newErrorAt(s.Token, TypeError, "%s does not support index assignment",
		strings.ToLower(string(container.Type())))
}

// assignStringIndex rebuilds the string and rebinds the variable the string
// came from; strings are immutable values.
func (i *Interpreter) assignStringIndex(s *ast.IndexAssignment, target *ast.IndexExpression, str *String, index, value Object) Object {
	ident, ok := target.Object.(*ast.Identifier)
	if !ok {
		return newErrorAt(s.Token, InvalidOperationError,
			"string index assignment requires a named variable")
	}
	idx, ok := index.(*Integer)
	if !ok {
		return newErrorAt(s.Token, TypeError, "string index must be an integer")
	}
	sv, ok := value.(*String)
	if !ok {
		return newErrorAt(s.Token, TypeError, "string index assignment requires a string value")
	}
	runes := []rune(str.Value)
	n, ok := normalizeIndex(idx.Value, int64(len(runes)))
	if !ok {
		return newErrorAt(s.Token, IndexError,
			"string index %d out of range for length %d", idx.Value, len(runes))
	}
	rebuilt := &String{Value: string(runes[:n]) + sv.Value + string(runes[n+1:])}
	if isInstanceVar(ident.Name) {
		self := i.stack.self()
		if self == nil {
			return newErrorAt(s.Token, InvalidContextError,
				"%s used outside of an object context", ident.Name)
		}
		self.Fields[ident.Name] = rebuilt
	} else {
		i.stack.current().set(ident.Name, rebuilt)
	}
	return rebuilt
}

// assignThroughSlice overwrites a range of a list. A unit step splices: the
// selected range is removed and the new elements inserted in its place, so
// the list may grow or shrink. Any other step overwrites positionally and
// stops at the shorter of the two sides.
func (i *Interpreter) assignThroughSlice(s *ast.IndexAssignment, target *ast.SliceExpression) Object {
	container := i.evalExpression(target.Object)
	if isSignal(container) {
		return container
	}
	list, ok := container.(*List)
	if !ok {
		return newErrorAt(s.Token, TypeError, "%s does not support slice assignment",
			strings.ToLower(string(container.Type())))
	}
	if s.Op != token.ASSIGN {
		return newErrorAt(s.Token, InvalidOperationError,
			"compound assignment is not supported through a slice")
	}

	value := i.evalExpression(s.Value)
	if isSignal(value) {
		return value
	}
	var newElems []Object
	if vl, isList := value.(*List); isList {
		newElems = vl.Elements
	} else {
		newElems = []Object{value}
	}

	start, stop, step, errObj := i.sliceBounds(target, int64(len(list.Elements)))
	if errObj != nil {
		return errObj
	}

	if step == 1 {
		if stop < start {
			stop = start
		}
		out := make([]Object, 0, int64(len(list.Elements))-(stop-start)+int64(len(newElems)))
		out = append(out, list.Elements[:start]...)
		out = append(out, newElems...)
		out = append(out, list.Elements[stop:]...)
		list.Elements = out
		return value
	}

	seq := sliceIndexSeq(start, stop, step)
	for k := 0; k < len(seq) && k < len(newElems); k++ {
		list.Elements[seq[k]] = newElems[k]
	}
	return value
}

func (i *Interpreter) evalMemberAssignment(s *ast.MemberAssignment) Object {
	object := i.evalExpression(s.Object)
	if isSignal(object) {
		return object
	}
	value := i.evalExpression(s.Value)
	if isSignal(value) {
		return value
	}

	switch o := object.(type) {
	case *Hash:
		if s.Op != token.ASSIGN {
			current, found := o.Get(s.Member)
			if !found {
				return newErrorAt(s.Token, KeyError, "key %q not found", s.Member)
			}
			value = i.applyCompound(s.Op, current, value)
			if isSignal(value) {
				return withPos(value, s.Token)
			}
		}
		o.Set(s.Member, value)
		return value
	case *Instance:
		field := "@" + s.Member
		if s.Op != token.ASSIGN {
			current, found := o.Fields[field]
			if !found {
				return newErrorAt(s.Token, UndefinedNameError, "undefined name %q", field)
			}
			value = i.applyCompound(s.Op, current, value)
			if isSignal(value) {
				return withPos(value, s.Token)
			}
		}
		o.Fields[field] = value
		return value
	}
	return newErrorAt(s.Token, TypeError, "cannot assign member %q on %s",
		s.Member, strings.ToLower(string(object.Type())))
}
