package interpreter

import (
	"strings"

	"github.com/google/uuid"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/token"
)

func isInstanceVar(name string) bool { return strings.HasPrefix(name, "@") }

func (i *Interpreter) evalIdentifier(e *ast.Identifier) Object {
	if isInstanceVar(e.Name) {
		self := i.stack.self()
		if self == nil {
			return newErrorAt(e.Token, InvalidContextError,
				"%s used outside of an object context", e.Name)
		}
		if v, ok := self.Fields[e.Name]; ok {
			return v
		}
		return NULL
	}

	if v, ok := i.stack.current().get(e.Name); ok {
		return v
	}
	if cls, ok := i.classes[e.Name]; ok {
		return cls
	}
	return newErrorAt(e.Token, UndefinedNameError, "undefined name %q", e.Name)
}

func (i *Interpreter) evalSelf(e *ast.SelfExpression) Object {
	self := i.stack.self()
	if self == nil {
		return newErrorAt(e.Token, InvalidContextError, "self used outside of an object context")
	}
	return self
}

func (i *Interpreter) evalListLiteral(e *ast.ListLiteral) Object {
	elements := make([]Object, 0, len(e.Elements))
	for _, el := range e.Elements {
		v := i.evalExpression(el)
		if isSignal(v) {
			return v
		}
		elements = append(elements, v)
	}
	return &List{Elements: elements}
}

func (i *Interpreter) evalRangeLiteral(e *ast.RangeLiteral) Object {
	start := i.evalExpression(e.Start)
	if isSignal(start) {
		return start
	}
	stop := i.evalExpression(e.Stop)
	if isSignal(stop) {
		return stop
	}
	si, ok := start.(*Integer)
	if !ok {
		return newErrorAt(e.Token, TypeError, "range bounds must be integers, got %s",
			strings.ToLower(string(start.Type())))
	}
	ei, ok := stop.(*Integer)
	if !ok {
		return newErrorAt(e.Token, TypeError, "range bounds must be integers, got %s",
			strings.ToLower(string(stop.Type())))
	}

	var elements []Object
	if si.Value <= ei.Value {
		for v := si.Value; v <= ei.Value; v++ {
			elements = append(elements, &Integer{Value: v})
		}
	} else {
		for v := si.Value; v >= ei.Value; v-- {
			elements = append(elements, &Integer{Value: v})
		}
	}
	return &List{Elements: elements}
}

func (i *Interpreter) evalHashLiteral(e *ast.HashLiteral) Object {
	hash := NewHash()
	for idx, keyExpr := range e.Keys {
		key := i.evalExpression(keyExpr)
		if isSignal(key) {
			return key
		}
		ks, ok := key.(*String)
		if !ok {
			return newErrorAt(e.Token, TypeError, "hash keys must be strings, got %s",
				strings.ToLower(string(key.Type())))
		}
		val := i.evalExpression(e.Vals[idx])
		if isSignal(val) {
			return val
		}
		hash.Set(ks.Value, val)
	}
	return hash
}

// evalLambdaLiteral registers the lambda and hands back a reference. The
// lambda captures a snapshot of the defining frame's variables, plus the
// object context when defined inside a method.
func (i *Interpreter) evalLambdaLiteral(e *ast.LambdaLiteral) Object {
	id := uuid.NewString()
	i.lambdas[id] = &Lambda{
		Parameters: e.Parameters,
		Body:       e.Body,
		Captured:   i.stack.current().snapshot(),
		Self:       i.stack.self(),
	}
	return &LambdaRef{ID: id}
}

func (i *Interpreter) evalUnaryOperation(e *ast.UnaryOperation) Object {
	operand := i.evalExpression(e.Operand)
	if isSignal(operand) {
		return operand
	}
	return withPos(i.evalUnary(e.Op, operand), e.Token)
}

func (i *Interpreter) evalBinaryOperation(e *ast.BinaryOperation) Object {
	left := i.evalExpression(e.Left)
	if isSignal(left) {
		return left
	}

	// && and || short-circuit and yield booleans.
	switch e.Op {
	case token.AND:
		if !isTruthy(left) {
			return FALSE
		}
		right := i.evalExpression(e.Right)
		if isSignal(right) {
			return right
		}
		return nativeBoolToBooleanObject(isTruthy(right))
	case token.OR:
		if isTruthy(left) {
			return TRUE
		}
		right := i.evalExpression(e.Right)
		if isSignal(right) {
			return right
		}
		return nativeBoolToBooleanObject(isTruthy(right))
	}

	right := i.evalExpression(e.Right)
	if isSignal(right) {
		return right
	}
	return withPos(i.evalBinary(e.Op, left, right), e.Token)
}

func (i *Interpreter) evalTernary(e *ast.TernaryOperation) Object {
	cond := i.evalExpression(e.Condition)
	if isSignal(cond) {
		return cond
	}
	if isTruthy(cond) {
		return i.evalExpression(e.WhenTrue)
	}
	return i.evalExpression(e.WhenFalse)
}

// normalizeIndex maps a possibly negative index onto [0, length).
func normalizeIndex(idx, length int64) (int64, bool) {
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

func (i *Interpreter) evalIndexExpression(e *ast.IndexExpression) Object {
	object := i.evalExpression(e.Object)
	if isSignal(object) {
		return object
	}
	index := i.evalExpression(e.Index)
	if isSignal(index) {
		return index
	}

	switch o := object.(type) {
	case *List:
		idx, ok := index.(*Integer)
		if !ok {
			return newErrorAt(e.Token, TypeError, "list index must be an integer, got %s",
				strings.ToLower(string(index.Type())))
		}
		n, ok := normalizeIndex(idx.Value, int64(len(o.Elements)))
		if !ok {
			return newErrorAt(e.Token, IndexError,
				"list index %d out of range for length %d", idx.Value, len(o.Elements))
		}
		return o.Elements[n]
	case *String:
		idx, ok := index.(*Integer)
		if !ok {
			return newErrorAt(e.Token, TypeError, "string index must be an integer, got %s",
				strings.ToLower(string(index.Type())))
		}
		runes := []rune(o.Value)
		n, ok := normalizeIndex(idx.Value, int64(len(runes)))
		if !ok {
			return newErrorAt(e.Token, IndexError,
				"string index %d out of range for length %d", idx.Value, len(runes))
		}
		return &String{Value: string(runes[n])}
	case *Hash:
		key, ok := index.(*String)
		if !ok {
			return newErrorAt(e.Token, TypeError, "hash key must be a string, got %s",
				strings.ToLower(string(index.Type())))
		}
		if v, ok := o.Get(key.Value); ok {
			return v
		}
		return newErrorAt(e.Token, KeyError, "key %q not found", key.Value)
	}
	return newErrorAt(e.Token, TypeError, "%s is not indexable",
		strings.ToLower(string(object.Type())))
}

// sliceBounds resolves start, stop and step for a slice over length
// elements. With a negative step, stop resolves to -1 so iteration can run
// down to index 0 inclusively.
func (i *Interpreter) sliceBounds(e *ast.SliceExpression, length int64) (start, stop, step int64, errObj Object) {
	evalBound := func(expr ast.Expression) (int64, bool, Object) {
		if expr == nil {
			return 0, false, nil
		}
		v := i.evalExpression(expr)
		if isSignal(v) {
			return 0, false, v
		}
		iv, ok := v.(*Integer)
		if !ok {
			return 0, false, newErrorAt(e.Token, TypeError,
				"slice bound must be an integer, got %s", strings.ToLower(string(v.Type())))
		}
		return iv.Value, true, nil
	}

	step = 1
	if v, has, err := evalBound(e.Step); err != nil {
		return 0, 0, 0, err
	} else if has {
		if v == 0 {
			return 0, 0, 0, newErrorAt(e.Token, InvalidOperationError, "slice step must not be zero")
		}
		step = v
	}

	clamp := func(v, lo, hi int64) int64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	if step > 0 {
		start = 0
		stop = length
	} else {
		start = length - 1
		stop = -1
	}

	if v, has, err := evalBound(e.Start); err != nil {
		return 0, 0, 0, err
	} else if has {
		if v < 0 {
			v += length
		}
		if step > 0 {
			start = clamp(v, 0, length)
		} else {
			start = clamp(v, -1, length-1)
		}
	}

	if v, has, err := evalBound(e.Stop); err != nil {
		return 0, 0, 0, err
	} else if has {
		if v < 0 {
			v += length
		}
		if step > 0 {
			stop = clamp(v, 0, length)
		} else {
			stop = clamp(v, -1, length-1)
		}
	}

	return start, stop, step, nil
}

// sliceIndexSeq lists the element indices a slice selects, in order.
func sliceIndexSeq(start, stop, step int64) []int64 {
	var seq []int64
	if step > 0 {
		for k := start; k < stop; k += step {
			seq = append(seq, k)
		}
	} else {
		for k := start; k > stop; k += step {
			seq = append(seq, k)
		}
	}
	return seq
}

func (i *Interpreter) evalSliceExpression(e *ast.SliceExpression) Object {
	object := i.evalExpression(e.Object)
	if isSignal(object) {
		return object
	}

	switch o := object.(type) {
	case *List:
		start, stop, step, errObj := i.sliceBounds(e, int64(len(o.Elements)))
		if errObj != nil {
			return errObj
		}
		var out []Object
		for _, k := range sliceIndexSeq(start, stop, step) {
			out = append(out, o.Elements[k])
		}
		return &List{Elements: out}
	case *String:
		runes := []rune(o.Value)
		start, stop, step, errObj := i.sliceBounds(e, int64(len(runes)))
		if errObj != nil {
			return errObj
		}
		var sb strings.Builder
		for _, k := range sliceIndexSeq(start, stop, step) {
			sb.WriteRune(runes[k])
		}
		return &String{Value: sb.String()}
	}
	return newErrorAt(e.Token, TypeError, "%s cannot be sliced",
		strings.ToLower(string(object.Type())))
}

// evalMemberAccess reads h.key on hashes and field access on instances. A
// missing hash member reads as null so presence checks stay cheap.
func (i *Interpreter) evalMemberAccess(e *ast.MemberAccess) Object {
	object := i.evalExpression(e.Object)
	if isSignal(object) {
		return object
	}

	switch o := object.(type) {
	case *Hash:
		if v, ok := o.Get(e.Member); ok {
			return v
		}
		return NULL
	case *Instance:
		if v, ok := o.Fields["@"+e.Member]; ok {
			return v
		}
		return NULL
	}
	return newErrorAt(e.Token, TypeError, "cannot access member %q on %s",
		e.Member, strings.ToLower(string(object.Type())))
}
