package interpreter

import (
	"math"
	"strings"

	"github.com/lorylang/lory/internal/token"
)

func (i *Interpreter) evalUnary(op token.Type, operand Object) Object {
	switch op {
	case token.BANG:
		return nativeBoolToBooleanObject(!isTruthy(operand))
	case token.MINUS:
		switch o := operand.(type) {
		case *Integer:
			return &Integer{Value: -o.Value}
		case *Float:
			return &Float{Value: -o.Value}
		}
		return newError(TypeError, "cannot negate %s", strings.ToLower(string(operand.Type())))
	case token.TILDE:
		if o, ok := operand.(*Integer); ok {
			return &Integer{Value: ^o.Value}
		}
		return newError(TypeError, "bitwise not requires an integer, got %s",
			strings.ToLower(string(operand.Type())))
	}
	return newError(InvalidOperationError, "unknown unary operator %s", op)
}

func (i *Interpreter) evalBinary(op token.Type, left, right Object) Object {
	switch op {
	case token.EQ:
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case token.NOT_EQ:
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	}

	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerBinary(op, left.(*Integer), right.(*Integer))
	case isNumeric(left) && isNumeric(right):
		return evalFloatBinary(op, toFloat(left), toFloat(right))
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringBinary(op, left.(*String), right.(*String))
	case left.Type() == STRING_OBJ && right.Type() == INTEGER_OBJ && op == token.ASTERISK:
		return repeatString(left.(*String).Value, right.(*Integer).Value)
	case left.Type() == INTEGER_OBJ && right.Type() == STRING_OBJ && op == token.ASTERISK:
		return repeatString(right.(*String).Value, left.(*Integer).Value)
	case left.Type() == LIST_OBJ && op == token.PLUS:
		return concatToList(left.(*List), right)
	case left.Type() == LIST_OBJ && right.Type() == INTEGER_OBJ && op == token.ASTERISK:
		return repeatList(left.(*List), right.(*Integer).Value)
	case left.Type() == STRING_OBJ && op == token.PLUS:
		return &String{Value: left.(*String).Value + i.Stringify(right)}
	}

	return newError(TypeError, "unsupported operands for %s: %s and %s",
		op, strings.ToLower(string(left.Type())), strings.ToLower(string(right.Type())))
}

func isNumeric(obj Object) bool {
	return obj.Type() == INTEGER_OBJ || obj.Type() == FLOAT_OBJ
}

func toFloat(obj Object) float64 {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value)
	case *Float:
		return o.Value
	}
	return 0
}

func evalIntegerBinary(op token.Type, left, right *Integer) Object {
	l, r := left.Value, right.Value
	switch op {
	case token.PLUS:
		return &Integer{Value: l + r}
	case token.MINUS:
		return &Integer{Value: l - r}
	case token.ASTERISK:
		return &Integer{Value: l * r}
	case token.SLASH:
		if r == 0 {
			return newError(DivideByZeroError, "division by zero")
		}
		// Integer division stays integral only when it divides evenly.
		if l%r == 0 {
			return &Integer{Value: l / r}
		}
		return &Float{Value: float64(l) / float64(r)}
	case token.PERCENT:
		if r == 0 {
			return newError(DivideByZeroError, "modulo by zero")
		}
		return &Integer{Value: l % r}
	case token.POWER:
		return intPow(l, r)
	case token.LT:
		return nativeBoolToBooleanObject(l < r)
	case token.GT:
		return nativeBoolToBooleanObject(l > r)
	case token.LT_EQ:
		return nativeBoolToBooleanObject(l <= r)
	case token.GT_EQ:
		return nativeBoolToBooleanObject(l >= r)
	case token.BIT_AND:
		return &Integer{Value: l & r}
	case token.BIT_OR:
		return &Integer{Value: l | r}
	case token.BIT_XOR:
		return &Integer{Value: l ^ r}
	case token.SHL:
		if r < 0 {
			return newError(InvalidOperationError, "negative shift count")
		}
		return &Integer{Value: l << uint64(r)}
	case token.SHR:
		if r < 0 {
			return newError(InvalidOperationError, "negative shift count")
		}
		return &Integer{Value: l >> uint64(r)}
	}
	return newError(InvalidOperationError, "unknown integer operator %s", op)
}

func intPow(base, exp int64) Object {
	if exp < 0 {
		return &Float{Value: math.Pow(float64(base), float64(exp))}
	}
	result := int64(1)
	for n := exp; n > 0; n-- {
		result *= base
	}
	return &Integer{Value: result}
}

func evalFloatBinary(op token.Type, l, r float64) Object {
	switch op {
	case token.PLUS:
		return &Float{Value: l + r}
	case token.MINUS:
		return &Float{Value: l - r}
	case token.ASTERISK:
		return &Float{Value: l * r}
	case token.SLASH:
		if r == 0 {
			return newError(DivideByZeroError, "division by zero")
		}
		return &Float{Value: l / r}
	case token.PERCENT:
		if r == 0 {
			return newError(DivideByZeroError, "modulo by zero")
		}
		return &Float{Value: math.Mod(l, r)}
	case token.POWER:
		return &Float{Value: math.Pow(l, r)}
	case token.LT:
		return nativeBoolToBooleanObject(l < r)
	case token.GT:
		return nativeBoolToBooleanObject(l > r)
	case token.LT_EQ:
		return nativeBoolToBooleanObject(l <= r)
	case token.GT_EQ:
		return nativeBoolToBooleanObject(l >= r)
	}
	return newError(TypeError, "unsupported float operator %s", op)
}

func evalStringBinary(op token.Type, left, right *String) Object {
	switch op {
	case token.PLUS:
		return &String{Value: left.Value + right.Value}
	case token.LT:
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case token.GT:
		return nativeBoolToBooleanObject(left.Value > right.Value)
	case token.LT_EQ:
		return nativeBoolToBooleanObject(left.Value <= right.Value)
	case token.GT_EQ:
		return nativeBoolToBooleanObject(left.Value >= right.Value)
	}
	return newError(TypeError, "unsupported string operator %s", op)
}

func repeatString(s string, n int64) Object {
	if n < 0 {
		return newError(InvalidOperationError, "repeat count must not be negative")
	}
	return &String{Value: strings.Repeat(s, int(n))}
}

func repeatList(l *List, n int64) Object {
	if n < 0 {
		return newError(InvalidOperationError, "repeat count must not be negative")
	}
	out := make([]Object, 0, int(n)*len(l.Elements))
	for k := int64(0); k < n; k++ {
		out = append(out, l.Elements...)
	}
	return &List{Elements: out}
}

// concatToList appends the right operand to a copy of the left list; a list
// on the right is spliced in element-wise.
func concatToList(left *List, right Object) Object {
	out := make([]Object, len(left.Elements))
	copy(out, left.Elements)
	if rl, ok := right.(*List); ok {
		out = append(out, rl.Elements...)
	} else {
		out = append(out, right)
	}
	return &List{Elements: out}
}

// objectsEqual is deep structural equality. Integers and floats compare by
// numeric value across types.
func objectsEqual(a, b Object) bool {
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) == toFloat(b)
	}
	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !objectsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Hash:
		bv, ok := b.(*Hash)
		if !ok || len(av.Keys) != len(bv.Keys) {
			return false
		}
		for _, k := range av.Keys {
			ev, ok := bv.Get(k)
			if !ok || !objectsEqual(av.Pairs[k], ev) {
				return false
			}
		}
		return true
	case *LambdaRef:
		bv, ok := b.(*LambdaRef)
		return ok && av.ID == bv.ID
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	}
	return false
}
