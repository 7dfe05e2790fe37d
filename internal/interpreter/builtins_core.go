package interpreter

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func (i *Interpreter) builtinUUID(args []Object) Object {
	if err := argCount("uuid", args, 0); err != nil {
		return err
	}
	return &String{Value: uuid.NewString()}
}

func builtinSize(recv Object, args []Object) Object {
	if err := argCount("size", args, 0); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *String:
		return &Integer{Value: int64(len([]rune(r.Value)))}
	case *List:
		return &Integer{Value: int64(len(r.Elements))}
	case *Hash:
		return &Integer{Value: int64(len(r.Keys))}
	}
	return newError(TypeError, "size is not defined for %s",
		strings.ToLower(string(recv.Type())))
}

func builtinType(recv Object, args []Object) Object {
	if err := argCount("type", args, 0); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *Null:
		return &String{Value: "null"}
	case *Boolean:
		return &String{Value: "boolean"}
	case *Integer:
		return &String{Value: "integer"}
	case *Float:
		return &String{Value: "float"}
	case *String:
		return &String{Value: "string"}
	case *List:
		return &String{Value: "list"}
	case *Hash:
		return &String{Value: "hash"}
	case *LambdaRef:
		return &String{Value: "lambda"}
	case *Class:
		return &String{Value: "class"}
	case *Instance:
		return &String{Value: r.Class.Name}
	}
	return &String{Value: strings.ToLower(string(recv.Type()))}
}

// builtinToString renders the receiver the way print would; instances with
// a to_string method have already been routed to it by method resolution.
func (i *Interpreter) builtinToString(recv Object, args []Object) Object {
	if err := argCount("to_string", args, 0); err != nil {
		return err
	}
	return &String{Value: i.Stringify(recv)}
}

func builtinToInt(recv Object, args []Object) Object {
	if err := argCount("to_int", args, 0); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *Integer:
		return r
	case *Float:
		return &Integer{Value: int64(r.Value)}
	case *Boolean:
		if r.Value {
			return &Integer{Value: 1}
		}
		return &Integer{Value: 0}
	case *String:
		v, err := strconv.ParseInt(strings.TrimSpace(r.Value), 10, 64)
		if err != nil {
			return newError(ConversionError, "cannot convert %q to an integer", r.Value)
		}
		return &Integer{Value: v}
	}
	return newError(ConversionError, "cannot convert %s to an integer",
		strings.ToLower(string(recv.Type())))
}

func builtinToFloat(recv Object, args []Object) Object {
	if err := argCount("to_float", args, 0); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *Float:
		return r
	case *Integer:
		return &Float{Value: float64(r.Value)}
	case *String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
		if err != nil {
			return newError(ConversionError, "cannot convert %q to a float", r.Value)
		}
		return &Float{Value: v}
	}
	return newError(ConversionError, "cannot convert %s to a float",
		strings.ToLower(string(recv.Type())))
}

func builtinUpcase(recv Object, args []Object) Object {
	if err := argCount("upcase", args, 0); err != nil {
		return err
	}
	s, ok := recv.(*String)
	if !ok {
		return newError(TypeError, "upcase requires a string receiver")
	}
	return &String{Value: strings.ToUpper(s.Value)}
}

func builtinDowncase(recv Object, args []Object) Object {
	if err := argCount("downcase", args, 0); err != nil {
		return err
	}
	s, ok := recv.(*String)
	if !ok {
		return newError(TypeError, "downcase requires a string receiver")
	}
	return &String{Value: strings.ToLower(s.Value)}
}

func builtinContains(recv Object, args []Object) Object {
	if err := argCount("contains", args, 1); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *String:
		needle, ok := args[0].(*String)
		if !ok {
			return newError(TypeError, "contains on a string requires a string argument")
		}
		return nativeBoolToBooleanObject(strings.Contains(r.Value, needle.Value))
	case *List:
		for _, el := range r.Elements {
			if objectsEqual(el, args[0]) {
				return TRUE
			}
		}
		return FALSE
	case *Hash:
		key, ok := args[0].(*String)
		if !ok {
			return newError(TypeError, "contains on a hash requires a string key")
		}
		_, found := r.Get(key.Value)
		return nativeBoolToBooleanObject(found)
	}
	return newError(TypeError, "contains is not defined for %s",
		strings.ToLower(string(recv.Type())))
}

func builtinSplit(recv Object, args []Object) Object {
	if err := argCount("split", args, 1); err != nil {
		return err
	}
	s, ok := recv.(*String)
	if !ok {
		return newError(TypeError, "split requires a string receiver")
	}
	sep, ok := args[0].(*String)
	if !ok {
		return newError(TypeError, "split requires a string separator")
	}
	var parts []string
	if sep.Value == "" {
		for _, r := range s.Value {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s.Value, sep.Value)
	}
	elements := make([]Object, len(parts))
	for idx, p := range parts {
		elements[idx] = &String{Value: p}
	}
	return &List{Elements: elements}
}

func (i *Interpreter) builtinJoin(recv Object, args []Object) Object {
	if len(args) > 1 {
		return newError(ParameterCountMismatchError,
			"join expects at most 1 argument, got %d", len(args))
	}
	l, ok := recv.(*List)
	if !ok {
		return newError(TypeError, "join requires a list receiver")
	}
	sep := ""
	if len(args) == 1 {
		s, ok := args[0].(*String)
		if !ok {
			return newError(TypeError, "join requires a string separator")
		}
		sep = s.Value
	}
	parts := make([]string, len(l.Elements))
	for idx, el := range l.Elements {
		parts[idx] = i.Stringify(el)
	}
	return &String{Value: strings.Join(parts, sep)}
}

func builtinKeys(recv Object, args []Object) Object {
	if err := argCount("keys", args, 0); err != nil {
		return err
	}
	h, ok := recv.(*Hash)
	if !ok {
		return newError(TypeError, "keys requires a hash receiver")
	}
	elements := make([]Object, len(h.Keys))
	for idx, k := range h.Keys {
		elements[idx] = &String{Value: k}
	}
	return &List{Elements: elements}
}

func builtinValues(recv Object, args []Object) Object {
	if err := argCount("values", args, 0); err != nil {
		return err
	}
	h, ok := recv.(*Hash)
	if !ok {
		return newError(TypeError, "values requires a hash receiver")
	}
	elements := make([]Object, len(h.Keys))
	for idx, k := range h.Keys {
		elements[idx] = h.Pairs[k]
	}
	return &List{Elements: elements}
}

func builtinHasKey(recv Object, args []Object) Object {
	if err := argCount("has_key", args, 1); err != nil {
		return err
	}
	h, ok := recv.(*Hash)
	if !ok {
		return newError(TypeError, "has_key requires a hash receiver")
	}
	key, ok := args[0].(*String)
	if !ok {
		return newError(TypeError, "has_key requires a string key")
	}
	_, found := h.Get(key.Value)
	return nativeBoolToBooleanObject(found)
}

func builtinRemove(recv Object, args []Object) Object {
	if err := argCount("remove", args, 1); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *Hash:
		key, ok := args[0].(*String)
		if !ok {
			return newError(TypeError, "remove on a hash requires a string key")
		}
		return nativeBoolToBooleanObject(r.Delete(key.Value))
	case *List:
		for idx, el := range r.Elements {
			if objectsEqual(el, args[0]) {
				r.Elements = append(r.Elements[:idx], r.Elements[idx+1:]...)
				return TRUE
			}
		}
		return FALSE
	}
	return newError(TypeError, "remove is not defined for %s",
		strings.ToLower(string(recv.Type())))
}

func builtinPush(recv Object, args []Object) Object {
	if err := argCount("push", args, 1); err != nil {
		return err
	}
	l, ok := recv.(*List)
	if !ok {
		return newError(TypeError, "push requires a list receiver")
	}
	l.Elements = append(l.Elements, args[0])
	return l
}

func builtinPop(recv Object, args []Object) Object {
	if err := argCount("pop", args, 0); err != nil {
		return err
	}
	l, ok := recv.(*List)
	if !ok {
		return newError(TypeError, "pop requires a list receiver")
	}
	if len(l.Elements) == 0 {
		return newError(EmptyContainerError, "pop on an empty list")
	}
	last := l.Elements[len(l.Elements)-1]
	l.Elements = l.Elements[:len(l.Elements)-1]
	return last
}

func builtinReverse(recv Object, args []Object) Object {
	if err := argCount("reverse", args, 0); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *String:
		runes := []rune(r.Value)
		for a, b := 0, len(runes)-1; a < b; a, b = a+1, b-1 {
			runes[a], runes[b] = runes[b], runes[a]
		}
		return &String{Value: string(runes)}
	case *List:
		out := make([]Object, len(r.Elements))
		for idx, el := range r.Elements {
			out[len(out)-1-idx] = el
		}
		return &List{Elements: out}
	}
	return newError(TypeError, "reverse is not defined for %s",
		strings.ToLower(string(recv.Type())))
}

func builtinIndexOf(recv Object, args []Object) Object {
	if err := argCount("index_of", args, 1); err != nil {
		return err
	}
	switch r := recv.(type) {
	case *String:
		needle, ok := args[0].(*String)
		if !ok {
			return newError(TypeError, "index_of on a string requires a string argument")
		}
		return &Integer{Value: int64(strings.Index(r.Value, needle.Value))}
	case *List:
		for idx, el := range r.Elements {
			if objectsEqual(el, args[0]) {
				return &Integer{Value: int64(idx)}
			}
		}
		return &Integer{Value: -1}
	}
	return newError(TypeError, "index_of is not defined for %s",
		strings.ToLower(string(recv.Type())))
}
