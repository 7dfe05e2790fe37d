package interpreter

import (
	"sort"
	"strings"
)

// lambdaArg resolves a lambda reference argument into its registered
// definition.
func (i *Interpreter) lambdaArg(name string, args []Object, at int) (*Lambda, Object) {
	if len(args) <= at {
		return nil, newError(ParameterCountMismatchError, "%s expects a lambda argument", name)
	}
	ref, ok := args[at].(*LambdaRef)
	if !ok {
		return nil, newError(TypeError, "%s expects a lambda, got %s",
			name, strings.ToLower(string(args[at].Type())))
	}
	l, found := i.lambdas[ref.ID]
	if !found {
		return nil, newError(UndefinedNameError, "lambda is no longer registered")
	}
	return l, nil
}

// invokeIter calls a lambda with (element) or (element, index), matching
// however many parameters it declares.
func (i *Interpreter) invokeIter(l *Lambda, element, index Object) Object {
	callArgs := []Object{element, index}
	if len(l.Parameters) < len(callArgs) {
		callArgs = callArgs[:len(l.Parameters)]
	}
	return i.callLambda(l, callArgs)
}

func listReceiver(name string, recv Object) (*List, Object) {
	l, ok := recv.(*List)
	if !ok {
		return nil, newError(TypeError, "%s requires a list receiver, got %s",
			name, strings.ToLower(string(recv.Type())))
	}
	return l, nil
}

func (i *Interpreter) builtinEach(recv Object, args []Object) Object {
	list, errObj := listReceiver("each", recv)
	if errObj != nil {
		return errObj
	}
	l, errObj := i.lambdaArg("each", args, 0)
	if errObj != nil {
		return errObj
	}
	for idx, el := range list.Elements {
		result := i.invokeIter(l, el, &Integer{Value: int64(idx)})
		if isAbrupt(result) {
			return result
		}
	}
	return list
}

func (i *Interpreter) builtinMap(recv Object, args []Object) Object {
	list, errObj := listReceiver("map", recv)
	if errObj != nil {
		return errObj
	}
	l, errObj := i.lambdaArg("map", args, 0)
	if errObj != nil {
		return errObj
	}
	out := make([]Object, 0, len(list.Elements))
	for idx, el := range list.Elements {
		result := i.invokeIter(l, el, &Integer{Value: int64(idx)})
		if isAbrupt(result) {
			return result
		}
		out = append(out, result)
	}
	return &List{Elements: out}
}

func (i *Interpreter) builtinSelect(recv Object, args []Object) Object {
	list, errObj := listReceiver("select", recv)
	if errObj != nil {
		return errObj
	}
	l, errObj := i.lambdaArg("select", args, 0)
	if errObj != nil {
		return errObj
	}
	var out []Object
	for idx, el := range list.Elements {
		result := i.invokeIter(l, el, &Integer{Value: int64(idx)})
		if isAbrupt(result) {
			return result
		}
		if isTruthy(result) {
			out = append(out, el)
		}
	}
	return &List{Elements: out}
}

// builtinReduce folds the list with an explicit initial accumulator.
func (i *Interpreter) builtinReduce(recv Object, args []Object) Object {
	list, errObj := listReceiver("reduce", recv)
	if errObj != nil {
		return errObj
	}
	if err := argCount("reduce", args, 2); err != nil {
		return err
	}
	acc := args[0]
	l, errObj := i.lambdaArg("reduce", args, 1)
	if errObj != nil {
		return errObj
	}
	for _, el := range list.Elements {
		result := i.callLambda(l, []Object{acc, el})
		if isAbrupt(result) {
			return result
		}
		acc = result
	}
	return acc
}

// builtinNone reports whether no element satisfies the predicate.
func (i *Interpreter) builtinNone(recv Object, args []Object) Object {
	list, errObj := listReceiver("none", recv)
	if errObj != nil {
		return errObj
	}
	l, errObj := i.lambdaArg("none", args, 0)
	if errObj != nil {
		return errObj
	}
	for idx, el := range list.Elements {
		result := i.invokeIter(l, el, &Integer{Value: int64(idx)})
		if isAbrupt(result) {
			return result
		}
		if isTruthy(result) {
			return FALSE
		}
	}
	return TRUE
}

func numericElements(name string, list *List) ([]Object, Object) {
	for _, el := range list.Elements {
		if !isNumeric(el) {
			return nil, newError(TypeError, "%s requires numeric elements, found %s",
				name, strings.ToLower(string(el.Type())))
		}
	}
	return list.Elements, nil
}

func builtinSum(recv Object, args []Object) Object {
	list, errObj := listReceiver("sum", recv)
	if errObj != nil {
		return errObj
	}
	if err := argCount("sum", args, 0); err != nil {
		return err
	}
	elements, errObj := numericElements("sum", list)
	if errObj != nil {
		return errObj
	}
	allInt := true
	var fsum float64
	var isum int64
	for _, el := range elements {
		if iv, ok := el.(*Integer); ok {
			isum += iv.Value
			fsum += float64(iv.Value)
		} else {
			allInt = false
			fsum += el.(*Float).Value
		}
	}
	if allInt {
		return &Integer{Value: isum}
	}
	return &Float{Value: fsum}
}

func extremum(name string, recv Object, args []Object, wantMax bool) Object {
	list, errObj := listReceiver(name, recv)
	if errObj != nil {
		return errObj
	}
	if err := argCount(name, args, 0); err != nil {
		return err
	}
	if len(list.Elements) == 0 {
		return newError(EmptyContainerError, "%s on an empty list", name)
	}
	elements, errObj := numericElements(name, list)
	if errObj != nil {
		return errObj
	}
	best := elements[0]
	for _, el := range elements[1:] {
		better := toFloat(el) > toFloat(best)
		if !wantMax {
			better = toFloat(el) < toFloat(best)
		}
		if better {
			best = el
		}
	}
	return best
}

func builtinMin(recv Object, args []Object) Object { return extremum("min", recv, args, false) }
func builtinMax(recv Object, args []Object) Object { return extremum("max", recv, args, true) }

// builtinSort orders a copy of the list: numbers before strings, each group
// in ascending order.
func builtinSort(recv Object, args []Object) Object {
	list, errObj := listReceiver("sort", recv)
	if errObj != nil {
		return errObj
	}
	if err := argCount("sort", args, 0); err != nil {
		return err
	}
	for _, el := range list.Elements {
		if !isNumeric(el) && el.Type() != STRING_OBJ {
			return newError(TypeError, "sort requires numeric or string elements, found %s",
				strings.ToLower(string(el.Type())))
		}
	}
	out := make([]Object, len(list.Elements))
	copy(out, list.Elements)
	sort.SliceStable(out, func(a, b int) bool {
		av, bv := out[a], out[b]
		an, bn := isNumeric(av), isNumeric(bv)
		if an != bn {
			return an
		}
		if an {
			return toFloat(av) < toFloat(bv)
		}
		return av.(*String).Value < bv.(*String).Value
	})
	return &List{Elements: out}
}
