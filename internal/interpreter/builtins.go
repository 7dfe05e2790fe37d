package interpreter

import (
	"github.com/lorylang/lory/internal/token"
)

// freeBuiltins are callable as bare names without a receiver.
var freeBuiltins = map[string]bool{
	"uuid":        true,
	"serialize":   true,
	"deserialize": true,
	"db_open":     true,
	"db_exec":     true,
	"db_query":    true,
	"db_close":    true,
}

func hasBuiltin(name string) bool { return freeBuiltins[name] }

// callBuiltin dispatches a free builtin. The boolean reports whether the
// name was recognized at all.
func (i *Interpreter) callBuiltin(tok token.Token, name string, args []Object) (Object, bool) {
	switch name {
	case "uuid":
		return withPos(i.builtinUUID(args), tok), true
	case "serialize":
		return withPos(i.builtinSerialize(args), tok), true
	case "deserialize":
		return withPos(i.builtinDeserialize(args), tok), true
	case "db_open":
		return withPos(i.builtinDbOpen(args), tok), true
	case "db_exec":
		return withPos(i.builtinDbExec(args), tok), true
	case "db_query":
		return withPos(i.builtinDbQuery(args), tok), true
	case "db_close":
		return withPos(i.builtinDbClose(args), tok), true
	}
	return nil, false
}

// callBuiltinMethod dispatches receiver-style builtins. Core methods apply
// across value types; the list methods taking lambdas live with them in
// their own file.
func (i *Interpreter) callBuiltinMethod(tok token.Token, recv Object, name string, args []Object) (Object, bool) {
	switch name {
	case "size":
		return withPos(builtinSize(recv, args), tok), true
	case "type":
		return withPos(builtinType(recv, args), tok), true
	case "to_string":
		return withPos(i.builtinToString(recv, args), tok), true
	case "to_int":
		return withPos(builtinToInt(recv, args), tok), true
	case "to_float":
		return withPos(builtinToFloat(recv, args), tok), true
	case "upcase":
		return withPos(builtinUpcase(recv, args), tok), true
	case "downcase":
		return withPos(builtinDowncase(recv, args), tok), true
	case "contains":
		return withPos(builtinContains(recv, args), tok), true
	case "split":
		return withPos(builtinSplit(recv, args), tok), true
	case "join":
		return withPos(i.builtinJoin(recv, args), tok), true
	case "keys":
		return withPos(builtinKeys(recv, args), tok), true
	case "values":
		return withPos(builtinValues(recv, args), tok), true
	case "has_key":
		return withPos(builtinHasKey(recv, args), tok), true
	case "remove":
		return withPos(builtinRemove(recv, args), tok), true
	case "push":
		return withPos(builtinPush(recv, args), tok), true
	case "pop":
		return withPos(builtinPop(recv, args), tok), true
	case "reverse":
		return withPos(builtinReverse(recv, args), tok), true
	case "index_of":
		return withPos(builtinIndexOf(recv, args), tok), true
	case "each":
		return withPos(i.builtinEach(recv, args), tok), true
	case "map":
		return withPos(i.builtinMap(recv, args), tok), true
	case "select":
		return withPos(i.builtinSelect(recv, args), tok), true
	case "reduce":
		return withPos(i.builtinReduce(recv, args), tok), true
	case "none":
		return withPos(i.builtinNone(recv, args), tok), true
	case "sum":
		return withPos(builtinSum(recv, args), tok), true
	case "min":
		return withPos(builtinMin(recv, args), tok), true
	case "max":
		return withPos(builtinMax(recv, args), tok), true
	case "sort":
		return withPos(builtinSort(recv, args), tok), true
	}
	return nil, false
}

func argCount(name string, args []Object, want int) Object {
	if len(args) != want {
		return newError(ParameterCountMismatchError,
			"%s expects %d arguments, got %d", name, want, len(args))
	}
	return nil
}
