package interpreter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lorylang/lory/internal/ast"
)

type ObjectType string

const (
	NULL_OBJ     = "NULL"
	BOOLEAN_OBJ  = "BOOLEAN"
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	STRING_OBJ   = "STRING"
	LIST_OBJ     = "LIST"
	HASH_OBJ     = "HASH"
	INSTANCE_OBJ = "INSTANCE"
	CLASS_OBJ    = "CLASS"
	LAMBDA_OBJ   = "LAMBDA"
	ERROR_OBJ    = "ERROR"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
	BREAK_OBJ        = "BREAK"
	CONTINUE_OBJ     = "CONTINUE"
	EXIT_OBJ         = "EXIT"
)

// Object is the runtime value interface.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }

func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(inspectNested(el))
	}
	sb.WriteString("]")
	return sb.String()
}

// Hash is a string-keyed map that remembers insertion order. Re-assigning
// an existing key keeps its original position.
type Hash struct {
	Keys  []string
	Pairs map[string]Object
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[string]Object)}
}

func (h *Hash) Get(key string) (Object, bool) {
	v, ok := h.Pairs[key]
	return v, ok
}

func (h *Hash) Set(key string, value Object) {
	if _, ok := h.Pairs[key]; !ok {
		h.Keys = append(h.Keys, key)
	}
	h.Pairs[key] = value
}

func (h *Hash) Delete(key string) bool {
	if _, ok := h.Pairs[key]; !ok {
		return false
	}
	delete(h.Pairs, key)
	for i, k := range h.Keys {
		if k == key {
			h.Keys = append(h.Keys[:i], h.Keys[i+1:]...)
			break
		}
	}
	return true
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }

func (h *Hash) Inspect() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range h.Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		sb.WriteString(inspectNested(h.Pairs[k]))
	}
	sb.WriteString("}")
	return sb.String()
}

// inspectNested renders a container element; strings keep their quotes so
// [1, "a"] stays unambiguous.
func inspectNested(obj Object) string {
	if s, ok := obj.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return obj.Inspect()
}

// Method is a class method definition.
type Method struct {
	Decl  *ast.FunctionDeclaration
	Class *Class
}

// Class is a class definition value; referring to a class by name yields
// the *Class itself.
type Class struct {
	Name    string
	Base    *Class
	Methods map[string]*Method
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return fmt.Sprintf("[class %s]", c.Name) }

// FindMethod walks the inheritance chain from c to the root.
func (c *Class) FindMethod(name string) (*Method, bool) {
	for cls := c; cls != nil; cls = cls.Base {
		if m, ok := cls.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Instance is an object of a class with its own instance variables.
type Instance struct {
	Class  *Class
	Fields map[string]Object
}

func (in *Instance) Type() ObjectType { return INSTANCE_OBJ }

func (in *Instance) Inspect() string {
	names := make([]string, 0, len(in.Fields))
	for k := range in.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	var sb strings.Builder
	fmt.Fprintf(&sb, "[instance of %s", in.Class.Name)
	for _, k := range names {
		fmt.Fprintf(&sb, " %s=%s", k, inspectNested(in.Fields[k]))
	}
	sb.WriteString("]")
	return sb.String()
}

// LambdaRef is the value a lambda expression evaluates to. The definition
// itself lives in the interpreter's lambda registry under ID, so copies of
// the reference stay cheap and compare equal.
type LambdaRef struct {
	ID string
}

func (lr *LambdaRef) Type() ObjectType { return LAMBDA_OBJ }
func (lr *LambdaRef) Inspect() string  { return fmt.Sprintf("[lambda %s]", lr.ID) }

// Lambda is a registered anonymous function together with the variables it
// captured at its definition site.
type Lambda struct {
	Parameters []ast.Parameter
	Body       []ast.Statement
	Captured   map[string]Object
	Self       *Instance // non-nil when defined inside a method
}

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

type BreakSignal struct{}

func (bs *BreakSignal) Type() ObjectType { return BREAK_OBJ }
func (bs *BreakSignal) Inspect() string  { return "break" }

type ContinueSignal struct{}

func (cs *ContinueSignal) Type() ObjectType { return CONTINUE_OBJ }
func (cs *ContinueSignal) Inspect() string  { return "next" }

// ExitSignal unwinds to the host boundary carrying the process exit code.
type ExitSignal struct {
	Code int
}

func (es *ExitSignal) Type() ObjectType { return EXIT_OBJ }
func (es *ExitSignal) Inspect() string  { return fmt.Sprintf("exit(%d)", es.Code) }

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// isTruthy reports language truthiness: null, false, 0 and 0.0 are falsy,
// everything else including empty containers is truthy.
func isTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0.0
	default:
		return true
	}
}

func isSignal(obj Object) bool {
	switch obj.(type) {
	case *ReturnValue, *BreakSignal, *ContinueSignal, *ExitSignal, *Error:
		return true
	}
	return false
}

// isAbrupt reports whether evaluation of a statement list must stop; break
// and next are handled by the loop runners themselves.
func isAbrupt(obj Object) bool {
	return obj != nil && isSignal(obj)
}
