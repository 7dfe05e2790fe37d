package interpreter

import (
	"fmt"

	"github.com/lorylang/lory/internal/token"
)

// Error kinds. A thrown hash with an "error" key may introduce new kinds at
// runtime, so Kind is an open string rather than an enum.
const (
	UndefinedNameError          = "UndefinedNameError"
	TypeError                   = "TypeError"
	ConversionError             = "ConversionError"
	IndexError                  = "IndexError"
	KeyError                    = "KeyError"
	ParameterCountMismatchError = "ParameterCountMismatchError"
	InvalidContextError         = "InvalidContextError"
	DivideByZeroError           = "DivideByZeroError"
	EmptyContainerError         = "EmptyContainerError"
	InvalidOperationError       = "InvalidOperationError"
	SyntaxError                 = "SyntaxError"
	StackOverflowError          = "StackOverflowError"
	FileSystemError             = "FileSystemError"
	DbError                     = "DbError"
	LoryError                   = "LoryError" // default kind for bare throw payloads
)

// Error is a runtime error value. It travels through evaluation like any
// other object until a try boundary catches it or the host boundary turns
// it into a Go error.
type Error struct {
	Kind    string
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }

func (e *Error) Inspect() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Error makes *Error usable as a Go error at the host boundary.
func (e *Error) Error() string { return e.Inspect() }

func newError(kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newErrorAt(tok token.Token, kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func isError(obj Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == ERROR_OBJ
}

// withPos stamps a source position onto an error that does not carry one
// yet; nested errors keep their original position.
func withPos(obj Object, tok token.Token) Object {
	if err, ok := obj.(*Error); ok && err.Line == 0 {
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return obj
}
