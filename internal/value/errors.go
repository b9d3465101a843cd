package value

import (
	"fmt"
	"math/big"
)

// ErrorKind identifies a runtime failure class.
type ErrorKind string

const (
	ErrFunctionNotFound     ErrorKind = "FunctionNotFound"
	ErrListTypeMismatch     ErrorKind = "ListTypeMismatch"
	ErrListSizeMismatch     ErrorKind = "ListElementSizeMismatch"
	ErrInvalidPop           ErrorKind = "InvalidPop"
	ErrInvalidFoldWith      ErrorKind = "InvalidFoldWith"
	ErrInvalidMapWith       ErrorKind = "InvalidMapWith"
	ErrInvalidFilterWith    ErrorKind = "InvalidFilterWith"
	ErrTypeMismatch         ErrorKind = "TypeMismatch"
	ErrExponentTooBig       ErrorKind = "ExponentTooBig"
	ErrZerothRoot           ErrorKind = "ZerothRoot"
	ErrDivideByZero         ErrorKind = "DivideByZero"
	ErrNoInverse            ErrorKind = "NoInverse"
	ErrInverseOfNonFunction ErrorKind = "InverseOfNonFunction"
)

// RuntimeError is terminal for the expression that produced it. Message and
// Note are prebuilt so the diagnostics layer can render them without knowing
// the individual kinds.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Note    string
}

func (e *RuntimeError) Error() string { return e.Message }

func FunctionNotFound(symbol rune) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrFunctionNotFound,
		Message: fmt.Sprintf("function `%c` not found", symbol),
		Note:    "check the docs for a list of functions",
	}
}

func ListTypeMismatch(first, second Kind) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrListTypeMismatch,
		Message: fmt.Sprintf("list has an element of type `%s` followed by one of type `%s`", first, second),
		Note:    "ensure the list has elements of the same type",
	}
}

func ListSizeMismatch(first, second int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrListSizeMismatch,
		Message: fmt.Sprintf("list has an element of size `%d` followed by one of size `%d`", first, second),
		Note:    "ensure the list has elements of the same size",
	}
}

func InvalidPop(arity, size int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrInvalidPop,
		Message: fmt.Sprintf("attempt to pop %d times from a stack of size %d", arity, size),
		Note:    "ensure you are using the correct function or add more values to the stack",
	}
}

// The aggregate errors below are reserved for fold/map/filter builtins,
// which are not in the table yet.

func InvalidFoldWith(arity int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrInvalidFoldWith,
		Message: fmt.Sprintf("attempt to fold using a function of arity %d", arity),
		Note:    "can only fold using binary operations",
	}
}

func InvalidMapWith(arity int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrInvalidMapWith,
		Message: fmt.Sprintf("attempt to map using a function of arity %d", arity),
		Note:    "can only map using unary operations",
	}
}

func InvalidFilterWith(arity int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrInvalidFilterWith,
		Message: fmt.Sprintf("attempt to filter using a function of arity %d", arity),
		Note:    "can only filter using unary operations",
	}
}

func NewTypeMismatch(expected, got string) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrTypeMismatch,
		Message: fmt.Sprintf("expected type `%s`, got `%s`", expected, got),
		Note:    "ensure the function you're using works for the type of values on the stack",
	}
}

func ExponentTooBig(n *big.Int) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrExponentTooBig,
		Message: fmt.Sprintf("exponent too big: %s", n.String()),
		Note:    "max is 4294967295 (u32::MAX)",
	}
}

func ZerothRoot() *RuntimeError {
	return &RuntimeError{
		Kind:    ErrZerothRoot,
		Message: "cannot take the 0th root",
		Note:    "try filtering the 0s on the stack",
	}
}

func DivideByZero() *RuntimeError {
	return &RuntimeError{
		Kind:    ErrDivideByZero,
		Message: "cannot divide by zero",
		Note:    "try filtering the 0s on the stack\nuse ε to produce a small number instead of 0",
	}
}

func NoInverse() *RuntimeError {
	return &RuntimeError{
		Kind:    ErrNoInverse,
		Message: "function is not inversible",
		Note:    "rethink your logic",
	}
}

func InverseOfNonFunction() *RuntimeError {
	return &RuntimeError{
		Kind:    ErrInverseOfNonFunction,
		Message: "cannot invert a non-function",
		Note:    "ensure the inverse marker comes before a function",
	}
}

// typeMismatch2 reports a binary operation that has no rule for its operand
// pair.
func typeMismatch2(x, y Value) *RuntimeError {
	return NewTypeMismatch("Number", fmt.Sprintf("%s and %s", x.Type(), y.Type()))
}
