package builtin

import (
	"math/big"

	"github.com/kuhi-lang/kuhi/internal/value"
)

// StackFn transforms the whole stack. Arity is pre-checked by the table
// dispatch, so implementations index the top freely. The first return value
// is meaningless when an error comes back.
type StackFn func(stack []value.Value) ([]value.Value, *value.RuntimeError)

// Builtin pairs a function with its inverse. A nil Inverse means the ⁻¹
// marker on this symbol is an error.
type Builtin struct {
	Forward StackFn
	Inverse StackFn
	Arity   int
}

// Table maps each symbol to its builtin. Built once, then shared read-only
// by every evaluator.
type Table map[rune]Builtin

// NewTable builds the symbol table.
func NewTable() Table {
	return Table{
		'.': {Forward: dup, Arity: 1},
		',': {Forward: drop, Arity: 1},
		'↔': {Forward: swap, Inverse: swap, Arity: 2},
		'+': {Forward: binary(value.Add), Inverse: binary(sub), Arity: 2},
		'-': {Forward: binary(sub), Inverse: binary(value.Add), Arity: 2},
		'×': {Forward: binary(value.Mul), Inverse: binary(div), Arity: 2},
		'÷': {Forward: binary(div), Inverse: binary(value.Mul), Arity: 2},
		'ⁿ': {Forward: binary(value.Pow), Inverse: binary(value.Root), Arity: 2},
		'√': {Forward: binary(value.Root), Inverse: binary(value.Pow), Arity: 2},
		'∛': {Forward: unary(value.Cbrt), Inverse: unary(value.Cube), Arity: 1},
		'α': {Forward: rotate, Inverse: rotate, Arity: 3},
		'◯': {Forward: unary(value.Sin), Inverse: unary(value.Asin), Arity: 1},
		'∿': {Forward: unary(value.Sinh), Inverse: unary(value.Asinh), Arity: 1},
		'ι': {Forward: unary(iotaList), Arity: 1},
		'!': {Forward: unary(value.Factorial), Arity: 1},
		'◿': {Forward: binary(value.Modulo), Arity: 2},
	}
}

// Call runs the forward function after the arity check.
func (t Table) Call(symbol rune, stack []value.Value) ([]value.Value, *value.RuntimeError) {
	b, ok := t[symbol]
	if !ok {
		return nil, value.FunctionNotFound(symbol)
	}
	if len(stack) < b.Arity {
		return nil, value.InvalidPop(b.Arity, len(stack))
	}
	return b.Forward(stack)
}

// CallInverse runs the ⁻¹ form. Inversibility is decided before the arity
// check, so an uninversible symbol reports NoInverse even on an empty
// stack.
func (t Table) CallInverse(symbol rune, stack []value.Value) ([]value.Value, *value.RuntimeError) {
	b, ok := t[symbol]
	if !ok {
		return nil, value.FunctionNotFound(symbol)
	}
	if b.Inverse == nil {
		return nil, value.NoInverse()
	}
	if len(stack) < b.Arity {
		return nil, value.InvalidPop(b.Arity, len(stack))
	}
	return b.Inverse(stack)
}

// binary adapts a value operation: the deeper of the two popped values is
// the left operand, so source `÷ 0 5` computes 5 ÷ 0.
func binary(op func(x, y value.Value) (value.Value, *value.RuntimeError)) StackFn {
	return func(stack []value.Value) ([]value.Value, *value.RuntimeError) {
		n := len(stack)
		r, err := op(stack[n-2], stack[n-1])
		if err != nil {
			return nil, err
		}
		return append(stack[:n-2], r), nil
	}
}

func unary(op func(v value.Value) (value.Value, *value.RuntimeError)) StackFn {
	return func(stack []value.Value) ([]value.Value, *value.RuntimeError) {
		n := len(stack)
		r, err := op(stack[n-1])
		if err != nil {
			return nil, err
		}
		return append(stack[:n-1], r), nil
	}
}

// sub and div derive from the algebra's primitives.
func sub(x, y value.Value) (value.Value, *value.RuntimeError) {
	n, err := value.Neg(y)
	if err != nil {
		return nil, err
	}
	return value.Add(x, n)
}

func div(x, y value.Value) (value.Value, *value.RuntimeError) {
	r, err := value.Reciprocal(y)
	if err != nil {
		return nil, err
	}
	return value.Mul(x, r)
}

func dup(stack []value.Value) ([]value.Value, *value.RuntimeError) {
	return append(stack, stack[len(stack)-1]), nil
}

func drop(stack []value.Value) ([]value.Value, *value.RuntimeError) {
	return stack[:len(stack)-1], nil
}

func swap(stack []value.Value) ([]value.Value, *value.RuntimeError) {
	n := len(stack)
	stack[n-1], stack[n-2] = stack[n-2], stack[n-1]
	return stack, nil
}

// rotate reverses the top three, which makes it its own inverse.
func rotate(stack []value.Value) ([]value.Value, *value.RuntimeError) {
	n := len(stack)
	stack[n-1], stack[n-3] = stack[n-3], stack[n-1]
	return stack, nil
}

// iotaList builds the List 1..n for a positive Integer n.
func iotaList(v value.Value) (value.Value, *value.RuntimeError) {
	t, ok := v.(*value.Integer)
	if !ok {
		return nil, value.NewTypeMismatch("Integer", string(v.Type()))
	}
	if t.Value.Sign() <= 0 || !t.Value.IsUint64() {
		return nil, value.NewTypeMismatch("positive Integer", "Integer")
	}
	count := t.Value.Uint64()
	elems := make([]value.Value, count)
	for i := uint64(0); i < count; i++ {
		elems[i] = &value.Integer{Value: new(big.Int).SetUint64(i + 1)}
	}
	return value.NewList(elems)
}
