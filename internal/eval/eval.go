package eval

import (
	"github.com/kuhi-lang/kuhi/internal/builtin"
	"github.com/kuhi-lang/kuhi/internal/token"
	"github.com/kuhi-lang/kuhi/internal/value"
)

// Error pairs a runtime failure with the span of the token that caused it.
type Error struct {
	Err  *value.RuntimeError
	Span token.Span
}

func (e *Error) Error() string { return e.Err.Error() }

// Evaluator walks token sequences right to left against a stack. It holds
// only the builtin table, so one evaluator serves any number of runs.
type Evaluator struct {
	table builtin.Table
}

func New(table builtin.Table) *Evaluator {
	return &Evaluator{table: table}
}

// Run evaluates toks on a fresh stack.
func (ev *Evaluator) Run(toks []token.Located) ([]value.Value, *Error) {
	return ev.eval(toks, nil)
}

// RunOn continues an existing stack, which line-oriented sessions use to
// keep values across inputs. On error the stack as it stood before the
// failing token comes back alongside, values pushed earlier in the same
// sequence included.
func (ev *Evaluator) RunOn(toks []token.Located, stack []value.Value) ([]value.Value, *Error) {
	return ev.eval(toks, stack)
}

func (ev *Evaluator) eval(toks []token.Located, stack []value.Value) ([]value.Value, *Error) {
	for i := len(toks) - 1; i >= 0; i-- {
		next, err := ev.step(toks[i], stack)
		if err != nil {
			return stack, err
		}
		stack = next
	}
	return stack, nil
}

func (ev *Evaluator) step(lt token.Located, stack []value.Value) ([]value.Value, *Error) {
	if token.IsLiteral(lt.Tok) {
		v, rerr := literalValue(lt.Tok)
		if rerr != nil {
			return stack, &Error{Err: rerr, Span: lt.Span}
		}
		return append(stack, v), nil
	}

	switch t := lt.Tok.(type) {
	case *token.Dup:
		return ev.call('.', lt.Span, stack)
	case *token.Pop:
		return ev.call(',', lt.Span, stack)
	case *token.Swap:
		return ev.call('↔', lt.Span, stack)
	case *token.Neg:
		return negTop(stack, lt.Span)
	case *token.Call:
		return ev.call(t.Symbol, lt.Span, stack)
	case *token.List:
		v, err := ev.listValue(t, lt.Span)
		if err != nil {
			return stack, err
		}
		return append(stack, v), nil
	case *token.Scope:
		return ev.scope(t, lt.Span, stack)
	case *token.Inverse:
		return ev.inverse(t.Inner, lt.Span, stack)
	}
	return stack, &Error{Err: value.NewTypeMismatch("evaluable token", lt.Tok.String()), Span: lt.Span}
}

func (ev *Evaluator) call(symbol rune, span token.Span, stack []value.Value) ([]value.Value, *Error) {
	next, rerr := ev.table.Call(symbol, stack)
	if rerr != nil {
		return stack, &Error{Err: rerr, Span: span}
	}
	return next, nil
}

// negTop is the standalone ⁻: negate the top of the stack.
func negTop(stack []value.Value, span token.Span) ([]value.Value, *Error) {
	if len(stack) < 1 {
		return stack, &Error{Err: value.InvalidPop(1, len(stack)), Span: span}
	}
	r, rerr := value.Neg(stack[len(stack)-1])
	if rerr != nil {
		return stack, &Error{Err: rerr, Span: span}
	}
	return append(stack[:len(stack)-1], r), nil
}

// literalValue converts a literal token to its runtime value.
func literalValue(tok token.Token) (value.Value, *value.RuntimeError) {
	switch t := tok.(type) {
	case *token.Integer:
		return &value.Integer{Value: t.Value}, nil
	case *token.Rational:
		return value.NewRational(t.Value), nil
	case *token.Complex:
		return value.ComplexFromRats(t.Re, t.Im), nil
	case *token.Pi:
		return value.NewPi(t.Mult, false), nil
	case *token.Infinity:
		return &value.Infinity{}, nil
	case *token.Epsilon:
		return &value.Epsilon{}, nil
	}
	return nil, value.NewTypeMismatch("literal", tok.String())
}

func (ev *Evaluator) listValue(t *token.List, span token.Span) (value.Value, *Error) {
	elems := make([]value.Value, len(t.Elems))
	for i, el := range t.Elems {
		v, rerr := literalValue(el.Tok)
		if rerr != nil {
			return nil, &Error{Err: rerr, Span: el.Span}
		}
		elems[i] = v
	}
	l, rerr := value.NewList(elems)
	if rerr != nil {
		return nil, &Error{Err: rerr, Span: span}
	}
	return l, nil
}

// scope pops a List and evaluates the body on a private stack seeded with
// its elements, last element on top. The parent stack is invisible inside.
// Zero results push nothing back, one pushes the bare value, more fold into
// a List again.
func (ev *Evaluator) scope(t *token.Scope, span token.Span, stack []value.Value) ([]value.Value, *Error) {
	if len(stack) < 1 {
		return stack, &Error{Err: value.InvalidPop(1, len(stack)), Span: span}
	}
	seed, ok := stack[len(stack)-1].(*value.List)
	if !ok {
		return stack, &Error{Err: value.NewTypeMismatch("List", string(stack[len(stack)-1].Type())), Span: span}
	}
	stack = stack[:len(stack)-1]

	inner := make([]value.Value, len(seed.Elements))
	copy(inner, seed.Elements)
	result, err := ev.eval(t.Body, inner)
	if err != nil {
		return stack, err
	}

	switch len(result) {
	case 0:
		return stack, nil
	case 1:
		return append(stack, result[0]), nil
	}
	l, rerr := value.NewList(result)
	if rerr != nil {
		return stack, &Error{Err: rerr, Span: span}
	}
	return append(stack, l), nil
}

// inverse resolves an ⁻¹ chain. Doubled markers cancel pairwise; an even
// count runs the inner token forward.
func (ev *Evaluator) inverse(inner token.Located, span token.Span, stack []value.Value) ([]value.Value, *Error) {
	inverted := true
	for {
		w, ok := inner.Tok.(*token.Inverse)
		if !ok {
			break
		}
		inverted = !inverted
		inner = w.Inner
	}
	if !inverted {
		return ev.step(inner, stack)
	}

	var symbol rune
	switch t := inner.Tok.(type) {
	case *token.Call:
		symbol = t.Symbol
	case *token.Dup:
		symbol = '.'
	case *token.Pop:
		symbol = ','
	case *token.Swap:
		symbol = '↔'
	case *token.Neg:
		// Negation is its own inverse.
		return negTop(stack, span)
	default:
		return stack, &Error{Err: value.InverseOfNonFunction(), Span: span}
	}
	next, rerr := ev.table.CallInverse(symbol, stack)
	if rerr != nil {
		return stack, &Error{Err: rerr, Span: span}
	}
	return next, nil
}
