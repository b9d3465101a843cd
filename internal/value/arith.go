package value

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/ALTree/bigfloat"
)

// The algebra's primitives are Add, Neg, Mul and Reciprocal; subtraction
// and division are derived from them by the callers. Every operation is
// total: it returns a Value or a RuntimeError, never both.

// Add sums two values. ε is additively absorbed by anything finite, equal
// infinities keep their sign and opposed ones produce Undefined, and
// same-direction Pi (or E) multiples combine exactly.
func Add(x, y Value) (Value, *RuntimeError) {
	if x.Type() == UNDEFINED_KIND || y.Type() == UNDEFINED_KIND {
		return &Undefined{}, nil
	}
	if x.Type() == LIST_KIND || y.Type() == LIST_KIND {
		return nil, typeMismatch2(x, y)
	}

	xe, xIsEps := x.(*Epsilon)
	ye, yIsEps := y.(*Epsilon)
	switch {
	case xIsEps && yIsEps:
		if xe.Negative == ye.Negative {
			return &Epsilon{Negative: xe.Negative}, nil
		}
		return &Undefined{}, nil
	case xIsEps:
		return y, nil
	case yIsEps:
		return x, nil
	}

	xi, xIsInf := x.(*Infinity)
	yi, yIsInf := y.(*Infinity)
	switch {
	case xIsInf && yIsInf:
		if xi.Negative == yi.Negative {
			return &Infinity{Negative: xi.Negative}, nil
		}
		return &Undefined{}, nil
	case xIsInf:
		if y.Type() == COMPLEX_KIND {
			return &Undefined{}, nil
		}
		return x, nil
	case yIsInf:
		if x.Type() == COMPLEX_KIND {
			return &Undefined{}, nil
		}
		return y, nil
	}

	if p, ok := x.(*Pi); ok {
		if q, ok := y.(*Pi); ok && p.Inverse == q.Inverse {
			return NewPi(new(big.Rat).Add(p.Coeff, q.Coeff), p.Inverse), nil
		}
	}
	if p, ok := x.(*E); ok {
		if q, ok := y.(*E); ok && p.Inverse == q.Inverse {
			return NewE(new(big.Rat).Add(p.Coeff, q.Coeff), p.Inverse), nil
		}
	}
	if isSymbolic(x) || isSymbolic(y) {
		return Add(lowerIfSymbolic(x), lowerIfSymbolic(y))
	}

	switch a := x.(type) {
	case *Integer:
		switch b := y.(type) {
		case *Integer:
			return &Integer{Value: new(big.Int).Add(a.Value, b.Value)}, nil
		case *Rational:
			return NewRational(new(big.Rat).Add(ratFromInt(a.Value), b.Value)), nil
		case *Float:
			return &Float{Value: newBigFloat().Add(floatFromInt(a.Value), b.Value)}, nil
		case *Complex:
			return addComplex(floatFromInt(a.Value), newBigFloat(), b.Re, b.Im), nil
		}
	case *Rational:
		switch b := y.(type) {
		case *Integer:
			return NewRational(new(big.Rat).Add(a.Value, ratFromInt(b.Value))), nil
		case *Rational:
			return NewRational(new(big.Rat).Add(a.Value, b.Value)), nil
		case *Float:
			return &Float{Value: newBigFloat().Add(floatFromRat(a.Value), b.Value)}, nil
		case *Complex:
			return addComplex(floatFromRat(a.Value), newBigFloat(), b.Re, b.Im), nil
		}
	case *Float:
		switch b := y.(type) {
		case *Integer, *Rational, *Float:
			return &Float{Value: newBigFloat().Add(a.Value, toFloat(y))}, nil
		case *Complex:
			return addComplex(a.Value, newBigFloat(), b.Re, b.Im), nil
		}
	case *Complex:
		switch b := y.(type) {
		case *Integer, *Rational, *Float:
			return addComplex(a.Re, a.Im, toFloat(y), newBigFloat()), nil
		case *Complex:
			return addComplex(a.Re, a.Im, b.Re, b.Im), nil
		}
	}
	return nil, typeMismatch2(x, y)
}

func addComplex(are, aim, bre, bim *big.Float) Value {
	return &Complex{
		Re: newBigFloat().Add(are, bre),
		Im: newBigFloat().Add(aim, bim),
	}
}

// Neg flips sign component-wise. Lists and Undefined cannot be negated;
// unlike + and ×, negation does not absorb Undefined.
func Neg(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Integer:
		return &Integer{Value: new(big.Int).Neg(t.Value)}, nil
	case *Rational:
		return &Rational{Value: new(big.Rat).Neg(t.Value)}, nil
	case *Float:
		return &Float{Value: newBigFloat().Neg(t.Value)}, nil
	case *Complex:
		return &Complex{Re: newBigFloat().Neg(t.Re), Im: newBigFloat().Neg(t.Im)}, nil
	case *Infinity:
		return &Infinity{Negative: !t.Negative}, nil
	case *Epsilon:
		return &Epsilon{Negative: !t.Negative}, nil
	case *Pi:
		return &Pi{Coeff: new(big.Rat).Neg(t.Coeff), Inverse: t.Inverse}, nil
	case *E:
		return &E{Coeff: new(big.Rat).Neg(t.Coeff), Inverse: t.Inverse}, nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Mul multiplies two values. ε scales by sign only, ∞ overwhelms any
// nonzero real, and Pi multiples combine exactly: same-direction exponents
// multiply coefficients, opposed ones cancel the base entirely.
func Mul(x, y Value) (Value, *RuntimeError) {
	if x.Type() == UNDEFINED_KIND || y.Type() == UNDEFINED_KIND {
		return &Undefined{}, nil
	}
	if x.Type() == LIST_KIND || y.Type() == LIST_KIND {
		return nil, typeMismatch2(x, y)
	}

	xe, xIsEps := x.(*Epsilon)
	ye, yIsEps := y.(*Epsilon)
	switch {
	case xIsEps && yIsEps:
		return &Epsilon{Negative: xe.Negative != ye.Negative}, nil
	case xIsEps:
		return epsScale(xe, y)
	case yIsEps:
		return epsScale(ye, x)
	}

	xi, xIsInf := x.(*Infinity)
	yi, yIsInf := y.(*Infinity)
	switch {
	case xIsInf && yIsInf:
		return &Infinity{Negative: xi.Negative != yi.Negative}, nil
	case xIsInf:
		return infScale(xi, y)
	case yIsInf:
		return infScale(yi, x)
	}

	if p, ok := x.(*Pi); ok {
		if q, ok := y.(*Pi); ok {
			coeff := new(big.Rat).Mul(p.Coeff, q.Coeff)
			if p.Inverse == q.Inverse {
				return NewPi(coeff, p.Inverse), nil
			}
			return NewRational(coeff), nil
		}
	}
	if p, ok := x.(*E); ok {
		if q, ok := y.(*E); ok {
			coeff := new(big.Rat).Mul(p.Coeff, q.Coeff)
			if p.Inverse == q.Inverse {
				return NewE(coeff, p.Inverse), nil
			}
			return NewRational(coeff), nil
		}
	}
	// Mixing a symbolic multiple with a plain number lowers it first; the
	// base is never silently dropped.
	if isSymbolic(x) || isSymbolic(y) {
		return Mul(lowerIfSymbolic(x), lowerIfSymbolic(y))
	}

	switch a := x.(type) {
	case *Integer:
		switch b := y.(type) {
		case *Integer:
			return &Integer{Value: new(big.Int).Mul(a.Value, b.Value)}, nil
		case *Rational:
			return NewRational(new(big.Rat).Mul(ratFromInt(a.Value), b.Value)), nil
		case *Float:
			return &Float{Value: newBigFloat().Mul(floatFromInt(a.Value), b.Value)}, nil
		case *Complex:
			return mulComplex(floatFromInt(a.Value), newBigFloat(), b.Re, b.Im), nil
		}
	case *Rational:
		switch b := y.(type) {
		case *Integer:
			return NewRational(new(big.Rat).Mul(a.Value, ratFromInt(b.Value))), nil
		case *Rational:
			return NewRational(new(big.Rat).Mul(a.Value, b.Value)), nil
		case *Float:
			return &Float{Value: newBigFloat().Mul(floatFromRat(a.Value), b.Value)}, nil
		case *Complex:
			return mulComplex(floatFromRat(a.Value), newBigFloat(), b.Re, b.Im), nil
		}
	case *Float:
		switch b := y.(type) {
		case *Integer, *Rational, *Float:
			return &Float{Value: newBigFloat().Mul(a.Value, toFloat(y))}, nil
		case *Complex:
			return mulComplex(a.Value, newBigFloat(), b.Re, b.Im), nil
		}
	case *Complex:
		switch b := y.(type) {
		case *Integer, *Rational, *Float:
			return mulComplex(a.Re, a.Im, toFloat(y), newBigFloat()), nil
		case *Complex:
			return mulComplex(a.Re, a.Im, b.Re, b.Im), nil
		}
	}
	return nil, typeMismatch2(x, y)
}

func mulComplex(are, aim, bre, bim *big.Float) Value {
	re := newBigFloat().Sub(newBigFloat().Mul(are, bre), newBigFloat().Mul(aim, bim))
	im := newBigFloat().Add(newBigFloat().Mul(are, bim), newBigFloat().Mul(aim, bre))
	return &Complex{Re: re, Im: im}
}

// epsScale multiplies a finite value by ±ε: the magnitude is absorbed and
// only the sign survives. ε·∞ has no consistent limit.
func epsScale(e *Epsilon, v Value) (Value, *RuntimeError) {
	if v.Type() == INFINITY_KIND {
		return &Undefined{}, nil
	}
	if !e.Negative {
		return v, nil
	}
	return Neg(v)
}

// infScale multiplies ∞ by a non-infinite value. Zero and Complex operands
// have no consistent limit; everything real keeps only its sign.
func infScale(i *Infinity, v Value) (Value, *RuntimeError) {
	if v.Type() == COMPLEX_KIND {
		return &Undefined{}, nil
	}
	if isSymbolic(v) {
		v = lowerIfSymbolic(v)
	}
	if IsZero(v) {
		return &Undefined{}, nil
	}
	neg := false
	switch t := v.(type) {
	case *Integer:
		neg = t.Value.Sign() < 0
	case *Rational:
		neg = t.Value.Sign() < 0
	case *Float:
		neg = t.Value.Sign() < 0
	}
	return &Infinity{Negative: i.Negative != neg}, nil
}

// Reciprocal inverts a value. ∞ and ε swap roles keeping their sign, Pi
// multiples flip the direction of their exponent, and a zero operand is the
// division error.
func Reciprocal(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Infinity:
		return &Epsilon{Negative: t.Negative}, nil
	case *Epsilon:
		return &Infinity{Negative: t.Negative}, nil
	case *Pi:
		return &Pi{Coeff: new(big.Rat).Inv(t.Coeff), Inverse: !t.Inverse}, nil
	case *E:
		return &E{Coeff: new(big.Rat).Inv(t.Coeff), Inverse: !t.Inverse}, nil
	case *Integer:
		if t.Value.Sign() == 0 {
			return nil, DivideByZero()
		}
		return NewRational(new(big.Rat).SetFrac(big.NewInt(1), t.Value)), nil
	case *Rational:
		// a Rational zero arrives through list promotion, never NewRational
		if t.Value.Sign() == 0 {
			return nil, DivideByZero()
		}
		return NewRational(new(big.Rat).Inv(t.Value)), nil
	case *Float:
		if t.Value.Sign() == 0 {
			return nil, DivideByZero()
		}
		return &Float{Value: newBigFloat().Quo(oneFloat(), t.Value)}, nil
	case *Complex:
		if IsZero(t) {
			return nil, DivideByZero()
		}
		// 1/z = conj(z) / |z|²
		den := newBigFloat().Add(newBigFloat().Mul(t.Re, t.Re), newBigFloat().Mul(t.Im, t.Im))
		re := newBigFloat().Quo(t.Re, den)
		im := newBigFloat().Quo(newBigFloat().Neg(t.Im), den)
		return &Complex{Re: re, Im: im}, nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Pow takes every exact path available: integer and rational bases with
// integer exponents stay exact, bounded by a 32-bit exponent magnitude.
// Everything else lowers to the floating tier, continuing into the complex
// plane for negative bases with fractional exponents. Lists broadcast
// element-wise on either side; two lists zip pairwise.
func Pow(base, exp Value) (Value, *RuntimeError) {
	if base.Type() == UNDEFINED_KIND || exp.Type() == UNDEFINED_KIND {
		return &Undefined{}, nil
	}

	bl, bIsList := base.(*List)
	el, eIsList := exp.(*List)
	switch {
	case bIsList && eIsList:
		if len(bl.Elements) != len(el.Elements) {
			return nil, ListSizeMismatch(len(bl.Elements), len(el.Elements))
		}
		out := make([]Value, len(bl.Elements))
		for i := range bl.Elements {
			r, err := Pow(bl.Elements[i], el.Elements[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	case bIsList:
		out := make([]Value, len(bl.Elements))
		for i, b := range bl.Elements {
			r, err := Pow(b, exp)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	case eIsList:
		out := make([]Value, len(el.Elements))
		for i, e := range el.Elements {
			r, err := Pow(base, e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	}

	if isSymbolic(base) || isSymbolic(exp) {
		return Pow(lowerIfSymbolic(base), lowerIfSymbolic(exp))
	}
	if !isTower(base) || !isTower(exp) {
		return nil, typeMismatch2(base, exp)
	}

	if e, ok := exp.(*Integer); ok {
		switch b := base.(type) {
		case *Integer:
			return powIntInt(b.Value, e.Value)
		case *Rational:
			return powRatInt(b.Value, e.Value)
		}
	}

	if base.Type() == COMPLEX_KIND || exp.Type() == COMPLEX_KIND {
		bre, bim := toComplexPair(base)
		ere, eim := toComplexPair(exp)
		return powComplex(bre, bim, ere, eim)
	}
	return powFloat(toFloat(base), toFloat(exp))
}

func powIntInt(b, e *big.Int) (Value, *RuntimeError) {
	abs := new(big.Int).Abs(e)
	if !abs.IsUint64() || abs.Uint64() > math.MaxUint32 {
		return nil, ExponentTooBig(e)
	}
	if e.Sign() >= 0 {
		return &Integer{Value: new(big.Int).Exp(b, e, nil)}, nil
	}
	if b.Sign() == 0 {
		return nil, DivideByZero()
	}
	p := new(big.Int).Exp(b, abs, nil)
	return NewRational(new(big.Rat).SetFrac(big.NewInt(1), p)), nil
}

func powRatInt(b *big.Rat, e *big.Int) (Value, *RuntimeError) {
	abs := new(big.Int).Abs(e)
	if !abs.IsUint64() || abs.Uint64() > math.MaxUint32 {
		return nil, ExponentTooBig(e)
	}
	if e.Sign() < 0 && b.Sign() == 0 {
		return nil, DivideByZero()
	}
	num := new(big.Int).Exp(b.Num(), abs, nil)
	den := new(big.Int).Exp(b.Denom(), abs, nil)
	if e.Sign() < 0 {
		num, den = den, num
	}
	return NewRational(new(big.Rat).SetFrac(num, den)), nil
}

func powFloat(b, e *big.Float) (Value, *RuntimeError) {
	if b.Sign() == 0 {
		switch {
		case e.Sign() > 0:
			return &Float{Value: newBigFloat()}, nil
		case e.Sign() == 0:
			return &Float{Value: oneFloat()}, nil
		}
		return nil, DivideByZero()
	}
	if b.Sign() > 0 {
		return floatOrInf(bigfloat.Pow(b, e)), nil
	}
	if e.IsInt() {
		abs := newBigFloat().Neg(b)
		p := bigfloat.Pow(abs, e)
		n, _ := e.Int(nil)
		if n.Bit(0) == 1 {
			p = newBigFloat().Neg(p)
		}
		return floatOrInf(p), nil
	}
	// Negative base, fractional exponent: the principal complex power.
	return powComplex(b, newBigFloat(), e, newBigFloat())
}

func powComplex(bre, bim, ere, eim *big.Float) (Value, *RuntimeError) {
	b := complex(f64(bre), f64(bim))
	e := complex(f64(ere), f64(eim))
	if b == 0 {
		switch {
		case e == 0:
			return &Float{Value: oneFloat()}, nil
		case real(e) > 0:
			return &Float{Value: newBigFloat()}, nil
		case real(e) < 0:
			return nil, DivideByZero()
		}
		return &Undefined{}, nil
	}
	return valueFromComplex128(cmplx.Pow(b, e)), nil
}

// Root is pow with the reciprocal exponent; a zero exponent has no defined
// root. Lists broadcast the same way Pow does.
func Root(base, exp Value) (Value, *RuntimeError) {
	bl, bIsList := base.(*List)
	el, eIsList := exp.(*List)
	switch {
	case bIsList && eIsList:
		if len(bl.Elements) != len(el.Elements) {
			return nil, ListSizeMismatch(len(bl.Elements), len(el.Elements))
		}
		out := make([]Value, len(bl.Elements))
		for i := range bl.Elements {
			r, err := Root(bl.Elements[i], el.Elements[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	case bIsList:
		out := make([]Value, len(bl.Elements))
		for i, b := range bl.Elements {
			r, err := Root(b, exp)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	case eIsList:
		out := make([]Value, len(el.Elements))
		for i, e := range el.Elements {
			r, err := Root(base, e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewList(out)
	}
	if IsZero(exp) {
		return nil, ZerothRoot()
	}
	r, err := Reciprocal(exp)
	if err != nil {
		return nil, err
	}
	return Pow(base, r)
}

// mapUnary applies f element-wise, rebuilding through NewList so the result
// stays canonical.
func mapUnary(l *List, f func(Value) (Value, *RuntimeError)) (Value, *RuntimeError) {
	out := make([]Value, len(l.Elements))
	for i, el := range l.Elements {
		r, err := f(el)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return NewList(out)
}

// Cbrt is the real cube root on real kinds, preserving sign, and the
// principal complex root on Complex. Its inverse is Cube.
func Cbrt(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Infinity:
		return t, nil
	case *Epsilon:
		return t, nil
	case *Pi, *E:
		return Cbrt(lowerIfSymbolic(v))
	case *Integer, *Rational, *Float:
		f := toFloat(v)
		if f.Sign() == 0 {
			return &Float{Value: newBigFloat()}, nil
		}
		neg := f.Sign() < 0
		abs := newBigFloat().Abs(f)
		r := bigfloat.Pow(abs, floatFromRat(big.NewRat(1, 3)))
		if neg {
			r = newBigFloat().Neg(r)
		}
		return &Float{Value: r}, nil
	case *Complex:
		return powComplex(t.Re, t.Im, floatFromRat(big.NewRat(1, 3)), newBigFloat())
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Cube is the exact inverse of Cbrt.
func Cube(v Value) (Value, *RuntimeError) {
	return Pow(v, &Integer{Value: big.NewInt(3)})
}

// Factorial accepts non-negative Integers, bounded like pow's exponent.
func Factorial(v Value) (Value, *RuntimeError) {
	t, ok := v.(*Integer)
	if !ok {
		return nil, NewTypeMismatch("Integer", string(v.Type()))
	}
	if t.Value.Sign() < 0 {
		return nil, NewTypeMismatch("non-negative Integer", "negative Integer")
	}
	if !t.Value.IsUint64() || t.Value.Uint64() > math.MaxUint32 {
		return nil, ExponentTooBig(t.Value)
	}
	return &Integer{Value: new(big.Int).MulRange(1, int64(t.Value.Uint64()))}, nil
}

// Modulo is the truncated remainder on Integers; its sign follows the
// dividend.
func Modulo(x, y Value) (Value, *RuntimeError) {
	a, ok := x.(*Integer)
	if !ok {
		return nil, NewTypeMismatch("Integer", string(x.Type()))
	}
	b, ok := y.(*Integer)
	if !ok {
		return nil, NewTypeMismatch("Integer", string(y.Type()))
	}
	if b.Value.Sign() == 0 {
		return nil, DivideByZero()
	}
	return &Integer{Value: new(big.Int).Rem(a.Value, b.Value)}, nil
}

// toComplexPair widens a tower value to floating components.
func toComplexPair(v Value) (*big.Float, *big.Float) {
	if c, ok := v.(*Complex); ok {
		return c.Re, c.Im
	}
	return toFloat(v), newBigFloat()
}

// f64 bridges to the float64 range for the transcendental fallbacks;
// overflow saturates to an IEEE infinity which the re-entry helpers turn
// back into symbolic values.
func f64(f *big.Float) float64 {
	r, _ := f.Float64()
	return r
}

func floatFromF64(f float64) *big.Float {
	return newBigFloat().SetFloat64(f)
}

// floatOrInf keeps the Float kind finite: an overflowed big.Float becomes
// symbolic ∞.
func floatOrInf(f *big.Float) Value {
	if f.IsInf() {
		return &Infinity{Negative: f.Signbit()}
	}
	return &Float{Value: f}
}

// valueFromFloat64 re-enters the big representation: NaN becomes Undefined
// and IEEE infinities become symbolic ∞.
func valueFromFloat64(f float64) Value {
	if math.IsNaN(f) {
		return &Undefined{}
	}
	if math.IsInf(f, 0) {
		return &Infinity{Negative: f < 0}
	}
	return &Float{Value: floatFromF64(f)}
}

// valueFromComplex128 re-enters the big representation. A zero imaginary
// part collapses to Float; non-finite components have no symbolic complex
// form and become Undefined, except a purely real infinity.
func valueFromComplex128(z complex128) Value {
	re, im := real(z), imag(z)
	if math.IsNaN(re) || math.IsNaN(im) || math.IsInf(im, 0) {
		return &Undefined{}
	}
	if math.IsInf(re, 0) {
		if im == 0 {
			return &Infinity{Negative: re < 0}
		}
		return &Undefined{}
	}
	if im == 0 {
		return &Float{Value: floatFromF64(re)}
	}
	return &Complex{Re: floatFromF64(re), Im: floatFromF64(im)}
}
