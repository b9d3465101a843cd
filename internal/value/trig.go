package value

import (
	"math"
	"math/cmplx"

	"github.com/ALTree/bigfloat"
)

// The trig functions bridge through float64 for the transcendental parts:
// 128 bits of significand buy nothing once sin has been approximated, and
// the bridge keeps the complex continuations (asin beyond [-1, 1]) free.
// Sinh and asinh have closed forms over exp and log, so those stay at full
// precision on real operands.

// Sin maps every numeric kind and broadcasts over lists. sin ε keeps the
// infinitesimal and sin ∞ has no limit.
func Sin(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Epsilon:
		return t, nil
	case *Infinity:
		return &Undefined{}, nil
	case *Pi, *E:
		return Sin(lowerIfSymbolic(v))
	case *List:
		return mapUnary(t, Sin)
	case *Complex:
		return valueFromComplex128(cmplx.Sin(complex(f64(t.Re), f64(t.Im)))), nil
	case *Integer, *Rational, *Float:
		return valueFromFloat64(math.Sin(f64(toFloat(v)))), nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Asin stays real inside [-1, 1] and continues into the complex plane
// outside it.
func Asin(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Epsilon:
		return t, nil
	case *Infinity:
		return &Undefined{}, nil
	case *Pi, *E:
		return Asin(lowerIfSymbolic(v))
	case *Complex:
		return valueFromComplex128(cmplx.Asin(complex(f64(t.Re), f64(t.Im)))), nil
	case *Integer, *Rational, *Float:
		f := f64(toFloat(v))
		if f >= -1 && f <= 1 {
			return valueFromFloat64(math.Asin(f)), nil
		}
		return valueFromComplex128(cmplx.Asin(complex(f, 0))), nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Sinh computes (eˣ - e⁻ˣ)/2 at the working precision for real operands.
// It is odd and unbounded, so ∞ and ε pass through with their sign.
func Sinh(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Epsilon:
		return t, nil
	case *Infinity:
		return t, nil
	case *Pi, *E:
		return Sinh(lowerIfSymbolic(v))
	case *Complex:
		return valueFromComplex128(cmplx.Sinh(complex(f64(t.Re), f64(t.Im)))), nil
	case *Integer, *Rational, *Float:
		x := toFloat(v)
		ex := bigfloat.Exp(x)
		enx := bigfloat.Exp(newBigFloat().Neg(x))
		r := newBigFloat().Sub(ex, enx)
		return floatOrInf(r.Quo(r, twoFloat())), nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}

// Asinh computes log(x + √(x²+1)), total on the reals. The log argument is
// taken on |x| to avoid cancellation, using that asinh is odd.
func Asinh(v Value) (Value, *RuntimeError) {
	switch t := v.(type) {
	case *Undefined:
		return t, nil
	case *Epsilon:
		return t, nil
	case *Infinity:
		return t, nil
	case *Pi, *E:
		return Asinh(lowerIfSymbolic(v))
	case *Complex:
		return valueFromComplex128(cmplx.Asinh(complex(f64(t.Re), f64(t.Im)))), nil
	case *Integer, *Rational, *Float:
		x := toFloat(v)
		neg := x.Sign() < 0
		abs := newBigFloat().Abs(x)
		sq := newBigFloat().Mul(abs, abs)
		sq.Add(sq, oneFloat())
		sum := newBigFloat().Add(abs, newBigFloat().Sqrt(sq))
		r := bigfloat.Log(sum)
		if neg {
			r = newBigFloat().Neg(r)
		}
		return floatOrInf(r), nil
	}
	return nil, NewTypeMismatch("Number", string(v.Type()))
}
