package value

import (
	"math/big"
	"strings"

	"github.com/kuhi-lang/kuhi/internal/config"
)

// Kind tags a runtime value. The tag strings appear verbatim in type
// mismatch messages.
type Kind string

const (
	INTEGER_KIND   Kind = "Integer"
	RATIONAL_KIND  Kind = "Rational"
	FLOAT_KIND     Kind = "Float"
	COMPLEX_KIND   Kind = "Complex"
	LIST_KIND      Kind = "List"
	INFINITY_KIND  Kind = "Infinity"
	EPSILON_KIND   Kind = "Epsilon"
	UNDEFINED_KIND Kind = "Undefined"
	PI_KIND        Kind = "Pi"
	E_KIND         Kind = "E"
)

// Value is a member of the runtime algebra. Values are immutable once
// constructed; every operator builds new ones, so values may be shared
// freely between stacks.
type Value interface {
	Type() Kind
	Inspect() string
}

// Integer
type Integer struct {
	Value *big.Int
}

func (v *Integer) Type() Kind      { return INTEGER_KIND }
func (v *Integer) Inspect() string { return glyph(v.Value.String()) }

// Rational. Always in lowest terms with a positive denominator; a
// denominator of 1 is collapsed to Integer by NewRational.
type Rational struct {
	Value *big.Rat
}

func (v *Rational) Type() Kind      { return RATIONAL_KIND }
func (v *Rational) Inspect() string { return glyph(v.Value.RatString()) }

// Float is the floating approximation tier, at a fixed 128-bit precision.
// Floats are always finite: operations that would produce NaN or an IEEE
// infinity yield Undefined or symbolic ∞ instead.
type Float struct {
	Value *big.Float
}

func (v *Float) Type() Kind      { return FLOAT_KIND }
func (v *Float) Inspect() string { return glyph(v.Value.Text('g', config.FloatDigits)) }

// Complex has floating components at the working precision.
type Complex struct {
	Re *big.Float
	Im *big.Float
}

func (v *Complex) Type() Kind { return COMPLEX_KIND }
func (v *Complex) Inspect() string {
	return glyph(v.Re.Text('g', config.FloatDigits)) + "i" + glyph(v.Im.Text('g', config.FloatDigits))
}

// List elements are type-consistent; NewList enforces that.
type List struct {
	Elements []Value
}

func (v *List) Type() Kind { return LIST_KIND }
func (v *List) Inspect() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.Inspect()
	}
	return strings.Join(parts, "‿")
}

// Infinity is symbolic and signed. Its reciprocal is Epsilon of the same
// sign.
type Infinity struct {
	Negative bool
}

func (v *Infinity) Type() Kind { return INFINITY_KIND }
func (v *Infinity) Inspect() string {
	if v.Negative {
		return "⁻∞"
	}
	return "∞"
}

// Epsilon is the signed infinitesimal, 1/∞.
type Epsilon struct {
	Negative bool
}

func (v *Epsilon) Type() Kind { return EPSILON_KIND }
func (v *Epsilon) Inspect() string {
	if v.Negative {
		return "⁻ε"
	}
	return "ε"
}

// Undefined absorbs every operation it meets; it records an inconsistent
// limit such as ∞ + ⁻∞.
type Undefined struct{}

func (v *Undefined) Type() Kind      { return UNDEFINED_KIND }
func (v *Undefined) Inspect() string { return "?" }

// Pi is a rational coefficient times π (Inverse false) or π⁻¹ (Inverse
// true), kept exact until it must combine with a non-symbolic number.
type Pi struct {
	Coeff   *big.Rat
	Inverse bool
}

func (v *Pi) Type() Kind      { return PI_KIND }
func (v *Pi) Inspect() string { return inspectMultiple(v.Coeff, v.Inverse, "π") }

// E mirrors Pi with Euler's number as the base. No literal produces one;
// it exists so the algebra is closed under the same symbolic rules.
type E struct {
	Coeff   *big.Rat
	Inverse bool
}

func (v *E) Type() Kind      { return E_KIND }
func (v *E) Inspect() string { return inspectMultiple(v.Coeff, v.Inverse, "e") }

func inspectMultiple(coeff *big.Rat, inverse bool, base string) string {
	suffix := base
	if inverse {
		suffix += "⁻¹"
	}
	switch {
	case coeff.Cmp(ratOne) == 0:
		return suffix
	case coeff.Cmp(ratMinusOne) == 0:
		return "⁻" + suffix
	}
	return glyph(coeff.RatString()) + suffix
}

// glyph swaps the ASCII minus for the language's ⁻.
func glyph(s string) string {
	return strings.ReplaceAll(s, "-", "⁻")
}

var (
	ratOne      = big.NewRat(1, 1)
	ratMinusOne = big.NewRat(-1, 1)
)

// Digits of the transcendental bases, enough for 128-bit significands.
const (
	piDigits = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899"
	eDigits  = "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759"
)

var (
	piFloat = mustFloat(piDigits)
	eFloat  = mustFloat(eDigits)
)

func mustFloat(s string) *big.Float {
	f, _, err := big.ParseFloat(s, 10, config.FloatPrecision, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return f
}

// NewRational collapses a denominator of 1 to Integer, keeping the algebra's
// canonical forms unique.
func NewRational(r *big.Rat) Value {
	if r.IsInt() {
		return &Integer{Value: new(big.Int).Set(r.Num())}
	}
	return &Rational{Value: r}
}

// NewPi normalizes a zero coefficient to the exact Integer 0.
func NewPi(coeff *big.Rat, inverse bool) Value {
	if coeff.Sign() == 0 {
		return &Integer{Value: big.NewInt(0)}
	}
	return &Pi{Coeff: coeff, Inverse: inverse}
}

// NewE normalizes like NewPi.
func NewE(coeff *big.Rat, inverse bool) Value {
	if coeff.Sign() == 0 {
		return &Integer{Value: big.NewInt(0)}
	}
	return &E{Coeff: coeff, Inverse: inverse}
}

// ComplexFromRats builds a Complex from exact rational components at the
// working precision.
func ComplexFromRats(re, im *big.Rat) *Complex {
	return &Complex{Re: floatFromRat(re), Im: floatFromRat(im)}
}

// NewList validates type consistency between neighbors and promotes tower
// elements (Complex > Float > Rational > Integer) to the strongest kind
// present. Elements outside the tower must all share one kind, and nested
// lists must agree in length.
func NewList(elems []Value) (Value, *RuntimeError) {
	strongest := Kind("")
	inTower := true
	for i, el := range elems {
		if i > 0 {
			prev := elems[i-1]
			if !compatibleNeighbors(prev, el) {
				return nil, ListTypeMismatch(prev.Type(), el.Type())
			}
			if prev.Type() == LIST_KIND {
				a := prev.(*List)
				b := el.(*List)
				if len(a.Elements) != len(b.Elements) {
					return nil, ListSizeMismatch(len(a.Elements), len(b.Elements))
				}
			}
		}
		if !isTower(el) {
			inTower = false
			continue
		}
		if towerRank(el.Type()) > towerRank(strongest) {
			strongest = el.Type()
		}
	}
	if !inTower || strongest == "" {
		return &List{Elements: elems}, nil
	}
	promoted := make([]Value, len(elems))
	for i, el := range elems {
		promoted[i] = promoteTo(strongest, el)
	}
	return &List{Elements: promoted}, nil
}

func compatibleNeighbors(a, b Value) bool {
	if isTower(a) && isTower(b) {
		return true
	}
	return a.Type() == b.Type()
}

func isTower(v Value) bool {
	switch v.Type() {
	case INTEGER_KIND, RATIONAL_KIND, FLOAT_KIND, COMPLEX_KIND:
		return true
	}
	return false
}

func towerRank(k Kind) int {
	switch k {
	case INTEGER_KIND:
		return 1
	case RATIONAL_KIND:
		return 2
	case FLOAT_KIND:
		return 3
	case COMPLEX_KIND:
		return 4
	}
	return 0
}

// promoteTo lifts a tower value to the target kind. Promotion never
// mutates its argument: a new value is built at each step.
func promoteTo(target Kind, v Value) Value {
	if v.Type() == target {
		return v
	}
	switch target {
	case RATIONAL_KIND:
		return &Rational{Value: ratFromInt(v.(*Integer).Value)}
	case FLOAT_KIND:
		return &Float{Value: toFloat(v)}
	case COMPLEX_KIND:
		if c, ok := v.(*Complex); ok {
			return c
		}
		return &Complex{Re: toFloat(v), Im: newBigFloat()}
	}
	return v
}

// IsZero reports an exact or floating zero; symbolic kinds are never zero.
func IsZero(v Value) bool {
	switch t := v.(type) {
	case *Integer:
		return t.Value.Sign() == 0
	case *Rational:
		return t.Value.Sign() == 0
	case *Float:
		return t.Value.Sign() == 0
	case *Complex:
		return t.Re.Sign() == 0 && t.Im.Sign() == 0
	}
	return false
}

// Equal is structural equality over the algebra, used by the inverse
// round-trip laws.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case *Integer:
		return x.Value.Cmp(b.(*Integer).Value) == 0
	case *Rational:
		return x.Value.Cmp(b.(*Rational).Value) == 0
	case *Float:
		return x.Value.Cmp(b.(*Float).Value) == 0
	case *Complex:
		y := b.(*Complex)
		return x.Re.Cmp(y.Re) == 0 && x.Im.Cmp(y.Im) == 0
	case *List:
		y := b.(*List)
		if len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Infinity:
		return x.Negative == b.(*Infinity).Negative
	case *Epsilon:
		return x.Negative == b.(*Epsilon).Negative
	case *Undefined:
		return true
	case *Pi:
		y := b.(*Pi)
		return x.Inverse == y.Inverse && x.Coeff.Cmp(y.Coeff) == 0
	case *E:
		y := b.(*E)
		return x.Inverse == y.Inverse && x.Coeff.Cmp(y.Coeff) == 0
	}
	return false
}

// Numeric conversion helpers. Receivers are always fresh: package-level
// floats like piFloat are read-only.

func newBigFloat() *big.Float {
	return new(big.Float).SetPrec(config.FloatPrecision)
}

func oneFloat() *big.Float {
	return newBigFloat().SetInt64(1)
}

func twoFloat() *big.Float {
	return newBigFloat().SetInt64(2)
}

func ratFromInt(n *big.Int) *big.Rat {
	return new(big.Rat).SetInt(n)
}

func floatFromInt(n *big.Int) *big.Float {
	return newBigFloat().SetInt(n)
}

func floatFromRat(r *big.Rat) *big.Float {
	return newBigFloat().SetRat(r)
}

// toFloat lowers a real tower value to its floating form.
func toFloat(v Value) *big.Float {
	switch t := v.(type) {
	case *Integer:
		return floatFromInt(t.Value)
	case *Rational:
		return floatFromRat(t.Value)
	case *Float:
		return t.Value
	}
	return newBigFloat()
}

func isSymbolic(v Value) bool {
	k := v.Type()
	return k == PI_KIND || k == E_KIND
}

// lowerSymbolic is the floating approximation of a Pi or E multiple:
// coeff·base or coeff/base depending on the exponent direction.
func lowerSymbolic(v Value) *big.Float {
	var coeff *big.Rat
	var base *big.Float
	var inverse bool
	switch t := v.(type) {
	case *Pi:
		coeff, base, inverse = t.Coeff, piFloat, t.Inverse
	case *E:
		coeff, base, inverse = t.Coeff, eFloat, t.Inverse
	default:
		return newBigFloat()
	}
	f := floatFromRat(coeff)
	if inverse {
		return newBigFloat().Quo(f, base)
	}
	return newBigFloat().Mul(f, base)
}

// lowerIfSymbolic swaps Pi/E for their Float form and leaves everything else
// alone.
func lowerIfSymbolic(v Value) Value {
	if isSymbolic(v) {
		return &Float{Value: lowerSymbolic(v)}
	}
	return v
}
