package value

import (
	"math/big"
	"testing"
)

func TestAddExact(t *testing.T) {
	r, err := Add(intv(2), intv(3))
	if err != nil {
		t.Fatalf("add failed: %s", err)
	}
	testInteger(t, r, 5)

	r, _ = Add(ratv(1, 2), ratv(1, 3))
	testRational(t, r, 5, 6)

	r, _ = Add(intv(1), ratv(1, 2))
	testRational(t, r, 3, 2)

	// halves collapse back to an Integer
	r, _ = Add(ratv(1, 2), ratv(1, 2))
	testInteger(t, r, 1)
}

func TestAddFloatTier(t *testing.T) {
	r, _ := Add(fltv(1.5), intv(1))
	testFloatClose(t, r, 2.5)

	r, _ = Add(ratv(1, 2), fltv(0.25))
	testFloatClose(t, r, 0.75)
}

func TestAddComplexTier(t *testing.T) {
	c := ComplexFromRats(big.NewRat(1, 1), big.NewRat(2, 1))
	r, err := Add(c, intv(1))
	if err != nil {
		t.Fatalf("add failed: %s", err)
	}
	got, ok := r.(*Complex)
	if !ok {
		t.Fatalf("value is not Complex. got=%T (%+v)", r, r)
	}
	if got.Re.Cmp(big.NewFloat(2)) != 0 || got.Im.Cmp(big.NewFloat(2)) != 0 {
		t.Errorf("wrong components. got=%s", got.Inspect())
	}
}

func TestAddEpsilonAbsorbed(t *testing.T) {
	r, _ := Add(&Epsilon{}, intv(5))
	testInteger(t, r, 5)

	r, _ = Add(intv(5), &Epsilon{Negative: true})
	testInteger(t, r, 5)

	r, _ = Add(&Epsilon{}, &Epsilon{})
	if !Equal(r, &Epsilon{}) {
		t.Errorf("expected ε, got %s", r.Inspect())
	}

	r, _ = Add(&Epsilon{}, &Epsilon{Negative: true})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("opposed infinitesimals should have no limit. got=%s", r.Inspect())
	}
}

func TestAddInfinity(t *testing.T) {
	r, _ := Add(&Infinity{}, intv(5))
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Add(&Infinity{}, &Infinity{})
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Add(&Infinity{}, &Infinity{Negative: true})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("∞ + ⁻∞ should have no limit. got=%s", r.Inspect())
	}

	r, _ = Add(&Infinity{}, &Epsilon{})
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Add(&Infinity{}, ComplexFromRats(big.NewRat(1, 1), big.NewRat(1, 1)))
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("∞ has no order against Complex. got=%s", r.Inspect())
	}
}

func TestAddUndefinedAbsorbs(t *testing.T) {
	r, _ := Add(&Undefined{}, intv(5))
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
	r, _ = Add(intv(5), &Undefined{})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
}

func TestAddListRejected(t *testing.T) {
	l := listv(t, intv(1), intv(2))
	_, err := Add(l, intv(1))
	testErrKind(t, err, ErrTypeMismatch)
	want := "expected type `Number`, got `List and Integer`"
	if err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}
}

func TestAddPiExact(t *testing.T) {
	r, _ := Add(pivc(1, 1), pivc(1, 1))
	if !Equal(r, pivc(2, 1)) {
		t.Errorf("expected 2π, got %s", r.Inspect())
	}

	// opposite coefficients cancel to the exact zero
	r, _ = Add(pivc(3, 1), pivc(-3, 1))
	testInteger(t, r, 0)
}

func TestAddPiOppositeDirectionsLower(t *testing.T) {
	r, _ := Add(pivc(1, 1), NewPi(big.NewRat(1, 1), true))
	testFloatClose(t, r, 3.4599025397735837)
}

func TestAddPiWithNumberLowers(t *testing.T) {
	r, _ := Add(pivc(1, 1), intv(1))
	testFloatClose(t, r, 4.141592653589793)
}

func TestNeg(t *testing.T) {
	r, _ := Neg(intv(5))
	testInteger(t, r, -5)

	r, _ = Neg(ratv(1, 2))
	testRational(t, r, -1, 2)

	r, _ = Neg(&Infinity{})
	if !Equal(r, &Infinity{Negative: true}) {
		t.Errorf("expected ⁻∞, got %s", r.Inspect())
	}

	r, _ = Neg(&Epsilon{Negative: true})
	if !Equal(r, &Epsilon{}) {
		t.Errorf("expected ε, got %s", r.Inspect())
	}

	r, _ = Neg(pivc(1, 1))
	if !Equal(r, pivc(-1, 1)) {
		t.Errorf("expected ⁻π, got %s", r.Inspect())
	}
}

func TestNegComplex(t *testing.T) {
	r, _ := Neg(ComplexFromRats(big.NewRat(1, 1), big.NewRat(-2, 1)))
	c := r.(*Complex)
	if c.Re.Cmp(big.NewFloat(-1)) != 0 || c.Im.Cmp(big.NewFloat(2)) != 0 {
		t.Errorf("wrong components. got=%s", c.Inspect())
	}
}

func TestNegRejectsUndefined(t *testing.T) {
	_, err := Neg(&Undefined{})
	testErrKind(t, err, ErrTypeMismatch)
}

func TestNegRejectsList(t *testing.T) {
	_, err := Neg(listv(t, intv(1), intv(2)))
	testErrKind(t, err, ErrTypeMismatch)
}

func TestMulExact(t *testing.T) {
	r, _ := Mul(intv(2), intv(3))
	testInteger(t, r, 6)

	r, _ = Mul(ratv(1, 2), ratv(2, 3))
	testRational(t, r, 1, 3)

	// denominators cancel back to an Integer
	r, _ = Mul(ratv(1, 2), intv(2))
	testInteger(t, r, 1)
}

func TestMulEpsilonScalesBySign(t *testing.T) {
	r, _ := Mul(&Epsilon{}, intv(5))
	testInteger(t, r, 5)

	r, _ = Mul(&Epsilon{Negative: true}, intv(5))
	testInteger(t, r, -5)

	// the exact symbolic survives the scaling
	r, _ = Mul(&Epsilon{Negative: true}, pivc(1, 1))
	if !Equal(r, pivc(-1, 1)) {
		t.Errorf("expected ⁻π, got %s", r.Inspect())
	}

	r, _ = Mul(&Epsilon{}, &Epsilon{Negative: true})
	if !Equal(r, &Epsilon{Negative: true}) {
		t.Errorf("expected ⁻ε, got %s", r.Inspect())
	}

	r, _ = Mul(&Epsilon{}, &Infinity{})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("ε·∞ should have no limit. got=%s", r.Inspect())
	}
}

func TestMulInfinity(t *testing.T) {
	r, _ := Mul(&Infinity{}, intv(5))
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Mul(&Infinity{}, intv(-5))
	if !Equal(r, &Infinity{Negative: true}) {
		t.Errorf("expected ⁻∞, got %s", r.Inspect())
	}

	r, _ = Mul(&Infinity{Negative: true}, intv(-5))
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Mul(&Infinity{}, intv(0))
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("∞·0 should have no limit. got=%s", r.Inspect())
	}

	r, _ = Mul(&Infinity{}, ComplexFromRats(big.NewRat(1, 1), big.NewRat(1, 1)))
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("∞ times Complex should have no limit. got=%s", r.Inspect())
	}

	r, _ = Mul(&Infinity{}, pivc(-2, 1))
	if !Equal(r, &Infinity{Negative: true}) {
		t.Errorf("expected ⁻∞, got %s", r.Inspect())
	}
}

func TestMulPiSameDirection(t *testing.T) {
	r, _ := Mul(pivc(2, 1), pivc(3, 1))
	if !Equal(r, pivc(6, 1)) {
		t.Errorf("expected 6π, got %s", r.Inspect())
	}
}

func TestMulPiOpposedDirectionsCancel(t *testing.T) {
	r, _ := Mul(pivc(2, 1), NewPi(big.NewRat(3, 1), true))
	testInteger(t, r, 6)
}

func TestMulEMirrorsPi(t *testing.T) {
	r, _ := Mul(NewE(big.NewRat(2, 1), false), NewE(big.NewRat(3, 1), false))
	if !Equal(r, NewE(big.NewRat(6, 1), false)) {
		t.Errorf("expected 6e, got %s", r.Inspect())
	}
}

func TestMulPiWithNumberLowers(t *testing.T) {
	r, _ := Mul(pivc(1, 1), intv(2))
	testFloatClose(t, r, 6.283185307179586)
}

func TestMulComplexComponents(t *testing.T) {
	a := ComplexFromRats(big.NewRat(1, 1), big.NewRat(2, 1))
	b := ComplexFromRats(big.NewRat(3, 1), big.NewRat(-1, 1))
	r, _ := Mul(a, b)
	c := r.(*Complex)
	// (1+2i)(3-i) = 5+5i
	if c.Re.Cmp(big.NewFloat(5)) != 0 || c.Im.Cmp(big.NewFloat(5)) != 0 {
		t.Errorf("wrong components. got=%s", c.Inspect())
	}
}

func TestReciprocal(t *testing.T) {
	r, _ := Reciprocal(intv(2))
	testRational(t, r, 1, 2)

	r, _ = Reciprocal(ratv(1, 2))
	testInteger(t, r, 2)

	r, _ = Reciprocal(&Infinity{Negative: true})
	if !Equal(r, &Epsilon{Negative: true}) {
		t.Errorf("expected ⁻ε, got %s", r.Inspect())
	}

	r, _ = Reciprocal(&Epsilon{})
	if !Equal(r, &Infinity{}) {
		t.Errorf("expected ∞, got %s", r.Inspect())
	}

	r, _ = Reciprocal(&Undefined{})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
}

func TestReciprocalPiFlipsDirection(t *testing.T) {
	r, _ := Reciprocal(pivc(2, 1))
	want := &Pi{Coeff: big.NewRat(1, 2), Inverse: true}
	if !Equal(r, want) {
		t.Errorf("expected 1/2π⁻¹, got %s", r.Inspect())
	}

	back, _ := Reciprocal(r)
	if !Equal(back, pivc(2, 1)) {
		t.Errorf("double reciprocal drifted. got=%s", back.Inspect())
	}
}

func TestReciprocalZero(t *testing.T) {
	_, err := Reciprocal(intv(0))
	testErrKind(t, err, ErrDivideByZero)

	_, err = Reciprocal(fltv(0))
	testErrKind(t, err, ErrDivideByZero)

	_, err = Reciprocal(ComplexFromRats(new(big.Rat), new(big.Rat)))
	testErrKind(t, err, ErrDivideByZero)

	// a Rational zero never comes out of NewRational, only out of list
	// promotion
	l := listv(t, ratv(1, 2), intv(0)).(*List)
	if l.Elements[1].Type() != RATIONAL_KIND {
		t.Fatalf("element is not Rational. got=%s", l.Elements[1].Type())
	}
	_, err = Reciprocal(l.Elements[1])
	testErrKind(t, err, ErrDivideByZero)
}

func TestReciprocalComplex(t *testing.T) {
	r, _ := Reciprocal(ComplexFromRats(big.NewRat(0, 1), big.NewRat(1, 1)))
	c := r.(*Complex)
	// 1/i = -i
	if c.Re.Sign() != 0 || c.Im.Cmp(big.NewFloat(-1)) != 0 {
		t.Errorf("wrong components. got=%s", c.Inspect())
	}
}

func TestPowExactInteger(t *testing.T) {
	r, err := Pow(intv(2), intv(10))
	if err != nil {
		t.Fatalf("pow failed: %s", err)
	}
	testInteger(t, r, 1024)

	r, _ = Pow(intv(2), intv(0))
	testInteger(t, r, 1)

	r, _ = Pow(intv(0), intv(0))
	testInteger(t, r, 1)

	r, _ = Pow(intv(-2), intv(3))
	testInteger(t, r, -8)

	r, _ = Pow(intv(2), intv(-2))
	testRational(t, r, 1, 4)
}

func TestPowExactRational(t *testing.T) {
	r, _ := Pow(ratv(2, 3), intv(2))
	testRational(t, r, 4, 9)

	r, _ = Pow(ratv(2, 3), intv(-2))
	testRational(t, r, 9, 4)

	r, _ = Pow(ratv(2, 3), intv(0))
	testInteger(t, r, 1)
}

func TestPowZeroToNegative(t *testing.T) {
	_, err := Pow(intv(0), intv(-1))
	testErrKind(t, err, ErrDivideByZero)

	_, err = Pow(fltv(0), fltv(-1))
	testErrKind(t, err, ErrDivideByZero)

	// the exact rational path hits the same wall once promotion has
	// turned the 0 into 0/1
	l := listv(t, intv(0), ratv(1, 2)).(*List)
	_, err = Pow(l.Elements[0], intv(-2))
	testErrKind(t, err, ErrDivideByZero)

	_, err = Pow(l, intv(-2))
	testErrKind(t, err, ErrDivideByZero)

	r, perr := Pow(l.Elements[0], intv(2))
	if perr != nil {
		t.Fatalf("pow failed: %s", perr)
	}
	testInteger(t, r, 0)
}

func TestPowExponentTooBig(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 33)
	_, err := Pow(intv(2), &Integer{Value: huge})
	testErrKind(t, err, ErrExponentTooBig)
	want := "exponent too big: 8589934592"
	if err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}
	if err.Note != "max is 4294967295 (u32::MAX)" {
		t.Errorf("wrong note: %q", err.Note)
	}

	_, err = Pow(intv(2), &Integer{Value: new(big.Int).Neg(huge)})
	testErrKind(t, err, ErrExponentTooBig)
}

func TestPowFloatTier(t *testing.T) {
	r, _ := Pow(fltv(2), intv(3))
	testFloatClose(t, r, 8)

	r, _ = Pow(fltv(-2), intv(3))
	testFloatClose(t, r, -8)

	r, _ = Pow(intv(9), ratv(1, 2))
	testFloatClose(t, r, 3)
}

func TestPowNegativeBaseFractionalExponent(t *testing.T) {
	r, err := Pow(intv(-8), ratv(1, 3))
	if err != nil {
		t.Fatalf("pow failed: %s", err)
	}
	c, ok := r.(*Complex)
	if !ok {
		t.Fatalf("value is not Complex. got=%T (%+v)", r, r)
	}
	re, _ := c.Re.Float64()
	im, _ := c.Im.Float64()
	if re < 0.999999999 || re > 1.000000001 {
		t.Errorf("wrong real part. got=%g", re)
	}
	if im < 1.732050807 || im > 1.732050809 {
		t.Errorf("wrong imaginary part. got=%g", im)
	}
}

func TestPowUndefinedAbsorbs(t *testing.T) {
	r, _ := Pow(&Undefined{}, intv(2))
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
	r, _ = Pow(intv(2), &Undefined{})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
}

func TestPowSymbolicLowers(t *testing.T) {
	r, _ := Pow(pivc(1, 1), intv(2))
	testFloatClose(t, r, 9.869604401089358)
}

func TestPowNonNumeric(t *testing.T) {
	_, err := Pow(&Infinity{}, intv(2))
	testErrKind(t, err, ErrTypeMismatch)

	_, err = Pow(intv(2), &Epsilon{})
	testErrKind(t, err, ErrTypeMismatch)
}

func TestPowBroadcast(t *testing.T) {
	l := listv(t, intv(1), intv(2), intv(3))

	r, err := Pow(l, intv(2))
	if err != nil {
		t.Fatalf("pow failed: %s", err)
	}
	got := r.(*List)
	for i, want := range []int64{1, 4, 9} {
		testInteger(t, got.Elements[i], want)
	}

	r, _ = Pow(intv(2), l)
	got = r.(*List)
	for i, want := range []int64{2, 4, 8} {
		testInteger(t, got.Elements[i], want)
	}
}

func TestPowZip(t *testing.T) {
	a := listv(t, intv(1), intv(2))
	b := listv(t, intv(3), intv(4))
	r, err := Pow(a, b)
	if err != nil {
		t.Fatalf("pow failed: %s", err)
	}
	got := r.(*List)
	testInteger(t, got.Elements[0], 1)
	testInteger(t, got.Elements[1], 16)
}

func TestPowZipSizeMismatch(t *testing.T) {
	a := listv(t, intv(1), intv(2))
	b := listv(t, intv(3), intv(4), intv(5))
	_, err := Pow(a, b)
	testErrKind(t, err, ErrListSizeMismatch)
}

func TestRoot(t *testing.T) {
	r, _ := Root(intv(9), intv(2))
	testFloatClose(t, r, 3)

	r, _ = Root(intv(8), intv(3))
	testFloatClose(t, r, 2)

	// a root by -1 is the plain reciprocal power
	r, _ = Root(intv(4), intv(-1))
	testRational(t, r, 1, 4)
}

func TestRootZeroth(t *testing.T) {
	_, err := Root(intv(9), intv(0))
	testErrKind(t, err, ErrZerothRoot)
	if err.Message != "cannot take the 0th root" {
		t.Errorf("wrong message: %q", err.Message)
	}
}

func TestRootBroadcast(t *testing.T) {
	l := listv(t, intv(4), intv(9))
	r, err := Root(l, intv(2))
	if err != nil {
		t.Fatalf("root failed: %s", err)
	}
	got := r.(*List)
	testFloatClose(t, got.Elements[0], 2)
	testFloatClose(t, got.Elements[1], 3)
}

func TestCbrt(t *testing.T) {
	r, _ := Cbrt(intv(27))
	testFloatClose(t, r, 3)

	// the real root keeps the sign instead of going complex
	r, _ = Cbrt(intv(-27))
	testFloatClose(t, r, -3)

	r, _ = Cbrt(intv(0))
	if f := r.(*Float); f.Value.Sign() != 0 {
		t.Errorf("expected 0, got %s", f.Inspect())
	}

	r, _ = Cbrt(&Infinity{Negative: true})
	if !Equal(r, &Infinity{Negative: true}) {
		t.Errorf("expected ⁻∞, got %s", r.Inspect())
	}

	r, _ = Cbrt(&Undefined{})
	if r.Type() != UNDEFINED_KIND {
		t.Errorf("expected ?, got %s", r.Inspect())
	}
}

func TestCbrtRejectsList(t *testing.T) {
	_, err := Cbrt(listv(t, intv(8), intv(-27)))
	testErrKind(t, err, ErrTypeMismatch)
	if want := "expected type `Number`, got `List`"; err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}
}

func TestCubeRoundTrip(t *testing.T) {
	r, _ := Cube(intv(3))
	testInteger(t, r, 27)

	c, _ := Cbrt(intv(5))
	r, _ = Cube(c)
	testFloatClose(t, r, 5)
}

func TestFactorial(t *testing.T) {
	r, _ := Factorial(intv(0))
	testInteger(t, r, 1)

	r, _ = Factorial(intv(5))
	testInteger(t, r, 120)

	r, _ = Factorial(intv(10))
	testInteger(t, r, 3628800)
}

func TestFactorialDomain(t *testing.T) {
	_, err := Factorial(intv(-1))
	testErrKind(t, err, ErrTypeMismatch)
	want := "expected type `non-negative Integer`, got `negative Integer`"
	if err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}

	_, err = Factorial(fltv(1.5))
	testErrKind(t, err, ErrTypeMismatch)

	_, err = Factorial(&Integer{Value: new(big.Int).Lsh(big.NewInt(1), 33)})
	testErrKind(t, err, ErrExponentTooBig)
}

func TestModulo(t *testing.T) {
	r, _ := Modulo(intv(10), intv(3))
	testInteger(t, r, 1)

	// truncated remainder: the sign follows the dividend
	r, _ = Modulo(intv(-10), intv(3))
	testInteger(t, r, -1)

	r, _ = Modulo(intv(10), intv(-3))
	testInteger(t, r, 1)
}

func TestModuloDomain(t *testing.T) {
	_, err := Modulo(intv(10), intv(0))
	testErrKind(t, err, ErrDivideByZero)

	_, err = Modulo(fltv(1.5), intv(3))
	testErrKind(t, err, ErrTypeMismatch)

	_, err = Modulo(intv(3), ratv(1, 2))
	testErrKind(t, err, ErrTypeMismatch)
}
