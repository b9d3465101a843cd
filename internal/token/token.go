package token

import (
	"math/big"
	"strings"
)

// Span is the source extent of a token: half-open rune offsets from the
// beginning of the input, plus the 1-based line and column of the first rune.
// Spans exist for diagnostics only and carry no evaluation semantics.
type Span struct {
	Start  int // rune offset of the first rune
	End    int // rune offset one past the last rune
	Line   int // 1-based line of Start
	Column int // 1-based column of Start
}

// Union returns the smallest span covering both a and b.
func Union(a, b Span) Span {
	out := a
	if b.Start < out.Start {
		out.Start = b.Start
		out.Line = b.Line
		out.Column = b.Column
	}
	if b.End > out.End {
		out.End = b.End
	}
	return out
}

// Located pairs a token with the span it was read from.
type Located struct {
	Tok  Token
	Span Span
}

// Token is one lexical unit. Tokens are immutable once produced.
type Token interface {
	String() string
	tokenNode()
}

// Integer is an exact integer literal.
type Integer struct {
	Value *big.Int
}

func (t *Integer) String() string { return t.Value.String() }
func (t *Integer) tokenNode()     {}

// Rational is an exact rational literal, produced by decimal notation.
type Rational struct {
	Value *big.Rat
}

func (t *Rational) String() string { return t.Value.RatString() }
func (t *Rational) tokenNode()     {}

// Complex is a complex literal with exact rational components.
type Complex struct {
	Re *big.Rat
	Im *big.Rat
}

func (t *Complex) String() string { return t.Re.RatString() + "i" + t.Im.RatString() }
func (t *Complex) tokenNode()     {}

// Pi is a rational multiple of π. The τ glyph also produces one, with the
// multiplier doubled.
type Pi struct {
	Mult *big.Rat
}

func (t *Pi) String() string {
	if t.Mult.Cmp(big.NewRat(1, 1)) == 0 {
		return "π"
	}
	return t.Mult.RatString() + "π"
}
func (t *Pi) tokenNode() {}

// Infinity is the ∞ literal. It is always positive at the token level.
type Infinity struct{}

func (t *Infinity) String() string { return "∞" }
func (t *Infinity) tokenNode()     {}

// Epsilon is the ε literal. It is always positive at the token level.
type Epsilon struct{}

func (t *Epsilon) String() string { return "ε" }
func (t *Epsilon) tokenNode()     {}

// Dup duplicates the top of the stack.
type Dup struct{}

func (t *Dup) String() string { return "." }
func (t *Dup) tokenNode()     {}

// Pop discards the top of the stack.
type Pop struct{}

func (t *Pop) String() string { return "," }
func (t *Pop) tokenNode()     {}

// Swap exchanges the top two stack values.
type Swap struct{}

func (t *Swap) String() string { return "↔" }
func (t *Swap) tokenNode()     {}

// Neg negates the top of the stack. A ⁻ directly before a digit run never
// produces one; it is absorbed into the literal's sign instead.
type Neg struct{}

func (t *Neg) String() string { return "⁻" }
func (t *Neg) tokenNode()     {}

// Call names a builtin by its single-character symbol. Unknown symbols are
// still valid tokens; they fail at dispatch time, not at parse time.
type Call struct {
	Symbol rune
}

func (t *Call) String() string { return string(t.Symbol) }
func (t *Call) tokenNode()     {}

// Inverse wraps the token that followed an ⁻¹ marker. The evaluator runs the
// wrapped operator's inverse instead of its forward action.
type Inverse struct {
	Inner Located
}

func (t *Inverse) String() string { return "⁻¹" + t.Inner.Tok.String() }
func (t *Inverse) tokenNode()     {}

// Scope is a bracketed sub-program, parsed recursively so its body carries
// globally correct spans.
type Scope struct {
	Body []Located
}

func (t *Scope) String() string {
	var b strings.Builder
	b.WriteString("(")
	for _, lt := range t.Body {
		b.WriteString(" ")
		b.WriteString(lt.Tok.String())
	}
	b.WriteString(" )")
	return b.String()
}
func (t *Scope) tokenNode() {}

// List is a finished literal list, folded from a ‿ chain of literals.
type List struct {
	Elems []Located
}

func (t *List) String() string {
	parts := make([]string, len(t.Elems))
	for i, lt := range t.Elems {
		parts[i] = lt.Tok.String()
	}
	return strings.Join(parts, "‿")
}
func (t *List) tokenNode() {}

// IsLiteral reports whether tok is a value literal: the only tokens that can
// join a ‿ chain or be absorbed by the i/π/τ merge rules.
func IsLiteral(tok Token) bool {
	switch tok.(type) {
	case *Integer, *Rational, *Complex, *Pi, *Infinity, *Epsilon:
		return true
	}
	return false
}

// Transient tokens. The scanner emits these and post-processing removes them
// all; none survives into a parse result.

// Spacing stands for a run of whitespace. It exists so that merge rules which
// require direct adjacency (signed literals, i/π/τ absorption, ‿ chains) fail
// across a gap, and is dropped once lists are folded.
type Spacing struct{}

func (t *Spacing) String() string { return " " }
func (t *Spacing) tokenNode()     {}

// ListBuilder accumulates the elements of an unfinished ‿ chain. Folding it
// with the literal that follows produces a List.
type ListBuilder struct {
	Elems []Located
}

func (t *ListBuilder) String() string {
	var b strings.Builder
	for _, lt := range t.Elems {
		b.WriteString(lt.Tok.String())
		b.WriteString("‿")
	}
	return b.String()
}
func (t *ListBuilder) tokenNode() {}

// InverseMarker is a bare ⁻¹ before inverse resolution wraps the following
// token.
type InverseMarker struct{}

func (t *InverseMarker) String() string { return "⁻¹" }
func (t *InverseMarker) tokenNode()     {}
