package lexer

import (
	"math/big"
	"strings"

	"github.com/kuhi-lang/kuhi/internal/token"
)

// Cursor is the scanner's absolute position: rune offset from the beginning
// of the input stream plus 1-based line and column. One cursor is threaded
// through recursive bracket parses, and a session feeds successive lines
// through the same cursor, so every span stays globally correct.
type Cursor struct {
	Offset int
	Line   int
	Column int
}

func NewCursor() *Cursor {
	return &Cursor{Line: 1, Column: 1}
}

// AdvanceOver moves the cursor past src without tokenizing it. Sessions call
// it after a failed parse to resynchronize, so spans on later lines stay
// correct.
func (c *Cursor) AdvanceOver(src string) {
	for _, r := range src {
		c.step(r)
	}
}

func (c *Cursor) step(r rune) {
	if r == '\n' {
		c.Line++
		c.Column = 1
	} else {
		c.Column++
	}
	c.Offset++
}

// Parse converts src into located tokens. Scanning is character by character
// with lookahead merging for signed, complex, and π/τ literals; three post
// passes then fold ‿ chains into lists, drop spacing, and resolve ⁻¹ markers.
// On failure the tokens accumulated before the error are returned together
// with a *SyntaxError carrying the offending span.
func Parse(src string, cur *Cursor) ([]token.Located, error) {
	s := &scanner{runes: []rune(src), cur: cur}
	if err := s.scan(); err != nil {
		return s.toks, err
	}
	return postProcess(s.toks)
}

type scanner struct {
	runes []rune
	pos   int     // index of the next unread rune
	cur   *Cursor // absolute position of the next unread rune
	toks  []token.Located
}

func (s *scanner) scan() error {
	for s.pos < len(s.runes) {
		r := s.runes[s.pos]
		switch {
		case isSpacing(r):
			s.scanSpacing()
		case isDigit(r):
			s.scanNumber()
		case r == 'i':
			if err := s.scanImaginary(); err != nil {
				return err
			}
		case r == 'π':
			s.scanPi(false)
		case r == 'τ':
			s.scanPi(true)
		case r == '‿':
			if err := s.scanChain(); err != nil {
				return err
			}
		case r == '⁻':
			s.scanMinus()
		case r == '(':
			if err := s.scanScope(); err != nil {
				return err
			}
		case r == ')':
			start := s.mark()
			s.advance()
			return unmatched(false, s.span(start))
		case r == '∞':
			s.emitSingle(&token.Infinity{})
		case r == 'ε':
			s.emitSingle(&token.Epsilon{})
		case r == '.':
			s.emitSingle(&token.Dup{})
		case r == ',':
			s.emitSingle(&token.Pop{})
		case r == '↔':
			s.emitSingle(&token.Swap{})
		default:
			// Validity is deferred to dispatch time; the scanner is total
			// over the symbol alphabet.
			s.emitSingle(&token.Call{Symbol: r})
		}
	}
	return nil
}

// mark snapshots the cursor before a token's first rune is consumed.
func (s *scanner) mark() Cursor { return *s.cur }

// span covers everything consumed since start, half open.
func (s *scanner) span(start Cursor) token.Span {
	return token.Span{Start: start.Offset, End: s.cur.Offset, Line: start.Line, Column: start.Column}
}

func (s *scanner) advance() {
	s.cur.step(s.runes[s.pos])
	s.pos++
}

func (s *scanner) peek(ahead int) rune {
	if s.pos+ahead >= len(s.runes) {
		return 0
	}
	return s.runes[s.pos+ahead]
}

func (s *scanner) push(tok token.Token, sp token.Span) {
	s.toks = append(s.toks, token.Located{Tok: tok, Span: sp})
}

func (s *scanner) emitSingle(tok token.Token) {
	start := s.mark()
	s.advance()
	s.push(tok, s.span(start))
}

func (s *scanner) last() (token.Located, bool) {
	if len(s.toks) == 0 {
		return token.Located{}, false
	}
	return s.toks[len(s.toks)-1], true
}

func (s *scanner) popLast() {
	s.toks = s.toks[:len(s.toks)-1]
}

func (s *scanner) scanSpacing() {
	start := s.mark()
	for s.pos < len(s.runes) && isSpacing(s.runes[s.pos]) {
		s.advance()
	}
	s.push(&token.Spacing{}, s.span(start))
}

// scanNumber reads a digit run with an optional fractional part. A lone
// trailing '.' is not consumed; the integer stands alone. A ⁻ token directly
// before the digits is folded into the literal's sign.
func (s *scanner) scanNumber() {
	start := s.mark()
	digits := s.scanDigits()

	var tok token.Token
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		s.advance() // '.'
		frac := s.scanDigits()
		r, _ := new(big.Rat).SetString(digits + "." + frac)
		tok = &token.Rational{Value: r}
	} else {
		n, _ := new(big.Int).SetString(digits, 10)
		tok = &token.Integer{Value: n}
	}

	sp := s.span(start)
	if prev, ok := s.last(); ok {
		if _, isNeg := prev.Tok.(*token.Neg); isNeg {
			s.popLast()
			sp = token.Union(prev.Span, sp)
			switch t := tok.(type) {
			case *token.Integer:
				t.Value.Neg(t.Value)
			case *token.Rational:
				t.Value.Neg(t.Value)
			}
		}
	}
	s.push(tok, sp)
}

func (s *scanner) scanDigits() string {
	var b strings.Builder
	for s.pos < len(s.runes) && isDigit(s.runes[s.pos]) {
		b.WriteRune(s.runes[s.pos])
		s.advance()
	}
	return b.String()
}

// scanImaginary reads an i literal: an optional ⁻ sign, then a magnitude
// shaped exactly like a real literal, defaulting to 1 when absent. A directly
// preceding Integer or Rational token is absorbed as the real part, reusing
// its span start. A sign with no digits followed by a fractional point is
// ambiguous and rejected.
func (s *scanner) scanImaginary() error {
	start := s.mark()
	s.advance() // 'i'

	neg := false
	var signAt Cursor
	if s.peek(0) == '⁻' {
		signAt = s.mark()
		s.advance()
		neg = true
	}

	im := new(big.Rat)
	if isDigit(s.peek(0)) {
		digits := s.scanDigits()
		if s.peek(0) == '.' && isDigit(s.peek(1)) {
			s.advance()
			frac := s.scanDigits()
			im.SetString(digits + "." + frac)
		} else {
			im.SetString(digits)
		}
	} else {
		if neg && s.peek(0) == '.' {
			sp := token.Span{Start: signAt.Offset, End: signAt.Offset + 1, Line: signAt.Line, Column: signAt.Column}
			return invalidSymbol('⁻', sp)
		}
		im.SetInt64(1)
	}
	if neg {
		im.Neg(im)
	}

	re := new(big.Rat)
	sp := s.span(start)
	if prev, ok := s.last(); ok {
		switch t := prev.Tok.(type) {
		case *token.Integer:
			s.popLast()
			re.SetInt(t.Value)
			sp = token.Union(prev.Span, sp)
		case *token.Rational:
			s.popLast()
			re.Set(t.Value)
			sp = token.Union(prev.Span, sp)
		}
	}

	s.push(&token.Complex{Re: re, Im: im}, sp)
	return nil
}

// scanPi folds a directly preceding Integer or Rational into the multiplier,
// consuming it. τ stands for 2·mult·π.
func (s *scanner) scanPi(tau bool) {
	start := s.mark()
	s.advance()

	mult := big.NewRat(1, 1)
	sp := s.span(start)
	if prev, ok := s.last(); ok {
		switch t := prev.Tok.(type) {
		case *token.Integer:
			s.popLast()
			mult.SetInt(t.Value)
			sp = token.Union(prev.Span, sp)
		case *token.Rational:
			s.popLast()
			mult.Set(t.Value)
			sp = token.Union(prev.Span, sp)
		}
	}
	if tau {
		mult.Mul(mult, big.NewRat(2, 1))
	}
	s.push(&token.Pi{Mult: mult}, sp)
}

// scanChain starts or extends a list builder with the directly preceding
// literal. Chaining after anything else, including spacing, is an error.
func (s *scanner) scanChain() error {
	start := s.mark()
	s.advance() // '‿'
	sp := s.span(start)

	prev, ok := s.last()
	if !ok || !token.IsLiteral(prev.Tok) {
		return invalidSymbol('‿', sp)
	}
	s.popLast()

	if before, ok := s.last(); ok {
		if lb, isLB := before.Tok.(*token.ListBuilder); isLB {
			lb.Elems = append(lb.Elems, prev)
			s.toks[len(s.toks)-1].Span = token.Union(before.Span, sp)
			return nil
		}
	}
	s.push(&token.ListBuilder{Elems: []token.Located{prev}}, token.Union(prev.Span, sp))
	return nil
}

func (s *scanner) scanMinus() {
	if s.peek(1) == '¹' {
		start := s.mark()
		s.advance()
		s.advance()
		s.push(&token.InverseMarker{}, s.span(start))
		return
	}
	s.emitSingle(&token.Neg{})
}

// scanScope captures a balanced bracket group and recursively parses its
// contents with the shared cursor, so nested spans stay absolute. An
// unmatched ( is reported at the opening offset.
func (s *scanner) scanScope() error {
	start := s.mark()

	depth := 1
	end := -1 // local index of the matching ')'
	for j := s.pos + 1; j < len(s.runes); j++ {
		switch s.runes[j] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			end = j
			break
		}
	}
	if end < 0 {
		sp := token.Span{Start: start.Offset, End: start.Offset + 1, Line: start.Line, Column: start.Column}
		return unmatched(true, sp)
	}

	sub := string(s.runes[s.pos+1 : end])
	s.advance() // '('
	body, err := Parse(sub, s.cur)
	if err != nil {
		return err
	}
	s.pos = end // the cursor advanced through sub; rejoin it at the ')'
	s.advance() // ')'
	s.push(&token.Scope{Body: body}, s.span(start))
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpacing(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Post-processing, in order: fold list builders into List tokens, drop
// spacing, resolve inverse markers. Each pass is a single forward walk
// building a new slice with explicit lookback state.
func postProcess(toks []token.Located) ([]token.Located, error) {
	folded, err := foldLists(toks)
	if err != nil {
		return folded, err
	}
	kept := dropSpacing(folded)
	return resolveInverses(kept)
}

func foldLists(toks []token.Located) ([]token.Located, error) {
	out := make([]token.Located, 0, len(toks))
	var pending *token.Located // open list builder awaiting its final element
	for _, lt := range toks {
		if lb, ok := lt.Tok.(*token.ListBuilder); ok {
			if pending != nil {
				pb := pending.Tok.(*token.ListBuilder)
				pb.Elems = append(pb.Elems, lb.Elems...)
				pending.Span = token.Union(pending.Span, lt.Span)
			} else {
				cp := lt
				pending = &cp
			}
			continue
		}
		if pending != nil {
			if !token.IsLiteral(lt.Tok) {
				return out, invalidSymbol('‿', pending.Span)
			}
			pb := pending.Tok.(*token.ListBuilder)
			out = append(out, token.Located{
				Tok:  &token.List{Elems: append(pb.Elems, lt)},
				Span: token.Union(pending.Span, lt.Span),
			})
			pending = nil
			continue
		}
		out = append(out, lt)
	}
	if pending != nil {
		return out, invalidSymbol('‿', pending.Span)
	}
	return out, nil
}

func dropSpacing(toks []token.Located) []token.Located {
	out := make([]token.Located, 0, len(toks))
	for _, lt := range toks {
		if _, ok := lt.Tok.(*token.Spacing); ok {
			continue
		}
		out = append(out, lt)
	}
	return out
}

func resolveInverses(toks []token.Located) ([]token.Located, error) {
	out := make([]token.Located, 0, len(toks))
	var markers []token.Span // pending markers, outermost first
	for _, lt := range toks {
		if _, ok := lt.Tok.(*token.InverseMarker); ok {
			markers = append(markers, lt.Span)
			continue
		}
		for j := len(markers) - 1; j >= 0; j-- {
			lt = token.Located{
				Tok:  &token.Inverse{Inner: lt},
				Span: token.Union(markers[j], lt.Span),
			}
		}
		markers = markers[:0]
		out = append(out, lt)
	}
	if len(markers) > 0 {
		return out, lonelyInverse(markers[len(markers)-1])
	}
	return out, nil
}
