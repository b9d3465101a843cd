package lexer

import (
	"github.com/kuhi-lang/kuhi/internal/token"
)

// ErrorKind doubles as the user-visible message for the error.
type ErrorKind string

const (
	InvalidSymbol        ErrorKind = "invalid symbol"
	UnmatchedParenthesis ErrorKind = "unmatched parenthesis"
	LonelyInverse        ErrorKind = "lonely inverse"
)

// SyntaxError is terminal for the parse attempt that produced it. Parse still
// returns the tokens accumulated before the failure so callers can render
// what succeeded.
type SyntaxError struct {
	Kind   ErrorKind
	Symbol rune // offending character, set for InvalidSymbol
	Open   bool // set for UnmatchedParenthesis: true when a ( has no )
	Span   token.Span
}

func (e *SyntaxError) Error() string { return string(e.Kind) }

// Note returns the remediation hint rendered under the diagnostic.
func (e *SyntaxError) Note() string {
	switch e.Kind {
	case InvalidSymbol:
		return "check the docs for a list of valid symbols"
	case UnmatchedParenthesis:
		if e.Open {
			return "there is a missing closing parenthesis in the code"
		}
		return "there is a missing opening parenthesis in the code"
	case LonelyInverse:
		return "must have something to invert"
	}
	return ""
}

func invalidSymbol(r rune, sp token.Span) *SyntaxError {
	return &SyntaxError{Kind: InvalidSymbol, Symbol: r, Span: sp}
}

func unmatched(open bool, sp token.Span) *SyntaxError {
	return &SyntaxError{Kind: UnmatchedParenthesis, Open: open, Span: sp}
}

func lonelyInverse(sp token.Span) *SyntaxError {
	return &SyntaxError{Kind: LonelyInverse, Span: sp}
}
