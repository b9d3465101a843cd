package repl

import (
	"strings"

	"github.com/kuhi-lang/kuhi/internal/builtin"
	"github.com/kuhi-lang/kuhi/internal/diag"
	"github.com/kuhi-lang/kuhi/internal/eval"
	"github.com/kuhi-lang/kuhi/internal/format"
	"github.com/kuhi-lang/kuhi/internal/lexer"
	"github.com/kuhi-lang/kuhi/internal/value"
)

// Session is one line-oriented evaluation context: a persistent stack, a
// cursor that keeps advancing across inputs, and the accumulated source
// that diagnostics render against.
type Session struct {
	ev    *eval.Evaluator
	cur   *lexer.Cursor
	stack []value.Value
	src   strings.Builder
	name  string
}

func NewSession(table builtin.Table, name string) *Session {
	return &Session{ev: eval.New(table), cur: lexer.NewCursor(), name: name}
}

// Line is the 1-based source line the next input starts on.
func (s *Session) Line() int { return s.cur.Line }

// Stack exposes the current stack, top last.
func (s *Session) Stack() []value.Value { return s.stack }

// Feed expands, parses and evaluates one input line against the session
// stack. The returned text is the stack rendering on success and a
// diagnostic snippet on failure. Either way the cursor ends past the whole
// line, so spans on later lines stay aligned, and the stack keeps whatever
// the line managed to push before failing.
func (s *Session) Feed(line string) (string, bool) {
	expanded := format.Expand(line)
	s.src.WriteString(expanded)
	s.src.WriteByte('\n')

	before := s.cur.Offset
	toks, perr := lexer.Parse(expanded, s.cur)
	runes := []rune(expanded)
	if consumed := s.cur.Offset - before; consumed < len(runes) {
		s.cur.AdvanceOver(string(runes[consumed:]))
	}
	s.cur.AdvanceOver("\n")

	// The accumulated source ends in the newline just advanced over; the
	// renderer should not see it as an extra empty line.
	rendered := strings.TrimSuffix(s.src.String(), "\n")

	if perr != nil {
		serr, ok := perr.(*lexer.SyntaxError)
		if !ok {
			return perr.Error(), false
		}
		return diag.Render(rendered, s.name, serr.Span, diag.SyntaxHeader, serr.Error(), serr.Note()), false
	}

	next, rerr := s.ev.RunOn(toks, s.stack)
	s.stack = next
	if rerr != nil {
		return diag.Render(rendered, s.name, rerr.Span, diag.RuntimeHeader, rerr.Err.Message, rerr.Err.Note), false
	}
	return RenderStack(s.stack), true
}

// RenderStack prints a stack top first, one space between values.
func RenderStack(stack []value.Value) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[len(stack)-1-i] = v.Inspect()
	}
	return strings.Join(parts, " ")
}
