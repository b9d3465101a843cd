package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kuhi-lang/kuhi/internal/token"
)

// Snippet headers.
const (
	SyntaxHeader  = "SYNTAX ERROR"
	RuntimeHeader = "RUNTIME ERROR"
)

// Render builds a plain-text caret snippet for a source span:
//
//	RUNTIME ERROR in repl at 2:1: cannot divide by zero
//
//	   1 | + 1 2
//	   2 | ÷ 0 5
//	     | ^
//	note: try filtering the 0s on the stack
//
// It shows up to one context line before and after, a caret run as wide as
// the span's text on that line, and the remediation note when there is one.
// Coordinates are 1-based and clamped to the source, so malformed spans
// never panic. Color is the caller's concern.
func Render(src, name string, span token.Span, header, msg, note string) string {
	lines := strings.Split(src, "\n")
	line, col := span.Line, span.Column
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	runes := []rune(lines[line-1])
	if col < 1 {
		col = 1
	}
	if col > len(runes)+1 {
		col = len(runes) + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, string(runes))
	pad := runewidth.StringWidth(string(runes[:col-1]))
	fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", pad), strings.Repeat("^", caretWidth(span, runes, col)))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	if note != "" {
		for _, n := range strings.Split(note, "\n") {
			fmt.Fprintf(&b, "note: %s\n", n)
		}
	}
	return b.String()
}

// caretWidth is the display width of the span's text on its line, at least
// one cell. Spans reaching past the line end are cut at it.
func caretWidth(span token.Span, runes []rune, col int) int {
	n := span.End - span.Start
	if n < 1 {
		n = 1
	}
	end := col - 1 + n
	if end > len(runes) {
		end = len(runes)
	}
	w := 0
	if end > col-1 {
		w = runewidth.StringWidth(string(runes[col-1 : end]))
	}
	if w < 1 {
		w = 1
	}
	return w
}
