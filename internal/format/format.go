package format

import "strings"

// A substitution maps an ASCII mnemonic to its glyph.
type substitution struct {
	from string
	to   string
}

// substitutions is ordered longest mnemonic first, so a shorter mnemonic
// never clobbers part of a longer one (root inside croot, sin inside sinh).
var substitutions = []substitution{
	{"infinity", "∞"},
	{"epsilon", "ε"},
	{"inverse", "⁻¹"},
	{"croot", "∛"},
	{"alpha", "α"},
	{"cbrt", "∛"},
	{"sqrt", "√"},
	{"root", "√"},
	{"iota", "ι"},
	{"sinh", "∿"},
	{"tau", "τ"},
	{"sin", "◯"},
	{"pow", "ⁿ"},
	{"pi", "π"},
	{"_", "‿"},
	{":", "↔"},
	{"`", "⁻"},
	{"*", "×"},
	{"%", "÷"},
}

// Expand rewrites ASCII mnemonics to the glyphs the language is read in.
// Glyphs pass through untouched, so expanding already-expanded source is
// harmless.
func Expand(src string) string {
	for _, s := range substitutions {
		src = strings.ReplaceAll(src, s.from, s.to)
	}
	return src
}
