// Package surface implements the data-section hook: the one piece of
// the downstream code emitter's contract the core is responsible for
// feeding. It walks the parser's registered string and float literal
// collections and renders the `.data` section text, plus the
// C-string escaping utility the emitter needs for any other string it
// must quote.
package surface

import (
	"fmt"
	"math"
	"strings"

	"github.com/stackvm-lang/cc/ast"
)

// EscapeCString renders s the way the reference util_quote_cstring
// does: `\"` for `"`, `\\` for `\`, `\n` for newline, and the byte
// otherwise (no other escaping).
func EscapeCString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EmitDataSection renders the `.data` section: every registered
// string literal as `<label>: .string "<escaped>"`, followed by every
// registered float literal as its label and the two 32-bit words of
// its IEEE-754 bit pattern, matching the reference emitter's
// `.long lval[0]` / `.long lval[1]` pair.
func EmitDataSection(w *strings.Builder, strs []*ast.String, flonums []*ast.FloatLiteral) {
	w.WriteString(".data\n")
	for _, s := range strs {
		fmt.Fprintf(w, "%s: .string \"%s\"\n", s.Label, EscapeCString(s.Value))
	}
	for _, f := range flonums {
		lo, hi := floatWords(f.Fval)
		fmt.Fprintf(w, "%s: .long %d\n          .long %d\n", f.Label, lo, hi)
	}
}

// floatWords splits a double's IEEE-754 bit pattern into its low and
// high 32-bit words, the representation the reference emitter expects
// for a flonum's two `.long` directives.
func floatWords(v float64) (lo, hi uint32) {
	bits := math.Float64bits(v)
	return uint32(bits), uint32(bits >> 32)
}
