// Package cerr implements the core's fatal-on-first-error policy: a
// panic/recover bailout, in the spirit of the standard library's own
// go/parser, rather than threading an error return through every one
// of the few hundred call sites that can fail.
package cerr

import "fmt"

// Error is the diagnosable condition reported by a lex/parse/type
// failure: a source position plus a formatted reason.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Fatalf aborts the current parse with a formatted diagnostic. It never
// returns; callers use it in expression position only to satisfy
// control-flow analysis, e.g. `return nil, Fatalf(...)`.
func Fatalf(line int, format string, args ...any) error {
	panic(&Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// Recover converts a panic produced by Fatalf into a returned error. It
// must be called via `defer` at exactly one place: the public entry
// point of the parser. Any other panic value is re-panicked.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*errp = e
		return
	}
	panic(r)
}
