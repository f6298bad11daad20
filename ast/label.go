package ast

import "fmt"

// Labeler hands out monotonically increasing `.L<n>` labels, shared by
// string literals, float literals, and any future data-section entry.
type Labeler struct {
	seq int
}

// Next returns the next label and advances the counter.
func (l *Labeler) Next() string {
	s := fmt.Sprintf(".L%d", l.seq)
	l.seq++
	return s
}
