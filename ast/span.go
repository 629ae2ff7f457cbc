package ast

// Span locates a statement in its source. Col is the 1-based column of the
// first non-blank character.
type Span struct {
	Line int
	Col  int
}
