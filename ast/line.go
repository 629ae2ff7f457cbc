package ast

import "strings"

// Line is one physical source line together with its 1-based number.
// Block bodies are kept as Lines so nested blocks can be re-read and errors
// still point at the right place.
type Line struct {
	No   int
	Text string
}

// Trimmed returns the line without surrounding blanks.
func (l Line) Trimmed() string { return strings.TrimSpace(l.Text) }

// Span returns the position of the first non-blank character.
func (l Line) Span() Span {
	col := len(l.Text) - len(strings.TrimLeft(l.Text, " \t")) + 1
	return Span{Line: l.No, Col: col}
}

// SplitLines numbers every line of src starting at 1.
func SplitLines(src string) []Line {
	if src == "" {
		return []Line{}
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	raw := strings.Split(src, "\n")
	out := make([]Line, 0, len(raw))
	for idx, text := range raw {
		out = append(out, Line{No: idx + 1, Text: text})
	}
	return out
}
