package parser

import (
	"errors"
	"testing"

	"lapin/ast"
)

func lines(src string) []ast.Line { return ast.SplitLines(src) }

func texts(ls []ast.Line) []string {
	out := make([]string, len(ls))
	for idx, l := range ls {
		out[idx] = l.Trimmed()
	}
	return out
}

func TestExtractBlockNested(t *testing.T) {
	src := `repeter 2 fois
    si x alors
        afficher x
    fin
    x = 1
fin
afficher "après"`
	body, next, err := ExtractBlock(lines(src), 0)
	if err != nil {
		t.Fatalf("ExtractBlock: %v", err)
	}
	want := []string{"si x alors", "afficher x", "fin", "x = 1"}
	if got := texts(body); len(got) != len(want) {
		t.Fatalf("body = %q, want %q", got, want)
	} else {
		for idx := range want {
			if got[idx] != want[idx] {
				t.Fatalf("body = %q, want %q", got, want)
			}
		}
	}
	if next != 6 {
		t.Fatalf("next = %d, want 6", next)
	}
	if body[0].No != 2 {
		t.Fatalf("body keeps source line numbers: got %d", body[0].No)
	}
}

func TestExtractConditional(t *testing.T) {
	src := `si a alors
x = 1
si b alors
y = 1
sinon
y = 2
fin
sinon
x = 2
fin`
	then, els, next, err := ExtractConditional(lines(src), 0)
	if err != nil {
		t.Fatalf("ExtractConditional: %v", err)
	}
	if got := texts(then); len(got) != 6 || got[0] != "x = 1" || got[3] != "sinon" {
		t.Fatalf("then = %q", got)
	}
	if got := texts(els); len(got) != 1 || got[0] != "x = 2" {
		t.Fatalf("else = %q", got)
	}
	if next != 10 {
		t.Fatalf("next = %d, want 10", next)
	}
}

func TestExtractUnterminated(t *testing.T) {
	src := `x = 0
tant que x < 3
x = x + 1`
	_, _, err := ExtractBlock(lines(src), 1)
	if !errors.Is(err, ErrUnterminatedBlock) {
		t.Fatalf("want ErrUnterminatedBlock, got %v", err)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("ErrUnterminatedBlock must also be ErrSyntax")
	}
	var se *SyntaxError
	if !errors.As(err, &se) || se.Line != 2 {
		t.Fatalf("want SyntaxError at header line 2, got %#v", err)
	}
}
