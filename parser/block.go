package parser

import (
	"lapin/ast"
	"lapin/lexer"
)

// ExtractBlock returns the body of the block opened at lines[start] and the
// index just past its closing "fin". Nested openers raise the depth, so the
// body keeps inner blocks verbatim for later re-processing.
func ExtractBlock(lines []ast.Line, start int) ([]ast.Line, int, error) {
	body, _, next, err := extract(lines, start, false)
	return body, next, err
}

// ExtractConditional is ExtractBlock for "si": a "sinon" at depth 1 ends the
// then-segment and starts the else-segment. The marker itself is dropped.
func ExtractConditional(lines []ast.Line, start int) (then, els []ast.Line, next int, err error) {
	return extract(lines, start, true)
}

func extract(lines []ast.Line, start int, splitElse bool) ([]ast.Line, []ast.Line, int, error) {
	then := []ast.Line{}
	els := []ast.Line{}
	inThen := true
	depth := 1

	for idx := start + 1; idx < len(lines); idx++ {
		kind := lexer.Classify(lines[idx].Trimmed())

		switch {
		case kind.OpensBlock():
			depth++
		case kind == ast.KindElse && splitElse && depth == 1:
			inThen = false
			continue
		case kind == ast.KindEnd:
			depth--
			if depth == 0 {
				return then, els, idx + 1, nil
			}
		}

		if inThen {
			then = append(then, lines[idx])
		} else {
			els = append(els, lines[idx])
		}
	}

	headerLine := 0
	if start >= 0 && start < len(lines) {
		headerLine = lines[start].No
	}
	return nil, nil, len(lines), &SyntaxError{
		Line: headerLine,
		Msg:  "Bloc non fermé par 'fin'",
		Err:  ErrUnterminatedBlock,
	}
}
