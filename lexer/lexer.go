package lexer

import (
	"strings"

	"lapin/ast"
)

// Classify inspects a trimmed line once and returns its shape. The order of
// the tests is part of the language: block openers first, then the markers,
// then afficher, ecrire, lire, lire_nombre, assignment, call and inclure.
func Classify(line string) ast.Kind {
	if line == "" {
		return ast.KindBlank
	}
	if strings.HasPrefix(line, "#") {
		return ast.KindComment
	}

	for _, o := range blockOpeners {
		if strings.HasPrefix(line, o.prefix) {
			return o.kind
		}
	}

	switch line {
	case KwElse:
		return ast.KindElse
	case KwEnd:
		return ast.KindEnd
	}

	switch {
	case strings.HasPrefix(line, KwPrint):
		return ast.KindPrint
	case strings.HasPrefix(line, KwWrite):
		return ast.KindWrite
	case strings.HasPrefix(line, KwRead):
		return ast.KindRead
	case strings.HasPrefix(line, KwReadNumber):
		return ast.KindReadNumber
	case strings.Contains(line, AssignSep):
		return ast.KindAssign
	case IsCallShape(line):
		return ast.KindCall
	case strings.HasPrefix(line, KwInclude):
		return ast.KindInclude
	}
	return ast.KindNone
}

// IsBlockOpener reports whether a trimmed line raises the nesting depth.
func IsBlockOpener(line string) bool {
	return Classify(line).OpensBlock()
}

// IsCallShape is the loose statement-level call test: an opening
// parenthesis somewhere and a closing one at the very end.
func IsCallShape(line string) bool {
	return strings.Contains(line, "(") && strings.HasSuffix(line, ")")
}

// IsIdent reports whether s is a plain identifier ([A-Za-z_]\w*), accented
// letters included.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for idx, r := range s {
		if r == '_' || isLetter(r) {
			continue
		}
		if idx > 0 && isDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 0xC0 && r <= 0x24F && r != 0xD7 && r != 0xF7)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
