package lexer

import "lapin/ast"

// Keyword phrases of the language. Prefix forms carry their trailing space.
const (
	KwFunction = "fonction "
	KwIf       = "si "
	KwWhile    = "tant que "
	KwRepeat   = "repeter "
	KwForEach  = "pour chaque "

	KwElse = "sinon"
	KwEnd  = "fin"
	KwThen = "alors"

	KwPrint      = "afficher "
	KwWrite      = "ecrire "
	KwRead       = "lire "
	KwReadNumber = "lire_nombre "
	KwInclude    = "inclure "

	KwTrue  = "vrai"
	KwFalse = "faux"
	KwAnd   = "et"
	KwOr    = "ou"

	// Assignment separator: the first " = " of a line.
	AssignSep = " = "
)

type opener struct {
	prefix string
	kind   ast.Kind
}

// blockOpeners is ordered the way the driver tests them.
var blockOpeners = []opener{
	{KwFunction, ast.KindFunction},
	{KwIf, ast.KindIf},
	{KwWhile, ast.KindWhile},
	{KwRepeat, ast.KindRepeat},
	{KwForEach, ast.KindForEach},
}

// BlockOpeners returns the phrases that open a body closed by "fin".
func BlockOpeners() []string {
	out := make([]string, 0, len(blockOpeners))
	for _, o := range blockOpeners {
		out = append(out, o.prefix)
	}
	return out
}

// IsReserved reports whether word cannot be used as a variable name.
func IsReserved(word string) bool {
	switch word {
	case KwTrue, KwFalse, KwAnd, KwOr, KwElse, KwEnd, KwThen:
		return true
	}
	return false
}
