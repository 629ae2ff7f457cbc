package ast

// Kind is the shape of a line, decided once by the classifier.
type Kind int

const (
	KindNone Kind = iota
	KindBlank
	KindComment

	// block openers
	KindFunction
	KindIf
	KindWhile
	KindRepeat
	KindForEach

	// block markers
	KindElse
	KindEnd

	// simple statements
	KindPrint
	KindWrite
	KindRead
	KindReadNumber
	KindAssign
	KindCall
	KindInclude
)

var kindNames = map[Kind]string{
	KindNone:       "None",
	KindBlank:      "Blank",
	KindComment:    "Comment",
	KindFunction:   "Function",
	KindIf:         "If",
	KindWhile:      "While",
	KindRepeat:     "Repeat",
	KindForEach:    "ForEach",
	KindElse:       "Else",
	KindEnd:        "End",
	KindPrint:      "Print",
	KindWrite:      "Write",
	KindRead:       "Read",
	KindReadNumber: "ReadNumber",
	KindAssign:     "Assign",
	KindCall:       "Call",
	KindInclude:    "Include",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// OpensBlock reports whether lines of this kind start a body closed by "fin".
func (k Kind) OpensBlock() bool {
	switch k {
	case KindFunction, KindIf, KindWhile, KindRepeat, KindForEach:
		return true
	}
	return false
}

// Skipped reports whether the driver ignores lines of this kind.
func (k Kind) Skipped() bool { return k == KindBlank || k == KindComment }
