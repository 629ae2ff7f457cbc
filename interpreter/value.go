package interpreter

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValAbsent ValueKind = iota
	ValInt
	ValFloat
	ValText
	ValBool
	ValList
)

func (k ValueKind) String() string {
	switch k {
	case ValInt:
		return "entier"
	case ValFloat:
		return "réel"
	case ValText:
		return "texte"
	case ValBool:
		return "booléen"
	case ValList:
		return "liste"
	default:
		return "rien"
	}
}

// ListObject gives lists reference semantics: every Value holding the same
// *ListObject sees mutations made through any of them.
type ListObject struct {
	Elems []Value
}

type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	List  *ListObject
}

func Absent() Value         { return Value{Kind: ValAbsent} }
func Int(n int64) Value     { return Value{Kind: ValInt, Int: n} }
func Float(f float64) Value { return Value{Kind: ValFloat, Float: f} }
func Text(s string) Value   { return Value{Kind: ValText, Str: s} }
func Bool(b bool) Value     { return Value{Kind: ValBool, Bool: b} }
func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: ValList, List: &ListObject{Elems: elems}}
}

func (v Value) IsAbsent() bool { return v.Kind == ValAbsent }

// IsNumber is true for integers and reals; booleans are not numbers here
// even though arithmetic accepts them.
func (v Value) IsNumber() bool { return v.Kind == ValInt || v.Kind == ValFloat }

func (v Value) elems() []Value {
	if v.Kind != ValList || v.List == nil {
		return nil
	}
	return v.List.Elems
}

// number widens a numeric or boolean value to float64.
func (v Value) number() (float64, bool) {
	switch v.Kind {
	case ValInt:
		return float64(v.Int), true
	case ValFloat:
		return v.Float, true
	case ValBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// integer returns the value as an int64 when it is an integer or boolean.
func (v Value) integer() (int64, bool) {
	switch v.Kind {
	case ValInt:
		return v.Int, true
	case ValBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (v Value) Truthy() bool {
	switch v.Kind {
	case ValInt:
		return v.Int != 0
	case ValFloat:
		return v.Float != 0
	case ValText:
		return v.Str != ""
	case ValBool:
		return v.Bool
	case ValList:
		return len(v.elems()) > 0
	default:
		return false
	}
}

func (v Value) String() string {
	return v.render(nil)
}

// render prints a list already being printed further up as "[...]", so a
// list holding itself still renders.
func (v Value) render(open map[*ListObject]bool) string {
	switch v.Kind {
	case ValInt:
		return strconv.FormatInt(v.Int, 10)

	case ValFloat:
		return formatFloat(v.Float)

	case ValText:
		return v.Str

	case ValBool:
		if v.Bool {
			return "vrai"
		}
		return "faux"

	case ValList:
		if v.List != nil {
			if open[v.List] {
				return "[...]"
			}
			if open == nil {
				open = map[*ListObject]bool{}
			}
			open[v.List] = true
			defer delete(open, v.List)
		}
		var b strings.Builder
		b.WriteString("[")
		for idx, el := range v.elems() {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.WriteString(el.render(open))
		}
		b.WriteString("]")
		return b.String()

	default:
		return "rien"
	}
}

// formatFloat keeps a trailing ".0" on integral reals so 6 / 3 reads 2.0.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "e") {
		if math.Abs(f) < 1e16 && math.Abs(f) >= 1e-4 {
			s = strconv.FormatFloat(f, 'f', -1, 64)
		} else {
			return s
		}
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
