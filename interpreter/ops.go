package interpreter

import (
	"math"
	"strings"
)

func arith(op string, a, b Value) (Value, error) {
	// Division by zero is not an error: it yields 0, whatever the left side.
	if op == "/" {
		if bn, ok := b.number(); ok && bn == 0 {
			return Int(0), nil
		}
	}

	switch op {
	case "+":
		if a.Kind == ValText || b.Kind == ValText {
			return Text(a.String() + b.String()), nil
		}
		if a.Kind == ValList && b.Kind == ValList {
			out := make([]Value, 0, len(a.elems())+len(b.elems()))
			out = append(out, a.elems()...)
			out = append(out, b.elems()...)
			return List(out...), nil
		}
	case "*":
		if a.Kind == ValText {
			if n, ok := b.integer(); ok {
				return repeatText(a.Str, n)
			}
		}
		if b.Kind == ValText {
			if n, ok := a.integer(); ok {
				return repeatText(b.Str, n)
			}
		}
	}

	ai, aInt := a.integer()
	bi, bInt := b.integer()
	if aInt && bInt {
		return intArith(op, ai, bi)
	}

	af, aok := a.number()
	bf, bok := b.number()
	if !aok || !bok {
		return Absent(), errorf(ErrType, "Opération '%s' impossible entre %s et %s", op, a.Kind, b.Kind)
	}
	return floatArith(op, af, bf)
}

// Longest text a repetition may build.
const maxTextLen = 1 << 28

func repeatText(s string, n int64) (Value, error) {
	if n <= 0 || s == "" {
		return Text(""), nil
	}
	if n > maxTextLen || int64(len(s)) > maxTextLen/n {
		return Absent(), errorf(ErrType, "Texte trop long: %d répétitions de %d caractères", n, len(s))
	}
	return Text(strings.Repeat(s, int(n))), nil
}

func intArith(op string, a, b int64) (Value, error) {
	switch op {
	case "+":
		return Int(a + b), nil
	case "-":
		return Int(a - b), nil
	case "*":
		return Int(a * b), nil
	case "/":
		return Float(float64(a) / float64(b)), nil
	case "%":
		if b == 0 {
			return Absent(), errorf(ErrType, "Modulo par zéro")
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return Int(r), nil
	case "^":
		if b < 0 {
			return Float(math.Pow(float64(a), float64(b))), nil
		}
		return Int(ipow(a, b)), nil
	}
	return Absent(), errorf(ErrType, "Opérateur inconnu '%s'", op)
}

func floatArith(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return Float(a + b), nil
	case "-":
		return Float(a - b), nil
	case "*":
		return Float(a * b), nil
	case "/":
		return Float(a / b), nil
	case "%":
		if b == 0 {
			return Absent(), errorf(ErrType, "Modulo par zéro")
		}
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return Float(r), nil
	case "^":
		return Float(math.Pow(a, b)), nil
	}
	return Absent(), errorf(ErrType, "Opérateur inconnu '%s'", op)
}

func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func compare(op string, a, b Value) (Value, error) {
	switch op {
	case "==":
		return Bool(valuesEqual(a, b)), nil
	case "!=":
		return Bool(!valuesEqual(a, b)), nil
	case "et":
		if !a.Truthy() {
			return a, nil
		}
		return b, nil
	case "ou":
		if a.Truthy() {
			return a, nil
		}
		return b, nil
	}

	c, ok := order(a, b)
	if !ok {
		return Absent(), errorf(ErrType, "Comparaison '%s' impossible entre %s et %s", op, a.Kind, b.Kind)
	}
	switch op {
	case "<":
		return Bool(c < 0), nil
	case "<=":
		return Bool(c <= 0), nil
	case ">":
		return Bool(c > 0), nil
	case ">=":
		return Bool(c >= 0), nil
	}
	return Absent(), errorf(ErrType, "Opérateur inconnu '%s'", op)
}

func valuesEqual(a, b Value) bool {
	return equalSeen(a, b, nil)
}

// equalSeen treats a pair of lists already under comparison as equal, which
// keeps self-referencing lists from recursing forever.
func equalSeen(a, b Value, seen map[[2]*ListObject]bool) bool {
	if an, ok := a.number(); ok {
		bn, ok := b.number()
		return ok && an == bn
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValAbsent:
		return true
	case ValText:
		return a.Str == b.Str
	case ValList:
		if a.List == b.List {
			return true
		}
		pair := [2]*ListObject{a.List, b.List}
		if seen[pair] {
			return true
		}
		ae, be := a.elems(), b.elems()
		if len(ae) != len(be) {
			return false
		}
		if seen == nil {
			seen = map[[2]*ListObject]bool{}
		}
		seen[pair] = true
		for idx := range ae {
			if !equalSeen(ae[idx], be[idx], seen) {
				return false
			}
		}
		return true
	}
	return false
}

// order compares two numbers or two texts.
func order(a, b Value) (int, bool) {
	if an, ok := a.number(); ok {
		bn, ok := b.number()
		if !ok {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		}
		return 0, true
	}
	if a.Kind == ValText && b.Kind == ValText {
		return strings.Compare(a.Str, b.Str), true
	}
	return 0, false
}
