package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"lapin/lexer"
	"lapin/parser"
)

var numberLiteral = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Tested in this order, each split at its first occurrence in the text.
// There is no precedence or associativity: "10 - 2 - 3" is 10 - (2 - 3).
var arithmeticOps = []string{"+", "-", "*", "/", "%", "^"}

// Matched surrounded by single spaces so "<" does not fire inside "<=".
var comparisonOps = []string{"==", "!=", "<", "<=", ">", ">=", lexer.KwAnd, lexer.KwOr}

// Eval evaluates expr against the active scope. The first rule whose shape
// matches the whole trimmed text wins; operator rules recurse on the two
// halves of the text.
func (i *Interpreter) Eval(expr string) (Value, error) {
	expr = strings.TrimSpace(expr)

	if len(expr) >= 2 && strings.HasPrefix(expr, `"`) && strings.HasSuffix(expr, `"`) {
		return Text(expr[1 : len(expr)-1]), nil
	}

	if numberLiteral.MatchString(expr) {
		return parseNumber(expr), nil
	}

	switch expr {
	case lexer.KwTrue:
		return Bool(true), nil
	case lexer.KwFalse:
		return Bool(false), nil
	}

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		return i.evalListLiteral(expr[1 : len(expr)-1])
	}

	if v, ok := i.scope.Get(expr); ok {
		return v, nil
	}

	if name, args, ok := parser.CallParts(expr); ok {
		vals, err := i.evalArgs(args)
		if err != nil {
			return Absent(), err
		}
		return i.Call(name, vals)
	}

	for _, op := range arithmeticOps {
		idx := strings.Index(expr, op)
		if idx < 0 {
			continue
		}
		left, right, err := i.evalSides(expr[:idx], expr[idx+len(op):])
		if err != nil {
			return Absent(), err
		}
		return arith(op, left, right)
	}

	for _, op := range comparisonOps {
		tok := " " + op + " "
		idx := strings.Index(expr, tok)
		if idx < 0 {
			continue
		}
		left, right, err := i.evalSides(expr[:idx], expr[idx+len(tok):])
		if err != nil {
			return Absent(), err
		}
		return compare(op, left, right)
	}

	return Absent(), &EvalError{Expr: expr}
}

func (i *Interpreter) evalSides(l, r string) (Value, Value, error) {
	left, err := i.Eval(l)
	if err != nil {
		return Absent(), Absent(), err
	}
	right, err := i.Eval(r)
	if err != nil {
		return Absent(), Absent(), err
	}
	return left, right, nil
}

// [a, b, c]: a plain comma split, so nested lists are not supported.
// Blank items are skipped.
func (i *Interpreter) evalListLiteral(inner string) (Value, error) {
	elems := []Value{}
	for _, item := range strings.Split(inner, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		v, err := i.Eval(item)
		if err != nil {
			return Absent(), err
		}
		elems = append(elems, v)
	}
	return List(elems...), nil
}

func (i *Interpreter) evalArgs(args []string) ([]Value, error) {
	vals := make([]Value, 0, len(args))
	for _, a := range args {
		v, err := i.Eval(a)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// parseNumber reads a literal already matched by numberLiteral. Integers
// too large for int64 become reals.
func parseNumber(lit string) Value {
	if !strings.Contains(lit, ".") {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(n)
		}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return Float(f)
}
