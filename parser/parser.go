package parser

import (
	"regexp"
	"strconv"
	"strings"

	"lapin/ast"
	"lapin/lexer"
)

var (
	functionHeader = regexp.MustCompile(`^fonction ([\p{L}\p{N}_]+)\((.*?)\)`)
	repeatHeader   = regexp.MustCompile(`^repeter (\d+) fois`)
	forEachHeader  = regexp.MustCompile(`^pour chaque ([\p{L}\p{N}_]+) dans ([\p{L}\p{N}_]+)`)
)

// Parse classifies a line and parses it. Blank and comment lines yield a nil
// statement.
func Parse(line ast.Line) (ast.Stmt, error) {
	return ParseKind(line, lexer.Classify(line.Trimmed()))
}

// ParseKind parses a line whose kind the caller already knows.
func ParseKind(line ast.Line, kind ast.Kind) (ast.Stmt, error) {
	text := line.Trimmed()
	s := line.Span()

	switch kind {
	case ast.KindBlank, ast.KindComment:
		return nil, nil

	case ast.KindFunction:
		return parseFunctionDecl(text, s)
	case ast.KindIf:
		return parseIf(text, s), nil
	case ast.KindWhile:
		cond := strings.TrimSpace(strings.TrimPrefix(text, lexer.KwWhile))
		return &ast.WhileStmt{S: s, Condition: cond}, nil
	case ast.KindRepeat:
		return parseRepeat(text, s)
	case ast.KindForEach:
		return parseForEach(text, s)

	case ast.KindElse, ast.KindEnd:
		return &ast.MarkerStmt{S: s, Kind: kind}, nil

	case ast.KindPrint:
		return &ast.PrintStmt{S: s, Expr: strings.TrimPrefix(text, lexer.KwPrint)}, nil
	case ast.KindWrite:
		return &ast.WriteStmt{S: s, Expr: strings.TrimPrefix(text, lexer.KwWrite)}, nil
	case ast.KindRead:
		name := strings.TrimSpace(strings.TrimPrefix(text, lexer.KwRead))
		return &ast.ReadStmt{S: s, Name: name}, nil
	case ast.KindReadNumber:
		name := strings.TrimSpace(strings.TrimPrefix(text, lexer.KwReadNumber))
		return &ast.ReadStmt{S: s, Name: name, Numeric: true}, nil

	case ast.KindAssign:
		parts := strings.SplitN(text, lexer.AssignSep, 2)
		return &ast.AssignStmt{
			S:     s,
			Name:  strings.TrimSpace(parts[0]),
			Value: strings.TrimSpace(parts[1]),
		}, nil

	case ast.KindCall:
		return parseCall(text, s), nil

	case ast.KindInclude:
		path := strings.TrimSpace(strings.TrimPrefix(text, lexer.KwInclude))
		return &ast.IncludeStmt{S: s, Path: strings.Trim(path, `"`)}, nil

	default:
		return &ast.NoopStmt{S: s, Text: text}, nil
	}
}

// fonction nom(a, b)
func parseFunctionDecl(text string, s ast.Span) (ast.Stmt, error) {
	m := functionHeader.FindStringSubmatch(text)
	if m == nil {
		return nil, errAt(s.Line, "Syntaxe de fonction invalide")
	}
	params := []string{}
	for _, p := range strings.Split(m[2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return &ast.FunctionDecl{S: s, Name: m[1], Params: params}, nil
}

// si <cond> alors
// Every "alors" is removed from the condition text, wherever it appears.
func parseIf(text string, s ast.Span) ast.Stmt {
	cond := strings.TrimPrefix(text, lexer.KwIf)
	cond = strings.TrimSpace(strings.ReplaceAll(cond, lexer.KwThen, ""))
	return &ast.IfStmt{S: s, Condition: cond}
}

func parseRepeat(text string, s ast.Span) (ast.Stmt, error) {
	m := repeatHeader.FindStringSubmatch(text)
	if m == nil {
		return nil, errAt(s.Line, "Syntaxe de boucle invalide")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, errAt(s.Line, "Nombre de répétitions invalide")
	}
	return &ast.RepeatStmt{S: s, Count: n}, nil
}

func parseForEach(text string, s ast.Span) (ast.Stmt, error) {
	m := forEachHeader.FindStringSubmatch(text)
	if m == nil {
		return nil, errAt(s.Line, "Syntaxe de boucle pour chaque invalide")
	}
	return &ast.ForEachStmt{S: s, Var: m[1], List: m[2]}, nil
}

// nom(arg1, arg2): callee is what precedes the first "(", arguments are
// what lies between it and the last ")".
func parseCall(text string, s ast.Span) ast.Stmt {
	open := strings.Index(text, "(")
	closing := strings.LastIndex(text, ")")
	return &ast.CallStmt{
		S:      s,
		Callee: strings.TrimSpace(text[:open]),
		Args:   SplitArgs(text[open+1 : closing]),
	}
}

// SplitArgs splits an argument list on commas that are not nested inside
// parentheses. Only "(" and ")" count: brackets and quotes do not protect
// commas. Empty arguments are kept except a trailing one.
func SplitArgs(src string) []string {
	if strings.TrimSpace(src) == "" {
		return []string{}
	}

	args := []string{}
	var cur strings.Builder
	depth := 0

	for _, ch := range src {
		if ch == ',' && depth == 0 {
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}
		cur.WriteRune(ch)
	}

	if last := strings.TrimSpace(cur.String()); last != "" {
		args = append(args, last)
	}
	return args
}

// CallParts recognises an expression that is exactly one call: an
// identifier followed by "(" whose matching ")" is the final character.
func CallParts(expr string) (name string, args []string, ok bool) {
	open := strings.Index(expr, "(")
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(expr[:open])
	if !lexer.IsIdent(name) || lexer.IsReserved(name) {
		return "", nil, false
	}

	depth := 0
	for idx := open; idx < len(expr); idx++ {
		switch expr[idx] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && idx != len(expr)-1 {
				return "", nil, false
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}
	return name, SplitArgs(expr[open+1 : len(expr)-1]), true
}
