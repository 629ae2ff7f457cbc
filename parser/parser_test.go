package parser

import (
	"errors"
	"reflect"
	"testing"

	"lapin/ast"
)

func parseOne(t *testing.T, text string) ast.Stmt {
	t.Helper()
	s, err := Parse(ast.Line{No: 1, Text: text})
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return s
}

func TestParseHeaders(t *testing.T) {
	fn, ok := parseOne(t, "fonction somme(a, b)").(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("want *ast.FunctionDecl")
	}
	if fn.Name != "somme" || !reflect.DeepEqual(fn.Params, []string{"a", "b"}) {
		t.Fatalf("got %s", fn)
	}

	noParams := parseOne(t, "fonction salut()").(*ast.FunctionDecl)
	if len(noParams.Params) != 0 {
		t.Fatalf("want no params, got %v", noParams.Params)
	}

	rep := parseOne(t, "repeter 4 fois").(*ast.RepeatStmt)
	if rep.Count != 4 {
		t.Fatalf("want 4, got %d", rep.Count)
	}

	fe := parseOne(t, "pour chaque e dans nombres").(*ast.ForEachStmt)
	if fe.Var != "e" || fe.List != "nombres" {
		t.Fatalf("got %s", fe)
	}

	cond := parseOne(t, "si x > 2 alors").(*ast.IfStmt)
	if cond.Condition != "x > 2" {
		t.Fatalf("want %q, got %q", "x > 2", cond.Condition)
	}

	// "alors" is removed wherever it appears
	odd := parseOne(t, "si alors_x == 1 alors").(*ast.IfStmt)
	if odd.Condition != "_x == 1" {
		t.Fatalf("want %q, got %q", "_x == 1", odd.Condition)
	}
}

func TestParseMalformedHeaders(t *testing.T) {
	cases := []string{
		"fonction carre(x",
		"fonction (x)",
		"repeter beaucoup fois",
		"repeter 3",
		"pour chaque x de l",
	}
	for _, text := range cases {
		_, err := Parse(ast.Line{No: 7, Text: text})
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", text, err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) || se.Line != 7 {
			t.Errorf("Parse(%q): want SyntaxError at line 7, got %#v", text, err)
		}
	}
}

func TestParseSimpleStatements(t *testing.T) {
	as := parseOne(t, "total = a + b = c").(*ast.AssignStmt)
	if as.Name != "total" || as.Value != "a + b = c" {
		t.Fatalf("got %s", as)
	}

	call := parseOne(t, "ajouter(l, f(1, 2))").(*ast.CallStmt)
	if call.Callee != "ajouter" || !reflect.DeepEqual(call.Args, []string{"l", "f(1, 2)"}) {
		t.Fatalf("got %s", call)
	}

	inc := parseOne(t, `inclure "outils.lapin"`).(*ast.IncludeStmt)
	if inc.Path != "outils.lapin" {
		t.Fatalf("got %q", inc.Path)
	}

	rd := parseOne(t, "lire_nombre age").(*ast.ReadStmt)
	if rd.Name != "age" || !rd.Numeric {
		t.Fatalf("got %s", rd)
	}

	if s := parseOne(t, "   "); s != nil {
		t.Fatalf("blank line: want nil, got %s", s)
	}
	if s := parseOne(t, "# note"); s != nil {
		t.Fatalf("comment: want nil, got %s", s)
	}
	if _, ok := parseOne(t, "bonjour tout le monde").(*ast.NoopStmt); !ok {
		t.Fatalf("want *ast.NoopStmt")
	}
}

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"", []string{}},
		{"  ", []string{}},
		{"1", []string{"1"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"f(1, 2), 3", []string{"f(1, 2)", "3"}},
		{"g(h(1, 2), 3), x", []string{"g(h(1, 2), 3)", "x"}},
		// only parentheses protect commas
		{`"a, b", c`, []string{`"a`, `b"`, "c"}},
		{"[1, 2]", []string{"[1", "2]"}},
		{"a,,b", []string{"a", "", "b"}},
		{"a, ", []string{"a"}},
	}
	for _, tc := range cases {
		if got := SplitArgs(tc.src); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitArgs(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestCallParts(t *testing.T) {
	name, args, ok := CallParts("texte_en_nombre(nombre_en_texte(42))")
	if !ok || name != "texte_en_nombre" || !reflect.DeepEqual(args, []string{"nombre_en_texte(42)"}) {
		t.Fatalf("got %q %q %v", name, args, ok)
	}

	for _, expr := range []string{
		"f(1) + g(2)",
		"(1 + 2)",
		"2 * f(3)",
		"vrai(1)",
		"f(1",
		"x",
	} {
		if _, _, ok := CallParts(expr); ok {
			t.Errorf("CallParts(%q) accepted", expr)
		}
	}
}
