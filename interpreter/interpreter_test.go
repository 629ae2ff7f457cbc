package interpreter

import (
	"errors"
	"strings"
	"testing"

	"lapin/parser"
)

func TestDisplaySubstitutesVariables(t *testing.T) {
	out := mustRun(t, `nom = "Lapin"
afficher "Bonjour nom !"
afficher nom
a = 1
afficher "banane"`)
	// substitution is purely textual, on every occurrence
	wantOutput(t, out, "Bonjour Lapin !", "Lapin", "b1n1ne")
}

func TestDivisionByZeroProgram(t *testing.T) {
	out := mustRun(t, "x = 5 / 0\nafficher x")
	wantOutput(t, out, "0")
}

func TestFunctionScopeIsIsolated(t *testing.T) {
	ip, res := run(t, `x = 10
fonction double(a)
    x = a * 2
    afficher x
fin
y = double(3)
afficher y
afficher x`)
	if !res.OK {
		t.Fatalf("Execute: %v", res.Err)
	}
	wantOutput(t, res.Output, "6", "10")

	vars := ip.Variables()
	if _, ok := vars["a"]; ok {
		t.Fatalf("parameter leaked into the caller's scope")
	}
	wantInt(t, vars["x"], 10)
}

func TestFunctionSeesOnlyItsParameters(t *testing.T) {
	_, res := run(t, `g = 1
fonction lit()
    afficher g
fin
lit()`)
	if res.OK || !errors.Is(res.Err, ErrUnrecognized) {
		t.Fatalf("want ErrUnrecognized, got %v", res.Err)
	}
}

func TestFunctionReturnsLastResult(t *testing.T) {
	ip := newTest()
	res := ip.Execute("", `fonction choix(v)
    afficher "petit"
    si v > 5 alors
        afficher "grand"
    fin
    x = 1
fin`)
	if !res.OK || len(res.Output) != 0 {
		t.Fatalf("definition must not run the body: %#v", res)
	}

	v, err := ip.Call("choix", []Value{Int(9)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	wantText(t, v, "grand")

	v, err = ip.Call("choix", []Value{Int(1)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	wantText(t, v, "petit")
}

func TestAfficherCallInsideFunction(t *testing.T) {
	out := mustRun(t, `fonction f()
    afficher "valeur"
    afficher("trace", 1)
fin
x = f()
afficher x`)
	// the call form prints during the call and leaves the value alone
	wantOutput(t, out, "trace 1", "valeur")
}

func TestRecursion(t *testing.T) {
	out := mustRun(t, `fonction fact(n)
    r = 1
    si n > 1 alors
        m = n - 1
        r = texte_en_nombre(fact(m)) * n
    fin
    afficher r
fin
afficher fact(5)`)
	wantOutput(t, out, "120")
}

func TestArityMismatch(t *testing.T) {
	ip, res := run(t, `fonction f(a)
    afficher a
fin
f(1, 2)
afficher "jamais"`)
	if res.OK {
		t.Fatalf("want failure")
	}
	if !errors.Is(res.Err, ErrArity) {
		t.Fatalf("want ErrArity, got %v", res.Err)
	}
	last := res.Output[len(res.Output)-1]
	if !strings.HasPrefix(last, "❌ ERREUR ligne 4:") {
		t.Fatalf("got %q", last)
	}
	if len(res.Output) != 1 {
		t.Fatalf("execution must stop at the failing line: %q", res.Output)
	}
	if len(ip.CallStack()) != 0 {
		t.Fatalf("call stack not unwound")
	}
}

func TestBuiltinArityMismatch(t *testing.T) {
	_, res := run(t, "longueur(1, 2)")
	if !errors.Is(res.Err, ErrArity) {
		t.Fatalf("want ErrArity, got %v", res.Err)
	}
}

func TestRepeatMutatesList(t *testing.T) {
	out := mustRun(t, `l = liste()
repeter 3 fois
    ajouter(l, 1)
fin
afficher longueur(l)`)
	// top-level call results reach the output, inside blocks too
	wantOutput(t, out, "[1]", "[1, 1]", "[1, 1, 1]", "3")
}

func TestListHoldingItself(t *testing.T) {
	out := mustRun(t, `L = liste(1)
ajouter(L, L)
afficher L
afficher L == L
afficher "ok"`)
	wantOutput(t, out, "[1, [...]]", "[1, [...]]", "vrai", "ok")
}

func TestRepeatZero(t *testing.T) {
	out := mustRun(t, "repeter 0 fois\n    afficher 1\nfin\nafficher 2")
	wantOutput(t, out, "2")
}

func TestForEach(t *testing.T) {
	ip, res := run(t, `nombres = [3, 1, 2]
vus = liste()
pour chaque n dans nombres
    ajouter(vus, n)
fin
afficher vus`)
	if !res.OK {
		t.Fatalf("Execute: %v", res.Err)
	}
	wantOutput(t, res.Output, "[3]", "[3, 1]", "[3, 1, 2]", "[3, 1, 2]")

	if _, ok := ip.Variables()["n"]; ok {
		t.Fatalf("loop variable must be removed after the loop")
	}
}

func TestForEachSeesGrowth(t *testing.T) {
	out := mustRun(t, `l = [1]
pour chaque e dans l
    si e < 3 alors
        x = e + 1
        ajouter(l, x)
    fin
fin
afficher longueur(l)`)
	wantOutput(t, out, "[1, 2]", "[1, 2, 3]", "3")
}

func TestForEachErrors(t *testing.T) {
	_, res := run(t, "pour chaque x dans absente\nfin")
	if !errors.Is(res.Err, ErrUndefined) {
		t.Fatalf("want ErrUndefined, got %v", res.Err)
	}

	_, res = run(t, "l = 3\npour chaque x dans l\nfin")
	if !errors.Is(res.Err, ErrNotAList) {
		t.Fatalf("want ErrNotAList, got %v", res.Err)
	}
}

func TestIfElse(t *testing.T) {
	src := `si x > 3 alors
    afficher "grand"
sinon
    afficher "petit"
fin`
	wantOutput(t, mustRun(t, "x = 5\n"+src), "grand")
	wantOutput(t, mustRun(t, "x = 1\n"+src), "petit")
}

func TestWhile(t *testing.T) {
	out := mustRun(t, `i = 0
tant que i < 3
    i = i + 1
fin
afficher i`)
	wantOutput(t, out, "3")
}

func TestWhileLimit(t *testing.T) {
	_, res := run(t, "tant que vrai\nfin", WithMaxIterations(50))
	if !errors.Is(res.Err, ErrLoopLimit) {
		t.Fatalf("want ErrLoopLimit, got %v", res.Err)
	}
}

func TestNestedBlocksInFunction(t *testing.T) {
	out := mustRun(t, `fonction compte(l)
    total = 0
    pour chaque e dans l
        si e > 1 alors
            total = total + e
        fin
    fin
    afficher total
fin
nums = [1, 2, 3]
afficher compte(nums)`)
	wantOutput(t, out, "5")
}

func TestMalformedFunctionHeader(t *testing.T) {
	ip, res := run(t, `fonction f(a
    afficher a
fin`)
	if res.OK || !errors.Is(res.Err, parser.ErrSyntax) {
		t.Fatalf("want ErrSyntax, got %v", res.Err)
	}
	var re *RuntimeError
	if !errors.As(res.Err, &re) || re.Line != 1 {
		t.Fatalf("want error on line 1, got %#v", res.Err)
	}
	if len(ip.FuncNames()) != 0 {
		t.Fatalf("nothing must be registered, got %v", ip.FuncNames())
	}
}

func TestUnterminatedBlock(t *testing.T) {
	_, res := run(t, "x = 1\nsi vrai alors\n    afficher x")
	if !errors.Is(res.Err, parser.ErrUnterminatedBlock) {
		t.Fatalf("want ErrUnterminatedBlock, got %v", res.Err)
	}
	if !strings.Contains(res.Output[len(res.Output)-1], "ligne 2") {
		t.Fatalf("got %q", res.Output)
	}
}

func TestErrorLineNumber(t *testing.T) {
	_, res := run(t, "x = 1\n\n# note\nz = inconnu\nafficher x")
	wantOutput(t, res.Output, "❌ ERREUR ligne 4: Expression non reconnue: inconnu")
}

func TestErrorInsideFunctionReportsInnerLine(t *testing.T) {
	_, res := run(t, `fonction f()
    a = 1
    b = pas_defini
fin
f()`)
	var re *RuntimeError
	if !errors.As(res.Err, &re) {
		t.Fatalf("want *RuntimeError, got %T", res.Err)
	}
	if re.Line != 3 || len(re.Stack) != 1 || re.Stack[0] != "f" {
		t.Fatalf("got line %d stack %v", re.Line, re.Stack)
	}
	if !strings.Contains(re.Detail(), "dans f()") {
		t.Fatalf("detail misses the stack:\n%s", re.Detail())
	}
}

func TestScopeRestoredAfterFailedCall(t *testing.T) {
	ip := newTest()
	ip.Execute("", "x = 1\nfonction f(x)\n    y = inconnu\nfin")
	if res := ip.Execute("", "f(2)"); res.OK {
		t.Fatalf("want failure")
	}
	res := ip.Execute("", "afficher x")
	wantOutput(t, res.Output, "1")
}

func TestStateSurvivesUnits(t *testing.T) {
	ip := newTest()
	ip.Execute("", "fonction carre(n)\n    afficher n * n\nfin")
	ip.Execute("", "v = 7")
	res := ip.Execute("", "afficher carre(v)")
	wantOutput(t, res.Output, "49")
}

func TestUnknownLinesAreIgnored(t *testing.T) {
	out := mustRun(t, "ceci ne fait rien\nsinon\nfin\nafficher 1")
	wantOutput(t, out, "1")
}

func TestUserFunctionShadowsBuiltin(t *testing.T) {
	out := mustRun(t, `fonction longueur(x)
    afficher "moi"
fin
afficher longueur(1)`)
	wantOutput(t, out, "moi")
}

func TestUndefinedFunction(t *testing.T) {
	_, res := run(t, "inexistante(1)")
	if !errors.Is(res.Err, ErrUndefined) {
		t.Fatalf("want ErrUndefined, got %v", res.Err)
	}
}

func TestWriteAndRead(t *testing.T) {
	var w strings.Builder
	ip := New(
		WithInput(strings.NewReader("Alice\n12\nabc\n7\n")),
		WithOutput(&w),
	)
	res := ip.Execute("", `ecrire "Nom? "
lire prenom
lire_nombre age
lire_nombre k
afficher prenom
afficher age
afficher k`)
	if !res.OK {
		t.Fatalf("Execute: %v", res.Err)
	}
	wantOutput(t, res.Output, "Alice", "12.0", "7.0")
	if got := w.String(); got != "Nom? Veuillez entrer un nombre valide: " {
		t.Fatalf("host output = %q", got)
	}
}

func TestReadAtEOF(t *testing.T) {
	_, res := run(t, "lire x")
	if !errors.Is(res.Err, ErrIO) {
		t.Fatalf("want ErrIO, got %v", res.Err)
	}
}

func TestStreaming(t *testing.T) {
	var w strings.Builder
	ip := New(WithOutput(&w), WithStreaming(true))
	res := ip.Execute("", "afficher 1\nafficher(2, 3)\nafficher 4")
	wantOutput(t, res.Output, "1", "2 3", "4")
	if w.String() != "1\n2 3\n4\n" {
		t.Fatalf("streamed %q", w.String())
	}
}

func TestExecuteLine(t *testing.T) {
	ip := newTest()
	v, err := ip.ExecuteLine("afficher 3 + 4")
	if err != nil {
		t.Fatalf("ExecuteLine: %v", err)
	}
	wantText(t, v, "7")

	if _, err := ip.ExecuteLine("si vrai alors"); !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("block opener: want ErrSyntax, got %v", err)
	}
}
