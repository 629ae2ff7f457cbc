package interpreter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func newTest(opts ...Option) *Interpreter {
	base := []Option{
		WithInput(strings.NewReader("")),
		WithOutput(&strings.Builder{}),
	}
	return New(append(base, opts...)...)
}

func mustEval(t *testing.T, ip *Interpreter, expr string) Value {
	t.Helper()
	v, err := ip.Eval(expr)
	if err != nil {
		t.Fatalf("Eval(%q): %v", expr, err)
	}
	return v
}

func run(t *testing.T, src string, opts ...Option) (*Interpreter, Result) {
	t.Helper()
	ip := newTest(opts...)
	return ip, ip.Execute("", src)
}

func mustRun(t *testing.T, src string, opts ...Option) []string {
	t.Helper()
	_, res := run(t, src, opts...)
	if !res.OK {
		t.Fatalf("Execute failed: %v\noutput: %q\nsource:\n%s", res.Err, res.Output, src)
	}
	return res.Output
}

func wantOutput(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("output = %q, want %q", got, want)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("output = %q, want %q", got, want)
		}
	}
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Kind != ValInt || v.Int != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantFloat(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Kind != ValFloat || v.Float != f {
		t.Fatalf("want réel %g, got %#v", f, v)
	}
}

func wantText(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Kind != ValText || v.Str != s {
		t.Fatalf("want texte %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Kind != ValBool || v.Bool != b {
		t.Fatalf("want booléen %v, got %#v", b, v)
	}
}

func wantAbsent(t *testing.T, v Value) {
	t.Helper()
	if !v.IsAbsent() {
		t.Fatalf("want rien, got %#v", v)
	}
}

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
