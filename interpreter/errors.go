package interpreter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUndefined    = errors.New("référence non définie")
	ErrArity        = errors.New("nombre d'arguments incorrect")
	ErrNotAList     = errors.New("pas une liste")
	ErrType         = errors.New("type incompatible")
	ErrUnrecognized = errors.New("expression non reconnue")
	ErrIO           = errors.New("erreur d'entrée/sortie")
	ErrLoopLimit    = errors.New("limite d'itérations atteinte")
)

// EvalError is an expression none of the evaluator's rules accepts.
type EvalError struct {
	Expr string
}

func (e *EvalError) Error() string { return fmt.Sprintf("Expression non reconnue: %s", e.Expr) }
func (e *EvalError) Unwrap() error { return ErrUnrecognized }

// RuntimeError is the failure of one source line. Line is 1-based; File is
// empty for inline code.
type RuntimeError struct {
	File  string
	Line  int
	Col   int
	Text  string
	Msg   string
	Stack []string
	Err   error
}

// Error leaves out the file when it is empty or a pseudo name such as
// "<interactif:3>" given to interactive input.
func (e *RuntimeError) Error() string {
	if e.File != "" && !isPseudoFile(e.File) {
		return fmt.Sprintf("ERREUR %s ligne %d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("ERREUR ligne %d: %s", e.Line, e.Msg)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func isPseudoFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "<") && strings.HasSuffix(base, ">")
}

// Detail renders the error over several lines with the offending source
// line, a caret under its first character and the active calls.
func (e *RuntimeError) Detail() string {
	loc := "inconnu:0:0"
	if e.Line > 0 {
		file := e.File
		if file == "" {
			file = "<inline>"
		}
		loc = fmt.Sprintf("%s:%d:%d", file, e.Line, max(e.Col, 1))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Erreur d'exécution à %s\n", loc))
	b.WriteString(fmt.Sprintf("  %s\n", e.Msg))

	if e.Text != "" && e.Line > 0 {
		prefix := fmt.Sprintf("  %d | ", e.Line)
		b.WriteString(prefix + e.Text + "\n")
		b.WriteString(strings.Repeat(" ", len(prefix)))
		b.WriteString("^\n")
	}

	if len(e.Stack) > 0 {
		b.WriteString("Pile:\n")
		for _, fn := range e.Stack {
			b.WriteString(fmt.Sprintf("  dans %s()\n", fn))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatError renders err as the single output line appended when a unit
// fails.
func FormatError(err error) string {
	var re *RuntimeError
	if errors.As(err, &re) {
		return "❌ " + re.Error()
	}
	return "❌ ERREUR: " + err.Error()
}
