// interpreter/interpreter.go
package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"lapin/ast"
	"lapin/lexer"
	"lapin/parser"
)

// Function is a user definition. Body holds the raw lines between the
// header and its "fin", nested blocks included.
type Function struct {
	Name   string
	Params []string
	Body   []ast.Line
	File   string
	S      ast.Span
}

type frame struct {
	name string
	last Value
}

type Interpreter struct {
	scope    *Scope
	funcs    map[string]*Function
	builtins map[string]builtin

	frames []*frame

	out    []string
	stream bool

	in *bufio.Reader
	w  io.Writer

	filename string
	current  ast.Line

	includeDirs  []string
	includeStack []string
	included     map[string]int

	maxIterations int

	log *slog.Logger
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Interpreter)

// WithInput sets where lire and lire_nombre read from.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithOutput sets where ecrire writes, and where streamed results go.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.w = w }
}

// WithStreaming also writes every collected output line to the output
// writer as soon as it is produced.
func WithStreaming(on bool) Option {
	return func(i *Interpreter) { i.stream = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		if l != nil {
			i.log = l
		}
	}
}

// WithIncludePaths adds directories searched by inclure after the
// including file's own directory.
func WithIncludePaths(dirs ...string) Option {
	return func(i *Interpreter) { i.includeDirs = append(i.includeDirs, dirs...) }
}

// WithMaxIterations bounds each "tant que" loop. Zero means no bound.
func WithMaxIterations(n int) Option {
	return func(i *Interpreter) { i.maxIterations = n }
}

func WithRand(r *rand.Rand) Option {
	return func(i *Interpreter) { i.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scope:    NewScope(),
		funcs:    map[string]*Function{},
		builtins: builtinTable(),
		frames:   []*frame{},
		out:      []string{},
		in:       bufio.NewReader(os.Stdin),
		w:        os.Stdout,
		included: map[string]int{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Result is the outcome of one execution unit: a file, or one REPL entry.
// On failure the last Output entry is the formatted error.
type Result struct {
	OK     bool
	Output []string
	Err    error
}

// Execute runs src as one unit against the interpreter's state. Functions
// and variables persist across calls, so a REPL can feed it line by line.
// The first failing line stops the unit.
func (i *Interpreter) Execute(filename string, src string) Result {
	i.out = []string{}

	prevFile := i.filename
	i.filename = filename
	defer func() { i.filename = prevFile }()

	if filename != "" {
		i.includeStack = append(i.includeStack, filepath.Clean(filename))
		defer func() { i.includeStack = i.includeStack[:len(i.includeStack)-1] }()
	}

	err := i.runLines(ast.SplitLines(src))
	if err != nil {
		i.log.Debug("unité interrompue", "fichier", filename, "erreur", err)
		i.out = append(i.out, FormatError(err))
		return Result{OK: false, Output: i.out, Err: err}
	}
	return Result{OK: true, Output: i.out}
}

// runLines is the driver shared by the top level, block bodies, function
// bodies and included files.
func (i *Interpreter) runLines(lines []ast.Line) error {
	for idx := 0; idx < len(lines); {
		line := lines[idx]
		kind := lexer.Classify(line.Trimmed())
		if kind.Skipped() {
			idx++
			continue
		}

		i.current = line
		i.log.Debug("exécution", "ligne", line.No, "texte", line.Trimmed())

		if kind.OpensBlock() {
			next, err := i.runBlock(lines, idx, kind)
			if err != nil {
				return i.lineErr(line, err)
			}
			idx = next
			continue
		}

		v, err := i.execLine(line, kind)
		if err != nil {
			return i.lineErr(line, err)
		}
		i.record(v)
		idx++
	}
	return nil
}

// record routes a statement result: into the current call's return slot
// when inside a user function, otherwise into the unit's output.
func (i *Interpreter) record(v Value) {
	if v.IsAbsent() {
		return
	}
	if n := len(i.frames); n > 0 {
		i.frames[n-1].last = v
		return
	}
	i.emit(v.String())
}

// emit appends one line to the unit's output, bypassing call capture.
func (i *Interpreter) emit(s string) {
	i.out = append(i.out, s)
	if i.stream {
		fmt.Fprintln(i.w, s)
	}
}

// lineErr attaches the failing line to err unless an inner line already
// claimed it.
func (i *Interpreter) lineErr(line ast.Line, err error) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}

	no := line.No
	var se *parser.SyntaxError
	if errors.As(err, &se) && se.Line > 0 {
		no = se.Line
	}

	return &RuntimeError{
		File:  i.filename,
		Line:  no,
		Col:   line.Span().Col,
		Text:  line.Trimmed(),
		Msg:   err.Error(),
		Stack: i.CallStack(),
		Err:   err,
	}
}

// langError keeps the user-facing message separate from its category.
type langError struct {
	kind error
	msg  string
}

func (e *langError) Error() string { return e.msg }
func (e *langError) Unwrap() error { return e.kind }

func errorf(kind error, format string, args ...any) error {
	return &langError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
