package ast

import (
	"fmt"
	"strings"
)

type Node interface {
	NodeKind() string
}

type Stmt interface {
	Node
	stmtNode()
	String() string
	GetSpan() Span
}

// afficher <expr>
type PrintStmt struct {
	S    Span
	Expr string
}

func (p *PrintStmt) NodeKind() string { return "PrintStmt" }
func (p *PrintStmt) stmtNode()        {}
func (p *PrintStmt) GetSpan() Span    { return p.S }
func (p *PrintStmt) String() string   { return fmt.Sprintf("PrintStmt(%s)", p.Expr) }

// ecrire <expr>
type WriteStmt struct {
	S    Span
	Expr string
}

func (w *WriteStmt) NodeKind() string { return "WriteStmt" }
func (w *WriteStmt) stmtNode()        {}
func (w *WriteStmt) GetSpan() Span    { return w.S }
func (w *WriteStmt) String() string   { return fmt.Sprintf("WriteStmt(%s)", w.Expr) }

// lire <name> / lire_nombre <name>
type ReadStmt struct {
	S       Span
	Name    string
	Numeric bool
}

func (r *ReadStmt) NodeKind() string { return "ReadStmt" }
func (r *ReadStmt) stmtNode()        {}
func (r *ReadStmt) GetSpan() Span    { return r.S }
func (r *ReadStmt) String() string {
	if r.Numeric {
		return fmt.Sprintf("ReadStmt(%s, nombre)", r.Name)
	}
	return fmt.Sprintf("ReadStmt(%s)", r.Name)
}

type AssignStmt struct {
	S     Span
	Name  string
	Value string
}

func (a *AssignStmt) NodeKind() string { return "AssignStmt" }
func (a *AssignStmt) stmtNode()        {}
func (a *AssignStmt) GetSpan() Span    { return a.S }
func (a *AssignStmt) String() string {
	return fmt.Sprintf("AssignStmt(%s = %s)", a.Name, a.Value)
}

// CallStmt holds the raw argument texts; they are evaluated at run time.
type CallStmt struct {
	S      Span
	Callee string
	Args   []string
}

func (c *CallStmt) NodeKind() string { return "CallStmt" }
func (c *CallStmt) stmtNode()        {}
func (c *CallStmt) GetSpan() Span    { return c.S }
func (c *CallStmt) String() string {
	return fmt.Sprintf("CallStmt(%s(%s))", c.Callee, strings.Join(c.Args, ", "))
}

type IncludeStmt struct {
	S    Span
	Path string
}

func (i *IncludeStmt) NodeKind() string { return "IncludeStmt" }
func (i *IncludeStmt) stmtNode()        {}
func (i *IncludeStmt) GetSpan() Span    { return i.S }
func (i *IncludeStmt) String() string   { return fmt.Sprintf("Include(%q)", i.Path) }

// NoopStmt is a line that matched no statement form. It is not an error.
type NoopStmt struct {
	S    Span
	Text string
}

func (n *NoopStmt) NodeKind() string { return "NoopStmt" }
func (n *NoopStmt) stmtNode()        {}
func (n *NoopStmt) GetSpan() Span    { return n.S }
func (n *NoopStmt) String() string   { return fmt.Sprintf("Noop(%q)", n.Text) }

// --- block headers ---
// Bodies are not part of the header nodes: they are extracted from the
// surrounding lines by the parser's block extractor.

type FunctionDecl struct {
	S      Span
	Name   string
	Params []string
}

func (f *FunctionDecl) NodeKind() string { return "FunctionDecl" }
func (f *FunctionDecl) stmtNode()        {}
func (f *FunctionDecl) GetSpan() Span    { return f.S }
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("Function(%s, params=%d)", f.Name, len(f.Params))
}

type IfStmt struct {
	S         Span
	Condition string
}

func (i *IfStmt) NodeKind() string { return "IfStmt" }
func (i *IfStmt) stmtNode()        {}
func (i *IfStmt) GetSpan() Span    { return i.S }
func (i *IfStmt) String() string   { return fmt.Sprintf("IfStmt(%s)", i.Condition) }

type WhileStmt struct {
	S         Span
	Condition string
}

func (w *WhileStmt) NodeKind() string { return "WhileStmt" }
func (w *WhileStmt) stmtNode()        {}
func (w *WhileStmt) GetSpan() Span    { return w.S }
func (w *WhileStmt) String() string   { return fmt.Sprintf("WhileStmt(%s)", w.Condition) }

// repeter <n> fois
type RepeatStmt struct {
	S     Span
	Count int
}

func (r *RepeatStmt) NodeKind() string { return "RepeatStmt" }
func (r *RepeatStmt) stmtNode()        {}
func (r *RepeatStmt) GetSpan() Span    { return r.S }
func (r *RepeatStmt) String() string   { return fmt.Sprintf("RepeatStmt(%d)", r.Count) }

// pour chaque <var> dans <list>
type ForEachStmt struct {
	S    Span
	Var  string
	List string
}

func (f *ForEachStmt) NodeKind() string { return "ForEachStmt" }
func (f *ForEachStmt) stmtNode()        {}
func (f *ForEachStmt) GetSpan() Span    { return f.S }
func (f *ForEachStmt) String() string {
	return fmt.Sprintf("ForEachStmt(%s in %s)", f.Var, f.List)
}

// sinon / fin outside of an extracted block.
type MarkerStmt struct {
	S    Span
	Kind Kind
}

func (m *MarkerStmt) NodeKind() string { return "MarkerStmt" }
func (m *MarkerStmt) stmtNode()        {}
func (m *MarkerStmt) GetSpan() Span    { return m.S }
func (m *MarkerStmt) String() string   { return fmt.Sprintf("Marker(%s)", m.Kind) }
