package interpreter

import (
	"io"
	"strconv"
	"strings"

	"lapin/ast"
	"lapin/lexer"
	"lapin/parser"
)

// ExecuteLine runs one simple statement and returns its result without
// routing it to the output. Block openers need their body and are rejected.
func (i *Interpreter) ExecuteLine(text string) (Value, error) {
	line := ast.Line{No: i.current.No, Text: text}
	return i.execLine(line, lexer.Classify(line.Trimmed()))
}

func (i *Interpreter) execLine(line ast.Line, kind ast.Kind) (Value, error) {
	if kind.OpensBlock() {
		return Absent(), errorf(parser.ErrSyntax, "Un bloc doit s'écrire sur plusieurs lignes, fermé par 'fin'")
	}
	stmt, err := parser.ParseKind(line, kind)
	if err != nil {
		return Absent(), err
	}
	if stmt == nil {
		return Absent(), nil
	}
	return i.execStmt(stmt)
}

func (i *Interpreter) execStmt(s ast.Stmt) (Value, error) {
	switch stmt := s.(type) {
	case *ast.PrintStmt:
		v, err := i.Eval(stmt.Expr)
		if err != nil {
			return Absent(), err
		}
		return Text(i.displayText(v)), nil

	case *ast.WriteStmt:
		v, err := i.Eval(stmt.Expr)
		if err != nil {
			return Absent(), err
		}
		return Absent(), i.write(v.String())

	case *ast.ReadStmt:
		var v Value
		var err error
		if stmt.Numeric {
			v, err = i.readNumber()
		} else {
			var line string
			line, err = i.readLine()
			v = Text(line)
		}
		if err != nil {
			return Absent(), err
		}
		i.scope.Set(stmt.Name, v)
		return Absent(), nil

	case *ast.AssignStmt:
		v, err := i.Eval(stmt.Value)
		if err != nil {
			return Absent(), err
		}
		i.scope.Set(stmt.Name, v)
		i.log.Debug("affectation", "variable", stmt.Name, "valeur", v.String())
		return Absent(), nil

	case *ast.CallStmt:
		args, err := i.evalArgs(stmt.Args)
		if err != nil {
			return Absent(), err
		}
		return i.Call(stmt.Callee, args)

	case *ast.IncludeStmt:
		return i.include(stmt.Path)

	case *ast.MarkerStmt, *ast.NoopStmt:
		return Absent(), nil

	default:
		return Absent(), errorf(parser.ErrSyntax, "Instruction non supportée %s", s.NodeKind())
	}
}

// displayText renders v for afficher. Text values get every bound variable
// name replaced by the variable's value, in binding order, anywhere it
// occurs in the text.
func (i *Interpreter) displayText(v Value) string {
	if v.Kind != ValText {
		return v.String()
	}
	s := v.Str
	for _, name := range i.scope.Names() {
		val, _ := i.scope.Get(name)
		s = strings.ReplaceAll(s, name, val.String())
	}
	return s
}

func (i *Interpreter) write(s string) error {
	if _, err := io.WriteString(i.w, s); err != nil {
		return errorf(ErrIO, "Écriture impossible: %v", err)
	}
	if f, ok := i.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errorf(ErrIO, "Écriture impossible: %v", err)
		}
	}
	return nil
}

func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errorf(ErrIO, "Lecture impossible: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readNumber asks again until the input parses as a number.
func (i *Interpreter) readNumber() (Value, error) {
	for {
		line, err := i.readLine()
		if err != nil {
			return Absent(), err
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(line), 64); err == nil {
			return Float(f), nil
		}
		if err := i.write("Veuillez entrer un nombre valide: "); err != nil {
			return Absent(), err
		}
	}
}
