package interpreter

import (
	"lapin/ast"
	"lapin/parser"
)

// runBlock executes the block whose header is lines[start] and returns the
// index just past its "fin".
func (i *Interpreter) runBlock(lines []ast.Line, start int, kind ast.Kind) (int, error) {
	stmt, err := parser.ParseKind(lines[start], kind)
	if err != nil {
		return start, err
	}

	switch hdr := stmt.(type) {
	case *ast.FunctionDecl:
		return i.defineFunction(lines, start, hdr)
	case *ast.IfStmt:
		return i.execIf(lines, start, hdr)
	case *ast.WhileStmt:
		return i.execWhile(lines, start, hdr)
	case *ast.RepeatStmt:
		return i.execRepeat(lines, start, hdr)
	case *ast.ForEachStmt:
		return i.execForEach(lines, start, hdr)
	}
	return start + 1, nil
}

func (i *Interpreter) defineFunction(lines []ast.Line, start int, decl *ast.FunctionDecl) (int, error) {
	body, next, err := parser.ExtractBlock(lines, start)
	if err != nil {
		return next, err
	}
	i.funcs[decl.Name] = &Function{
		Name:   decl.Name,
		Params: decl.Params,
		Body:   body,
		File:   i.filename,
		S:      decl.S,
	}
	i.log.Debug("fonction définie", "nom", decl.Name, "params", decl.Params, "lignes", len(body))
	return next, nil
}

func (i *Interpreter) execIf(lines []ast.Line, start int, stmt *ast.IfStmt) (int, error) {
	then, els, next, err := parser.ExtractConditional(lines, start)
	if err != nil {
		return next, err
	}
	cond, err := i.Eval(stmt.Condition)
	if err != nil {
		return next, err
	}
	if cond.Truthy() {
		return next, i.runLines(then)
	}
	return next, i.runLines(els)
}

func (i *Interpreter) execWhile(lines []ast.Line, start int, stmt *ast.WhileStmt) (int, error) {
	body, next, err := parser.ExtractBlock(lines, start)
	if err != nil {
		return next, err
	}

	for n := 0; ; n++ {
		cond, err := i.Eval(stmt.Condition)
		if err != nil {
			return next, err
		}
		if !cond.Truthy() {
			return next, nil
		}
		if i.maxIterations > 0 && n >= i.maxIterations {
			return next, errorf(ErrLoopLimit, "Boucle 'tant que' arrêtée après %d itérations", i.maxIterations)
		}
		if err := i.runLines(body); err != nil {
			return next, err
		}
	}
}

func (i *Interpreter) execRepeat(lines []ast.Line, start int, stmt *ast.RepeatStmt) (int, error) {
	body, next, err := parser.ExtractBlock(lines, start)
	if err != nil {
		return next, err
	}
	for n := 0; n < stmt.Count; n++ {
		if err := i.runLines(body); err != nil {
			return next, err
		}
	}
	return next, nil
}

// The list is looked up before the body is extracted, so an unknown list
// is reported even when the block is also unterminated.
func (i *Interpreter) execForEach(lines []ast.Line, start int, stmt *ast.ForEachStmt) (int, error) {
	lv, ok := i.scope.Get(stmt.List)
	if !ok {
		return start + 1, errorf(ErrUndefined, "Liste '%s' non définie", stmt.List)
	}
	if lv.Kind != ValList {
		return start + 1, errorf(ErrNotAList, "'%s' n'est pas une liste", stmt.List)
	}

	body, next, err := parser.ExtractBlock(lines, start)
	if err != nil {
		return next, err
	}

	// Length is re-read every step: the body may grow or shrink the list.
	for idx := 0; idx < len(lv.List.Elems); idx++ {
		i.scope.Set(stmt.Var, lv.List.Elems[idx])
		if err := i.runLines(body); err != nil {
			return next, err
		}
	}

	if stmt.Var != stmt.List {
		i.scope.Delete(stmt.Var)
	}
	return next, nil
}
