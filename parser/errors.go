package parser

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax            = errors.New("syntaxe invalide")
	ErrUnterminatedBlock = fmt.Errorf("%w: bloc non fermé par 'fin'", ErrSyntax)
)

// SyntaxError is a malformed block header or an unterminated block. Line is
// the 1-based line of the offending header.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string { return e.Msg }

func (e *SyntaxError) Unwrap() error {
	if e.Err == nil {
		return ErrSyntax
	}
	return e.Err
}

func errAt(line int, msg string) error {
	return &SyntaxError{Line: line, Msg: msg, Err: ErrSyntax}
}
