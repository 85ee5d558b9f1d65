package diag

import (
	"errors"
	"fmt"

	"tcab/internal/token"
)

type Note struct {
	Token *token.Token
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Category Category
	Message  string
	Hint     string
	Token    *token.Token // nil when the problem has no source position (CLI input)
	Notes    []Note
}

func New(sev Severity, code Code, tok *token.Token, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Category: code.Category(),
		Message:  msg,
		Token:    tok,
	}
}

func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

func (d Diagnostic) WithNote(tok *token.Token, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Token: tok, Msg: msg})
	return d
}

// Pos returns "file:line" of the primary token or "<cli>" without one.
func (d Diagnostic) Pos() string {
	if d.Token == nil {
		return "<cli>"
	}
	return d.Token.Pos()
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s: %s", d.Severity, d.Code.ID(), d.Pos(), d.Message)
}

// FatalError carries a diagnostic that stops the compilation.
type FatalError struct {
	Diagnostic Diagnostic
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Diagnostic.Code.ID(), e.Diagnostic.Pos(), e.Diagnostic.Message)
}

// Fatal wraps d as a *FatalError; severity is forced to error.
func Fatal(d Diagnostic) *FatalError {
	d.Severity = SevError
	return &FatalError{Diagnostic: d}
}

// AsFatal unwraps err to a *FatalError if it is (or wraps) one.
func AsFatal(err error) (*FatalError, bool) {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
