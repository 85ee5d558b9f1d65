package lexer

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// KeepComments disables comment and doc-block recognition; their
	// characters are tokenized like any other break characters.
	KeepComments bool
}

func (lx *Lexer) report(code diag.Code, tok token.Token, msg, hint string) {
	diag.ReportError(lx.opts.Reporter, code, &tok, msg).WithHint(hint).Emit()
}
