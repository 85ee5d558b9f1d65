package lexer

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

const (
	diagUnterminatedString  = diag.LexUnterminatedString
	diagUnterminatedComment = diag.LexUnterminatedBlockComment
	diagUnterminatedDoc     = diag.LexUnterminatedDocBlock
)

// tryOpenTrivia распознаёт начало комментария или doc-блока.
// - // ... до \n (сам \n остаётся токеном)
// - /* ... */ (переводы строк внутри съедаются)
// - &{ ... } с учётом вложенных скобок; '&' забирается обратно из вывода
func (lx *Lexer) tryOpenTrivia(c byte) bool {
	switch {
	case c == '/' && lx.cursor.PeekNext() == '/':
		lx.flush()
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.lineComment = true
		return true

	case c == '/' && lx.cursor.PeekNext() == '*':
		lx.flush()
		lx.openC = lx.here("/")
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.blockComment = true
		return true

	case c == '{' && lx.pending.Len() == 0:
		last, ok := lx.lastEmitted()
		if !ok || last.Kind != token.Amp {
			return false
		}
		lx.out = lx.out[:len(lx.out)-1]
		lx.openD = last
		lx.cursor.Bump()
		lx.docDepth = 1
		return true
	}
	return false
}

func (lx *Lexer) skipLineComment() {
	if lx.cursor.Peek() == '\n' {
		lx.lineComment = false
		lx.cursor.Bump()
		lx.emit("\n", lx.line)
		return
	}
	lx.cursor.Bump()
}

func (lx *Lexer) skipBlockComment() {
	if lx.cursor.Peek() == '*' && lx.cursor.PeekNext() == '/' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.blockComment = false
		return
	}
	lx.cursor.Bump()
}

func (lx *Lexer) skipDocBlock() {
	switch lx.cursor.Bump() {
	case '{':
		lx.docDepth++
	case '}':
		lx.docDepth--
	}
}

// rawTrivia follows comments and doc blocks when they are kept as tokens.
// Inside them '"' is a plain Quote token and never opens a string.
type rawTrivia struct {
	line   bool
	block  bool
	opener bool // следующий символ — '*' открывающего "/*"
	star   bool
	doc    int
}

func (t *rawTrivia) active() bool {
	return t.line || t.block || t.doc > 0
}

// trackRawTrivia updates rawTrivia for c before it is tokenized.
func (lx *Lexer) trackRawTrivia(c byte) {
	t := &lx.raw
	switch {
	case t.line:
		t.line = c != '\n'
	case t.block:
		switch {
		case t.opener:
			t.opener = false
		case c == '/' && t.star:
			t.block, t.star = false, false
		default:
			t.star = c == '*'
		}
	case t.doc > 0:
		switch c {
		case '{':
			t.doc++
		case '}':
			t.doc--
		}
	case c == '/' && lx.cursor.PeekNext() == '/':
		t.line = true
	case c == '/' && lx.cursor.PeekNext() == '*':
		t.block, t.opener = true, true
	case c == '{' && lx.pending.Len() == 0:
		if last, ok := lx.lastEmitted(); ok && last.Kind == token.Amp {
			t.doc = 1
		}
	}
}
