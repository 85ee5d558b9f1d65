package lexer

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"tcab/internal/source"
	"tcab/internal/token"
)

// Lex tokenizes the whole file. Every line contributes a trailing Newline token.
func Lex(file *source.File, opts Options) token.Stream {
	return New(file, opts).Run()
}

type Lexer struct {
	file *source.File
	opts Options
	out  token.Stream

	cursor  Cursor
	line    uint32
	pending strings.Builder // текущий идентификатор или строка
	start   uint32          // строка, где начался pending

	inQuotes bool
	escaped  bool
	openQ    token.Token // открывающая кавычка, для диагностики

	lineComment  bool
	blockComment bool
	openC        token.Token
	docDepth     int
	openD        token.Token

	// границы комментариев в режиме KeepComments: символы остаются токенами
	raw rawTrivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
		out:  make(token.Stream, 0, len(file.Content)/2+1),
	}
}

// Run scans every line and returns the collected stream.
// Unterminated constructs are reported once the input is exhausted.
func (lx *Lexer) Run() token.Stream {
	for i, text := range lx.file.Lines() {
		n, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line number overflow: %w", err))
		}
		lx.line = n
		lx.cursor = NewCursor(text)
		lx.scanLine()
	}
	lx.finish()
	return lx.out
}

func (lx *Lexer) scanLine() {
	for !lx.cursor.EOF() {
		switch {
		case lx.blockComment:
			lx.skipBlockComment()
		case lx.lineComment:
			lx.skipLineComment()
		case lx.docDepth > 0:
			lx.skipDocBlock()
		case lx.inQuotes:
			lx.scanStringChar()
		default:
			lx.scanChar()
		}
	}
}

func (lx *Lexer) scanChar() {
	c := lx.cursor.Peek()

	if lx.opts.KeepComments {
		lx.trackRawTrivia(c)
	} else if lx.tryOpenTrivia(c) {
		return
	}

	switch {
	case c == '"' && lx.raw.active():
		lx.flush()
		lx.cursor.Bump()
		lx.emit(`"`, lx.line)
	case c == '"' && !lx.isCharLiteralQuote():
		lx.flush()
		lx.openString()
	case token.IsBreakChar(c):
		lx.flush()
		lx.cursor.Bump()
		if c == ' ' || c == '\r' {
			return
		}
		lx.emit(string(c), lx.line)
	default:
		if lx.pending.Len() == 0 {
			lx.start = lx.line
		}
		lx.pending.WriteByte(lx.cursor.Bump())
	}
}

// '"' между двумя апострофами — символьный литерал, кавычку не переключает.
func (lx *Lexer) isCharLiteralQuote() bool {
	return lx.cursor.Prev() == '\'' && lx.cursor.PeekNext() == '\''
}

// flush выпускает накопленный идентификатор/литерал.
func (lx *Lexer) flush() {
	if lx.pending.Len() == 0 {
		return
	}
	lx.emit(lx.pending.String(), lx.start)
	lx.pending.Reset()
}

func (lx *Lexer) emit(text string, line uint32) {
	lx.out = append(lx.out, token.New(lx.file.Path, line, text))
}

func (lx *Lexer) lastEmitted() (token.Token, bool) {
	if len(lx.out) == 0 {
		return token.Token{}, false
	}
	return lx.out[len(lx.out)-1], true
}

func (lx *Lexer) here(text string) token.Token {
	return token.New(lx.file.Path, lx.line, text)
}

func (lx *Lexer) finish() {
	if lx.inQuotes {
		lx.flush()
		lx.inQuotes = false
		lx.report(diagUnterminatedString, lx.openQ,
			"unterminated string literal", "Close the string with '\"'.")
	}
	lx.flush()
	if lx.blockComment {
		lx.report(diagUnterminatedComment, lx.openC,
			"unterminated block comment", "Close the comment with '*/'.")
	}
	if lx.docDepth > 0 {
		lx.report(diagUnterminatedDoc, lx.openD,
			"unterminated documentation block", "Close the '&{' block with '}'.")
	}
}
