package lexer

// openString starts a string token; the opening quote is part of its text.
func (lx *Lexer) openString() {
	lx.inQuotes = true
	lx.escaped = false
	lx.start = lx.line
	lx.openQ = lx.here(`"`)
	lx.pending.WriteByte(lx.cursor.Bump())
}

// scanStringChar appends one character to the open string.
// Перевод строки внутри строки сохраняется как есть.
func (lx *Lexer) scanStringChar() {
	c := lx.cursor.Bump()
	lx.pending.WriteByte(c)
	switch {
	case lx.escaped:
		lx.escaped = false
	case c == '\\':
		lx.escaped = true
	case c == '"':
		lx.inQuotes = false
		lx.flush()
	}
}
