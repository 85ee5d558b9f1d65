package lexer

// Cursor представляет собой позицию внутри одной строки файла.
// Строка всегда заканчивается '\n', который добавляет лексер.
type Cursor struct {
	Text string
	Off  int
}

// NewCursor creates a cursor over line with the terminating '\n' appended.
func NewCursor(line string) Cursor {
	return Cursor{Text: line + "\n"}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Text)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// PeekNext читает байт после текущего, иначе 0
func (c *Cursor) PeekNext() byte {
	if c.Off+1 >= len(c.Text) {
		return 0
	}
	return c.Text[c.Off+1]
}

// Prev возвращает байт перед текущим, иначе 0
func (c *Cursor) Prev() byte {
	if c.Off == 0 || c.Off > len(c.Text) {
		return 0
	}
	return c.Text[c.Off-1]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Text[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
