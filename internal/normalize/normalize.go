// Package normalize rewrites a raw token stream into the canonical form used by
// every later stage: no comments, no doc blocks, no whitespace sentinels, and
// ';' as the only statement separator.
package normalize

import (
	"tcab/internal/token"
)

// Normalize runs all passes in order. Normalizing a normalized stream is a no-op.
func Normalize(ts token.Stream) token.Stream {
	ts = StripLineComments(ts)
	ts = StripBlockComments(ts)
	ts = StripDocBlocks(ts)
	return CanonicalizeSeparators(ts)
}

// quoteTracker follows string state over standalone '"' tokens. Quotes inside
// comments and doc blocks do not toggle, nor does a '"' between two
// apostrophes (a character literal).
type quoteTracker struct {
	in     bool
	line   bool
	block  bool
	doc    int
	opener bool // следующий токен — вторая половина "/*" или "&{"
	star   bool
}

// active reports whether the next token is plain code.
func (q *quoteTracker) active() bool {
	return !q.in && !q.line && !q.block && q.doc == 0
}

func (q *quoteTracker) observe(ts token.Stream, i int) {
	kind := ts[i].Kind
	switch {
	case q.opener:
		q.opener = false
	case q.line:
		q.line = kind != token.Newline
	case q.block:
		switch {
		case kind == token.Slash && q.star:
			q.block, q.star = false, false
		default:
			q.star = kind == token.Star
		}
	case q.doc > 0:
		switch kind {
		case token.LBrace:
			q.doc++
		case token.RBrace:
			q.doc--
		}
	case kind == token.Quote:
		if !charLiteral(ts, i) {
			q.in = !q.in
		}
	case q.in:
	case kind == token.Slash && next(ts, i) == token.Slash:
		q.line = true
	case kind == token.Slash && next(ts, i) == token.Star:
		q.block, q.opener = true, true
	case kind == token.Amp && next(ts, i) == token.LBrace:
		q.doc, q.opener = 1, true
	}
}

func charLiteral(ts token.Stream, i int) bool {
	return i > 0 && i+1 < len(ts) && ts[i-1].Kind == token.Apostrophe && ts[i+1].Kind == token.Apostrophe
}

func next(ts token.Stream, i int) token.Kind {
	if i+1 < len(ts) {
		return ts[i+1].Kind
	}
	return token.Invalid
}

// StripLineComments drops "//" and everything up to the next Newline.
// The Newline itself is kept.
func StripLineComments(ts token.Stream) token.Stream {
	out := make(token.Stream, 0, len(ts))
	var q quoteTracker
	inComment := false
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if inComment {
			if tok.Kind == token.Newline {
				inComment = false
				out = append(out, tok)
			}
			continue
		}
		if q.active() && tok.Kind == token.Slash && next(ts, i) == token.Slash {
			inComment = true
			i++
			continue
		}
		q.observe(ts, i)
		out = append(out, tok)
	}
	return out
}

// StripBlockComments drops "/*" ... "*/" inclusive, across newlines.
func StripBlockComments(ts token.Stream) token.Stream {
	out := make(token.Stream, 0, len(ts))
	var q quoteTracker
	inComment := false
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if inComment {
			if tok.Kind == token.Star && next(ts, i) == token.Slash {
				inComment = false
				i++
			}
			continue
		}
		if q.active() && tok.Kind == token.Slash && next(ts, i) == token.Star {
			inComment = true
			i++
			continue
		}
		q.observe(ts, i)
		out = append(out, tok)
	}
	return out
}

// StripDocBlocks drops "&{" ... "}" including nested braces.
func StripDocBlocks(ts token.Stream) token.Stream {
	out := make(token.Stream, 0, len(ts))
	var q quoteTracker
	depth := 0
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if depth > 0 {
			switch tok.Kind {
			case token.LBrace:
				depth++
			case token.RBrace:
				depth--
			}
			continue
		}
		if q.active() && tok.Kind == token.Amp && next(ts, i) == token.LBrace {
			depth = 1
			i++
			continue
		}
		q.observe(ts, i)
		out = append(out, tok)
	}
	return out
}

// CanonicalizeSeparators drops tabs, folds ';' and newline runs into a single
// ';', drops leading separators and joins lines continued with '\'.
func CanonicalizeSeparators(ts token.Stream) token.Stream {
	lines := make(token.Stream, 0, len(ts))
	for _, tok := range ts {
		switch tok.Kind {
		case token.Tab:
		case token.Semicolon:
			lines = append(lines, tok.WithText("\n"))
		default:
			lines = append(lines, tok)
		}
	}

	collapsed := make(token.Stream, 0, len(lines))
	for i, tok := range lines {
		if tok.Kind != token.Newline {
			collapsed = append(collapsed, tok)
			continue
		}
		if len(collapsed) == 0 {
			continue
		}
		if i > 0 && lines[i-1].Kind == token.Newline {
			continue
		}
		collapsed = append(collapsed, tok.WithText(";"))
	}

	out := make(token.Stream, 0, len(collapsed))
	for i := 0; i < len(collapsed); i++ {
		if collapsed[i].Kind == token.Backslash && next(collapsed, i) == token.Semicolon {
			i++
			continue
		}
		out = append(out, collapsed[i])
	}
	return out
}
