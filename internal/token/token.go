package token

import (
	"strconv"
	"strings"
)

// Token is a single lexical token together with its provenance.
type Token struct {
	Kind Kind
	Text string
	File string // module path of the file the token came from
	Line uint32 // 1-based
}

// New builds a token and classifies its text.
func New(file string, line uint32, text string) Token {
	return Token{Kind: Classify(text), Text: text, File: file, Line: line}
}

// WithText returns a copy of t carrying new text (and the matching kind).
func (t Token) WithText(text string) Token {
	return New(t.File, t.Line, text)
}

// Synth builds a token that inherits provenance from t.
func (t Token) Synth(text string) Token {
	return New(t.File, t.Line, text)
}

// Equal reports structural equality: only the text is compared.
func (t Token) Equal(other Token) bool { return t.Text == other.Text }

// Is reports whether the token text equals s.
func (t Token) Is(s string) bool { return t.Text == s }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsSeparator reports whether the token is the canonical statement separator.
func (t Token) IsSeparator() bool { return t.Kind == Semicolon }

// Pos renders the provenance as "file:line".
func (t Token) Pos() string {
	return t.File + ":" + strconv.FormatUint(uint64(t.Line), 10)
}

func (t Token) String() string {
	switch t.Kind {
	case Newline:
		return `\n`
	case Tab:
		return `\t`
	default:
		return t.Text
	}
}

// Stream is an ordered token sequence in lexical order.
type Stream []Token

// Texts returns the token texts in order.
func (s Stream) Texts() []string {
	out := make([]string, len(s))
	for i, tok := range s {
		out[i] = tok.Text
	}
	return out
}

// Equal reports whether both streams hold the same texts in the same order.
func (s Stream) Equal(other Stream) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the backing array.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// String joins the tokens with single spaces; sentinels are escaped.
func (s Stream) String() string {
	var b strings.Builder
	for i, tok := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
