package token

import "strconv"

var keywords = map[string]Kind{
	"if":        KwIf,
	"elif":      KwElif,
	"else":      KwElse,
	"endif":     KwEndif,
	"import":    KwImport,
	"class":     KwClass,
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"true":      BoolLit,
	"false":     BoolLit,
}

var punct = map[byte]Kind{
	'\n': Newline,
	'\t': Tab,
	';':  Semicolon,
	'#':  Hash,
	'$':  Dollar,
	'&':  Amp,
	'/':  Slash,
	'*':  Star,
	'.':  Dot,
	',':  Comma,
	'\\': Backslash,
	'"':  Quote,
	'\'': Apostrophe,
	'=':  Assign,
	'!':  Bang,
	'<':  Lt,
	'>':  Gt,
	'(':  LParen,
	')':  RParen,
	'{':  LBrace,
	'}':  RBrace,
	'[':  LBracket,
	']':  RBracket,
	'+':  Punct,
	'-':  Punct,
	'|':  Punct,
	'^':  Punct,
	'@':  Punct,
	'%':  Punct,
	':':  Punct,
	'~':  Punct,
	'?':  Punct,
}

// IsBreakChar reports whether b ends an identifier run in the lexer.
// Spaces are break characters too but never become tokens.
func IsBreakChar(b byte) bool {
	if b == ' ' || b == '\r' {
		return true
	}
	_, ok := punct[b]
	return ok
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Classify decides the kind of a token from its text.
func Classify(text string) Kind {
	if text == "" {
		return Invalid
	}
	if len(text) == 1 {
		if k, ok := punct[text[0]]; ok {
			return k
		}
	}
	if k, ok := keywords[text]; ok {
		return k
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return StringLit
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntLit
	}
	if isDigit(text[0]) {
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return FloatLit
		}
	}
	return Ident
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
