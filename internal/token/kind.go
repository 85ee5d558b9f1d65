package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous or zero token.
	Invalid Kind = iota

	// Ident represents an identifier token.
	Ident

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token (only produced by Classify for
	// pre-joined text; the lexer splits on '.').
	FloatLit
	// StringLit represents a quoted string literal, quotes included.
	StringLit
	// BoolLit represents the true/false literals.
	BoolLit

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwEndif represents the 'endif' keyword.
	KwEndif // endif
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwPublic represents the 'public' access specifier.
	KwPublic // public
	// KwPrivate represents the 'private' access specifier.
	KwPrivate // private
	// KwProtected represents the 'protected' access specifier.
	KwProtected // protected

	// Newline is the sentinel for a line break.
	Newline // \n
	// Tab is the sentinel for a tab character.
	Tab // \t

	Semicolon  // ;
	Hash       // #
	Dollar     // $
	Amp        // &
	Slash      // /
	Star       // *
	Dot        // .
	Comma      // ,
	Backslash  // \
	Quote      // "
	Apostrophe // '
	Assign     // =
	Bang       // !
	Lt         // <
	Gt         // >
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]

	// Punct covers the remaining single-character operators
	// (+ - | ^ @ % : ~ ?) that no stage dispatches on.
	Punct
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	BoolLit:     "BoolLit",
	KwIf:        "KwIf",
	KwElif:      "KwElif",
	KwElse:      "KwElse",
	KwEndif:     "KwEndif",
	KwImport:    "KwImport",
	KwClass:     "KwClass",
	KwPublic:    "KwPublic",
	KwPrivate:   "KwPrivate",
	KwProtected: "KwProtected",
	Newline:     "Newline",
	Tab:         "Tab",
	Semicolon:   "Semicolon",
	Hash:        "Hash",
	Dollar:      "Dollar",
	Amp:         "Amp",
	Slash:       "Slash",
	Star:        "Star",
	Dot:         "Dot",
	Comma:       "Comma",
	Backslash:   "Backslash",
	Quote:       "Quote",
	Apostrophe:  "Apostrophe",
	Assign:      "Assign",
	Bang:        "Bang",
	Lt:          "Lt",
	Gt:          "Gt",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Punct:       "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether the kind is one of the recognised keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwIf && k <= KwProtected
}

// IsDirectiveKeyword reports whether the kind can follow '#' to form a
// conditional compilation directive.
func (k Kind) IsDirectiveKeyword() bool {
	switch k {
	case KwIf, KwElif, KwElse, KwEndif:
		return true
	default:
		return false
	}
}

// IsAccessSpecifier reports whether the kind is public, private or protected.
func (k Kind) IsAccessSpecifier() bool {
	return k == KwPublic || k == KwPrivate || k == KwProtected
}

// IsLiteral reports whether the kind is a numeric, boolean or string literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, BoolLit:
		return true
	default:
		return false
	}
}

// IsOpener reports whether the kind opens a bracket pair.
func (k Kind) IsOpener() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloser reports whether the kind closes a bracket pair.
func (k Kind) IsCloser() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing kind that matches an opener, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
