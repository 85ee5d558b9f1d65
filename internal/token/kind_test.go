package token_test

import (
	"testing"

	"tcab/internal/token"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want token.Kind
	}{
		{"", token.Invalid},
		{"foo", token.Ident},
		{"_x1", token.Ident},
		{"42", token.IntLit},
		{"-7", token.IntLit},
		{"1.5", token.FloatLit},
		{`"a;b"`, token.StringLit},
		{`""`, token.StringLit},
		{`"`, token.Quote},
		{"true", token.BoolLit},
		{"class", token.KwClass},
		{"\n", token.Newline},
		{"\t", token.Tab},
		{";", token.Semicolon},
		{"$", token.Dollar},
		{"{", token.LBrace},
		{"+", token.Punct},
		{"inf", token.Ident},
	}
	for _, tc := range cases {
		if got := token.Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.KwIf, token.KwElif, token.KwElse, token.KwEndif} {
		if !k.IsDirectiveKeyword() {
			t.Fatalf("%v should be a directive keyword", k)
		}
		if !k.IsKeyword() {
			t.Fatalf("%v should be a keyword", k)
		}
	}
	if token.KwImport.IsDirectiveKeyword() {
		t.Fatalf("KwImport must not be a directive keyword")
	}
	for _, k := range []token.Kind{token.KwPublic, token.KwPrivate, token.KwProtected} {
		if !k.IsAccessSpecifier() {
			t.Fatalf("%v should be an access specifier", k)
		}
	}
	if token.KwClass.IsAccessSpecifier() {
		t.Fatalf("KwClass must not be an access specifier")
	}
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.BoolLit}
	for _, k := range lits {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if token.Ident.IsLiteral() {
		t.Fatalf("Ident must NOT be literal")
	}
}

func TestBracketPairs(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBrace:   token.RBrace,
		token.LBracket: token.RBracket,
	}
	for open, closeKind := range pairs {
		if !open.IsOpener() || open.IsCloser() {
			t.Fatalf("%v should be an opener only", open)
		}
		if !closeKind.IsCloser() || closeKind.IsOpener() {
			t.Fatalf("%v should be a closer only", closeKind)
		}
		if open.Closer() != closeKind {
			t.Fatalf("%v.Closer() = %v, want %v", open, open.Closer(), closeKind)
		}
	}
	if token.Ident.Closer() != token.Invalid {
		t.Fatalf("Ident.Closer() should be Invalid")
	}
}

func TestTokenEqualityIgnoresProvenance(t *testing.T) {
	a := token.New("./a.tcab", 1, "x")
	b := token.New("./b.tcab", 9, "x")
	if !a.Equal(b) {
		t.Fatalf("tokens with the same text must be equal")
	}
	if a.Equal(a.WithText("y")) {
		t.Fatalf("tokens with different text must differ")
	}
}

func TestWithTextReclassifies(t *testing.T) {
	semi := token.New("./a.tcab", 3, ";")
	nl := semi.WithText("\n")
	if nl.Kind != token.Newline {
		t.Fatalf("WithText(\\n).Kind = %v, want Newline", nl.Kind)
	}
	if nl.File != semi.File || nl.Line != semi.Line {
		t.Fatalf("WithText must keep provenance, got %s", nl.Pos())
	}
	if semi.Kind != token.Semicolon {
		t.Fatalf("original token must stay unchanged")
	}
}

func TestStreamString(t *testing.T) {
	s := token.Stream{
		token.New("f", 1, "a"),
		token.New("f", 1, "\n"),
		token.New("f", 2, "\t"),
		token.New("f", 2, "b"),
	}
	if got, want := s.String(), `a \n \t b`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	c := s.Clone()
	c[0] = c[0].WithText("z")
	if s[0].Text != "a" {
		t.Fatalf("Clone must not share the backing array")
	}
	if !s.Equal(s.Clone()) {
		t.Fatalf("stream must equal its clone")
	}
}
