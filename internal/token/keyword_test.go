package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
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

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен
	notKw := []string{"If", "CLASS", "Import", "endIf", "identifier", "fn"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestIsBreakChar(t *testing.T) {
	for _, b := range []byte(" \t\n;#$&/*.,\\\"'=!<>(){}[]+-|^@%:~?") {
		if !IsBreakChar(b) {
			t.Fatalf("IsBreakChar(%q) = false, want true", b)
		}
	}
	for _, b := range []byte("aZ09_") {
		if IsBreakChar(b) {
			t.Fatalf("IsBreakChar(%q) = true, want false", b)
		}
	}
}
