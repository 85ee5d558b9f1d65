package syntax_test

import (
	"testing"

	"tcab/internal/diag"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/source"
	"tcab/internal/syntax"
	"tcab/internal/token"
)

func prepare(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet("")
	file := fs.Get(fs.AddVirtual("s.tcab", []byte(src)))
	return normalize.Normalize(lexer.Lex(file, lexer.Options{}))
}

func check(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	out := syntax.Check(prepare(t, src), diag.BagReporter{Bag: bag})
	return out.String(), bag
}

func expectCodes(t *testing.T, src string, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("%q: got %d diagnostics, want %d:\n%s", src, len(items), len(want), diag.FormatGoldenDiagnostics(items, true))
	}
	for i, d := range items {
		if d.Code != want[i] {
			t.Fatalf("%q: diagnostic %d is %s, want %s", src, i, d.Code.ID(), want[i].ID())
		}
	}
}

func TestClassHeaders(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"public class Foo { }", "public class Foo { } ;"},
		{"private\nclass Foo { }", "private class Foo { } ;"},
		{"protected class\n\nFoo { }", "protected class Foo { } ;"},
	}
	for _, tc := range cases {
		got, bag := check(t, tc.src)
		expectCodes(t, tc.src, bag)
		if got != tc.want {
			t.Errorf("Check(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestClassHeaderErrors(t *testing.T) {
	src := "class Foo { }"
	_, bag := check(t, src)
	expectCodes(t, src, bag, diag.SynClassPredecessor)

	src = "x ; class Foo { }"
	_, bag = check(t, src)
	expectCodes(t, src, bag, diag.SynClassPredecessor)

	src = "public class { }"
	_, bag = check(t, src)
	expectCodes(t, src, bag, diag.SynClassBrace)
}

func TestBrackets(t *testing.T) {
	cases := []struct {
		src  string
		want []diag.Code
	}{
		{"f ( a [ 1 ] ) { }", nil},
		{"( ]", []diag.Code{diag.SynBracketMismatch}},
		{"(", []diag.Code{diag.SynUnclosedBracket}},
		{")", []diag.Code{diag.SynUnexpectedCloser}},
		{"{ ( }", []diag.Code{diag.SynBracketMismatch, diag.SynUnclosedBracket}},
		{"[ [", []diag.Code{diag.SynUnclosedBracket, diag.SynUnclosedBracket}},
	}
	for _, tc := range cases {
		bag := diag.NewBag(32)
		syntax.CheckBrackets(prepare(t, tc.src), diag.BagReporter{Bag: bag})
		expectCodes(t, tc.src, bag, tc.want...)
	}
}

func TestMismatchNotesOpener(t *testing.T) {
	bag := diag.NewBag(8)
	syntax.CheckBrackets(prepare(t, "(\n]"), diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Token == nil || d.Token.Line != 2 {
		t.Fatalf("mismatch must point at the closer")
	}
	if len(d.Notes) != 1 || d.Notes[0].Token == nil || d.Notes[0].Token.Line != 1 {
		t.Fatalf("mismatch must note the opener: %+v", d.Notes)
	}
}

func TestCheckRunsBothValidations(t *testing.T) {
	src := "class Foo { ("
	_, bag := check(t, src)
	expectCodes(t, src, bag, diag.SynClassPredecessor, diag.SynUnclosedBracket, diag.SynUnclosedBracket)
}
