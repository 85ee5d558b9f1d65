package testfn_test

import (
	"testing"

	"tcab/internal/diag"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/source"
	"tcab/internal/testfn"
	"tcab/internal/token"
)

func prepare(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet("")
	file := fs.Get(fs.AddVirtual("t.tcab", []byte(src)))
	return normalize.Normalize(lexer.Lex(file, lexer.Options{}))
}

func convert(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	out := testfn.Convert(prepare(t, src), diag.BagReporter{Bag: bag})
	return out.String(), bag
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "plain function",
			src:  "fn(a,b) { x; }\n$ { body; }\n",
			want: "$ fn ( a , b ) ; fn ( a , b ) { x ; } $ { body ; } ;",
		},
		{
			name: "return type",
			src:  "int add(a,b) { ret; } $ { check; }\n",
			want: "int $ add ( a , b ) ; int add ( a , b ) { ret ; } $ { check ; } ;",
		},
		{
			name: "after a statement",
			src:  "x;\nint add(a) { }\n$ { }\n",
			want: "x ; int $ add ( a ) ; int add ( a ) { } $ { } ;",
		},
		{
			name: "inside a class",
			src:  "public class C { f(g(1)) { } $ { } }\n",
			want: "public class C { $ f ( g ( 1 ) ) ; f ( g ( 1 ) ) { } $ { } } ;",
		},
		{
			name: "no test block",
			src:  "fn(a) { x; }\n",
			want: "fn ( a ) { x ; } ;",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, bag := convert(t, tc.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diag.FormatGoldenDiagnostics(bag.Items(), false))
			}
			if got != tc.want {
				t.Fatalf("\n got: %s\nwant: %s", got, tc.want)
			}
		})
	}
}

func TestConvertDetachedBlocks(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"no function", "x;\n$ { }\n", "x ; $ { } ;"},
		{"test of a test", "f(a) { }\n$ { }\n$ { }\n", "$ f ( a ) ; f ( a ) { } $ { } ; $ { } ;"},
		{"block without params", "public class C { }\n$ { }\n", "public class C { } ; $ { } ;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, bag := convert(t, tc.src)
			if got != tc.want {
				t.Fatalf("\n got: %s\nwant: %s", got, tc.want)
			}
			items := bag.Items()
			if len(items) != 1 || items[0].Code != diag.SynTestWithoutParams {
				t.Fatalf("expected one SYN2501, got:\n%s", diag.FormatGoldenDiagnostics(items, false))
			}
		})
	}
}

func TestTestOfTestHint(t *testing.T) {
	_, bag := convert(t, "f(a) { }\n$ { }\n$ { }\n")
	items := bag.Items()
	if len(items) != 1 || items[0].Hint != "Remove one of the test functions." {
		t.Fatalf("unexpected diagnostics: %v", items)
	}
}
