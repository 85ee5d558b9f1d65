package normalize_test

import (
	"testing"

	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/source"
	"tcab/internal/token"
)

func stream(texts ...string) token.Stream {
	out := make(token.Stream, 0, len(texts))
	for _, s := range texts {
		out = append(out, token.New("./t.tcab", 1, s))
	}
	return out
}

// rawLex lexes with comment recognition disabled, like `tcab tokenize --raw`.
func rawLex(input string) token.Stream {
	fs := source.NewFileSet("")
	file := fs.Get(fs.AddVirtual("t.tcab", []byte(input)))
	return lexer.Lex(file, lexer.Options{KeepComments: true})
}

func expectStream(t *testing.T, name string, got token.Stream, want string) {
	t.Helper()
	if got.String() != want {
		t.Fatalf("%s:\n got: %s\nwant: %s", name, got.String(), want)
	}
}

func TestStripLineComments(t *testing.T) {
	got := normalize.StripLineComments(stream("a", "/", "/", "b", "\"", "\n", "c", "\n"))
	expectStream(t, "line comment", got, `a \n c \n`)

	quoted := normalize.StripLineComments(stream("\"", "/", "/", "\"", "x", "\n"))
	expectStream(t, "slashes inside quotes", quoted, `" / / " x \n`)
}

func TestStripBlockCommentsSurvivesNewlines(t *testing.T) {
	got := normalize.StripBlockComments(stream("a", "/", "*", "\n", "b", "*", "/", "c"))
	expectStream(t, "block comment", got, `a c`)
}

func TestStripDocBlocksNested(t *testing.T) {
	got := normalize.StripDocBlocks(stream("x", "&", "{", "a", "{", "}", "b", "}", "y", "&", "z"))
	expectStream(t, "doc block", got, `x y & z`)
}

func TestCharLiteralQuoteDoesNotToggle(t *testing.T) {
	got := normalize.StripLineComments(stream("'", "\"", "'", "/", "/", "gone", "\n"))
	expectStream(t, "char literal", got, `' " ' \n`)
}

func TestCanonicalizeSeparators(t *testing.T) {
	cases := []struct {
		name string
		in   token.Stream
		want string
	}{
		{"semicolon and newline collapse", stream("a", ";", "\n", "\n", "b", "\n"), `a ; b ;`},
		{"leading separators dropped", stream("\n", ";", "\t", "a", "\n"), `a ;`},
		{"tabs dropped", stream("\t", "a", "\t", "b", "\n"), `a b ;`},
		{"line continuation", stream("a", "\\", "\n", "b", "\n"), `a b ;`},
		{"backslash kept elsewhere", stream("a", "\\", "b", "\n"), `a \ b ;`},
		{"empty", nil, ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectStream(t, tc.name, normalize.CanonicalizeSeparators(tc.in), tc.want)
		})
	}
}

func TestNormalizeRawSource(t *testing.T) {
	src := "// header\n" +
		"&{ docs { here } }\n" +
		"int x = 5; /* inline\n still */ int y = 6;\n" +
		"\tprint(\"a // b\");\n" +
		"call(a, \\\n  b);\n"
	got := normalize.Normalize(rawLex(src))
	want := `int x = 5 ; int y = 6 ; print ( "a // b" ) ; call ( a , b ) ;`
	expectStream(t, "raw source", got, want)

	for _, tok := range got {
		switch tok.Kind {
		case token.Newline, token.Tab:
			t.Fatalf("sentinel %v left in normalized stream", tok.Kind)
		}
	}
}

func TestNormalizeRawQuotesInsideComments(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"// say \"hi\nx;\ny;\n", `x ; y ;`},
		{"/* it's \"odd */ a; // b \"c\nd;\n", `a ; d ;`},
		{"/* a // b */ c\n", `c ;`},
		{"&{ \" }\ne;\n", `e ;`},
	}
	for _, tc := range cases {
		expectStream(t, tc.src, normalize.Normalize(rawLex(tc.src)), tc.want)
	}
}

func TestStripLineCommentsIgnoresSlashesInBlockComment(t *testing.T) {
	got := normalize.StripLineComments(stream("/", "*", "/", "/", "*", "/", "x", "\n"))
	expectStream(t, "slashes in block comment", got, `/ * / / * / x \n`)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"a;;b\n\n\nc",
		"class A {\n\tint x;\n}\n",
		"#if X == 1\nfoo();\n#endif\n",
		"x \\\ny // z\n",
	}
	for _, in := range inputs {
		once := normalize.Normalize(rawLex(in))
		twice := normalize.Normalize(once)
		if !once.Equal(twice) {
			t.Fatalf("Normalize not idempotent for %q:\n once: %s\ntwice: %s", in, once, twice)
		}
	}
}

func TestSeparatorKeepsProvenance(t *testing.T) {
	in := token.Stream{token.New("./m.tcab", 4, "a"), token.New("./m.tcab", 4, "\n")}
	got := normalize.Normalize(in)
	if len(got) != 2 || got[1].Kind != token.Semicolon || got[1].Line != 4 || got[1].File != "./m.tcab" {
		t.Fatalf("unexpected separator %+v", got)
	}
}
