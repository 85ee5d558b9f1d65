package imports

import (
	"reflect"
	"testing"

	"tcab/internal/token"
)

func pathTokens(texts ...string) token.Stream {
	out := make(token.Stream, 0, len(texts))
	for _, s := range texts {
		out = append(out, token.New("./t.tcab", 1, s))
	}
	return out
}

func TestResolvePath(t *testing.T) {
	cases := []struct {
		importer string
		toks     []string
		want     string
	}{
		{"./main.tcab", []string{"util"}, "./util.tcab"},
		{"./main.tcab", []string{"lib", ".", "math"}, "./lib/math.tcab"},
		{"./main.tcab", []string{".", "util"}, "./../util.tcab"},
		{"./main.tcab", []string{".", ".", "util"}, "./../../util.tcab"},
		{"./lib/shapes.tcab", []string{"circle"}, "./lib/circle.tcab"},
		{"./lib/shapes.tcab", []string{".", "util"}, "./util.tcab"},
		{"./lib/shapes.tcab", []string{".", ".", "util"}, "./../util.tcab"},
		{"./a/b/c.tcab", []string{".", "x", ".", "y"}, "./a/x/y.tcab"},
	}
	for _, tc := range cases {
		if got := ResolvePath(tc.importer, pathTokens(tc.toks...)); got != tc.want {
			t.Errorf("ResolvePath(%q, %v) = %q, want %q", tc.importer, tc.toks, got, tc.want)
		}
	}
}

func TestSegments(t *testing.T) {
	cases := map[string][]string{
		"./util.tcab":     {"util"},
		"./lib/math.tcab": {"lib", "math"},
		"./../util.tcab":  {"util"},
	}
	for path, want := range cases {
		if got := Segments(path); !reflect.DeepEqual(got, want) {
			t.Errorf("Segments(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWrapNestsPerSegment(t *testing.T) {
	at := token.New("./main.tcab", 3, "import")
	got := Wrap("./lib/math.tcab", pathTokens("x", ";"), at).String()
	want := "protected class lib { protected class math { x ; } ; } ;"
	if got != want {
		t.Fatalf("Wrap:\n got: %s\nwant: %s", got, want)
	}
}
