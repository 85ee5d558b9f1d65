package diag

import (
	"testing"

	"tcab/internal/token"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	brace := token.New("./lib/shapes.tcab", 4, "{")
	class := token.New("./main.tcab", 2, "class")

	diags := []Diagnostic{
		New(SevError, SynUnclosedBracket, &brace, "first line\nsecond").
			WithNote(&class, "note line"),
		New(SevWarning, SynClassPredecessor, &class, "another").WithHint("add 'public'"),
		New(SevError, CmpMalformedDefinition, nil, "bad define"),
	}

	expected := "error CMP3004 <cli>:0 bad define\n" +
		"error SYN2405 lib/shapes.tcab:4 first line second\n" +
		"note SYN2405 main.tcab:2 note line\n" +
		"warning SYN2401 main.tcab:2 another"

	if got := FormatGoldenDiagnostics(diags, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags[1:2], false)
	if want := "warning SYN2401 main.tcab:2 another (hint: add 'public')"; short != want {
		t.Fatalf("short = %q, want %q", short, want)
	}
}
