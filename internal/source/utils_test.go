package source

import (
	"testing"
)

func TestModulePath(t *testing.T) {
	cases := map[string]string{
		"main.tcab":          "./main.tcab",
		"./main.tcab":        "./main.tcab",
		"lib/../main.tcab":   "./main.tcab",
		"./lib//math.tcab":   "./lib/math.tcab",
		"../shared/a.tcab":   "./../shared/a.tcab",
		"./../shared/a.tcab": "./../shared/a.tcab",
		".":                  "./",
	}
	for in, want := range cases {
		if got := ModulePath(in); got != want {
			t.Errorf("ModulePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatalf("expected CRLF to be reported as changed")
	}
	if string(got) != "a\nb\rc\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Fatalf("content without CR must be untouched")
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := removeBOM([]byte("\xEF\xBB\xBFx"))
	if !had || string(got) != "x" {
		t.Fatalf("removeBOM = %q, %v", got, had)
	}
	if _, had := removeBOM([]byte("xy")); had {
		t.Fatalf("short input must not report a BOM")
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute -> "é"
	got, changed := normalizeNFC([]byte("cafe\u0301"))
	if !changed {
		t.Fatalf("decomposed input must be normalized")
	}
	if string(got) != "caf\u00e9" {
		t.Fatalf("unexpected NFC form %q", got)
	}
	if _, changed := normalizeNFC([]byte("ascii")); changed {
		t.Fatalf("ASCII is already NFC")
	}
}

func TestTrimExtension(t *testing.T) {
	if got := TrimExtension("math.tcab"); got != "math" {
		t.Fatalf("TrimExtension = %q", got)
	}
	if got := TrimExtension("math"); got != "math" {
		t.Fatalf("TrimExtension without extension = %q", got)
	}
}
