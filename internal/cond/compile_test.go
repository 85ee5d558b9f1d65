package cond_test

import (
	"errors"
	"testing"

	"tcab/internal/buildvar"
	"tcab/internal/cond"
	"tcab/internal/diag"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/source"
	"tcab/internal/token"
)

func prepare(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet("")
	file := fs.Get(fs.AddVirtual("c.tcab", []byte(src)))
	return normalize.Normalize(lexer.Lex(file, lexer.Options{}))
}

func vars(t *testing.T, defs ...string) *buildvar.Set {
	t.Helper()
	s := buildvar.NewSet()
	if bad, err := s.DefineAll(defs); err != nil {
		t.Fatalf("define %q: %v", bad, err)
	}
	return s
}

func compile(t *testing.T, src string, set *buildvar.Set) (string, *diag.Bag, error) {
	t.Helper()
	bag := diag.NewBag(32)
	out, err := cond.Compile(prepare(t, src), set, diag.BagReporter{Bag: bag})
	return out.String(), bag, err
}

func expectOutput(t *testing.T, src string, set *buildvar.Set, want string) {
	t.Helper()
	got, bag, err := compile(t, src, set)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	if bag.Len() != 0 {
		t.Fatalf("Compile(%q): unexpected diagnostics:\n%s", src, diag.FormatGoldenDiagnostics(bag.Items(), false))
	}
	if got != want {
		t.Fatalf("Compile(%q):\n got: %s\nwant: %s", src, got, want)
	}
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	if bag.Len() != len(want) {
		t.Fatalf("got %d diagnostics, want %d:\n%s", bag.Len(), len(want), diag.FormatGoldenDiagnostics(bag.Items(), false))
	}
	for i, d := range bag.Items() {
		if d.Code != want[i] {
			t.Fatalf("diagnostic %d: got %s, want %s", i, d.Code.ID(), want[i].ID())
		}
	}
}

const ifElse = `
#if DEBUG == true
a;
#else
b;
#endif
c;
`

func TestIfElse(t *testing.T) {
	expectOutput(t, ifElse, vars(t, "DEBUG=true"), `a ; c ;`)
	expectOutput(t, ifElse, vars(t, "DEBUG=false"), `b ; c ;`)
}

func TestUndefinedVariableIsFalse(t *testing.T) {
	expectOutput(t, ifElse, vars(t), `b ; c ;`)
	expectOutput(t, ifElse, nil, `b ; c ;`)
}

func TestElifFirstMatchWins(t *testing.T) {
	src := `
#if LEVEL == 1
one;
#elif LEVEL == 2
two;
#elif LEVEL >= 2
three;
#else
other;
#endif
`
	expectOutput(t, src, vars(t, "LEVEL=2"), `two ;`)
	expectOutput(t, src, vars(t, "LEVEL=3"), `three ;`)
	expectOutput(t, src, vars(t, "LEVEL=0"), `other ;`)
}

func TestNestedMixedBranches(t *testing.T) {
	src := `
#if A == true
outer;
#if B == true
inner;
#else
notinner;
#endif
#else
#if B == false
hidden;
#else
hidden2;
#endif
alsohidden;
#endif
tail;
`
	expectOutput(t, src, vars(t, "A=true", "B=false"), `outer ; notinner ; tail ;`)
	expectOutput(t, src, vars(t, "A=true", "B=true"), `outer ; inner ; tail ;`)
	expectOutput(t, src, vars(t, "A=false", "B=false"), `hidden ; alsohidden ; tail ;`)
	expectOutput(t, src, vars(t, "A=false", "B=true"), `hidden2 ; alsohidden ; tail ;`)
}

func TestSiblingChainsInsideIgnoredBlock(t *testing.T) {
	src := `
#if A == true
#if B == false
x;
#endif
#if B == false
y;
#endif
z;
#endif
w;
`
	expectOutput(t, src, vars(t, "A=false", "B=false"), `w ;`)
	expectOutput(t, src, vars(t, "A=true", "B=false"), `x ; y ; z ; w ;`)
}

func TestInactiveConditionsAreNotEvaluated(t *testing.T) {
	src := `
#if A == true
#if A == linux
x;
#endif
#endif
y;
`
	expectOutput(t, src, vars(t, "A=false"), `y ;`)

	taken := `
#if A == false
a;
#elif A == linux
b;
#endif
`
	expectOutput(t, taken, vars(t, "A=false"), `a ;`)
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		def  string
		cond string
		want bool
	}{
		{"N=5", "N < 10", true},
		{"N=5", "N <= 5", true},
		{"N=5", "N > 5", false},
		{"N=5", "N != 5", false},
		{"N=-2", "N == -2", true},
		{"F=1.5", "F > 1.25", true},
		{"F=1.5", "F == 1.50", true},
		{`OS="linux"`, `OS == "linux"`, true},
		{`OS="linux"`, `OS != "mac"`, true},
	}
	for _, tc := range cases {
		src := "#if " + tc.cond + "\nyes;\n#endif\n"
		want := ``
		if tc.want {
			want = `yes ;`
		}
		expectOutput(t, src, vars(t, tc.def), want)
	}
}

func TestRecoverableDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"short", "#if A\nx;\n#endif\n", diag.SynShortCondition},
		{"no value", "#if A ==\nx;\n#endif\n", diag.SynShortCondition},
		{"bad operator", "#if A => true\nx;\n#endif\n", diag.SynBadOperator},
		{"kind mismatch", "#if A == 1\nx;\n#endif\n", diag.CmpKindMismatch},
		{"ordering on bool", "#if A < true\nx;\n#endif\n", diag.CmpOrderingUnsupported},
		{"tokens after else", "#if A == false\nx;\n#else junk\ny;\n#endif\n", diag.SynTokensAfterElse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag, err := compile(t, tc.src, vars(t, "A=true"))
			if err != nil {
				t.Fatalf("recoverable problem returned an error: %v", err)
			}
			expectCodes(t, bag, tc.code)
		})
	}
}

func TestUnclosedIf(t *testing.T) {
	got, bag, err := compile(t, "#if A == true\na;\n#if A == true\nb;\n", vars(t, "A=true"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != `a ; b ;` {
		t.Fatalf("got %s", got)
	}
	expectCodes(t, bag, diag.SynUnclosedIf, diag.SynUnclosedIf)
	if bag.Items()[0].Token.Line != 1 || bag.Items()[1].Token.Line != 3 {
		t.Fatalf("diagnostics must point at the opening '#'")
	}
}

func TestFatalDirectives(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"#elif A == true\n", diag.SynElifWithoutIf},
		{"a;\n#else\n", diag.SynElseWithoutIf},
		{"#endif\n", diag.SynEndifWithoutIf},
		{"#if A == true\n#endif\n#endif\n", diag.SynEndifWithoutIf},
		{"#if A == linux\n#endif\n", diag.CmpCannotInferKind},
	}
	for _, tc := range cases {
		out, bag, err := compile(t, tc.src, vars(t, "A=true"))
		fe, ok := diag.AsFatal(err)
		if !ok {
			t.Fatalf("Compile(%q): want fatal error, got %v (out %s)", tc.src, err, out)
		}
		if fe.Diagnostic.Code != tc.code {
			t.Fatalf("Compile(%q): code %s, want %s", tc.src, fe.Diagnostic.Code.ID(), tc.code.ID())
		}
		if bag.Len() != 0 {
			t.Fatalf("fatal errors are returned, not reported")
		}
		var target *diag.FatalError
		if !errors.As(err, &target) {
			t.Fatalf("error must be a *diag.FatalError")
		}
	}
}

func TestHashWithoutDirectiveIsOrdinary(t *testing.T) {
	expectOutput(t, "# define x;\n#iff;\n", nil, `# define x ; # iff ;`)
}

func TestEvaluateDirect(t *testing.T) {
	at := token.New("./e.tcab", 1, "if")
	expr := token.Stream{
		token.New("./e.tcab", 1, "X"),
		token.New("./e.tcab", 1, "="),
		token.New("./e.tcab", 1, "="),
		token.New("./e.tcab", 1, "4"),
		token.New("./e.tcab", 1, "."),
		token.New("./e.tcab", 1, "0"),
	}
	ok, err := cond.Evaluate(at, expr, vars(t, "X=4.0"), nil)
	if err != nil || !ok {
		t.Fatalf("Evaluate = %v, %v; want true", ok, err)
	}
}
