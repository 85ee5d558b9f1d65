package imports_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tcab/internal/cond"
	"tcab/internal/diag"
	"tcab/internal/imports"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/project"
	"tcab/internal/source"
)

// memLoader preprocesses in-memory sources and counts loads per path.
type memLoader struct {
	files map[string]string
	loads map[string]int
}

func newMemLoader(files map[string]string) *memLoader {
	return &memLoader{files: files, loads: make(map[string]int)}
}

func (m *memLoader) LoadModule(_ context.Context, path string) (imports.Module, error) {
	src, ok := m.files[path]
	if !ok {
		return imports.Module{}, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	m.loads[path]++
	fs := source.NewFileSet("")
	file := fs.Get(fs.AddVirtual(path, []byte(src)))
	ts := normalize.Normalize(lexer.Lex(file, lexer.Options{}))
	ts, err := cond.Compile(ts, nil, nil)
	if err != nil {
		return imports.Module{}, err
	}
	return imports.Module{Path: path, Tokens: ts, Hash: project.Digest(file.Hash)}, nil
}

func resolve(t *testing.T, files map[string]string) (string, *memLoader, *imports.Resolver) {
	t.Helper()
	loader := newMemLoader(files)
	r := imports.NewResolver(loader)
	out, err := r.Resolve(context.Background(), "main.tcab")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return out.String(), loader, r
}

func TestResolveWrapsImports(t *testing.T) {
	got, _, r := resolve(t, map[string]string{
		"./main.tcab":     "import lib.math;\nmain;\n",
		"./lib/math.tcab": "sqrt;\n",
	})
	want := "protected class lib { protected class math { sqrt ; } ; } ; main ;"
	if got != want {
		t.Fatalf("got:  %s\nwant: %s", got, want)
	}
	mods := r.Modules()
	if len(mods) != 2 || mods[0].Path != "./main.tcab" || mods[1].Path != "./lib/math.tcab" {
		t.Fatalf("unexpected modules %+v", mods)
	}
	if paths := mods[0].ImportPaths(); len(paths) != 1 || paths[0] != "./lib/math.tcab" {
		t.Fatalf("unexpected imports %v", paths)
	}
}

func TestResolveIncludesSharedModuleOnce(t *testing.T) {
	got, loader, _ := resolve(t, map[string]string{
		"./main.tcab": "import a;\nimport b;\nimport a;\nmain;\n",
		"./a.tcab":    "import c;\nA;\n",
		"./b.tcab":    "import c;\nB;\n",
		"./c.tcab":    "C;\n",
	})
	if n := strings.Count(got, " C "); n != 1 {
		t.Fatalf("C included %d times in %s", n, got)
	}
	for path, n := range loader.loads {
		if n != 1 {
			t.Fatalf("%s loaded %d times", path, n)
		}
	}
	want := "protected class a { protected class c { C ; } ; A ; } ; protected class b { B ; } ; main ;"
	if got != want {
		t.Fatalf("got:  %s\nwant: %s", got, want)
	}
}

func TestResolveTwoFileCycle(t *testing.T) {
	got, _, _ := resolve(t, map[string]string{
		"./main.tcab": "import b;\nA;\n",
		"./b.tcab":    "import main;\nB;\n",
	})
	want := "protected class b { B ; } ; A ;"
	if got != want {
		t.Fatalf("got:  %s\nwant: %s", got, want)
	}
}

func TestResolveSelfImportIsSilent(t *testing.T) {
	got, _, _ := resolve(t, map[string]string{
		"./main.tcab": "import util;\nmain;\n",
		"./util.tcab": "import util;\nhelper;\n",
	})
	want := "protected class util { helper ; } ; main ;"
	if got != want {
		t.Fatalf("got:  %s\nwant: %s", got, want)
	}
}

func TestResolveMissingPathIsFatal(t *testing.T) {
	loader := newMemLoader(map[string]string{"./main.tcab": "import ;\nx;\n"})
	_, err := imports.NewResolver(loader).Resolve(context.Background(), "main.tcab")
	fatal, ok := diag.AsFatal(err)
	if !ok {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if fatal.Diagnostic.Code != diag.ImpMissingPath || fatal.Diagnostic.Hint != "Reference a file directly after 'import'." {
		t.Fatalf("unexpected diagnostic %v", fatal.Diagnostic)
	}
}

func TestResolveMissingFileIsFatal(t *testing.T) {
	loader := newMemLoader(map[string]string{"./main.tcab": "import nope;\nx;\n"})
	_, err := imports.NewResolver(loader).Resolve(context.Background(), "main.tcab")
	fatal, ok := diag.AsFatal(err)
	if !ok {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if fatal.Diagnostic.Code != diag.IOLoadFileError {
		t.Fatalf("unexpected code %s", fatal.Diagnostic.Code.ID())
	}
	if fatal.Diagnostic.Token == nil || fatal.Diagnostic.Token.File != "./main.tcab" {
		t.Fatalf("missing file must point at the import statement")
	}
}

func TestResolveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := newMemLoader(map[string]string{"./main.tcab": "x;\n"})
	if _, err := imports.NewResolver(loader).Resolve(ctx, "main.tcab"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// rootedLoader keys modules the way the driver does: relative to a root dir.
type rootedLoader struct {
	*memLoader
	fs *source.FileSet
}

func (l rootedLoader) CanonicalPath(path string) string {
	return l.fs.Canonical(path)
}

func TestResolveFoldsPathsLeavingTheRoot(t *testing.T) {
	loader := rootedLoader{
		memLoader: newMemLoader(map[string]string{
			"./main.tcab": "import .b;\nA;\n",
			"./../b.tcab": "import lib.main;\nB;\n",
		}),
		fs: source.NewFileSet(filepath.Join(t.TempDir(), "lib")),
	}
	r := imports.NewResolver(loader)
	out, err := r.Resolve(context.Background(), "main.tcab")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := "protected class b { B ; } ; A ;"
	if got := out.String(); got != want {
		t.Fatalf("got:  %s\nwant: %s", got, want)
	}
	if n := loader.loads["./main.tcab"]; n != 1 {
		t.Fatalf("entry loaded %d times, want 1", n)
	}
	mods := r.Modules()
	if len(mods) != 2 || mods[1].Imports[0].Path != "./main.tcab" {
		t.Fatalf("unexpected modules: %+v", mods)
	}
}
