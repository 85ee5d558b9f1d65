package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tcab/internal/diag"
	"tcab/internal/driver"
	"tcab/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveEntryFromManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tcab.toml"), `[package]
name = "demo"

[build]
main = "src/main.tcab"

[defines]
DEBUG = true
NAME = "demo"
`)
	writeFile(t, filepath.Join(root, "src", "main.tcab"), "x;\n")
	t.Chdir(filepath.Join(root, "src"))

	entry, manifest, err := resolveEntry(nil)
	if err != nil {
		t.Fatalf("resolveEntry: %v", err)
	}
	if filepath.Base(entry) != "main.tcab" || manifest == nil || manifest.Name != "demo" {
		t.Fatalf("entry=%q manifest=%+v", entry, manifest)
	}

	defs, err := mergeDefines(manifest, []string{"DEBUG=false"})
	if err != nil {
		t.Fatal(err)
	}
	want := `DEBUG=true,NAME="demo",DEBUG=false`
	if got := strings.Join(defs, ","); got != want {
		t.Fatalf("defines = %s, want %s", got, want)
	}
}

func TestResolveEntryWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := resolveEntry(nil); err == nil || !strings.Contains(err.Error(), "no tcab.toml found") {
		t.Fatalf("expected missing manifest error, got %v", err)
	}
	entry, manifest, err := resolveEntry([]string{"main.tcab"})
	if err != nil || entry != "main.tcab" || manifest != nil {
		t.Fatalf("entry=%q manifest=%v err=%v", entry, manifest, err)
	}
}

func TestResolveEntryRejectsWrongExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tcab.toml"), "[package]\nname = \"demo\"\n[build]\nmain = \"main.txt\"\n")
	writeFile(t, filepath.Join(root, "main.txt"), "x;\n")
	t.Chdir(root)
	if _, _, err := resolveEntry(nil); err == nil || !strings.Contains(err.Error(), "must be a .tcab file") {
		t.Fatalf("got %v", err)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, "no": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
}

func TestGraphModulesOrdersDependenciesFirst(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "./main.tcab", Imports: []project.ImportMeta{{Path: "./lib/a.tcab"}}},
		{Path: "./lib/a.tcab", Imports: []project.ImportMeta{{Path: "./lib/b.tcab"}}},
		{Path: "./lib/b.tcab"},
	}
	bag := diag.NewBag(10)
	mods := graphModules(driver.BuildImportGraph(metas, diag.BagReporter{Bag: bag}))

	var paths []string
	for _, m := range mods {
		paths = append(paths, m.Path)
		if m.Cyclic || m.ModuleHash == "" {
			t.Errorf("%s: unexpected cycle/hash state %+v", m.Path, m)
		}
	}
	if got := strings.Join(paths, " "); got != "./lib/b.tcab ./lib/a.tcab ./main.tcab" {
		t.Fatalf("order = %s", got)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatGoldenDiagnostics(bag.Items(), false))
	}
}

func TestGraphModulesFlagsCycles(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "./a.tcab", Imports: []project.ImportMeta{{Path: "./b.tcab"}}},
		{Path: "./b.tcab", Imports: []project.ImportMeta{{Path: "./a.tcab"}}},
	}
	bag := diag.NewBag(10)
	mods := graphModules(driver.BuildImportGraph(metas, diag.BagReporter{Bag: bag}))
	if len(mods) != 2 || !mods[0].Cyclic || !mods[1].Cyclic {
		t.Fatalf("modules = %+v", mods)
	}
	if bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("cycles must be warnings: %s", diag.FormatGoldenDiagnostics(bag.Items(), false))
	}
}
