package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tcab/internal/diag"
	"tcab/internal/driver"
	"tcab/internal/project/dag"
)

var importsCmd = &cobra.Command{
	Use:   "imports [flags] [file.tcab]",
	Short: "Print the import graph of an entry file",
	Long:  `Imports resolves the entry file and prints its modules in dependency order, flagging import cycles`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImports,
}

func init() {
	addCompileFlags(importsCmd)
	addDiagFlags(importsCmd)
}

// moduleJSON is one module of `tcab imports --format json`.
type moduleJSON struct {
	Path        string   `json:"path"`
	Imports     []string `json:"imports,omitempty"`
	Tokens      int      `json:"tokens"`
	ContentHash string   `json:"content_hash"`
	ModuleHash  string   `json:"module_hash,omitempty"`
	Cyclic      bool     `json:"cyclic,omitempty"`
}

func runImports(cmd *cobra.Command, args []string) error {
	entry, manifest, err := resolveEntry(args)
	if err != nil {
		return err
	}
	opts, err := compileOptions(cmd, manifest)
	if err != nil {
		return err
	}
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Compile(cmd.Context(), entry, opts)
	if err != nil {
		return fmt.Errorf("import resolution failed: %w", err)
	}
	graph := driver.BuildImportGraph(res.Modules, diag.BagReporter{Bag: res.Bag})

	modules := graphModules(graph)
	if out.machineReadable() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"entry": res.Entry, "modules": modules}); err != nil {
			return err
		}
		// диагностики для json идут отдельным документом в stderr
		out.format = "short"
	} else {
		printModules(os.Stdout, modules)
	}
	if err := out.print(res.Bag, res.FileSet); err != nil {
		return err
	}
	if res.Failed() {
		return errFailed{}
	}
	return nil
}

// graphModules lists modules with dependencies first; modules on a cycle
// have no order and follow at the end.
func graphModules(g *driver.ImportGraph) []moduleJSON {
	order := g.Topo.DependencyOrder()
	ids := make([]dag.ModuleID, 0, len(g.Slots))
	ids = append(ids, order...)
	ids = append(ids, g.Topo.Cycles...)

	out := make([]moduleJSON, 0, len(ids))
	for _, id := range ids {
		slot := g.Slots[int(id)]
		if !slot.Present {
			continue
		}
		m := moduleJSON{
			Path:        slot.Meta.Path,
			Imports:     slot.Meta.ImportPaths(),
			Tokens:      slot.Meta.Tokens,
			ContentHash: slot.Meta.ContentHash.Short(),
			Cyclic:      g.OnCycle(id),
		}
		if !g.Topo.Cyclic {
			m.ModuleHash = slot.Meta.ModuleHash.Short()
		}
		out = append(out, m)
	}
	return out
}

func printModules(w io.Writer, modules []moduleJSON) {
	for _, m := range modules {
		line := fmt.Sprintf("%-32s %s", m.Path, m.ContentHash)
		if m.Cyclic {
			line += "  (cycle)"
		}
		fmt.Fprintln(w, line)
		if len(m.Imports) > 0 {
			fmt.Fprintf(w, "  -> %s\n", strings.Join(m.Imports, ", "))
		}
	}
}
