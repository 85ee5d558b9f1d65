package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tcab/internal/buildpipeline"
	"tcab/internal/diagfmt"
	"tcab/internal/driver"
	"tcab/internal/project"
	"tcab/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <directory>",
	Short: "Run the front end on every .tcab file of a directory",
	Long:  `Check compiles each .tcab file under a directory as its own entry, in parallel, and reports diagnostics`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	addCompileFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|relative|absolute|basename)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

// checkFileJSON is one entry of `tcab check --format json`.
type checkFileJSON struct {
	Path      string                    `json:"path"`
	Failed    bool                      `json:"failed"`
	ElapsedMS float64                   `json:"elapsed_ms,omitempty"`
	Output    diagfmt.DiagnosticsOutput `json:"output"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory (use tcab build for a single file)", dir)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	if out.format == "sarif" {
		return fmt.Errorf("sarif output is only supported by tcab build")
	}

	manifest, _, err := project.LoadNearestManifest(dir)
	if err != nil {
		return err
	}
	opts, err := compileOptions(cmd, manifest)
	if err != nil {
		return err
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no %s files in %s\n", source.Extension, dir)
		return nil
	}

	var results []driver.CheckResult
	if !out.machineReadable() && shouldUseTUI(mode) {
		absDir, absErr := filepath.Abs(dir)
		if absErr != nil {
			return absErr
		}
		display := make([]string, len(files))
		for i, f := range files {
			display[i] = buildpipeline.DisplayPath(f, absDir)
		}
		results, err = runCheckWithUI(cmd.Context(), "tcab check", dir, display, opts, jobs)
	} else {
		results, err = driver.CheckDir(cmd.Context(), dir, opts, jobs)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if out.machineReadable() {
		if err := printCheckJSON(results, out); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Result == nil || r.Result.Bag.Len() == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "== %s\n", r.Path)
			if err := out.print(r.Result.Bag, r.Result.FileSet); err != nil {
				return err
			}
		}
		if opts.EnableTimings {
			for _, r := range results {
				fmt.Fprintf(os.Stderr, "%-30s %7.2f ms\n", r.Path, r.Elapsed)
			}
		}
	}

	failed := driver.CountFailed(results)
	if !out.machineReadable() {
		fmt.Fprintf(os.Stderr, "checked %d file(s), %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return errFailed{}
	}
	return nil
}

func printCheckJSON(results []driver.CheckResult, out diagOutput) error {
	files := make([]checkFileJSON, 0, len(results))
	for _, r := range results {
		entry := checkFileJSON{Path: r.Path, ElapsedMS: r.Elapsed}
		if r.Result != nil {
			entry.Failed = r.Result.Failed()
			r.Result.Bag.Sort()
			entry.Output = diagfmt.BuildDiagnosticsOutput(r.Result.Bag, r.Result.FileSet, diagfmt.JSONOpts{
				PathMode:     out.pathMode,
				IncludeNotes: out.withNotes,
			})
		}
		files = append(files, entry)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"files": files})
}
