package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tcab/internal/diagfmt"
	"tcab/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.tcab]",
	Short: "Run the front end on an entry file",
	Long: `Build runs lexer, normalizer, conditional compiler, import resolver, syntax
checks and test-function conversion, then prints the resulting token stream.
Without a file the entry is [build].main of the nearest tcab.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addCompileFlags(buildCmd)
	addDiagFlags(buildCmd)
	buildCmd.Flags().String("emit", "tokens", "final stream output (tokens|json|none)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	switch emit {
	case "tokens", "json", "none":
	default:
		return fmt.Errorf("unknown emit value: %s", emit)
	}

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
		return fmt.Errorf("build failed: %w", err)
	}

	if opts.EnableTimings && out.machineReadable() {
		driver.AppendTimings(res)
	}
	if err := out.print(res.Bag, res.FileSet); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if opts.EnableTimings && !out.machineReadable() {
		printStageTimings(os.Stderr, res.Stages)
		printPhaseReport(os.Stderr, res.Timing)
	}
	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "modules: %d, cache hits: %d\n", len(res.Modules), res.CacheHits)
	}

	if res.Failed() {
		if !out.machineReadable() {
			summary(os.Stderr, res.Bag)
		}
		return errFailed{}
	}

	// json/sarif уже заняли stdout диагностиками
	if out.machineReadable() {
		return nil
	}
	switch emit {
	case "tokens":
		fmt.Fprintln(os.Stdout, res.Tokens.String())
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, res.Tokens)
	}
	return nil
}
