package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tcab/internal/diag"
	"tcab/internal/diagfmt"
	"tcab/internal/source"
	"tcab/internal/version"
)

// diagOutput holds the diagnostic rendering flags of a command.
type diagOutput struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
	color     bool
	args      []string
}

func addDiagFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json|sarif)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|relative|absolute|basename)")
}

func readDiagOutput(cmd *cobra.Command) (diagOutput, error) {
	var out diagOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "short", "json", "sarif":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	mode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return out, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	out.pathMode = diagfmt.ParsePathMode(mode)
	if out.color, err = useColor(cmd, os.Stderr); err != nil {
		return out, err
	}
	out.args = os.Args[1:]
	return out, nil
}

// machineReadable reports whether stdout carries structured diagnostics.
func (o diagOutput) machineReadable() bool {
	return o.format == "json" || o.format == "sarif"
}

// print renders bag. Pretty and short output goes to stderr so that stdout
// stays reserved for the token stream; json and sarif go to stdout.
func (o diagOutput) print(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		return nil
	}
	bag.Sort()
	switch o.format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     o.color,
			Context:   1,
			PathMode:  o.pathMode,
			ShowNotes: o.withNotes,
			ShowHints: true,
		})
		fmt.Fprintln(os.Stderr)
		return nil
	case "short":
		diagfmt.Short(os.Stderr, bag, o.withNotes)
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			PathMode:     o.pathMode,
			IncludeNotes: o.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(os.Stdout, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "tcab",
			ToolVersion:    version.Version,
			InvocationArgs: o.args,
		})
	}
	return fmt.Errorf("unknown format: %s", o.format)
}

// summary prints the error and warning counts of bag.
func summary(w io.Writer, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	errs := bag.ErrorCount()
	warns := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			warns++
		}
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
}
