package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tcab/internal/driver"
	"tcab/internal/project"
)

const cacheApp = "tcab"

// addCompileFlags registers the flags shared by commands that run the pipeline.
func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("define", "d", nil, "define a build variable (name=value), repeatable")
	cmd.Flags().BoolP("fast-math", "f", false, "enable fast math for later stages")
	cmd.Flags().BoolP("verbose", "v", false, "verbose output (raises --trace-level to detail)")
	cmd.Flags().Bool("disk-cache", false, "keep preprocessed modules in the user cache directory")
}

// compileOptions collects driver options from flags and the project manifest.
func compileOptions(cmd *cobra.Command, manifest *project.Manifest) (driver.Options, error) {
	var opts driver.Options

	defines, err := cmd.Flags().GetStringArray("define")
	if err != nil {
		return opts, fmt.Errorf("failed to get define flag: %w", err)
	}
	if opts.Defines, err = mergeDefines(manifest, defines); err != nil {
		return opts, err
	}
	if opts.FastMath, err = cmd.Flags().GetBool("fast-math"); err != nil {
		return opts, fmt.Errorf("failed to get fast-math flag: %w", err)
	}
	if manifest != nil && manifest.FastMath {
		opts.FastMath = true
	}
	if opts.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return opts, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.EnableTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if diskCache {
		if opts.DiskCache, err = driver.OpenDiskCache(cacheApp); err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	return opts, nil
}
