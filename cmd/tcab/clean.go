package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tcab/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the tcab module cache",
	Long:  "Remove the on-disk cache of preprocessed modules written by --disk-cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache(cacheApp)
	if err != nil {
		return fmt.Errorf("failed to open disk cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", cache.Dir())
	return nil
}
