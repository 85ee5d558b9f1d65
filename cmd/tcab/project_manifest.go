package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tcab/internal/project"
	"tcab/internal/source"
)

const noManifestMessage = "no " + project.ManifestName + " found\nplease specify the entry file explicitly, e.g.:\n  tcab build path/to/main" + source.Extension

// resolveEntry picks the entry file: the argument when given, otherwise
// [build].main of the nearest manifest. The manifest is returned when one
// governs the entry so its defines can be applied.
func resolveEntry(args []string) (string, *project.Manifest, error) {
	if len(args) > 0 && args[0] != "" {
		entry := args[0]
		manifest, _, err := project.LoadNearestManifest(filepath.Dir(entry))
		if err != nil {
			return "", nil, err
		}
		return entry, manifest, nil
	}

	manifest, ok, err := project.LoadNearestManifest(".")
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, errors.New(noManifestMessage)
	}
	if manifest.Main == "" {
		return "", nil, fmt.Errorf("%s: missing [build].main", manifest.Path)
	}
	mainPath := filepath.Join(manifest.Root, filepath.FromSlash(manifest.Main))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%s: [build].main path does not exist: %s", manifest.Path, mainPath)
		}
		return "", nil, fmt.Errorf("%s: failed to stat [build].main: %w", manifest.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != source.Extension {
		return "", nil, fmt.Errorf("%s: [build].main must be a %s file", manifest.Path, source.Extension)
	}
	return mainPath, manifest, nil
}

// mergeDefines puts manifest defines first so that later -d flags win.
func mergeDefines(manifest *project.Manifest, cli []string) ([]string, error) {
	base, err := manifest.DefineStrings()
	if err != nil {
		return nil, err
	}
	return append(base, cli...), nil
}
