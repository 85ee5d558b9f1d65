package buildpipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// NormalizeProgressFiles turns file paths into the slash-separated names shown
// in progress output: relative to baseDir when inside it, deduplicated and sorted.
func NormalizeProgressFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		path := DisplayPath(file, base)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}

// DisplayPath returns file relative to an absolute base when it lies inside.
func DisplayPath(file, base string) string {
	path := filepath.Clean(file)
	if base != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
