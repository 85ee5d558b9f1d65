package diagfmt

import (
	"path"
	"strings"

	"tcab/internal/source"
)

// displayPath renders a module path for output.
func displayPath(modulePath string, fs *source.FileSet, mode PathMode) string {
	if modulePath == "" {
		return "<cli>"
	}
	switch mode {
	case PathModeAbsolute:
		if fs != nil {
			return fs.Abs(modulePath)
		}
	case PathModeBasename:
		return path.Base(modulePath)
	case PathModeRelative, PathModeAuto:
	}
	p := modulePath
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

// sourceLine returns line n of the module, if the file is loaded in fs.
func sourceLine(fs *source.FileSet, modulePath string, n uint32) (string, bool) {
	if fs == nil || n == 0 {
		return "", false
	}
	f, ok := fs.GetByPath(modulePath)
	if !ok || n > f.LineCount() {
		return "", false
	}
	return f.GetLine(n), true
}
