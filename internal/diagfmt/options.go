package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows module paths without the leading "./".
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to PathMode; unknown values give PathModeAuto.
func ParsePathMode(s string) PathMode {
	switch s {
	case "absolute", "abs":
		return PathModeAbsolute
	case "relative", "rel":
		return PathModeRelative
	case "basename", "base":
		return PathModeBasename
	default:
		return PathModeAuto
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста вокруг строки диагностики
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
	ShowHints bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
