package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Category is the coarse origin of a diagnostic.
type Category uint8

const (
	CatSyntax Category = iota
	CatCompiler
	CatFilesystem
	CatImport
)

func (c Category) String() string {
	switch c {
	case CatSyntax:
		return "Syntax"
	case CatCompiler:
		return "Compiler"
	case CatFilesystem:
		return "Filesystem"
	case CatImport:
		return "Import"
	}
	return "Unknown"
}
