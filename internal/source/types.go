package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// Extension is the file extension of tcab modules.
const Extension = ".tcab"

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string // module path, e.g. "./lib/math.tcab"
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}
