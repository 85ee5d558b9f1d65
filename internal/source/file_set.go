package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet keeps the files loaded during one compilation, keyed by module path.
// Module paths are resolved against the root directory.
type FileSet struct {
	files []File
	index map[string]FileID // module path -> id
	root  string
}

// NewFileSet creates an empty FileSet rooted at dir.
func NewFileSet(root string) *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
		root:  root,
	}
}

// Root returns the directory module paths are resolved against.
func (fileSet *FileSet) Root() string {
	if fileSet.root == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.root
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// A later Add with the same path shadows the previous one in the index.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	modPath := ModulePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    modPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[modPath] = id
	return id
}

// Load reads the module at path (relative to the root), normalizes BOM, CRLF
// and Unicode form, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	full := fileSet.Abs(path)
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(full)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	content, hadNFC := normalizeNFC(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if hadNFC {
		flags |= FileNormalizedNFC
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Abs maps a module path to a filesystem path under the root.
func (fileSet *FileSet) Abs(path string) string {
	p := filepath.FromSlash(path)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(fileSet.Root(), p)
}

// Canonical maps a module path to its shortest spelling relative to the root.
// A path that leaves the root and comes back ("./../lib/a.tcab" under root
// ".../lib") becomes the root-relative form ("./a.tcab").
func (fileSet *FileSet) Canonical(modulePath string) string {
	mp := ModulePath(modulePath)
	if path.IsAbs(mp) {
		return mp
	}
	root := fileSet.Root()
	rel, err := filepath.Rel(root, filepath.Join(root, filepath.FromSlash(mp)))
	if err != nil {
		return mp
	}
	return ModulePath(rel)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath возвращает *File по пути, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[ModulePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of files added so far.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// HashHex returns the content hash as lowercase hex.
func (f *File) HashHex() string {
	return hex.EncodeToString(f.Hash[:])
}

// LineCount returns the number of lines; a trailing '\n' does not open a new line.
func (f *File) LineCount() uint32 {
	n := len(f.LineIdx)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return count
}

// Lines splits the content into lines without their terminators.
func (f *File) Lines() []string {
	if len(f.Content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(f.Content), "\n")
	return strings.Split(text, "\n")
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || lineNum > f.LineCount() {
		return ""
	}

	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := lenContent
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
