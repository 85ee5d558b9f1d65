package source

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// normalizeNFC приводит текст к NFC, чтобы одинаковые идентификаторы
// давали одинаковые токены независимо от редактора.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/16+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- content length checked by Add
		}
	}
	return out
}

// ModulePath returns the canonical form of a root-relative module path:
// forward slashes, cleaned, prefixed with "./".
func ModulePath(p string) string {
	p = filepath.ToSlash(p)
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	p = path.Clean(p)
	if p == "." {
		return "./"
	}
	return "./" + p
}

// TrimExtension drops the module extension, if present.
func TrimExtension(p string) string {
	return strings.TrimSuffix(p, Extension)
}
