package imports

import (
	"strings"

	"tcab/internal/source"
	"tcab/internal/token"
)

// NormalizePath returns the visited-set key for a module path.
func NormalizePath(p string) string {
	return source.ModulePath(p)
}

// ResolvePath turns the dotted path of an import statement into a module path
// relative to the importing module.
//
// Each leading '.' drops one directory of importer while more than one
// remains; after that every further leading '.' climbs with "../". Later dots
// separate path segments.
func ResolvePath(importer string, pathTokens token.Stream) string {
	parts := strings.Split(importer, "/")
	keep := len(parts) - 1

	var rest strings.Builder
	leading := true
	for _, tok := range pathTokens {
		if tok.Kind != token.Dot {
			leading = false
			rest.WriteString(tok.Text)
			continue
		}
		switch {
		case !leading:
			rest.WriteByte('/')
		case keep > 1:
			keep--
		default:
			rest.WriteString("../")
		}
	}

	var out strings.Builder
	for _, part := range parts[:keep] {
		out.WriteString(part)
		out.WriteByte('/')
	}
	out.WriteString(rest.String())
	out.WriteString(source.Extension)
	return NormalizePath(out.String())
}

// Segments lists the namespace names mirroring a module path: every directory
// and the file name without extension. "." and ".." produce no segment.
func Segments(modulePath string) []string {
	parts := strings.Split(source.TrimExtension(modulePath), "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return out
}
