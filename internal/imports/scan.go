package imports

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

// Statement is one `import ... ;` statement.
type Statement struct {
	Keyword token.Token  // 'import'
	Tokens  token.Stream // path tokens, without the keyword and ';'
	Path    string       // resolved module path
}

// Scan removes import statements (with their ';') from ts and resolves each
// against importer. An import without path tokens is fatal.
func Scan(ts token.Stream, importer string) (token.Stream, []Statement, error) {
	rest := make(token.Stream, 0, len(ts))
	var stmts []Statement
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if tok.Kind != token.KwImport {
			rest = append(rest, tok)
			continue
		}
		j := i + 1
		for j < len(ts) && ts[j].Kind != token.Semicolon {
			j++
		}
		pathTokens := ts[i+1 : j]
		if len(pathTokens) == 0 {
			kw := tok
			return nil, nil, diag.ReportError(nil, diag.ImpMissingPath, &kw, "Expected a file after 'import'...").
				WithHint("Reference a file directly after 'import'.").
				Fatal()
		}
		stmts = append(stmts, Statement{
			Keyword: tok,
			Tokens:  pathTokens.Clone(),
			Path:    ResolvePath(importer, pathTokens),
		})
		i = j // ';' (или конец потока) поглощается
	}
	return rest, stmts, nil
}
