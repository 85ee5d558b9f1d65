package driver

import (
	"tcab/internal/diag"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/source"
	"tcab/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  token.Stream
	Bag     *diag.Bag
}

// Tokenize lexes a single file. With raw the lexer keeps comments and the
// normalizer is skipped.
func Tokenize(path string, raw bool, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet("")
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Lex(file, lexer.Options{
		Reporter:     diag.BagReporter{Bag: bag},
		KeepComments: raw,
	})
	if !raw {
		tokens = normalize.Normalize(tokens)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
