package project

import (
	"tcab/internal/token"
)

// ImportMeta is one resolved import of a module.
type ImportMeta struct {
	Path  string       // module path of the imported file
	Token *token.Token // the 'import' keyword
}

// ModuleMeta describes one module visited during import resolution.
type ModuleMeta struct {
	Path        string       // нормализованный путь модуля: "./lib/math.tcab"
	Imports     []ImportMeta // в порядке объявления
	ContentHash Digest       // хеш содержимого файла (из FileSet)
	ModuleHash  Digest       // содержимое + ModuleHash зависимостей (0 при цикле)
	Tokens      int          // число токенов после препроцессинга
}

// ImportPaths returns the imported module paths in declaration order.
func (m ModuleMeta) ImportPaths() []string {
	out := make([]string, 0, len(m.Imports))
	for _, imp := range m.Imports {
		out = append(out, imp.Path)
	}
	return out
}
