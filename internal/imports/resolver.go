package imports

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"tcab/internal/diag"
	"tcab/internal/project"
	"tcab/internal/token"
	"tcab/internal/trace"
)

// Module is a loaded and preprocessed module: lexed, normalized and with
// directives resolved, imports still in place.
type Module struct {
	Path   string
	Tokens token.Stream
	Hash   project.Digest
}

// Loader produces preprocessed modules by module path.
type Loader interface {
	LoadModule(ctx context.Context, path string) (Module, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (Module, error)

func (f LoaderFunc) LoadModule(ctx context.Context, path string) (Module, error) {
	return f(ctx, path)
}

// Canonicalizer is implemented by loaders that know the directory module
// paths are relative to. The resolver keys its visited set by CanonicalPath so
// that two spellings of one file are loaded once.
type Canonicalizer interface {
	CanonicalPath(path string) string
}

// Resolver expands imports depth-first. Every module path is loaded at most
// once; a repeated import, cycles included, resolves to nothing.
type Resolver struct {
	loader Loader

	mu      sync.Mutex
	visited map[string]struct{}
	modules []project.ModuleMeta
}

func NewResolver(loader Loader) *Resolver {
	return &Resolver{
		loader:  loader,
		visited: make(map[string]struct{}),
	}
}

// Resolve returns the fully expanded stream for the entry module.
func (r *Resolver) Resolve(ctx context.Context, entry string) (token.Stream, error) {
	return r.resolve(ctx, r.canonical(entry), nil)
}

func (r *Resolver) canonical(path string) string {
	if c, ok := r.loader.(Canonicalizer); ok {
		return c.CanonicalPath(path)
	}
	return NormalizePath(path)
}

// Modules returns metadata of every visited module in visit order.
func (r *Resolver) Modules() []project.ModuleMeta {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]project.ModuleMeta, len(r.modules))
	copy(out, r.modules)
	return out
}

// markVisited атомарно проверяет и отмечает путь.
func (r *Resolver) markVisited(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visited[path]; ok {
		return false
	}
	r.visited[path] = struct{}{}
	return true
}

func (r *Resolver) record(meta project.ModuleMeta) {
	r.mu.Lock()
	r.modules = append(r.modules, meta)
	r.mu.Unlock()
}

func (r *Resolver) resolve(ctx context.Context, path string, at *token.Token) (token.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.markVisited(path) {
		return nil, nil
	}

	ctx, span := trace.Child(ctx, trace.ScopeModule, "resolve")
	span.WithExtra("module", path)
	defer span.End("")

	mod, err := r.loader.LoadModule(ctx, path)
	if err != nil {
		if _, ok := diag.AsFatal(err); ok {
			return nil, err
		}
		return nil, diag.ReportError(nil, diag.IOLoadFileError, at,
			fmt.Sprintf("cannot read module %q: %v", path, err)).
			WithHint("Check that the imported file exists relative to the importing file.").
			Fatal()
	}

	rest, stmts, err := Scan(mod.Tokens, path)
	if err != nil {
		return nil, err
	}

	for i := range stmts {
		stmts[i].Path = r.canonical(stmts[i].Path)
	}

	meta := project.ModuleMeta{
		Path:        path,
		ContentHash: mod.Hash,
		Tokens:      len(rest),
	}
	for i := range stmts {
		meta.Imports = append(meta.Imports, project.ImportMeta{
			Path:  stmts[i].Path,
			Token: &stmts[i].Keyword,
		})
	}
	r.record(meta)
	span.WithExtra("imports", strconv.Itoa(len(stmts)))

	out := make(token.Stream, 0, len(rest))
	for i := range stmts {
		stmt := &stmts[i]
		sub, err := r.resolve(ctx, stmt.Path, &stmt.Keyword)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			continue
		}
		out = append(out, Wrap(stmt.Path, sub, stmt.Keyword)...)
	}
	out = append(out, rest...)
	return out, nil
}
