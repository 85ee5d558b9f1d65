package driver

import (
	"context"
	"strconv"
	"sync"
	"time"

	"tcab/internal/buildvar"
	"tcab/internal/cond"
	"tcab/internal/diag"
	"tcab/internal/imports"
	"tcab/internal/lexer"
	"tcab/internal/normalize"
	"tcab/internal/observ"
	"tcab/internal/project"
	"tcab/internal/source"
	"tcab/internal/token"
	"tcab/internal/trace"
)

// countingReporter counts diagnostics passing through to next.
type countingReporter struct {
	next diag.Reporter
	n    int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, tok *token.Token, msg, hint string, notes []diag.Note) {
	r.n++
	if r.next != nil {
		r.next.Report(code, sev, tok, msg, hint, notes)
	}
}

// moduleLoader reads modules through a FileSet and runs
// lexer -> normalizer -> conditional compiler on them.
type moduleLoader struct {
	fs       *source.FileSet
	vars     *buildvar.Set
	reporter diag.Reporter
	defines  project.Digest

	disk *DiskCache
	mem  *ModuleCache

	mu    sync.Mutex
	timer *observ.Timer
	hits  int

	onPreprocess func(module string)
}

func newModuleLoader(fs *source.FileSet, vars *buildvar.Set, r diag.Reporter, opts Options, timer *observ.Timer) *moduleLoader {
	return &moduleLoader{
		fs:       fs,
		vars:     vars,
		reporter: r,
		defines:  project.DigestOf([]byte(vars.Fingerprint())),
		disk:     opts.DiskCache,
		mem:      opts.Cache,
		timer:    timer,
	}
}

func (l *moduleLoader) observe(name string, d time.Duration) {
	if l.timer == nil {
		return
	}
	l.mu.Lock()
	l.timer.Add(name, d)
	l.mu.Unlock()
}

// CanonicalPath keys modules by their root-relative path.
func (l *moduleLoader) CanonicalPath(path string) string {
	return l.fs.Canonical(path)
}

func (l *moduleLoader) LoadModule(ctx context.Context, path string) (imports.Module, error) {
	started := time.Now()
	id, err := l.fs.Load(path)
	l.observe("load", time.Since(started))
	if err != nil {
		return imports.Module{}, err
	}
	file := l.fs.Get(id)
	content := project.Digest(file.Hash)
	key := project.Combine(content, l.defines)

	if ts, ok := l.cached(file, key); ok {
		trace.Point(trace.FromContext(ctx), trace.ScopeCache, "cache_hit", file.Path, trace.CurrentSpan(ctx).SpanID)
		return imports.Module{Path: file.Path, Tokens: ts, Hash: content}, nil
	}

	counter := &countingReporter{next: l.reporter}
	ts, err := l.preprocess(ctx, file, counter)
	if err != nil {
		return imports.Module{}, err
	}
	// модули с диагностиками не кешируются: повторный запуск должен их показать
	if counter.n == 0 {
		l.store(file, content, key, ts)
	}
	return imports.Module{Path: file.Path, Tokens: ts, Hash: content}, nil
}

func (l *moduleLoader) preprocess(ctx context.Context, file *source.File, r diag.Reporter) (token.Stream, error) {
	if l.onPreprocess != nil {
		l.onPreprocess(file.Path)
	}
	_, span := trace.Child(ctx, trace.ScopeModule, "preprocess")
	span.WithExtra("module", file.Path)

	started := time.Now()
	ts := lexer.Lex(file, lexer.Options{Reporter: r})
	l.observe("lex", time.Since(started))

	started = time.Now()
	ts = normalize.Normalize(ts)
	l.observe("normalize", time.Since(started))

	started = time.Now()
	ts, err := cond.Compile(ts, l.vars, r)
	l.observe("cond", time.Since(started))

	span.WithExtra("tokens", strconv.Itoa(len(ts))).End("")
	return ts, err
}

func (l *moduleLoader) cached(file *source.File, key project.Digest) (token.Stream, bool) {
	if ts, ok := l.mem.Get(file.Path, key); ok {
		l.hit()
		return ts, true
	}
	if l.disk == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := l.disk.Get(key, &payload)
	if err != nil || !ok || payload.Path != file.Path {
		return nil, false
	}
	ts := payloadToStream(&payload)
	l.mem.Put(file.Path, key, ts)
	l.hit()
	return ts, true
}

func (l *moduleLoader) store(file *source.File, content, key project.Digest, ts token.Stream) {
	l.mem.Put(file.Path, key, ts)
	if l.disk == nil {
		return
	}
	if err := l.disk.Put(key, streamToPayload(file.Path, content, l.defines, ts)); err != nil {
		diag.ReportWarning(l.reporter, diag.IOCacheError, nil, "failed to write module cache: "+err.Error()).Emit()
	}
}

func (l *moduleLoader) hit() {
	l.mu.Lock()
	l.hits++
	l.mu.Unlock()
}

// CacheHits reports how many modules came from a cache.
func (l *moduleLoader) CacheHits() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits
}
