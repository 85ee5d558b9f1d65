package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tcab/internal/buildpipeline"
	"tcab/internal/buildvar"
	"tcab/internal/diag"
	"tcab/internal/imports"
	"tcab/internal/observ"
	"tcab/internal/project"
	"tcab/internal/source"
	"tcab/internal/syntax"
	"tcab/internal/testfn"
	"tcab/internal/token"
	"tcab/internal/trace"
)

// Result is the outcome of one compilation. Tokens is nil when a fatal
// diagnostic stopped the pipeline.
type Result struct {
	Path      string // entry file as given
	Entry     string // entry module path
	FileSet   *source.FileSet
	Vars      *buildvar.Set
	Tokens    token.Stream
	Bag       *diag.Bag
	Modules   []project.ModuleMeta
	Timing    *observ.Report
	Stages    buildpipeline.Timings
	CacheHits int
}

// Failed reports whether the compilation produced errors.
func (r *Result) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// Compile runs the whole front end on the entry file at path.
//
// Fatal diagnostics end the pipeline and are recorded in Result.Bag; the
// returned error is reserved for cancellation and failures outside the
// compiled program.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	ctx, span := trace.Child(ctx, trace.ScopeDriver, "compile")
	span.WithExtra("path", path)
	defer span.End("")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	fs := source.NewFileSet(filepath.Dir(abs))
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res := &Result{
		Path:    path,
		Entry:   source.ModulePath(filepath.Base(abs)),
		FileSet: fs,
		Bag:     bag,
	}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	defer func() {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
	}()

	stage := newStageRunner(ctx, path, opts.Progress, timer)
	stage.stages = &res.Stages

	stage.begin(buildpipeline.StageLoad)
	vars, err := defineVars(opts.Defines)
	if err == nil {
		err = checkEntry(abs, res.Entry)
	}
	if err != nil {
		return res, stage.fail(res, err)
	}
	res.Vars = vars
	loader := newModuleLoader(fs, vars, reporter, opts, timer)
	loader.onPreprocess = func(module string) {
		if module == res.Entry {
			buildpipeline.Emit(opts.Progress, path, buildpipeline.StagePreprocess, buildpipeline.StatusWorking, nil, 0)
		}
	}
	resolver := imports.NewResolver(loader)
	stage.done()

	importCtx := stage.begin(buildpipeline.StageImports)
	ts, err := resolver.Resolve(importCtx, res.Entry)
	res.Modules = resolver.Modules()
	res.CacheHits = loader.CacheHits()
	stage.note("modules=" + strconv.Itoa(len(res.Modules)))
	if err != nil {
		return res, stage.fail(res, err)
	}
	stage.done()

	stage.begin(buildpipeline.StageCheck)
	ts = syntax.Check(ts, reporter)
	stage.done()

	stage.begin(buildpipeline.StageTests)
	ts = testfn.Convert(ts, reporter)
	stage.done()

	res.Tokens = ts
	stage.finish(res)
	return res, nil
}

// defineVars builds the variable set; a bad definition is fatal.
func defineVars(defs []string) (*buildvar.Set, error) {
	vars := buildvar.NewSet()
	bad, err := vars.DefineAll(defs)
	if err == nil {
		return vars, nil
	}
	code := diag.CmpMalformedDefinition
	hint := "Definitions have the form -d name=value."
	if errors.Is(err, buildvar.ErrCannotInferKind) {
		code = diag.CmpCannotInferKind
		hint = "Use true/false, a number, or a quoted string."
	}
	return nil, diag.ReportError(nil, code, nil, fmt.Sprintf("Bad definition %q: %v", bad, err)).
		WithHint(hint).
		Fatal()
}

// checkEntry reports an unreadable entry file; imported files are checked
// by the resolver, which can point at the import statement.
func checkEntry(abs, entry string) error {
	info, err := os.Stat(abs)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", abs)
	}
	if err == nil {
		return nil
	}
	return diag.ReportError(nil, diag.IOLoadFileError, nil, fmt.Sprintf("cannot read module %q: %v", entry, err)).
		WithHint("Pass an existing .tcab file.").
		Fatal()
}

// stageRunner emits progress events and trace spans around pipeline stages.
type stageRunner struct {
	ctx   context.Context
	file  string
	sink  buildpipeline.ProgressSink
	timer *observ.Timer
	// stages накапливает длительность стадий, nil - не собирать
	stages *buildpipeline.Timings

	cur     buildpipeline.Stage
	started time.Time
	span    *trace.Span
	idx     int
	detail  string
}

func newStageRunner(ctx context.Context, file string, sink buildpipeline.ProgressSink, timer *observ.Timer) *stageRunner {
	return &stageRunner{ctx: ctx, file: file, sink: sink, timer: timer, cur: buildpipeline.StageLoad, idx: -1}
}

// begin starts stage and returns a context carrying its span.
func (s *stageRunner) begin(stage buildpipeline.Stage) context.Context {
	s.cur = stage
	s.started = time.Now()
	s.detail = ""
	ctx, span := trace.Child(s.ctx, trace.ScopePass, string(stage))
	s.span = span
	if s.timer != nil {
		s.idx = s.timer.Begin(string(stage))
	}
	buildpipeline.Emit(s.sink, s.file, stage, buildpipeline.StatusWorking, nil, 0)
	return ctx
}

func (s *stageRunner) note(detail string) { s.detail = detail }

func (s *stageRunner) done() {
	if s.stages != nil {
		s.stages.Set(s.cur, time.Since(s.started))
	}
	s.span.End(s.detail)
	s.span = nil
	if s.timer != nil {
		s.timer.End(s.idx, s.detail)
	}
}

// fail closes the current stage. Fatal diagnostics go to the bag and are
// swallowed; other errors are returned.
func (s *stageRunner) fail(res *Result, err error) error {
	if s.span != nil {
		s.done()
	}
	fatal, ok := diag.AsFatal(err)
	if ok {
		res.Bag.Force(fatal.Diagnostic)
		err = nil
	}
	buildpipeline.Emit(s.sink, s.file, s.cur, buildpipeline.StatusError, err, time.Since(s.started))
	return err
}

func (s *stageRunner) finish(res *Result) {
	status := buildpipeline.StatusDone
	if res.Failed() {
		status = buildpipeline.StatusError
	}
	buildpipeline.Emit(s.sink, s.file, s.cur, status, nil, time.Since(s.started))
}
