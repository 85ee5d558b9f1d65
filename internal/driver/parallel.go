package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tcab/internal/buildpipeline"
	"tcab/internal/source"
)

// CheckResult is the outcome of compiling one entry file of a directory.
type CheckResult struct {
	Path    string // путь относительно каталога, со слешами
	Result  *Result
	Elapsed float64 // ms
}

// ListSourceFiles возвращает отсортированный список всех *.tcab файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, source.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir compiles every *.tcab file under dir as its own entry, in
// parallel. Compilations share nothing but the module cache.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) ([]CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if opts.Cache == nil {
		opts.Cache = NewModuleCache(len(files))
	}
	progress := opts.Progress
	if progress != nil {
		opts.Progress = buildpipeline.FuncSink(func(ev buildpipeline.Event) {
			ev.File = buildpipeline.DisplayPath(ev.File, absDir)
			progress.OnEvent(ev)
		})
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Compile(gctx, path, opts)
			if err != nil {
				return err
			}
			elapsed := 0.0
			if res.Timing != nil {
				elapsed = res.Timing.TotalMS
			}
			results[i] = CheckResult{
				Path:    buildpipeline.DisplayPath(path, absDir),
				Result:  res,
				Elapsed: elapsed,
			}
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// CountFailed returns the number of failed compilations.
func CountFailed(results []CheckResult) int {
	n := 0
	for _, r := range results {
		if r.Result == nil || r.Result.Failed() {
			n++
		}
	}
	return n
}
