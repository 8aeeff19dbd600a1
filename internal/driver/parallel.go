package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ScanDirResult is the outcome of scanning one file of a batch. Err
// holds I/O problems; shader problems land in Result as usual.
type ScanDirResult struct {
	Path   string
	Result Result
	Err    error
}

// CompileDirResult is the outcome of compiling one file of a batch.
type CompileDirResult struct {
	Path   string
	Result CompileResult
	Err    error
}

// listShaderFiles returns the sorted list of *.dxbc files under dir.
// Сортировка ради детерминированного порядка результатов.
func listShaderFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".dxbc") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ScanDir scans every *.dxbc file under dir with bounded parallelism.
// jobs <= 0 means one worker per CPU. Results come back in file order;
// per-file failures never cancel the batch, only ctx does.
func ScanDir(ctx context.Context, dir string, opts Options, cache *DiskCache, jobs int) ([]ScanDirResult, error) {
	files, err := listShaderFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]ScanDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = ScanDirResult{Path: path}
			data, err := os.ReadFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}

			fileOpts := opts
			fileOpts.SourceName = path
			res, err := CachedScan(data, fileOpts, cache)
			results[i].Result = res
			if res.Status == StatusOK {
				results[i].Err = nil
			} else {
				results[i].Err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompileDir compiles every *.dxbc file under dir with bounded
// parallelism, writing *.spv next to each input on success.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int) ([]CompileDirResult, error) {
	files, err := listShaderFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CompileDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = CompileDirResult{Path: path}
			data, err := os.ReadFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}

			fileOpts := opts
			fileOpts.SourceName = path
			res, err := Compile(data, fileOpts)
			results[i].Result = res
			if res.Status != StatusOK {
				results[i].Err = err
				return nil
			}

			out := strings.TrimSuffix(path, ".dxbc") + ".spv"
			if err := os.WriteFile(out, res.SPIRV, 0o644); err != nil {
				results[i].Err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
