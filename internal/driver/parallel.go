package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BuildDirResult is one file's outcome from BuildTokenBuffersDir.
type BuildDirResult struct {
	Path   string
	Result *BufferResult
	Err    error
}

// BuildStatus is one file's lifecycle state during a directory build, for
// progress reporting.
type BuildStatus int

const (
	StatusQueued BuildStatus = iota
	StatusWorking
	StatusDone
	StatusError
)

// BuildEvent reports one file's status transition during
// BuildTokenBuffersDirEvents.
type BuildEvent struct {
	File   string
	Status BuildStatus
}

// ListSGFiles returns the sorted list of *.sg files under dir — the same
// enumeration BuildTokenBuffersDir(Events) uses, exposed so a caller (e.g.
// a progress UI) can size itself before the build starts.
func ListSGFiles(dir string) ([]string, error) {
	return listSGFiles(dir)
}

func listSGFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sg") {
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

// BuildTokenBuffersDir builds one TokenBuffer per *.sg file under dir,
// concurrently, capped at jobs workers (GOMAXPROCS if jobs <= 0). Every
// file gets its own result slot regardless of whether it failed, so a
// caller can report per-file errors without losing the rest of the batch.
func BuildTokenBuffersDir(ctx context.Context, dir, configPath string, jobs int) ([]BuildDirResult, error) {
	files, err := listSGFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]BuildDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				result, err := BuildTokenBuffer(path, configPath)
				results[i] = BuildDirResult{Path: path, Result: result, Err: err}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// BuildTokenBuffersDirEvents runs BuildTokenBuffersDir while reporting each
// file's lifecycle on events. It closes events before returning, on every
// exit path, so a caller can safely range over it from another goroutine.
func BuildTokenBuffersDirEvents(ctx context.Context, dir, configPath string, jobs int, events chan<- BuildEvent) ([]BuildDirResult, error) {
	defer close(events)

	files, err := listSGFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	for _, path := range files {
		events <- BuildEvent{File: path, Status: StatusQueued}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]BuildDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				events <- BuildEvent{File: path, Status: StatusWorking}
				result, err := BuildTokenBuffer(path, configPath)
				results[i] = BuildDirResult{Path: path, Result: result, Err: err}
				if err != nil {
					events <- BuildEvent{File: path, Status: StatusError}
				} else {
					events <- BuildEvent{File: path, Status: StatusDone}
				}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
