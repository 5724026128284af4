package datasets

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"sentidash/domain/dataset"
	"sentidash/internal/errors"
)

// Source names the spreadsheet of one dataset
type Source struct {
	Kind dataset.Kind
	Path string
}

// LoadAll builds every source concurrently, at most GOMAXPROCS at a time.
// Each build writes only its own slot and a failure never cancels the others.
func LoadAll(ctx context.Context, sources []Source, opts Options) []*Result {
	results := make([]*Result, len(sources))
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				res := &Result{Kind: src.Kind, Report: dataset.Report{Kind: src.Kind, Source: src.Path}}
				res.fail(errors.BuildFailed(src.Kind.String(), err))
				results[i] = res
				return nil
			}
			defer sem.Release(1)

			results[i] = Load(src.Kind, src.Path, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
