package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	label "github.com/jamesainslie/go-label"
)

// AnnotateFiles rewrites each corpus file in place with the annotations the
// labeler produces. Examples fan out across workers, one example per worker
// at a time; within one example rule application stays sequential. Existing
// annotations in a record are preserved and never overridden.
func AnnotateFiles(ctx context.Context, l *label.Labeler, paths []string, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	for _, path := range paths {
		if err := annotateFile(ctx, l, path, workers); err != nil {
			return fmt.Errorf("annotating %s: %w", path, err)
		}
		slog.Default().Info("annotated corpus file", "path", path)
	}
	return nil
}

func annotateFile(ctx context.Context, l *label.Labeler, path string, workers int) error {
	recs, err := ReadFile(path)
	if err != nil {
		return err
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ex := recs[i].Example()
				l.Annotate(ex)
				recs[i] = FromExample(ex)
			}
		}()
	}

	err = func() error {
		defer close(jobs)
		for i := range recs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}()
	wg.Wait()
	if err != nil {
		return err
	}

	return WriteFile(path, recs)
}
