package driver

import "golang.org/x/sync/errgroup"

// RunBatch fans out N independent Driver runs concurrently, each with
// its own Core/Stack/Environment/Globals — no state is shared across
// runs, so the §5 "external lock" concern never arises. Grounded on the
// teacher's goroutine + sync.WaitGroup concurrency style
// (internal/concurrency), scoped here to whole-program batch execution
// via golang.org/x/sync/errgroup for structured error propagation.
func RunBatch(runs []*Driver, entries []string) error {
	var g errgroup.Group
	for i := range runs {
		d := runs[i]
		entry := entries[i]
		g.Go(func() error {
			return d.Run(entry)
		})
	}
	return g.Wait()
}
