package heat

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// executor runs n independent tasks on a bounded pool of goroutines and
// blocks until all of them finished. It stands in for the device: a panic
// inside a task is recovered and reported as ErrDeviceFailure instead of
// taking the process down.
type executor struct {
	workers int
	// beforeTask, when set, runs at the start of every task. Tests use it
	// to inject worker faults.
	beforeTask func(task int)
}

// run executes task(0..n-1) on at most e.workers goroutines. Which worker
// runs which task is unspecified, so tasks must write disjoint memory.
// Every task runs even after a failure; the first recovered panic is
// returned.
func (e executor) run(n int, task func(i int)) error {
	if n == 0 {
		return nil
	}
	workers := e.workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(min(workers, n))
	for i := 0; i < n; i++ {
		g.Go(func() error { return e.safeRun(i, task) })
	}

	return g.Wait()
}

// safeRun runs one task and converts a panic into an error.
func (e executor) safeRun(i int, task func(int)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %d: %v: %w", i, r, ErrDeviceFailure)
		}
	}()
	if e.beforeTask != nil {
		e.beforeTask(i)
	}
	task(i)

	return nil
}
