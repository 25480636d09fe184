package isosurface

import (
	"runtime"
	"sync"
)

// Executor runs the data-parallel portions of the pipeline. Each stage hands
// it an index space [0, n) whose units are independent: they may run in any
// order or interleaving, and the only shared state between them is disjoint
// output slots. For returns only after every unit has run, so each stage
// call is a synchronization barrier.
type Executor interface {
	// For invokes fn over contiguous, non-overlapping subranges that
	// together cover [0, n).
	For(n int, fn func(lo, hi int))
}

// Serial runs every stage on the calling goroutine. Useful for deterministic
// profiling and as the baseline in tests.
type Serial struct{}

// For runs fn over the whole range at once.
func (Serial) For(n int, fn func(lo, hi int)) {
	if n > 0 {
		fn(0, n)
	}
}

// Parallel fans each stage out over worker goroutines, one contiguous chunk
// per worker.
type Parallel struct {
	// Workers is the goroutine count per stage. Zero means GOMAXPROCS.
	Workers int
}

// For splits [0, n) into one chunk per worker and waits for all of them.
func (p Parallel) For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// Compile-time interface checks.
var (
	_ Executor = Serial{}
	_ Executor = Parallel{}
)
