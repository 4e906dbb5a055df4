// Package parallel spreads independent differentiation episodes across
// goroutines: per-direction forward-mode evaluations and sampler chains.
// Work items must not share a Tape; each goroutine owns the episodes it
// runs.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work items are spread over goroutines.
type Config struct {
	Enabled      bool // Run work items concurrently.
	NumWorkers   int  // Upper bound on worker goroutines.
	MinPerWorker int  // Minimum items per worker before adding another.
}

// DefaultConfig sizes workers to the CPU count. One item per worker is
// the default threshold: an episode is heavyweight next to the loop
// bookkeeping, unlike per-element kernels.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinPerWorker: 1,
	}
}

// workers returns the number of goroutines to use for n items.
func (cfg Config) workers(n int) int {
	if !cfg.Enabled || n <= 1 {
		return 1
	}
	w := cfg.NumWorkers
	if cfg.MinPerWorker > 1 {
		if byLoad := n / cfg.MinPerWorker; byLoad < w {
			w = byLoad
		}
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// For executes f(i) for i in [0, n), splitting the range into one
// contiguous block per worker. It returns once every item has run.
func For(n int, f func(i int), cfg Config) {
	w := cfg.workers(n)
	if w == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for k := 0; k < w; k++ {
		lo, hi := k*n/w, (k+1)*n/w
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				f(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// Do runs a small fixed set of unlike tasks, concurrently when enabled.
// The chain runner uses it with one task per chain.
func Do(cfg Config, fs ...func()) {
	if !cfg.Enabled || len(fs) <= 1 {
		for _, f := range fs {
			f()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(fs))
	for _, f := range fs {
		go func(f func()) {
			defer wg.Done()
			f()
		}(f)
	}
	wg.Wait()
}
