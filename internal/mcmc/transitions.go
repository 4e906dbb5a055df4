package mcmc

import "fmt"

// IterConfig configures the transition loop.
type IterConfig struct {
	// Warmup is the number of initial transitions treated as
	// burn-in.
	Warmup int

	// Samples is the number of post-warmup transitions.
	Samples int

	// Thin keeps every Thin-th draw; values below 1 mean keep all.
	Thin int

	// Refresh is the progress-callback period in iterations; 0
	// disables progress reporting.
	Refresh int

	// SaveWarmup routes warmup draws to the writer too.
	SaveWarmup bool
}

// DefaultIterConfig returns the usual halves: as many warmup
// transitions as kept ones.
func DefaultIterConfig() IterConfig {
	return IterConfig{
		Warmup:  1000,
		Samples: 1000,
		Thin:    1,
		Refresh: 100,
	}
}

// Callbacks hooks the transition loop.
type Callbacks struct {
	// Interrupt runs before every transition; a non-nil error stops
	// the run and is returned.
	Interrupt func() error

	// Progress runs on refresh boundaries.
	Progress func(iter, total int, warmup bool)
}

// GenerateTransitions drives s from init through warmup and sampling,
// routing kept draws to w. It returns the final chain state. Draws are
// cloned before writing, so writers may retain them.
func GenerateTransitions(s Sampler, init Sample, cfg IterConfig, w SampleWriter, cb Callbacks) (Sample, error) {
	total := cfg.Warmup + cfg.Samples
	thin := cfg.Thin
	if thin < 1 {
		thin = 1
	}

	cur := init
	for it := 0; it < total; it++ {
		if cb.Interrupt != nil {
			if err := cb.Interrupt(); err != nil {
				return cur, err
			}
		}
		warmup := it < cfg.Warmup
		if cb.Progress != nil && cfg.Refresh > 0 && (it%cfg.Refresh == 0 || it+1 == total) {
			cb.Progress(it+1, total, warmup)
		}

		var err error
		cur, err = s.Transition(cur)
		if err != nil {
			return cur, fmt.Errorf("transition %d: %w", it+1, err)
		}

		if warmup && !cfg.SaveWarmup {
			continue
		}
		idx := it
		if !warmup {
			idx = it - cfg.Warmup
		}
		if idx%thin != 0 || w == nil {
			continue
		}
		if err := w.Write(cur.clone()); err != nil {
			return cur, fmt.Errorf("write draw: %w", err)
		}
	}
	return cur, nil
}
