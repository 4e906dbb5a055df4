package mcmc

import (
	"errors"
	"fmt"

	"github.com/edhearn84/stan/internal/parallel"
)

// RunChains runs independent chains, each over its own sampler, initial
// state, and writer built by build. Chains share nothing, so they run
// concurrently under pcfg. The final state of every chain is returned;
// per-chain failures are joined into one error without stopping the
// other chains.
func RunChains(chains int, build func(chain int) (Sampler, Sample, SampleWriter, error), cfg IterConfig, pcfg parallel.Config) ([]Sample, error) {
	finals := make([]Sample, chains)
	errs := make([]error, chains)

	tasks := make([]func(), chains)
	for c := range tasks {
		tasks[c] = func() {
			s, init, w, err := build(c)
			if err != nil {
				errs[c] = fmt.Errorf("chain %d: %w", c, err)
				return
			}
			finals[c], err = GenerateTransitions(s, init, cfg, w, Callbacks{})
			if err != nil {
				errs[c] = fmt.Errorf("chain %d: %w", c, err)
			}
		}
	}
	parallel.Do(pcfg, tasks...)
	return finals, errors.Join(errs...)
}
