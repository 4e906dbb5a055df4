// Copyright 2026 Ed Hearn. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mcmc provides Hamiltonian Monte Carlo sampling over
// differentiable log densities.
//
// A Model supplies the log density and its gradient, an HMC sampler
// proposes transitions, and GenerateTransitions drives the warmup and
// sampling loop while streaming draws to a SampleWriter.
//
// Example:
//
//	import "github.com/edhearn84/stan/mcmc"
//
//	func main() {
//	    model := mcmc.ModelFunc{N: 2, F: logProbGrad}
//	    sampler := mcmc.NewHMC(model, mcmc.DefaultConfig())
//
//	    init := mcmc.Sample{Params: []float64{0, 0}}
//	    writer := mcmc.NewCSVWriter(os.Stdout, []string{"mu", "sigma"})
//	    last, err := mcmc.GenerateTransitions(sampler, init,
//	        mcmc.DefaultIterConfig(), writer, mcmc.Callbacks{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = writer.Flush()
//	    fmt.Println(last.LogProb)
//	}
package mcmc

import (
	"io"

	"github.com/edhearn84/stan/internal/mcmc"
	"github.com/edhearn84/stan/internal/parallel"
)

// Model is a differentiable log density over a fixed-dimension
// parameter vector.
type Model = mcmc.Model

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc = mcmc.ModelFunc

// Sample is one draw: parameter values, their log density, and the
// acceptance statistic of the transition that produced them.
type Sample = mcmc.Sample

// Config holds the static HMC tuning parameters.
type Config = mcmc.Config

// Sampler proposes a new sample from the current one.
type Sampler = mcmc.Sampler

// HMC is a fixed-length leapfrog Hamiltonian Monte Carlo sampler.
type HMC = mcmc.HMC

// IterConfig shapes the warmup and sampling loop.
type IterConfig = mcmc.IterConfig

// Callbacks hooks external control into the sampling loop.
type Callbacks = mcmc.Callbacks

// SampleWriter consumes draws as the loop produces them.
type SampleWriter = mcmc.SampleWriter

// CSVWriter streams draws in Stan's CSV convention, one row per draw
// with lp__ and accept_stat__ columns before the parameters.
type CSVWriter = mcmc.CSVWriter

// ParallelConfig controls how chains spread across goroutines.
type ParallelConfig = parallel.Config

// Discard is a SampleWriter that drops every draw.
var Discard = mcmc.Discard

// DefaultConfig returns sensible HMC tuning defaults.
func DefaultConfig() Config {
	return mcmc.DefaultConfig()
}

// DefaultIterConfig returns sensible loop defaults.
func DefaultIterConfig() IterConfig {
	return mcmc.DefaultIterConfig()
}

// DefaultParallelConfig enables one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// NewHMC creates a sampler for model, replacing non-positive Config
// fields with defaults.
func NewHMC(model Model, cfg Config) *HMC {
	return mcmc.NewHMC(model, cfg)
}

// NewCSVWriter creates a writer that emits a header row naming the
// parameters before the first draw.
func NewCSVWriter(w io.Writer, names []string) *CSVWriter {
	return mcmc.NewCSVWriter(w, names)
}

// GenerateTransitions runs warmup then sampling, streaming kept draws
// to w, and returns the final state of the chain.
func GenerateTransitions(s Sampler, init Sample, cfg IterConfig, w SampleWriter, cb Callbacks) (Sample, error) {
	return mcmc.GenerateTransitions(s, init, cfg, w, cb)
}

// RunChains runs several independently built chains, in parallel when
// pcfg allows, and returns each chain's final state.
func RunChains(chains int, build func(chain int) (Sampler, Sample, SampleWriter, error), cfg IterConfig, pcfg ParallelConfig) ([]Sample, error) {
	return mcmc.RunChains(chains, build, cfg, pcfg)
}
