// Package mcmc provides Markov chain Monte Carlo services over a
// differentiable target density: a Hamiltonian Monte Carlo sampler,
// the transition loop with thinning and progress hooks, draw writers,
// and a multi-chain runner. The sampler consumes the target strictly
// through the Model gradient contract; derivative bookkeeping lives
// behind it.
package mcmc

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Config configures a Hamiltonian Monte Carlo sampler.
type Config struct {
	// StepSize is the leapfrog integrator step size.
	StepSize float64

	// LeapfrogSteps is the number of integrator steps per
	// trajectory.
	LeapfrogSteps int

	// Seed seeds the momentum and acceptance RNG.
	Seed int64
}

// DefaultConfig returns sensible defaults for well-scaled targets.
func DefaultConfig() Config {
	return Config{
		StepSize:      0.1,
		LeapfrogSteps: 10,
		Seed:          1,
	}
}

// Sampler advances a chain by one transition.
type Sampler interface {
	Transition(cur Sample) (Sample, error)
}

// HMC is a fixed-step Hamiltonian Monte Carlo sampler: Gaussian
// momentum, leapfrog trajectory, Metropolis correction. A trajectory
// that leaves the model's support or produces non-finite energy is a
// divergence and rejects the proposal; the chain keeps its state and
// moves on.
type HMC struct {
	model Model
	cfg   Config
	rng   *rand.Rand

	pos, mom, grad []float64
}

// NewHMC creates a sampler for model. Non-positive config fields fall
// back to their defaults.
func NewHMC(model Model, cfg Config) *HMC {
	def := DefaultConfig()
	if cfg.StepSize <= 0 {
		cfg.StepSize = def.StepSize
	}
	if cfg.LeapfrogSteps <= 0 {
		cfg.LeapfrogSteps = def.LeapfrogSteps
	}
	n := model.Dim()
	return &HMC{
		model: model,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		pos:   make([]float64, n),
		mom:   make([]float64, n),
		grad:  make([]float64, n),
	}
}

// Transition runs one momentum refresh, one leapfrog trajectory, and
// one Metropolis decision. An evaluation failure at the current state
// aborts with an error; a failure inside the trajectory is a
// divergence and rejects.
func (h *HMC) Transition(cur Sample) (Sample, error) {
	n := h.model.Dim()
	if len(cur.Params) != n {
		panic("mcmc: sample dimension mismatch")
	}

	for i := range h.mom {
		h.mom[i] = h.rng.NormFloat64()
	}
	kinetic0 := kinetic(h.mom)

	copy(h.pos, cur.Params)
	logp, err := h.model.LogProbGrad(h.pos, h.grad)
	if err != nil {
		return Sample{}, fmt.Errorf("log density at current state: %w", err)
	}
	if math.IsNaN(logp) || math.IsInf(logp, 0) {
		return Sample{}, fmt.Errorf("log density at current state is %v", logp)
	}
	logp0 := logp
	ham0 := -logp + kinetic0

	eps := h.cfg.StepSize
	diverged := false
	for s := 0; s < h.cfg.LeapfrogSteps; s++ {
		floats.AddScaled(h.mom, 0.5*eps, h.grad)
		floats.AddScaled(h.pos, eps, h.mom)
		logp, err = h.model.LogProbGrad(h.pos, h.grad)
		if err != nil {
			diverged = true
			break
		}
		floats.AddScaled(h.mom, 0.5*eps, h.grad)
	}

	accept := 0.0
	if !diverged {
		ham1 := -logp + kinetic(h.mom)
		accept = math.Exp(math.Min(0, ham0-ham1))
		if math.IsNaN(accept) {
			accept = 0
		}
	}
	if h.rng.Float64() < accept {
		return Sample{
			Params:     append([]float64(nil), h.pos...),
			LogProb:    logp,
			AcceptStat: accept,
		}, nil
	}
	return Sample{
		Params:     cur.Params,
		LogProb:    logp0,
		AcceptStat: accept,
	}, nil
}

func kinetic(mom []float64) float64 {
	return 0.5 * floats.Dot(mom, mom)
}
