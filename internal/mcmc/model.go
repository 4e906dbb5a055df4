package mcmc

// Model is a target log density on unconstrained parameter space.
// Implementations are typically backed by a reverse-mode gradient
// episode, but the sampler never sees tapes or handles, only this
// contract.
type Model interface {
	// Dim returns the parameter dimension.
	Dim() int

	// LogProbGrad evaluates the log density at x and writes its
	// gradient into grad, which has length Dim. A returned error
	// means x is outside the model's support or the evaluation
	// failed; how to respond is the caller's policy, not the
	// model's.
	LogProbGrad(x, grad []float64) (float64, error)
}

// ModelFunc adapts a gradient closure into a Model.
type ModelFunc struct {
	N int
	F func(x, grad []float64) (float64, error)
}

func (m ModelFunc) Dim() int { return m.N }

func (m ModelFunc) LogProbGrad(x, grad []float64) (float64, error) {
	return m.F(x, grad)
}
