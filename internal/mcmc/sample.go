package mcmc

// Sample is one chain state: parameter values together with the log
// density and acceptance statistic of the transition that produced
// them.
type Sample struct {
	// Params are the unconstrained parameter values.
	Params []float64

	// LogProb is the target log density at Params.
	LogProb float64

	// AcceptStat is the Metropolis acceptance probability of the
	// transition, 0 for a divergent trajectory.
	AcceptStat float64
}

// clone copies s so the sampler's scratch buffers can never alias a
// draw handed to a writer.
func (s Sample) clone() Sample {
	s.Params = append([]float64(nil), s.Params...)
	return s
}
