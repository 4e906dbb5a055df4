// Package main samples a Bayesian logistic-regression posterior over
// synthetic data with Hamiltonian Monte Carlo.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/edhearn84/stan/autodiff"
	"github.com/edhearn84/stan/mcmc"
)

func main() {
	chains := flag.Int("chains", 4, "Independent chains to run")
	iters := flag.Int("iters", 1000, "Sampling iterations per chain")
	warmup := flag.Int("warmup", 1000, "Warmup iterations per chain")
	thin := flag.Int("thin", 1, "Keep every thin-th draw")
	step := flag.Float64("step", 0.05, "Leapfrog step size")
	leapfrog := flag.Int("leapfrog", 10, "Leapfrog steps per transition")
	seed := flag.Int64("seed", 42, "Base RNG seed; chain c adds c")
	obs := flag.Int("obs", 200, "Synthetic observations to generate")
	out := flag.String("out", "", "CSV path prefix; chain c writes <out>_<c>.csv (empty = no files)")
	flag.Parse()

	truth := []float64{1.5, -0.8, 0.4}
	names := []string{"alpha", "beta.1", "beta.2"}

	rng := rand.New(rand.NewSource(*seed))
	xs, ys := synthetic(*obs, truth, rng)

	fmt.Println("Bayesian logistic regression via HMC")
	fmt.Printf("  data:     %d observations, %d parameters\n", len(xs), len(truth))
	fmt.Printf("  chains:   %d x (%d warmup + %d sampling), thin %d\n", *chains, *warmup, *iters, *thin)
	fmt.Printf("  leapfrog: step %.3g, %d steps\n\n", *step, *leapfrog)

	files := make([]*os.File, *chains)
	csvs := make([]*mcmc.CSVWriter, *chains)
	sums := make([]*summaryWriter, *chains)

	build := func(chain int) (mcmc.Sampler, mcmc.Sample, mcmc.SampleWriter, error) {
		model := logisticModel(xs, ys, len(truth))
		sampler := mcmc.NewHMC(model, mcmc.Config{
			StepSize:      *step,
			LeapfrogSteps: *leapfrog,
			Seed:          *seed + int64(chain),
		})

		initRng := rand.New(rand.NewSource(*seed + int64(chain) + 10007))
		init := mcmc.Sample{Params: make([]float64, len(truth))}
		for j := range init.Params {
			init.Params[j] = 4*initRng.Float64() - 2
		}

		sw := &summaryWriter{}
		if *out != "" {
			f, err := os.Create(fmt.Sprintf("%s_%d.csv", *out, chain+1))
			if err != nil {
				return nil, mcmc.Sample{}, nil, err
			}
			files[chain] = f
			csvs[chain] = mcmc.NewCSVWriter(f, names)
			sw.next = csvs[chain]
		}
		sums[chain] = sw
		return sampler, init, sw, nil
	}

	cfg := mcmc.IterConfig{Warmup: *warmup, Samples: *iters, Thin: *thin}
	finals, err := mcmc.RunChains(*chains, build, cfg, mcmc.DefaultParallelConfig())

	for c := range files {
		if csvs[c] != nil {
			if ferr := csvs[c].Flush(); ferr != nil && err == nil {
				err = ferr
			}
		}
		if files[c] != nil {
			if cerr := files[c].Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	if err != nil {
		log.Fatalf("sampling failed: %v", err)
	}

	for c, sw := range sums {
		fmt.Printf("chain %d: %4d draws, accept %.3f, final lp %.2f\n",
			c+1, sw.n, sw.accept(), finals[c].LogProb)
	}

	fmt.Printf("\n%-10s %8s %8s\n", "parameter", "truth", "mean")
	for j, name := range names {
		fmt.Printf("%-10s %8.3f %8.3f\n", name, truth[j], pooledMean(sums, j))
	}
	if *out != "" {
		fmt.Printf("\ndraws written to %s_1.csv .. %s_%d.csv\n", *out, *out, *chains)
	}
}

// logisticModel builds the differentiable log posterior of a logistic
// regression with a standard normal prior on the weights. Each call
// owns a private tape, so every chain can evaluate concurrently.
func logisticModel(xs [][]float64, ys []int, dim int) mcmc.ModelFunc {
	tape := autodiff.NewTape()
	return mcmc.ModelFunc{
		N: dim,
		F: func(x, grad []float64) (float64, error) {
			lp, _, err := autodiff.Gradient(tape, grad, func(w []autodiff.Var) (autodiff.Var, error) {
				return logPosterior(w, xs, ys), nil
			}, x)
			return lp, err
		},
	}
}

// logPosterior is the log density of a logistic regression with a
// standard normal prior on the weights, written once over the generic
// numeric vocabulary.
func logPosterior[T autodiff.Numeric[T]](w []T, xs [][]float64, ys []int) T {
	lp := w[0].Lift(0)
	for _, wj := range w {
		lp = lp.Sub(wj.Mul(wj).Mul(wj.Lift(0.5)))
	}
	for i, x := range xs {
		eta := w[0].Mul(w[0].Lift(x[0]))
		for j := 1; j < len(w); j++ {
			eta = eta.Add(w[j].Mul(w[j].Lift(x[j])))
		}
		lp = lp.Sub(autodiff.BinaryLogLoss(ys[i], eta.InvLogit()))
	}
	return lp
}

// synthetic draws n design rows with a leading intercept column and
// Bernoulli outcomes under the true weights.
func synthetic(n int, w []float64, rng *rand.Rand) (xs [][]float64, ys []int) {
	xs = make([][]float64, n)
	ys = make([]int, n)
	for i := range xs {
		x := make([]float64, len(w))
		x[0] = 1
		for j := 1; j < len(w); j++ {
			x[j] = rng.NormFloat64()
		}
		eta := 0.0
		for j, wj := range w {
			eta += wj * x[j]
		}
		if rng.Float64() < 1/(1+math.Exp(-eta)) {
			ys[i] = 1
		}
		xs[i] = x
	}
	return xs, ys
}

// summaryWriter accumulates running draw moments, forwarding each draw
// to next when set.
type summaryWriter struct {
	next mcmc.SampleWriter
	n    int
	sum  []float64
	acc  float64
}

func (s *summaryWriter) Write(d mcmc.Sample) error {
	if s.sum == nil {
		s.sum = make([]float64, len(d.Params))
	}
	for j, v := range d.Params {
		s.sum[j] += v
	}
	s.acc += d.AcceptStat
	s.n++
	if s.next != nil {
		return s.next.Write(d)
	}
	return nil
}

func (s *summaryWriter) accept() float64 {
	if s.n == 0 {
		return 0
	}
	return s.acc / float64(s.n)
}

func pooledMean(sums []*summaryWriter, j int) float64 {
	total, n := 0.0, 0
	for _, s := range sums {
		if s == nil || s.n == 0 {
			continue
		}
		total += s.sum[j]
		n += s.n
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}
