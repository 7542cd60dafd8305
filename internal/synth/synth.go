// Package synth runs the grow-then-optimize synthesis loop: place a basis
// gate, refit the circuit's continuous parameters against the target, repeat
// until the cost crosses the convergence threshold or the effort budget runs
// out.
package synth

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/circuit"
	"github.com/qfold/qsynth/internal/cost"
	"github.com/qfold/qsynth/internal/operator"
	"github.com/qfold/qsynth/internal/optimizer"
	"github.com/qfold/qsynth/internal/placement"
)

// #region decomposer

// Decomposer composes a placement strategy, a cost function and a minimizer
// into a synthesis engine for one register size. The strategies are injected,
// so any placement/cost pairing works. A Decomposer serves one Decompose call
// at a time; use one instance per goroutine.
type Decomposer struct {
	numQubits int
	strategy  placement.Strategy
	costFn    cost.Function
	min       optimizer.Minimizer
	cfg       Config
}

// New creates a decomposer for numQubits-wide targets.
func New(numQubits int, strategy placement.Strategy, costFn cost.Function, min optimizer.Minimizer, cfg Config) *Decomposer {
	return &Decomposer{
		numQubits: numQubits,
		strategy:  strategy,
		costFn:    costFn,
		min:       min,
		cfg:       cfg,
	}
}

// #endregion decomposer

// #region search-state

// searchState carries the best snapshot across restarts and growth rounds.
// The snapshot remembers how many placements the ansatz had when the best
// cost was seen, so the returned circuit always matches its parameters even
// when a later, larger ansatz never beats an earlier best.
type searchState struct {
	params []float64 // current starting vector for the optimizer

	ok             bool
	best           float64
	bestParams     []float64
	bestPlacements int
}

// #endregion search-state

// #region decompose

// Decompose synthesizes a circuit for target. Non-convergence is not an
// error: the best circuit found is returned with Converged=false. Errors are
// reserved for contract violations (wrong target size) and growth failures.
func (d *Decomposer) Decompose(target *mat.CDense) (Result, error) {
	n, err := operator.NumQubits(target)
	if err != nil {
		return Result{}, err
	}
	if n != d.numQubits {
		return Result{}, &operator.DimensionError{Want: d.numQubits, Got: n}
	}

	seed := d.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	d.strategy.Reset()

	a := circuit.New(d.numQubits)
	for q := 0; q < d.numQubits; q++ {
		if err := a.AppendSingleQubit(q); err != nil {
			return Result{}, fmt.Errorf("baseline layer: %w", err)
		}
	}

	st := &searchState{params: randomVector(rng, a.ParameterCount())}

	// The baseline single-qubit layer is optimized before any growth: a
	// target that is locally trivial (identity up to single-qubit frames)
	// converges here with zero basis gates placed.
	iterations := 0
	converged := d.refine(target, a, rng, st)

	for !converged && iterations < d.cfg.MaxIterations {
		if err := d.strategy.Next(a); err != nil {
			return Result{}, fmt.Errorf("grow ansatz: %w", err)
		}
		// Growth shifts slot indices, so the old vector is meaningless.
		if len(st.params) != a.ParameterCount() {
			st.params = randomVector(rng, a.ParameterCount())
		}
		converged = d.refine(target, a, rng, st)
		iterations++

		if d.cfg.Verbose {
			log.Printf("[SYNTH] iteration=%d placements=%d params=%d best=%.3g converged=%v",
				iterations, a.NumPlacements(), a.ParameterCount(), st.best, converged)
		}
	}

	return d.finish(a, st, converged, iterations)
}

// #endregion decompose

// #region refine

// refine runs the restart loop for the ansatz's current shape. Each restart
// minimizes from the current starting vector; strictly better finite values
// replace the best snapshot, non-finite or failed attempts are discarded
// without touching it. Returns true once a value reaches the threshold.
func (d *Decomposer) refine(target *mat.CDense, a *circuit.Ansatz, rng *rand.Rand, st *searchState) bool {
	obj := func(x []float64) float64 {
		u, err := a.Bind(x)
		if err != nil {
			return math.Inf(1)
		}
		return d.costFn.Cost(target, u)
	}

	for attempt := 0; attempt < d.cfg.ReinitAttempts; attempt++ {
		x, f, err := d.min.Minimize(obj, st.params)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			if d.cfg.Verbose {
				log.Printf("[SYNTH] restart %d discarded: value=%g err=%v", attempt, f, err)
			}
			st.params = randomVector(rng, a.ParameterCount())
			continue
		}

		if !st.ok || f < st.best {
			st.ok = true
			st.best = f
			st.bestParams = append([]float64(nil), x...)
			st.bestPlacements = a.NumPlacements()
		}
		if f <= d.cfg.Threshold {
			return true
		}
		st.params = randomVector(rng, a.ParameterCount())
	}
	return false
}

// #endregion refine

// #region finish

func (d *Decomposer) finish(a *circuit.Ansatz, st *searchState, converged bool, iterations int) (Result, error) {
	if !st.ok {
		// Every attempt in every round failed to produce a finite value.
		bound, err := a.BindPlacements(st.params)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Circuit:    bound,
			Converged:  false,
			Cost:       math.Inf(1),
			Iterations: iterations,
		}, nil
	}

	bound, err := a.Prefix(st.bestPlacements).BindPlacements(st.bestParams)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Circuit:    bound,
		Converged:  converged,
		Cost:       st.best,
		Iterations: iterations,
	}, nil
}

// #endregion finish

// #region helpers

// randomVector draws a fresh parameter vector uniformly from [-2pi, 2pi).
func randomVector(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * 2 * math.Pi
	}
	return v
}

// #endregion helpers
