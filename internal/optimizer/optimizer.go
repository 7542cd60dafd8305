// Package optimizer adapts gonum's continuous minimizers behind the single
// contract the synthesis loop needs: start somewhere, return the best point
// found and its value. Randomness lives entirely in the caller's choice of
// starting point; the adapters themselves are stateless between calls.
package optimizer

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// #region interface

// Objective is a scalar function of a real parameter vector.
type Objective func(x []float64) float64

// Minimizer runs one local minimization from x0. A non-nil error means the
// attempt is unreliable; callers decide whether to keep or discard the
// returned point.
type Minimizer interface {
	Minimize(obj Objective, x0 []float64) (x []float64, f float64, err error)
}

// #endregion interface

// #region lbfgs

// LBFGS is a quasi-Newton minimizer with finite-difference gradients. The
// right choice for smooth objectives such as the Hilbert-Schmidt distance.
type LBFGS struct{}

// NewLBFGS creates an L-BFGS adapter.
func NewLBFGS() *LBFGS {
	return &LBFGS{}
}

// Minimize runs gonum's L-BFGS from x0.
func (*LBFGS) Minimize(obj Objective, x0 []float64) ([]float64, float64, error) {
	problem := optimize.Problem{
		Func: obj,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, obj, x, nil)
		},
	}
	return run(problem, x0, &optimize.LBFGS{})
}

// #endregion lbfgs

// #region nelder-mead

// NelderMead is a derivative-free direct-search minimizer, used where
// finite-difference gradients are unreliable (the local-invariant cost).
type NelderMead struct{}

// NewNelderMead creates a Nelder-Mead adapter.
func NewNelderMead() *NelderMead {
	return &NelderMead{}
}

// Minimize runs gonum's Nelder-Mead from x0.
func (*NelderMead) Minimize(obj Objective, x0 []float64) ([]float64, float64, error) {
	problem := optimize.Problem{Func: obj}
	return run(problem, x0, &optimize.NelderMead{})
}

// #endregion nelder-mead

// #region run

func run(problem optimize.Problem, x0 []float64, method optimize.Method) ([]float64, float64, error) {
	start := append([]float64(nil), x0...)
	result, err := optimize.Minimize(problem, start, nil, method)
	if result == nil {
		return append([]float64(nil), x0...), math.Inf(1), err
	}
	// Even on error the best location seen so far is worth reporting; the
	// caller treats (err != nil) attempts as untrusted.
	return result.X, result.F, err
}

// #endregion run
