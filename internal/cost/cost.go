// Package cost provides the scalar objectives that score a candidate unitary
// against a synthesis target. Zero means exact match up to the measure's
// invariances; larger is worse.
package cost

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/operator"
)

// #region interface

// Function scores a candidate unitary against the target. Implementations
// are stateless per call and never mutate their arguments.
type Function interface {
	Cost(target, current *mat.CDense) float64
}

// #endregion interface

// #region hilbert-schmidt

// HilbertSchmidt measures 1 - |tr(current * target^dagger)| / dim. Global
// phase drops out through the modulus, so e^{i*theta} U scores identically
// to U. Valid for any register size; smooth, suits gradient methods.
type HilbertSchmidt struct{}

// NewHilbertSchmidt creates the Hilbert-Schmidt distance objective.
func NewHilbertSchmidt() *HilbertSchmidt {
	return &HilbertSchmidt{}
}

// Cost returns the Hilbert-Schmidt distance between current and target.
func (*HilbertSchmidt) Cost(target, current *mat.CDense) float64 {
	dim, _ := target.Dims()
	overlap := operator.Trace(operator.Mul(current, operator.Dagger(target)))
	return 1 - cmplx.Abs(overlap)/float64(dim)
}

// #endregion hilbert-schmidt
