package cost

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/operator"
)

// #region magic-basis

// magicBasis transforms from the computational basis to the magic (Bell)
// basis, in which local gates A(x)B become real orthogonal matrices. Column
// order matches the little-endian basis-index convention used everywhere in
// this repo.
func magicBasis() *mat.CDense {
	h := complex(1/math.Sqrt2, 0)
	hi := complex(0, 1/math.Sqrt2)
	return mat.NewCDense(4, 4, []complex128{
		h, 0, 0, hi,
		0, hi, h, 0,
		0, hi, -h, 0,
		h, 0, 0, -hi,
	})
}

// #endregion magic-basis

// #region makhlin

// Makhlin measures the mismatch of the two-qubit local invariants
// (g1, g2, g3) of target and current: the sum of squared differences. It is
// zero iff the two unitaries agree up to independent single-qubit basis
// changes on each side, which makes it the right objective when trailing
// single-qubit layers will absorb local frames anyway. Defined only for two
// qubits; the direct-search optimizer is the usual pairing since the
// landscape is less smooth than Hilbert-Schmidt.
type Makhlin struct {
	q       *mat.CDense
	qDagger *mat.CDense
}

// NewMakhlin creates the local-invariant objective. numQubits must be 2.
func NewMakhlin(numQubits int) (*Makhlin, error) {
	if numQubits != 2 {
		return nil, &operator.DimensionError{Want: 2, Got: numQubits}
	}
	q := magicBasis()
	return &Makhlin{q: q, qDagger: operator.Dagger(q)}, nil
}

// Cost returns the squared distance between the local-invariant triples of
// current and target.
func (m *Makhlin) Cost(target, current *mat.CDense) float64 {
	gt := m.invariants(target)
	gc := m.invariants(current)
	d0 := gt[0] - gc[0]
	d1 := gt[1] - gc[1]
	d2 := gt[2] - gc[2]
	return d0*d0 + d1*d1 + d2*d2
}

// invariants computes the Makhlin triple (g1, g2, g3) of a two-qubit
// unitary. With UB = Q^dagger U Q and M = UB^T UB:
//
//	g1 + i*g2 = tr(M)^2 / (16 det UB)
//	g3        = (tr(M)^2 - tr(M^2)) / (4 det UB)
//
// The determinant normalization cancels global phase.
func (m *Makhlin) invariants(u *mat.CDense) [3]float64 {
	ub := operator.Mul(m.qDagger, operator.Mul(u, m.q))
	det := det4(ub)
	mm := operator.Mul(operator.Transpose(ub), ub)
	tr := operator.Trace(mm)
	tr2 := tr * tr
	trSq := operator.Trace(operator.Mul(mm, mm))

	g12 := tr2 / (16 * det)
	g3 := (tr2 - trSq) / (4 * det)
	return [3]float64{real(g12), imag(g12), real(g3)}
}

// #endregion makhlin

// #region determinant

// det4 computes the determinant of a small complex matrix by Gaussian
// elimination with partial pivoting. gonum's LU factorization is real-valued
// only, and the 4x4 case here does not warrant more machinery.
func det4(a *mat.CDense) complex128 {
	n, _ := a.Dims()
	w := make([][]complex128, n)
	for i := 0; i < n; i++ {
		w[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			w[i][j] = a.At(i, j)
		}
	}

	det := complex(1, 0)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if absSq(w[row][col]) > absSq(w[pivot][col]) {
				pivot = row
			}
		}
		if w[pivot][col] == 0 {
			return 0
		}
		if pivot != col {
			w[pivot], w[col] = w[col], w[pivot]
			det = -det
		}
		det *= w[col][col]
		for row := col + 1; row < n; row++ {
			f := w[row][col] / w[col][col]
			for j := col; j < n; j++ {
				w[row][j] -= f * w[col][j]
			}
		}
	}
	return det
}

func absSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// #endregion determinant
