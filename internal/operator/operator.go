// Package operator provides the dense complex linear algebra used to build
// and compare qubit unitaries. Matrices are gonum *mat.CDense; the basis-state
// index treats qubit 0 as the least-significant bit.
package operator

import (
	"fmt"
	"math/bits"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// #region errors

// DimensionError is a contract violation: an operator or component sized for
// the wrong number of qubits. Want is the required qubit count (-1 when any
// register size is acceptable); Got is -1 when the shape is not a qubit
// register at all.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	if e.Got < 0 {
		return "operator dimensions are not a power-of-two square"
	}
	if e.Want < 0 {
		return fmt.Sprintf("unexpected operator size: %d qubits", e.Got)
	}
	return fmt.Sprintf("expected a %d-qubit operator, got %d qubits", e.Want, e.Got)
}

// #endregion errors

// #region construction

// Identity returns the dim x dim identity matrix.
func Identity(dim int) *mat.CDense {
	m := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// NumQubits derives the qubit count from a square power-of-two matrix.
func NumQubits(a *mat.CDense) (int, error) {
	r, c := a.Dims()
	if r != c || r < 2 || r&(r-1) != 0 {
		return 0, &DimensionError{Want: -1, Got: -1}
	}
	return bits.TrailingZeros(uint(r)), nil
}

// #endregion construction

// #region algebra

// Mul returns the matrix product a*b. mat.CDense carries no product method
// (gonum's dense multiply is real-valued only), so the product is built
// directly.
func Mul(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic("operator: dimension mismatch in matrix product")
	}
	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Dagger returns the conjugate transpose of a. For a unitary this is also
// its inverse.
func Dagger(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// Transpose returns the plain (unconjugated) transpose of a.
func Transpose(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, a.At(i, j))
		}
	}
	return out
}

// Trace returns the sum of the diagonal entries of a square matrix.
func Trace(a *mat.CDense) complex128 {
	r, c := a.Dims()
	if r != c {
		panic("operator: trace of a non-square matrix")
	}
	var tr complex128
	for i := 0; i < r; i++ {
		tr += a.At(i, i)
	}
	return tr
}

// Kron returns the Kronecker product of a and b. gonum's Kronecker is
// real-valued only, so the complex case is built directly.
func Kron(a, b *mat.CDense) *mat.CDense {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	out := mat.NewCDense(ra*rb, ca*cb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			v := a.At(i, j)
			for k := 0; k < rb; k++ {
				for l := 0; l < cb; l++ {
					out.Set(i*rb+k, j*cb+l, v*b.At(k, l))
				}
			}
		}
	}
	return out
}

// #endregion algebra

// #region embed

// Embed lifts a k-qubit gate into the full n-qubit space, acting as identity
// on every qubit outside the tuple. qubits[0] maps to the gate's qubit 0.
// The tuple may be non-contiguous and may wrap (e.g. {2, 0} on three qubits).
func Embed(gate *mat.CDense, qubits []int, n int) (*mat.CDense, error) {
	k := len(qubits)
	gr, gc := gate.Dims()
	if gr != gc || gr != 1<<k {
		return nil, &DimensionError{Want: k, Got: -1}
	}
	seen := make(map[int]bool, k)
	for _, q := range qubits {
		if q < 0 || q >= n {
			return nil, fmt.Errorf("qubit index %d out of range [0, %d)", q, n)
		}
		if seen[q] {
			return nil, fmt.Errorf("duplicate qubit index %d", q)
		}
		seen[q] = true
	}

	dim := 1 << n
	out := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		// sub-index of i restricted to the gate's qubits
		sub := 0
		base := i
		for b, q := range qubits {
			if i>>q&1 == 1 {
				sub |= 1 << b
			}
			base &^= 1 << q
		}
		for s := 0; s < 1<<k; s++ {
			j := base
			for b, q := range qubits {
				if s>>b&1 == 1 {
					j |= 1 << q
				}
			}
			out.Set(i, j, gate.At(sub, s))
		}
	}
	return out, nil
}

// #endregion embed
