package operator

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Two-qubit gate matrices below are written for the tuple convention used by
// Embed: the first tuple qubit is the gate's qubit 0 and the least-significant
// bit of the 4-dim basis index. For controlled gates the first tuple qubit is
// the control.

// #region single-qubit

// U3 returns the general single-qubit rotation
//
//	[ cos(t/2)            -e^{i*lam} sin(t/2)      ]
//	[ e^{i*phi} sin(t/2)   e^{i*(phi+lam)} cos(t/2) ]
//
// Three real parameters cover all of SU(2) up to global phase.
func U3(theta, phi, lam float64) *mat.CDense {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return mat.NewCDense(2, 2, []complex128{
		c, -cmplx.Exp(complex(0, lam)) * s,
		cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lam)) * c,
	})
}

// Hadamard returns the single-qubit Hadamard gate.
func Hadamard() *mat.CDense {
	h := complex(1/math.Sqrt2, 0)
	return mat.NewCDense(2, 2, []complex128{h, h, h, -h})
}

// PauliX returns the single-qubit X (NOT) gate.
func PauliX() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
}

// #endregion single-qubit

// #region fixed-two-qubit

// CNOT returns the controlled-NOT gate, control on tuple qubit 0.
func CNOT() *mat.CDense {
	return mat.NewCDense(4, 4, []complex128{
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	})
}

// CZ returns the controlled-Z gate.
func CZ() *mat.CDense {
	return mat.NewCDense(4, 4, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	})
}

// SWAP returns the two-qubit swap gate.
func SWAP() *mat.CDense {
	return mat.NewCDense(4, 4, []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
}

// ISwap returns the iSWAP gate: swap with an i phase on the exchanged states.
func ISwap() *mat.CDense {
	return mat.NewCDense(4, 4, []complex128{
		1, 0, 0, 0,
		0, 0, 1i, 0,
		0, 1i, 0, 0,
		0, 0, 0, 1,
	})
}

// #endregion fixed-two-qubit

// #region parameterized-two-qubit

// RZZ returns exp(-i theta/2 Z(x)Z).
func RZZ(theta float64) *mat.CDense {
	p := cmplx.Exp(complex(0, -theta/2))
	q := cmplx.Exp(complex(0, theta/2))
	return mat.NewCDense(4, 4, []complex128{
		p, 0, 0, 0,
		0, q, 0, 0,
		0, 0, q, 0,
		0, 0, 0, p,
	})
}

// RXX returns exp(-i theta/2 X(x)X).
func RXX(theta float64) *mat.CDense {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return mat.NewCDense(4, 4, []complex128{
		c, 0, 0, s,
		0, c, s, 0,
		0, s, c, 0,
		s, 0, 0, c,
	})
}

// RYY returns exp(-i theta/2 Y(x)Y).
func RYY(theta float64) *mat.CDense {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return mat.NewCDense(4, 4, []complex128{
		c, 0, 0, -s,
		0, c, s, 0,
		0, s, c, 0,
		-s, 0, 0, c,
	})
}

// RZX returns exp(-i theta/2 Z(x)X), Z on tuple qubit 0 and X on tuple
// qubit 1. Native on cross-resonance hardware.
func RZX(theta float64) *mat.CDense {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return mat.NewCDense(4, 4, []complex128{
		c, 0, s, 0,
		0, c, 0, -s,
		s, 0, c, 0,
		0, -s, 0, c,
	})
}

// CPhase returns the controlled phase gate diag(1, 1, 1, e^{i theta}).
func CPhase(theta float64) *mat.CDense {
	m := Identity(4)
	m.Set(3, 3, cmplx.Exp(complex(0, theta)))
	return m
}

// #endregion parameterized-two-qubit

// #region three-qubit

// CCX returns the Toffoli gate: controls on tuple qubits 0 and 1, target on
// tuple qubit 2.
func CCX() *mat.CDense {
	m := Identity(8)
	m.Set(3, 3, 0)
	m.Set(7, 7, 0)
	m.Set(3, 7, 1)
	m.Set(7, 3, 1)
	return m
}

// #endregion three-qubit
