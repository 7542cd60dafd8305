// Package placement decides where the next basis gate goes while the ansatz
// grows. Strategies own the basis library and the cursor state for one
// synthesis call.
package placement

import (
	"fmt"

	"github.com/qfold/qsynth/internal/circuit"
)

// #region interface

// Strategy appends the next basis gate (plus any trailing single-qubit
// layer) to the ansatz. Reset rewinds cursor state so the same instance can
// serve a fresh synthesis call; instances are not safe for concurrent calls.
type Strategy interface {
	Next(a *circuit.Ansatz) error
	Reset()
}

// #endregion interface

// #region linear

// Linear cycles through the basis library and through qubit positions in
// lockstep. The gate's tuple is arity consecutive qubits starting at the
// edge cursor, wrapping modulo n, so the qubit line closes into a ring and
// every adjacent pair is entangled after enough iterations. Each basis gate
// is followed by a fresh single-qubit rotation on every qubit it touched.
type Linear struct {
	numQubits int
	basis     []circuit.BasisGate
	gateIdx   int
	edgeIdx   int
}

// NewLinear creates a linear placement strategy over the given basis
// library. Every gate's arity must fit the register.
func NewLinear(numQubits int, basis []circuit.BasisGate) (*Linear, error) {
	if len(basis) == 0 {
		return nil, fmt.Errorf("basis library is empty")
	}
	for _, g := range basis {
		if g.NumQubits > numQubits {
			return nil, fmt.Errorf("basis gate %q acts on %d qubits, register has %d",
				g.Family, g.NumQubits, numQubits)
		}
	}
	return &Linear{numQubits: numQubits, basis: basis}, nil
}

// Next places the current basis gate on the ring at the edge cursor,
// appends the re-entangling single-qubit layer, and advances both cursors.
func (l *Linear) Next(a *circuit.Ansatz) error {
	g := l.basis[l.gateIdx]

	qubits := make([]int, g.NumQubits)
	for i := range qubits {
		qubits[i] = (l.edgeIdx + i) % l.numQubits
	}

	if err := a.AppendBasisGate(g, qubits); err != nil {
		return err
	}
	for _, q := range qubits {
		if err := a.AppendSingleQubit(q); err != nil {
			return err
		}
	}

	l.gateIdx = (l.gateIdx + 1) % len(l.basis)
	l.edgeIdx = (l.edgeIdx + 1) % l.numQubits
	return nil
}

// Reset rewinds both cursors to the start of their cycles.
func (l *Linear) Reset() {
	l.gateIdx = 0
	l.edgeIdx = 0
}

// #endregion linear
