// Package circuit models a parameterized circuit template: an ordered list of
// gate placements drawing real parameters from a shared, gap-free slot space.
package circuit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/operator"
)

// #region errors

// ShapeError is a contract violation: a parameter vector whose length does
// not match the ansatz's allocated slot count.
type ShapeError struct {
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("parameter vector has length %d, ansatz allocates %d slots", e.Got, e.Want)
}

// #endregion errors

// #region types

// GateBuilder instantiates a gate matrix from its parameter slice. The slice
// length always equals the gate's declared parameter arity.
type GateBuilder func(params []float64) *mat.CDense

// BasisGate describes one member of the basis library: a gate family, the
// number of qubits it acts on, its continuous parameter arity (0 for fixed
// operations) and the builder producing its matrix.
type BasisGate struct {
	Family    string
	NumQubits int
	NumParams int
	Build     GateBuilder
}

// Placement is one gate instance in the ansatz: a family, the qubit tuple it
// acts on, and the half-open global parameter-slot range it consumes.
type Placement struct {
	Family string
	Qubits []int
	Slots  [2]int

	build GateBuilder
}

// BoundPlacement is a placement with its parameter values resolved. A slice
// of these is the concrete circuit description returned to callers.
type BoundPlacement struct {
	Family string
	Qubits []int
	Params []float64
}

// #endregion types

// #region ansatz

// Ansatz is a mutable ordered sequence of placements. Parameter slots are
// allocated in append order, so the union of all slot ranges exactly covers
// [0, ParameterCount()) with no gaps or overlaps.
type Ansatz struct {
	numQubits  int
	placements []Placement
	paramCount int
}

// New creates an empty ansatz over numQubits qubits.
func New(numQubits int) *Ansatz {
	return &Ansatz{numQubits: numQubits}
}

// NumQubits returns the width of the qubit register.
func (a *Ansatz) NumQubits() int { return a.numQubits }

// ParameterCount returns the number of parameter slots allocated so far.
func (a *Ansatz) ParameterCount() int { return a.paramCount }

// NumPlacements returns the number of placements appended so far.
func (a *Ansatz) NumPlacements() int { return len(a.placements) }

// Placements returns the placement list. Callers must not mutate it.
func (a *Ansatz) Placements() []Placement { return a.placements }

// #endregion ansatz

// #region append

// AppendSingleQubit appends a general single-qubit rotation on qubit q,
// allocating three fresh parameter slots.
func (a *Ansatz) AppendSingleQubit(q int) error {
	if q < 0 || q >= a.numQubits {
		return fmt.Errorf("qubit index %d out of range [0, %d)", q, a.numQubits)
	}
	a.placements = append(a.placements, Placement{
		Family: "u3",
		Qubits: []int{q},
		Slots:  [2]int{a.paramCount, a.paramCount + 3},
		build: func(p []float64) *mat.CDense {
			return operator.U3(p[0], p[1], p[2])
		},
	})
	a.paramCount += 3
	return nil
}

// AppendBasisGate appends an instance of g on the given qubit tuple,
// allocating g.NumParams fresh parameter slots.
func (a *Ansatz) AppendBasisGate(g BasisGate, qubits []int) error {
	if len(qubits) != g.NumQubits {
		return fmt.Errorf("gate %q takes %d qubits, got %d", g.Family, g.NumQubits, len(qubits))
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= a.numQubits {
			return fmt.Errorf("qubit index %d out of range [0, %d)", q, a.numQubits)
		}
		if seen[q] {
			return fmt.Errorf("gate %q placed on duplicate qubit %d", g.Family, q)
		}
		seen[q] = true
	}
	tuple := append([]int(nil), qubits...)
	a.placements = append(a.placements, Placement{
		Family: g.Family,
		Qubits: tuple,
		Slots:  [2]int{a.paramCount, a.paramCount + g.NumParams},
		build:  g.Build,
	})
	a.paramCount += g.NumParams
	return nil
}

// #endregion append

// #region bind

// Bind instantiates every placement with its parameter slice, embeds it into
// the full register, and composes in circuit order (each gate multiplies on
// the left of the accumulated unitary). The ansatz is not mutated.
func (a *Ansatz) Bind(params []float64) (*mat.CDense, error) {
	if len(params) != a.paramCount {
		return nil, &ShapeError{Want: a.paramCount, Got: len(params)}
	}
	u := operator.Identity(1 << a.numQubits)
	for _, p := range a.placements {
		g := p.build(params[p.Slots[0]:p.Slots[1]])
		full, err := operator.Embed(g, p.Qubits, a.numQubits)
		if err != nil {
			return nil, fmt.Errorf("embed %q on %v: %w", p.Family, p.Qubits, err)
		}
		u = operator.Mul(full, u)
	}
	return u, nil
}

// BindPlacements resolves parameter values per placement without composing
// matrices, producing the circuit description handed back to callers.
func (a *Ansatz) BindPlacements(params []float64) ([]BoundPlacement, error) {
	if len(params) != a.paramCount {
		return nil, &ShapeError{Want: a.paramCount, Got: len(params)}
	}
	bound := make([]BoundPlacement, len(a.placements))
	for i, p := range a.placements {
		bound[i] = BoundPlacement{
			Family: p.Family,
			Qubits: append([]int(nil), p.Qubits...),
			Params: append([]float64(nil), params[p.Slots[0]:p.Slots[1]]...),
		}
	}
	return bound, nil
}

// Prefix returns a new ansatz holding only the first k placements. Slot
// allocation is append-ordered, so the prefix's parameter count is the slot
// range end of its last placement.
func (a *Ansatz) Prefix(k int) *Ansatz {
	if k < 0 || k > len(a.placements) {
		panic("circuit: prefix length out of range")
	}
	count := 0
	if k > 0 {
		count = a.placements[k-1].Slots[1]
	}
	return &Ansatz{
		numQubits:  a.numQubits,
		placements: a.placements[:k:k],
		paramCount: count,
	}
}

// #endregion bind
