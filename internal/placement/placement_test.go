package placement

import (
	"testing"

	"github.com/qfold/qsynth/internal/circuit"
)

func TestNewLinearValidation(t *testing.T) {
	if _, err := NewLinear(2, nil); err == nil {
		t.Fatal("empty basis: expected error")
	}
	if _, err := NewLinear(1, []circuit.BasisGate{circuit.CNOTGate()}); err == nil {
		t.Fatal("two-qubit gate on one-qubit register: expected error")
	}
	if _, err := NewLinear(2, []circuit.BasisGate{circuit.CCXGate()}); err == nil {
		t.Fatal("three-qubit gate on two-qubit register: expected error")
	}
}

// step runs Next once and returns the placements it appended.
func step(t *testing.T, l *Linear, a *circuit.Ansatz) []circuit.Placement {
	t.Helper()
	before := a.NumPlacements()
	if err := l.Next(a); err != nil {
		t.Fatalf("next: %v", err)
	}
	return a.Placements()[before:]
}

func TestLinearWalksTheRing(t *testing.T) {
	l, err := NewLinear(3, []circuit.BasisGate{circuit.CNOTGate()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a := circuit.New(3)

	wantTuples := [][]int{
		{0, 1},
		{1, 2},
		{2, 0}, // wraps around the ring
		{0, 1},
	}
	for round, want := range wantTuples {
		added := step(t, l, a)
		if len(added) != 3 {
			t.Fatalf("round %d appended %d placements, want 3 (gate + two u3)", round, len(added))
		}
		gate := added[0]
		if gate.Family != "cnot" {
			t.Fatalf("round %d placed %q, want cnot", round, gate.Family)
		}
		if gate.Qubits[0] != want[0] || gate.Qubits[1] != want[1] {
			t.Fatalf("round %d qubits = %v, want %v", round, gate.Qubits, want)
		}
		for i, p := range added[1:] {
			if p.Family != "u3" || p.Qubits[0] != want[i] {
				t.Fatalf("round %d trailing layer %d = %s on %v, want u3 on %d",
					round, i, p.Family, p.Qubits, want[i])
			}
		}
	}
}

func TestLinearCyclesBasisLibrary(t *testing.T) {
	basis := []circuit.BasisGate{circuit.CNOTGate(), circuit.RZZGate()}
	l, err := NewLinear(2, basis)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a := circuit.New(2)

	wantFamilies := []string{"cnot", "rzz", "cnot", "rzz"}
	wantEdges := []int{0, 1, 0, 1}
	for round := range wantFamilies {
		added := step(t, l, a)
		gate := added[0]
		if gate.Family != wantFamilies[round] {
			t.Fatalf("round %d placed %q, want %q", round, gate.Family, wantFamilies[round])
		}
		if gate.Qubits[0] != wantEdges[round] {
			t.Fatalf("round %d starts at qubit %d, want %d", round, gate.Qubits[0], wantEdges[round])
		}
	}
}

func TestLinearReset(t *testing.T) {
	l, err := NewLinear(3, []circuit.BasisGate{circuit.CNOTGate(), circuit.CZGate()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	a := circuit.New(3)
	first := step(t, l, a)[0]
	step(t, l, a)

	l.Reset()
	b := circuit.New(3)
	again := step(t, l, b)[0]

	if again.Family != first.Family || again.Qubits[0] != first.Qubits[0] {
		t.Fatalf("after Reset: placed %s on %v, want %s on %v",
			again.Family, again.Qubits, first.Family, first.Qubits)
	}
}
