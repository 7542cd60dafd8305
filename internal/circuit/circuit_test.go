package circuit

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/operator"
)

const tol = 1e-9

func matricesClose(a, b *mat.CDense, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

func TestSlotAccounting(t *testing.T) {
	a := New(2)
	if err := a.AppendSingleQubit(0); err != nil {
		t.Fatalf("append u3: %v", err)
	}
	if got := a.ParameterCount(); got != 3 {
		t.Fatalf("after one u3: ParameterCount = %d, want 3", got)
	}

	if err := a.AppendBasisGate(CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("append cnot: %v", err)
	}
	if got := a.ParameterCount(); got != 3 {
		t.Fatalf("fixed gate allocated slots: ParameterCount = %d, want 3", got)
	}

	if err := a.AppendBasisGate(RZZGate(), []int{0, 1}); err != nil {
		t.Fatalf("append rzz: %v", err)
	}
	if got := a.ParameterCount(); got != 4 {
		t.Fatalf("after rzz: ParameterCount = %d, want 4", got)
	}

	// Slot ranges tile [0, ParameterCount()) with no gaps.
	next := 0
	for i, p := range a.Placements() {
		if p.Slots[0] != next {
			t.Fatalf("placement %d starts at slot %d, want %d", i, p.Slots[0], next)
		}
		next = p.Slots[1]
	}
	if next != a.ParameterCount() {
		t.Fatalf("slot ranges end at %d, want %d", next, a.ParameterCount())
	}
}

func TestAppendValidation(t *testing.T) {
	a := New(2)
	if err := a.AppendSingleQubit(2); err == nil {
		t.Fatal("u3 on out-of-range qubit: expected error")
	}
	if err := a.AppendBasisGate(CNOTGate(), []int{0}); err == nil {
		t.Fatal("cnot on one qubit: expected error")
	}
	if err := a.AppendBasisGate(CNOTGate(), []int{0, 2}); err == nil {
		t.Fatal("cnot on out-of-range qubit: expected error")
	}
	if err := a.AppendBasisGate(CNOTGate(), []int{1, 1}); err == nil {
		t.Fatal("cnot on duplicate qubits: expected error")
	}
	if a.NumPlacements() != 0 || a.ParameterCount() != 0 {
		t.Fatalf("failed appends mutated the ansatz: %d placements, %d params",
			a.NumPlacements(), a.ParameterCount())
	}
}

func TestBindShapeError(t *testing.T) {
	a := New(1)
	if err := a.AppendSingleQubit(0); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, err := a.Bind([]float64{0, 0})
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Bind error = %v, want ShapeError", err)
	}
	if shapeErr.Want != 3 || shapeErr.Got != 2 {
		t.Fatalf("ShapeError = %+v, want Want=3 Got=2", shapeErr)
	}

	if _, err := a.BindPlacements([]float64{0}); !errors.As(err, &shapeErr) {
		t.Fatalf("BindPlacements error = %v, want ShapeError", err)
	}
}

func TestBindComposesInOrder(t *testing.T) {
	// Two X rotations on the same qubit cancel to identity.
	a := New(1)
	a.AppendSingleQubit(0)
	a.AppendSingleQubit(0)

	x := []float64{math.Pi, 0, math.Pi}
	u, err := a.Bind(append(append([]float64(nil), x...), x...))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !matricesClose(u, operator.Identity(2), tol) {
		t.Fatalf("X followed by X is not identity")
	}
}

func TestBindFixedGate(t *testing.T) {
	a := New(2)
	if err := a.AppendBasisGate(CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	u, err := a.Bind(nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !matricesClose(u, operator.CNOT(), tol) {
		t.Fatalf("bound cnot ansatz is not CNOT")
	}
}

func TestBindIsDeterministic(t *testing.T) {
	a := New(2)
	a.AppendSingleQubit(0)
	a.AppendBasisGate(RZXGate(), []int{0, 1})
	a.AppendSingleQubit(1)

	params := []float64{0.3, -1.2, 0.8, 1.9, 0.1, 0.2, -0.4}
	u1, err := a.Bind(params)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	u2, err := a.Bind(params)
	if err != nil {
		t.Fatalf("second bind: %v", err)
	}
	if !matricesClose(u1, u2, 0) {
		t.Fatalf("two binds of the same parameters differ")
	}
}

func TestBindPlacementsSlicesParams(t *testing.T) {
	a := New(2)
	a.AppendSingleQubit(0)
	a.AppendBasisGate(CNOTGate(), []int{0, 1})
	a.AppendBasisGate(RZZGate(), []int{1, 0})

	bound, err := a.BindPlacements([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("bind placements: %v", err)
	}
	if len(bound) != 3 {
		t.Fatalf("got %d bound placements, want 3", len(bound))
	}
	if got := bound[0].Params; len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("u3 params = %v, want [1 2 3]", got)
	}
	if got := bound[1].Params; len(got) != 0 {
		t.Fatalf("cnot params = %v, want empty", got)
	}
	if got := bound[2].Params; len(got) != 1 || got[0] != 4 {
		t.Fatalf("rzz params = %v, want [4]", got)
	}
	if got := bound[2].Qubits; got[0] != 1 || got[1] != 0 {
		t.Fatalf("rzz qubits = %v, want [1 0]", got)
	}
}

func TestPrefix(t *testing.T) {
	a := New(2)
	a.AppendSingleQubit(0) // slots [0,3)
	a.AppendBasisGate(CNOTGate(), []int{0, 1})
	a.AppendSingleQubit(1) // slots [3,6)

	cases := []struct {
		k          int
		placements int
		params     int
	}{
		{0, 0, 0},
		{1, 1, 3},
		{2, 2, 3},
		{3, 3, 6},
	}
	for _, c := range cases {
		p := a.Prefix(c.k)
		if p.NumPlacements() != c.placements || p.ParameterCount() != c.params {
			t.Fatalf("Prefix(%d) = %d placements / %d params, want %d / %d",
				c.k, p.NumPlacements(), p.ParameterCount(), c.placements, c.params)
		}
	}
}

func TestPrefixPanicsOutOfRange(t *testing.T) {
	a := New(1)
	a.AppendSingleQubit(0)
	defer func() {
		if recover() == nil {
			t.Fatal("Prefix(2) on a one-placement ansatz did not panic")
		}
	}()
	a.Prefix(2)
}

func TestByFamily(t *testing.T) {
	for _, family := range []string{"cnot", "cx", "cz", "swap", "iswap", "rzx", "rxx", "ryy", "rzz", "cphase", "ccx"} {
		g, ok := ByFamily(family)
		if !ok {
			t.Fatalf("ByFamily(%q) not found", family)
		}
		if g.NumQubits < 2 {
			t.Fatalf("ByFamily(%q).NumQubits = %d", family, g.NumQubits)
		}
	}
	if _, ok := ByFamily("nope"); ok {
		t.Fatal("ByFamily accepted an unknown family")
	}
}
