package rpc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/gen/synthpb"
	"github.com/qfold/qsynth/internal/circuit"
)

// #region matrix

// matrixToProto flattens a dense complex matrix row-major.
func matrixToProto(m *mat.CDense) []*synthpb.Complex {
	r, c := m.Dims()
	out := make([]*synthpb.Complex, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			out = append(out, &synthpb.Complex{Real: real(v), Imag: imag(v)})
		}
	}
	return out
}

// protoToMatrix rebuilds the 2^n x 2^n target from its flattened entries.
func protoToMatrix(numQubits int, entries []*synthpb.Complex) (*mat.CDense, error) {
	if numQubits < 1 {
		return nil, fmt.Errorf("num_qubits must be >= 1, got %d", numQubits)
	}
	dim := 1 << numQubits
	if len(entries) != dim*dim {
		return nil, fmt.Errorf("target has %d entries, want %d for %d qubits",
			len(entries), dim*dim, numQubits)
	}
	data := make([]complex128, len(entries))
	for i, e := range entries {
		data[i] = complex(e.Real, e.Imag)
	}
	return mat.NewCDense(dim, dim, data), nil
}

// #endregion matrix

// #region placements

func placementsToProto(bound []circuit.BoundPlacement) []*synthpb.Placement {
	out := make([]*synthpb.Placement, len(bound))
	for i, p := range bound {
		qubits := make([]int32, len(p.Qubits))
		for j, q := range p.Qubits {
			qubits[j] = int32(q)
		}
		out[i] = &synthpb.Placement{
			Family: p.Family,
			Qubits: qubits,
			Params: append([]float64(nil), p.Params...),
		}
	}
	return out
}

func placementsFromProto(pbs []*synthpb.Placement) []circuit.BoundPlacement {
	out := make([]circuit.BoundPlacement, len(pbs))
	for i, p := range pbs {
		qubits := make([]int, len(p.Qubits))
		for j, q := range p.Qubits {
			qubits[j] = int(q)
		}
		out[i] = circuit.BoundPlacement{
			Family: p.Family,
			Qubits: qubits,
			Params: append([]float64(nil), p.Params...),
		}
	}
	return out
}

// #endregion placements
