package circuit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/operator"
)

// #region standard-basis

// Built-in basis gate families. Fixed gates ignore their (empty) parameter
// slice; parameterized gates take exactly one angle.

// CNOTGate returns the controlled-NOT basis gate.
func CNOTGate() BasisGate {
	return fixed2("cnot", operator.CNOT)
}

// CZGate returns the controlled-Z basis gate.
func CZGate() BasisGate {
	return fixed2("cz", operator.CZ)
}

// SWAPGate returns the swap basis gate.
func SWAPGate() BasisGate {
	return fixed2("swap", operator.SWAP)
}

// ISwapGate returns the iSWAP basis gate.
func ISwapGate() BasisGate {
	return fixed2("iswap", operator.ISwap)
}

// RZXGate returns the one-parameter cross-resonance basis gate.
func RZXGate() BasisGate {
	return angle2("rzx", operator.RZX)
}

// RXXGate returns the one-parameter XX-rotation basis gate.
func RXXGate() BasisGate {
	return angle2("rxx", operator.RXX)
}

// RYYGate returns the one-parameter YY-rotation basis gate.
func RYYGate() BasisGate {
	return angle2("ryy", operator.RYY)
}

// RZZGate returns the one-parameter ZZ-rotation basis gate.
func RZZGate() BasisGate {
	return angle2("rzz", operator.RZZ)
}

// CPhaseGate returns the one-parameter controlled-phase basis gate.
func CPhaseGate() BasisGate {
	return angle2("cphase", operator.CPhase)
}

// CCXGate returns the three-qubit Toffoli basis gate.
func CCXGate() BasisGate {
	return BasisGate{
		Family:    "ccx",
		NumQubits: 3,
		NumParams: 0,
		Build:     func([]float64) *mat.CDense { return operator.CCX() },
	}
}

// #endregion standard-basis

// #region lookup

// ByFamily resolves a built-in basis gate from its family name. Used by the
// CLI and the RPC surface, where gates arrive as strings.
func ByFamily(family string) (BasisGate, bool) {
	switch family {
	case "cnot", "cx":
		return CNOTGate(), true
	case "cz":
		return CZGate(), true
	case "swap":
		return SWAPGate(), true
	case "iswap":
		return ISwapGate(), true
	case "rzx":
		return RZXGate(), true
	case "rxx":
		return RXXGate(), true
	case "ryy":
		return RYYGate(), true
	case "rzz":
		return RZZGate(), true
	case "cphase":
		return CPhaseGate(), true
	case "ccx":
		return CCXGate(), true
	}
	return BasisGate{}, false
}

// #endregion lookup

// #region helpers

func fixed2(family string, build func() *mat.CDense) BasisGate {
	return BasisGate{
		Family:    family,
		NumQubits: 2,
		NumParams: 0,
		Build:     func([]float64) *mat.CDense { return build() },
	}
}

func angle2(family string, build func(float64) *mat.CDense) BasisGate {
	return BasisGate{
		Family:    family,
		NumQubits: 2,
		NumParams: 1,
		Build:     func(p []float64) *mat.CDense { return build(p[0]) },
	}
}

// #endregion helpers
