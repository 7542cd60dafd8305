package synth

import (
	"github.com/qfold/qsynth/internal/circuit"
)

// #region config

// Config bounds the effort of one synthesis call.
type Config struct {
	MaxIterations  int     // growth rounds after the baseline layer
	ReinitAttempts int     // optimizer restarts per ansatz shape
	Threshold      float64 // cost at or below this counts as converged
	Seed           int64   // 0 = seed from the clock
	Verbose        bool    // log per-iteration progress
}

// DefaultConfig returns the stock effort budget.
func DefaultConfig() Config {
	return Config{
		MaxIterations:  8,
		ReinitAttempts: 8,
		Threshold:      1e-6,
	}
}

// #endregion config

// #region result

// Result is the outcome of one synthesis call. Circuit is always populated:
// on non-convergence it holds the best circuit found, and the caller checks
// Converged to tell success from best-effort.
type Result struct {
	Circuit    []circuit.BoundPlacement
	Converged  bool
	Cost       float64
	Iterations int
}

// #endregion result
