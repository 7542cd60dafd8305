// Package rpc exposes the synthesis engine over gRPC and wraps the client
// side of the same service.
package rpc

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/qfold/qsynth/gen/synthpb"
	"github.com/qfold/qsynth/internal/circuit"
	"github.com/qfold/qsynth/internal/cost"
	"github.com/qfold/qsynth/internal/optimizer"
	"github.com/qfold/qsynth/internal/placement"
	"github.com/qfold/qsynth/internal/runlog"
	"github.com/qfold/qsynth/internal/synth"
)

// #region server

// Server implements the QSynth service. Each request gets its own
// decomposer, so concurrent RPCs never share mutable state. A nil store
// disables provenance recording.
type Server struct {
	store *runlog.Store
}

// NewServer creates a synthesis server. store may be nil.
func NewServer(store *runlog.Store) *Server {
	return &Server{store: store}
}

// #endregion server

// #region decompose

// Decompose runs one synthesis call for the request's target.
func (s *Server) Decompose(ctx context.Context, req *synthpb.DecomposeRequest) (*synthpb.DecomposeReply, error) {
	target, err := protoToMatrix(int(req.NumQubits), req.Target)
	if err != nil {
		return nil, err
	}

	basis := make([]circuit.BasisGate, 0, len(req.BasisGates))
	for _, g := range req.BasisGates {
		bg, ok := circuit.ByFamily(g.Family)
		if !ok {
			return nil, fmt.Errorf("unknown basis gate family %q", g.Family)
		}
		basis = append(basis, bg)
	}

	strategy, err := placement.NewLinear(int(req.NumQubits), basis)
	if err != nil {
		return nil, err
	}

	cfg := synth.DefaultConfig()
	if req.MaxIterations > 0 {
		cfg.MaxIterations = int(req.MaxIterations)
	}
	if req.ReinitAttempts > 0 {
		cfg.ReinitAttempts = int(req.ReinitAttempts)
	}
	if req.Threshold > 0 {
		cfg.Threshold = req.Threshold
	}
	cfg.Seed = req.Seed

	var costFn cost.Function
	var min optimizer.Minimizer
	switch req.CostFunction {
	case "", "hs":
		costFn = cost.NewHilbertSchmidt()
		min = optimizer.NewLBFGS()
	case "makhlin":
		mk, err := cost.NewMakhlin(int(req.NumQubits))
		if err != nil {
			return nil, err
		}
		costFn = mk
		min = optimizer.NewNelderMead()
	default:
		return nil, fmt.Errorf("unknown cost function %q", req.CostFunction)
	}

	engine := synth.New(int(req.NumQubits), strategy, costFn, min, cfg)
	started := time.Now()
	result, err := engine.Decompose(target)
	if err != nil {
		return nil, err
	}
	log.Printf("[RPC] decompose qubits=%d gates=%d cost=%.3g converged=%v elapsed=%s",
		req.NumQubits, len(result.Circuit), result.Cost, result.Converged, time.Since(started).Round(time.Millisecond))

	runID := runlog.NewRunID()
	if s.store != nil {
		rec := runlog.RunRecord{
			RunID:      runID,
			NumQubits:  int(req.NumQubits),
			TargetSHA:  runlog.TargetDigest(target),
			Cost:       result.Cost,
			Converged:  result.Converged,
			Iterations: result.Iterations,
			Placements: result.Circuit,
		}
		if err := s.store.RecordRun(rec); err != nil {
			log.Printf("[RPC] failed to record run %s: %v", runID, err)
		}
	}

	return &synthpb.DecomposeReply{
		Placements: placementsToProto(result.Circuit),
		Converged:  result.Converged,
		Cost:       result.Cost,
		Iterations: int32(result.Iterations),
		RunId:      runID,
	}, nil
}

// #endregion decompose
