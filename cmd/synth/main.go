package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/qfold/qsynth/internal/circuit"
	"github.com/qfold/qsynth/internal/cost"
	"github.com/qfold/qsynth/internal/operator"
	"github.com/qfold/qsynth/internal/optimizer"
	"github.com/qfold/qsynth/internal/placement"
	"github.com/qfold/qsynth/internal/rpc"
	"github.com/qfold/qsynth/internal/runlog"
	"github.com/qfold/qsynth/internal/synth"
)

// #region main

func main() {
	targetPath := flag.String("target", "", "path to target unitary JSON (rows of [re,im] pairs)")
	gateName := flag.String("gate", "", "use a named builtin target instead of a file (cnot, cz, swap, iswap, ccx)")
	basisList := flag.String("basis", "cnot", "comma-separated basis gate families")
	costName := flag.String("cost", "hs", "cost function: hs or makhlin")
	maxIters := flag.Int("max-iterations", 0, "override max growth iterations")
	attempts := flag.Int("attempts", 0, "override optimizer restarts per iteration")
	threshold := flag.Float64("threshold", 0, "override convergence threshold")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	dbPath := flag.String("db", "", "record the run to this sqlite database")
	addr := flag.String("addr", "", "send the request to a synthd server instead of running locally")
	verbose := flag.Bool("v", false, "log per-iteration progress")
	flag.Parse()

	target, numQubits, err := loadTarget(*targetPath, *gateName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	families := splitFamilies(*basisList)

	var (
		bound      []circuit.BoundPlacement
		converged  bool
		finalCost  float64
		iterations int
		runID      string
	)

	if *addr != "" {
		res, err := runRemote(*addr, numQubits, target, families, *costName, *maxIters, *attempts, *threshold, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		bound, converged, finalCost, iterations, runID = res.Circuit, res.Converged, res.Cost, res.Iterations, res.RunID
	} else {
		result, err := runLocal(numQubits, target, families, *costName, *maxIters, *attempts, *threshold, *seed, *verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		bound, converged, finalCost, iterations = result.Circuit, result.Converged, result.Cost, result.Iterations

		if *dbPath != "" {
			runID, err = recordRun(*dbPath, numQubits, target, result)
			if err != nil {
				log.Printf("failed to record run: %v", err)
			}
		}
	}

	printCircuit(bound)
	fmt.Printf("\nconverged=%v cost=%.3g iterations=%d gates=%d\n", converged, finalCost, iterations, len(bound))
	if runID != "" {
		fmt.Printf("run=%s\n", runID)
	}
	if !converged {
		os.Exit(1)
	}
}

// #endregion main

// #region target

func loadTarget(path, gate string) (*mat.CDense, int, error) {
	if (path == "") == (gate == "") {
		return nil, 0, fmt.Errorf("exactly one of -target or -gate is required")
	}
	if gate != "" {
		return builtinTarget(gate)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read target: %w", err)
	}
	var rows [][][2]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, fmt.Errorf("parse target: %w", err)
	}
	dim := len(rows)
	entries := make([]complex128, 0, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, 0, fmt.Errorf("target row %d has %d entries, want %d", i, len(row), dim)
		}
		for _, e := range row {
			entries = append(entries, complex(e[0], e[1]))
		}
	}
	target := mat.NewCDense(dim, dim, entries)
	n, err := operator.NumQubits(target)
	if err != nil {
		return nil, 0, err
	}
	return target, n, nil
}

func builtinTarget(name string) (*mat.CDense, int, error) {
	switch strings.ToLower(name) {
	case "cnot", "cx":
		return operator.CNOT(), 2, nil
	case "cz":
		return operator.CZ(), 2, nil
	case "swap":
		return operator.SWAP(), 2, nil
	case "iswap":
		return operator.ISwap(), 2, nil
	case "ccx":
		return operator.CCX(), 3, nil
	default:
		return nil, 0, fmt.Errorf("unknown builtin target %q", name)
	}
}

// #endregion target

// #region run

func splitFamilies(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runLocal(numQubits int, target *mat.CDense, families []string, costName string, maxIters, attempts int, threshold float64, seed int64, verbose bool) (synth.Result, error) {
	basis := make([]circuit.BasisGate, 0, len(families))
	for _, f := range families {
		bg, ok := circuit.ByFamily(f)
		if !ok {
			return synth.Result{}, fmt.Errorf("unknown basis gate family %q", f)
		}
		basis = append(basis, bg)
	}

	strategy, err := placement.NewLinear(numQubits, basis)
	if err != nil {
		return synth.Result{}, err
	}

	var costFn cost.Function
	var min optimizer.Minimizer
	switch costName {
	case "hs":
		costFn = cost.NewHilbertSchmidt()
		min = optimizer.NewLBFGS()
	case "makhlin":
		mk, err := cost.NewMakhlin(numQubits)
		if err != nil {
			return synth.Result{}, err
		}
		costFn = mk
		min = optimizer.NewNelderMead()
	default:
		return synth.Result{}, fmt.Errorf("unknown cost function %q", costName)
	}

	cfg := synth.DefaultConfig()
	if maxIters > 0 {
		cfg.MaxIterations = maxIters
	}
	if attempts > 0 {
		cfg.ReinitAttempts = attempts
	}
	if threshold > 0 {
		cfg.Threshold = threshold
	}
	cfg.Seed = seed
	cfg.Verbose = verbose

	engine := synth.New(numQubits, strategy, costFn, min, cfg)
	return engine.Decompose(target)
}

func runRemote(addr string, numQubits int, target *mat.CDense, families []string, costName string, maxIters, attempts int, threshold float64, seed int64) (rpc.DecomposeResult, error) {
	client, err := rpc.NewClient(addr)
	if err != nil {
		return rpc.DecomposeResult{}, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return client.Decompose(ctx, numQubits, target, families, rpc.Options{
		CostFunction:   costName,
		MaxIterations:  maxIters,
		ReinitAttempts: attempts,
		Threshold:      threshold,
		Seed:           seed,
	})
}

func recordRun(dbPath string, numQubits int, target *mat.CDense, result synth.Result) (string, error) {
	store, err := runlog.NewStore(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	runID := runlog.NewRunID()
	err = store.RecordRun(runlog.RunRecord{
		RunID:      runID,
		NumQubits:  numQubits,
		TargetSHA:  runlog.TargetDigest(target),
		Cost:       result.Cost,
		Converged:  result.Converged,
		Iterations: result.Iterations,
		Placements: result.Circuit,
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// #endregion run

// #region output

func printCircuit(bound []circuit.BoundPlacement) {
	fmt.Printf("%-4s  %-8s  %-10s  %s\n", "#", "Gate", "Qubits", "Params")
	fmt.Printf("%-4s+-%-8s+-%-10s+-%s\n", "----", "--------", "----------", "--------------------")
	for i, p := range bound {
		fmt.Printf("%-4d  %-8s  %-10s  %s\n", i, p.Family, formatQubits(p.Qubits), formatParams(p.Params))
	}
}

func formatQubits(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("%d", q)
	}
	return strings.Join(parts, ",")
}

func formatParams(params []float64) string {
	if len(params) == 0 {
		return "—"
	}
	parts := make([]string, len(params))
	for i, v := range params {
		parts[i] = fmt.Sprintf("%+.4f", v)
	}
	return strings.Join(parts, " ")
}

// #endregion output
