package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/qfold/qsynth/internal/circuit"
	"github.com/qfold/qsynth/internal/runlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the synthesis run database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/runs.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := runlog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID      string  `json:"run_id"`
	NumQubits  int     `json:"num_qubits"`
	Gates      int     `json:"gates"`
	Cost       float64 `json:"cost"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	CreatedAt  string  `json:"created_at"`
}

func runListMode(store *runlog.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]listRow, len(runs))
	for i, r := range runs {
		rows[i] = listRow{
			RunID:      r.RunID,
			NumQubits:  r.NumQubits,
			Gates:      r.GateCount,
			Cost:       r.Cost,
			Converged:  r.Converged,
			Iterations: r.Iterations,
			CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %6s  %5s  %10s  %-9s  %5s  %s\n",
		"Run", "Qubits", "Gates", "Cost", "Converged", "Iters", "Time")
	fmt.Printf("%-10s+-%6s+-%5s+-%10s+-%-9s+-%5s+-%s\n",
		"----------", "------", "-----", "----------", "---------", "-----", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %6d  %5d  %10.3g  %-9v  %5d  %s\n",
			shortID(r.RunID), r.NumQubits, r.Gates, r.Cost, r.Converged, r.Iterations, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	RunID      string                    `json:"run_id"`
	NumQubits  int                       `json:"num_qubits"`
	TargetSHA  string                    `json:"target_sha"`
	Cost       float64                   `json:"cost"`
	Converged  bool                      `json:"converged"`
	Iterations int                       `json:"iterations"`
	CreatedAt  string                    `json:"created_at"`
	Circuit    []circuit.BoundPlacement  `json:"circuit"`
}

func runDetailMode(store *runlog.Store, runID string, jsonOut bool) error {
	rec, err := store.GetRun(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:      rec.RunID,
		NumQubits:  rec.NumQubits,
		TargetSHA:  rec.TargetSHA,
		Cost:       rec.Cost,
		Converged:  rec.Converged,
		Iterations: rec.Iterations,
		CreatedAt:  rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Circuit:    rec.Placements,
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:        %s\n", out.RunID)
	fmt.Printf("Qubits:     %d\n", out.NumQubits)
	fmt.Printf("Target:     %s\n", shortID(out.TargetSHA))
	fmt.Printf("Cost:       %.3g\n", out.Cost)
	fmt.Printf("Converged:  %v\n", out.Converged)
	fmt.Printf("Iterations: %d\n", out.Iterations)
	fmt.Printf("Created:    %s\n", out.CreatedAt)

	fmt.Printf("\nCircuit (%d gates):\n", len(out.Circuit))
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "#", "Gate", "Qubits", "Params")
	for i, p := range out.Circuit {
		fmt.Printf("  %-4d  %-8s  %-8s  %s\n", i, p.Family, joinInts(p.Qubits), joinFloats(p.Params))
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

func joinFloats(vals []float64) string {
	if len(vals) == 0 {
		return "—"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%+.4f", v)
	}
	return strings.Join(parts, " ")
}

// #endregion output
