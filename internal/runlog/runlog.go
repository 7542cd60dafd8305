// Package runlog persists synthesis runs to SQLite so results can be
// inspected after the fact. The engine itself never touches this store; the
// CLI and the RPC server write to it.
package runlog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"github.com/qfold/qsynth/internal/circuit"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS synthesis_runs (
	run_id      TEXT PRIMARY KEY,
	num_qubits  INTEGER NOT NULL,
	target_sha  TEXT NOT NULL,
	cost        REAL NOT NULL,
	converged   INTEGER NOT NULL,
	iterations  INTEGER NOT NULL,
	gate_count  INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_placements (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	position    INTEGER NOT NULL,
	family      TEXT NOT NULL,
	qubits      TEXT NOT NULL,
	params      TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES synthesis_runs(run_id)
);
`

// #endregion schema

// #region types

// RunRecord is one synthesis run: outcome summary plus the bound circuit.
// GateCount mirrors len(Placements) so list queries can report circuit size
// without loading the placements.
type RunRecord struct {
	RunID      string
	NumQubits  int
	TargetSHA  string
	Cost       float64
	Converged  bool
	Iterations int
	GateCount  int
	Placements []circuit.BoundPlacement
	CreatedAt  time.Time
}

// #endregion types

// #region store

// Store manages synthesis provenance in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and runs migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region record

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// RecordRun inserts a run and its placements in one transaction.
func (s *Store) RecordRun(rec RunRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	converged := 0
	if rec.Converged {
		converged = 1
	}
	_, err = tx.Exec(
		`INSERT INTO synthesis_runs (run_id, num_qubits, target_sha, cost, converged, iterations, gate_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.NumQubits, rec.TargetSHA, rec.Cost, converged,
		rec.Iterations, len(rec.Placements), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, p := range rec.Placements {
		qubits, err := json.Marshal(p.Qubits)
		if err != nil {
			return fmt.Errorf("marshal qubits: %w", err)
		}
		params, err := json.Marshal(p.Params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO run_placements (run_id, position, family, qubits, params)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.RunID, i, p.Family, string(qubits), string(params),
		)
		if err != nil {
			return fmt.Errorf("insert placement %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// #endregion record

// #region query

// GetRun retrieves one run with its placements, in circuit order.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var converged int
	var createdStr string

	err := s.db.QueryRow(
		`SELECT run_id, num_qubits, target_sha, cost, converged, iterations, gate_count, created_at
		 FROM synthesis_runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.NumQubits, &rec.TargetSHA, &rec.Cost, &converged, &rec.Iterations, &rec.GateCount, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.Converged = converged != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	rows, err := s.db.Query(
		`SELECT family, qubits, params FROM run_placements
		 WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get placements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p circuit.BoundPlacement
		var qubitsJSON, paramsJSON string
		if err := rows.Scan(&p.Family, &qubitsJSON, &paramsJSON); err != nil {
			return RunRecord{}, fmt.Errorf("scan placement: %w", err)
		}
		if err := json.Unmarshal([]byte(qubitsJSON), &p.Qubits); err != nil {
			return RunRecord{}, fmt.Errorf("unmarshal qubits: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &p.Params); err != nil {
			return RunRecord{}, fmt.Errorf("unmarshal params: %w", err)
		}
		rec.Placements = append(rec.Placements, p)
	}
	return rec, rows.Err()
}

// ListRuns returns run summaries (no placements), newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, num_qubits, target_sha, cost, converged, iterations, gate_count, created_at
		 FROM synthesis_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var converged int
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.NumQubits, &rec.TargetSHA, &rec.Cost, &converged, &rec.Iterations, &rec.GateCount, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Converged = converged != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion query

// #region digest

// TargetDigest hashes a target matrix so equal targets share a stable,
// compact identifier in the log.
func TargetDigest(target *mat.CDense) string {
	h := sha256.New()
	r, c := target.Dims()
	var buf [16]byte
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := target.At(i, j)
			binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(real(v)))
			binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(imag(v)))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// #endregion digest
