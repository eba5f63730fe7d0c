package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/kmeans/internal/kmeans"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Run is the header row of an archived clustering run.
type Run struct {
	RunID        string
	SourcePath   string
	Clusters     int
	Points       int
	State        string
	Iterations   int
	Rounds       int
	TotalInertia float64
	SeedIndices  []int
	CreatedAt    time.Time
}

// CentroidRecord is the final position and statistics of one cluster.
type CentroidRecord struct {
	Cluster int
	X, Y    float64
	Size    int
	Inertia float64
}

// AssignmentRecord is one input point with its final label.
type AssignmentRecord struct {
	PointIndex int
	X, Y       float64
	Label      int
}

// RunRecord is everything written for one run.
type RunRecord struct {
	Run         Run
	Centroids   []CentroidRecord
	Assignments []AssignmentRecord
}

// NewRunRecord builds a RunRecord from a finished clustering.
// RunID and CreatedAt are filled in by RecordRun.
func NewRunRecord(sourcePath string, store *kmeans.PointStore, res *kmeans.Result, summary kmeans.Summary) RunRecord {
	rec := RunRecord{
		Run: Run{
			SourcePath:   sourcePath,
			Clusters:     len(res.Centroids),
			Points:       store.Len(),
			State:        res.State.String(),
			Iterations:   res.Iterations,
			Rounds:       res.Rounds,
			TotalInertia: summary.TotalInertia,
			SeedIndices:  append([]int(nil), res.SeedIndices...),
		},
		Centroids:   make([]CentroidRecord, 0, len(summary.Clusters)),
		Assignments: make([]AssignmentRecord, 0, store.Len()),
	}
	for _, c := range summary.Clusters {
		rec.Centroids = append(rec.Centroids, CentroidRecord{
			Cluster: c.Label,
			X:       c.Centroid.X,
			Y:       c.Centroid.Y,
			Size:    c.Size,
			Inertia: c.Inertia,
		})
	}
	for i, lp := range res.LabeledPoints(store) {
		rec.Assignments = append(rec.Assignments, AssignmentRecord{
			PointIndex: i,
			X:          lp.X,
			Y:          lp.Y,
			Label:      lp.Label,
		})
	}
	return rec
}

// RecordRun stores rec in a single transaction and returns the new run ID.
func (db *DB) RecordRun(rec RunRecord) (string, error) {
	runID := uuid.NewString()
	created := db.clock.Now().UTC()

	seeds, err := json.Marshal(rec.Run.SeedIndices)
	if err != nil {
		return "", fmt.Errorf("failed to encode seed indices: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO kmeans_runs (
			run_id, source_path, clusters, points, state, iterations, rounds,
			total_inertia, created_unix_ns, seed_indices
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.Run.SourcePath, rec.Run.Clusters, rec.Run.Points, rec.Run.State,
		rec.Run.Iterations, rec.Run.Rounds, rec.Run.TotalInertia, created.UnixNano(), string(seeds),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	centroidStmt, err := tx.Prepare(
		`INSERT INTO kmeans_centroids (run_id, cluster, x, y, size, inertia) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare centroid insert: %w", err)
	}
	defer centroidStmt.Close()
	for _, c := range rec.Centroids {
		if _, err := centroidStmt.Exec(runID, c.Cluster, c.X, c.Y, c.Size, c.Inertia); err != nil {
			return "", fmt.Errorf("failed to insert centroid %d: %w", c.Cluster, err)
		}
	}

	assignStmt, err := tx.Prepare(
		`INSERT INTO kmeans_assignments (run_id, point_index, x, y, label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer assignStmt.Close()
	for _, a := range rec.Assignments {
		if _, err := assignStmt.Exec(runID, a.PointIndex, a.X, a.Y, a.Label); err != nil {
			return "", fmt.Errorf("failed to insert assignment %d: %w", a.PointIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, source_path, clusters, points, state, iterations, rounds,
	total_inertia, seed_indices, created_unix_ns`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r       Run
		seeds   string
		created int64
	)
	if err := row.Scan(
		&r.RunID, &r.SourcePath, &r.Clusters, &r.Points, &r.State, &r.Iterations,
		&r.Rounds, &r.TotalInertia, &seeds, &created,
	); err != nil {
		return Run{}, err
	}
	if seeds != "" {
		if err := json.Unmarshal([]byte(seeds), &r.SeedIndices); err != nil {
			return Run{}, fmt.Errorf("failed to decode seed indices for run %s: %w", r.RunID, err)
		}
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}

// Run returns the header of a single run.
func (db *DB) Run(runID string) (Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM kmeans_runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return r, err
}

// Runs returns archived runs, newest first, up to limit (limit <= 0 means 100).
func (db *DB) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`SELECT `+runColumns+` FROM kmeans_runs ORDER BY created_unix_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Centroids returns the final centroids of a run ordered by cluster index.
func (db *DB) Centroids(runID string) ([]CentroidRecord, error) {
	rows, err := db.Query(
		`SELECT cluster, x, y, size, inertia FROM kmeans_centroids WHERE run_id = ? ORDER BY cluster`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CentroidRecord
	for rows.Next() {
		var c CentroidRecord
		if err := rows.Scan(&c.Cluster, &c.X, &c.Y, &c.Size, &c.Inertia); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Assignments returns the labelled points of a run in original point order.
func (db *DB) Assignments(runID string) ([]AssignmentRecord, error) {
	rows, err := db.Query(
		`SELECT point_index, x, y, label FROM kmeans_assignments WHERE run_id = ? ORDER BY point_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssignmentRecord
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.PointIndex, &a.X, &a.Y, &a.Label); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and, through the foreign keys, its centroids and assignments.
func (db *DB) DeleteRun(runID string) error {
	res, err := db.Exec(`DELETE FROM kmeans_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
