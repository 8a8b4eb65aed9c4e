package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/visualhull/carve/internal/timeutil"
)

// Run records one carving invocation: its parameters and its results.
type Run struct {
	RunID            string          `json:"run_id"`
	CreatedUnixNanos int64           `json:"created_unix_nanos"`
	GridSize         int             `json:"grid_size"`
	XMin, XMax       float64         `json:"-"`
	YMin, YMax       float64         `json:"-"`
	ZMin, ZMax       float64         `json:"-"`
	MinOccupancy     int             `json:"min_occupancy"`
	Views            int             `json:"views"`
	GridPoints       int             `json:"grid_points"`
	CarvedPoints     int             `json:"carved_points"`
	DurationNanos    int64           `json:"duration_nanos"`
	ParamsJSON       json.RawMessage `json:"params_json,omitempty"`
}

// Store provides persistence for carving runs.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Open opens (or creates) the run database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runstore: open database: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, clock: timeutil.RealClock{}}, nil
}

// NewStore wraps an existing database handle. Callers are responsible
// for running migrations.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, clock: timeutil.RealClock{}}
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Insert persists a run. An empty RunID gets a fresh UUID; a zero
// CreatedUnixNanos gets the current time.
func (s *Store) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedUnixNanos == 0 {
		run.CreatedUnixNanos = s.clock.Now().UnixNano()
	}

	var paramsStr interface{}
	if len(run.ParamsJSON) > 0 {
		paramsStr = string(run.ParamsJSON)
	}

	_, err := s.db.Exec(`
		INSERT INTO carve_runs (
			run_id, created_unix_nanos, grid_size,
			x_min, x_max, y_min, y_max, z_min, z_max,
			min_occupancy, views, grid_points, carved_points,
			duration_nanos, params_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedUnixNanos, run.GridSize,
		run.XMin, run.XMax, run.YMin, run.YMax, run.ZMin, run.ZMax,
		run.MinOccupancy, run.Views, run.GridPoints, run.CarvedPoints,
		run.DurationNanos, paramsStr,
	)
	if err != nil {
		return fmt.Errorf("runstore: insert run: %w", err)
	}
	return nil
}

// Get returns a run by ID.
func (s *Store) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, created_unix_nanos, grid_size,
		       x_min, x_max, y_min, y_max, z_min, z_max,
		       min_occupancy, views, grid_points, carved_points,
		       duration_nanos, params_json
		FROM carve_runs
		WHERE run_id = ?`, runID)
	return scanRun(row)
}

// ListRecent returns the most recent runs, newest first.
func (s *Store) ListRecent(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT run_id, created_unix_nanos, grid_size,
		       x_min, x_max, y_min, y_max, z_min, z_max,
		       min_occupancy, views, grid_points, carved_points,
		       duration_nanos, params_json
		FROM carve_runs
		ORDER BY created_unix_nanos DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runstore: query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var paramsStr sql.NullString
	err := row.Scan(
		&r.RunID, &r.CreatedUnixNanos, &r.GridSize,
		&r.XMin, &r.XMax, &r.YMin, &r.YMax, &r.ZMin, &r.ZMax,
		&r.MinOccupancy, &r.Views, &r.GridPoints, &r.CarvedPoints,
		&r.DurationNanos, &paramsStr,
	)
	if err != nil {
		return nil, fmt.Errorf("runstore: scan run: %w", err)
	}
	if paramsStr.Valid {
		r.ParamsJSON = json.RawMessage(paramsStr.String)
	}
	return &r, nil
}
