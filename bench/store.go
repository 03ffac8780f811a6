// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"database/sql"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ansel1/merry"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	started_at    INTEGER NOT NULL,
	estimator     TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	resolution_ns INTEGER NOT NULL,
	backends      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS points (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	idx      INTEGER NOT NULL,
	n        INTEGER NOT NULL,
	backend  TEXT NOT NULL,
	location REAL NOT NULL,
	spread   REAL NOT NULL,
	samples  INTEGER NOT NULL,
	hits     INTEGER NOT NULL,
	misses   INTEGER NOT NULL,
	PRIMARY KEY (run_id, idx, backend)
);`

// Run describes one stored benchmark run.
type Run struct {
	ID         string
	StartedAt  time.Time
	Estimator  Estimator
	Seed       int64
	Resolution time.Duration
	Backends   []string
}

// Store persists benchmark runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, merry.Prependf(err, "opening %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, merry.Prepend(err, "creating schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return merry.Wrap(s.db.Close())
}

// BeginRun registers a run for h and returns its id with a Sink that stores
// every record under it.
func (s *Store) BeginRun(h *Harness) (string, Sink, error) {
	cfg := h.Config()
	run := Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		Estimator:  cfg.Estimator,
		Seed:       cfg.Seed,
		Resolution: h.Resolution(),
		Backends:   cfg.Backends,
	}
	if err := s.insertRun(run); err != nil {
		return "", nil, err
	}
	return run.ID, SinkFunc(func(r Record) error { return s.insertRecord(run.ID, r) }), nil
}

func (s *Store) insertRun(r Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, started_at, estimator, seed, resolution_ns, backends) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.StartedAt.UnixNano(), string(r.Estimator), r.Seed, r.Resolution.Nanoseconds(), strings.Join(r.Backends, ","),
	)
	return merry.Prepend(err, "storing run")
}

func (s *Store) insertRecord(runID string, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return merry.Wrap(err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO points (run_id, idx, n, backend, location, spread, samples, hits, misses) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return merry.Wrap(err)
	}
	defer stmt.Close()

	for _, res := range r.Results {
		if _, err := stmt.Exec(runID, r.Index, r.N, res.Backend, res.Location, res.Spread, res.Samples, res.Hits, res.Misses); err != nil {
			tx.Rollback()
			return merry.Prependf(err, "storing point %d", r.Index)
		}
	}
	return merry.Wrap(tx.Commit())
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query("SELECT id, started_at, estimator, seed, resolution_ns, backends FROM runs ORDER BY started_at")
	if err != nil {
		return nil, merry.Wrap(err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			started    int64
			estimator  string
			resolution int64
			backends   string
		)
		if err := rows.Scan(&r.ID, &started, &estimator, &r.Seed, &resolution, &backends); err != nil {
			return nil, merry.Wrap(err)
		}
		r.StartedAt = time.Unix(0, started)
		r.Estimator = Estimator(estimator)
		r.Resolution = time.Duration(resolution)
		if backends != "" {
			r.Backends = strings.Split(backends, ",")
		}
		runs = append(runs, r)
	}
	return runs, merry.Wrap(rows.Err())
}

// Points loads the records of a run in point order. Results within a
// record follow the run's backend order.
func (s *Store) Points(runID string) ([]Record, error) {
	var order string
	err := s.db.QueryRow("SELECT backends FROM runs WHERE id = ?", runID).Scan(&order)
	if err == sql.ErrNoRows {
		return nil, merry.Errorf("unknown run %s", runID).WithValue("run", runID)
	}
	if err != nil {
		return nil, merry.Wrap(err)
	}
	rank := map[string]int{}
	for i, b := range strings.Split(order, ",") {
		rank[b] = i
	}

	rows, err := s.db.Query(
		"SELECT idx, n, backend, location, spread, samples, hits, misses FROM points WHERE run_id = ? ORDER BY idx",
		runID,
	)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var (
			idx, n int
			res    Result
		)
		if err := rows.Scan(&idx, &n, &res.Backend, &res.Location, &res.Spread, &res.Samples, &res.Hits, &res.Misses); err != nil {
			return nil, merry.Wrap(err)
		}
		if len(recs) == 0 || recs[len(recs)-1].Index != idx {
			recs = append(recs, Record{Index: idx, N: n})
		}
		last := &recs[len(recs)-1]
		last.Results = append(last.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, merry.Wrap(err)
	}
	for i := range recs {
		slices.SortStableFunc(recs[i].Results, func(a, b Result) int {
			return rank[a.Backend] - rank[b.Backend]
		})
	}
	return recs, nil
}
