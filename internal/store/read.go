package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

// GetRun returns one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, fundamental_ns, params, ticks, finished
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every run ordered by id.
//
// Returns an empty slice (not nil) if there are no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, fundamental_ns, params, ticks, finished
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadSamples returns every sample of a run ordered by tick, then name.
//
// Returns an empty slice (not nil) if the run has no samples.
func (s *Store) ReadSamples(ctx context.Context, runID string) ([]Sample, error) {
	return s.querySamples(ctx, `
		SELECT run_id, tick, app_time_ns, name, payload
		FROM samples
		WHERE run_id = ?
		ORDER BY tick ASC, name COLLATE BINARY ASC
	`, runID)
}

// ReadSeries returns the samples of one signal ordered by tick.
func (s *Store) ReadSeries(ctx context.Context, runID, name string) ([]Sample, error) {
	return s.querySamples(ctx, `
		SELECT run_id, tick, app_time_ns, name, payload
		FROM samples
		WHERE run_id = ? AND name = ?
		ORDER BY tick ASC
	`, runID, name)
}

func (s *Store) querySamples(ctx context.Context, query string, args ...any) ([]Sample, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		var (
			sm      Sample
			tick    int64
			appTime int64
			body    string
		)
		if err := rows.Scan(&sm.RunID, &tick, &appTime, &sm.Name, &body); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		sm.Tick = uint64(tick)
		sm.AppTime = time.Duration(appTime)
		if sm.Data, err = unmarshalPayload(body); err != nil {
			return nil, err
		}
		samples = append(samples, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run         Run
		fundamental int64
		params      string
		ticks       int64
		finished    int
	)
	if err := row.Scan(&run.ID, &run.Model, &fundamental, &params, &ticks, &finished); err != nil {
		return Run{}, err
	}
	run.Fundamental = time.Duration(fundamental)
	run.Ticks = uint64(ticks)
	run.Finished = finished != 0
	p, err := unmarshalParams(params)
	if err != nil {
		return Run{}, err
	}
	run.Params = p
	return run, nil
}
