package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// Run describes one execution of a model.
type Run struct {
	ID          string
	Model       string
	Fundamental time.Duration
	Params      map[string]map[string]string
	Ticks       uint64
	Finished    bool
}

// Sample is the value one named signal held at a logged tick.
type Sample struct {
	RunID   string
	Tick    uint64
	AppTime time.Duration
	Name    string
	Data    signal.Data
}

// CreateRun inserts a run record. Duplicate IDs are silently ignored.
func (s *Store) CreateRun(ctx context.Context, run Run) error {
	if run.Fundamental <= 0 {
		return fmt.Errorf("create run: fundamental timestep must be positive, got %v", run.Fundamental)
	}
	params, err := marshalParams(run.Params)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, model, fundamental_ns, params)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Model, int64(run.Fundamental), params)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun records the number of ticks executed and marks the run
// finished.
func (s *Store) FinishRun(ctx context.Context, runID string, ticks uint64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET ticks = ?, finished = 1 WHERE id = ?
	`, int64(ticks), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// WriteSample inserts one sample. The run must exist (foreign key).
func (s *Store) WriteSample(ctx context.Context, sample Sample) error {
	return s.WriteSamples(ctx, []Sample{sample})
}

// WriteSamples inserts samples in one transaction; either all are written
// or none.
func (s *Store) WriteSamples(ctx context.Context, samples []Sample) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO samples (run_id, tick, app_time_ns, name, kind, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, tick, name) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	defer stmt.Close()

	for _, sm := range samples {
		body, err := marshalPayload(sm.Data)
		if err != nil {
			return fmt.Errorf("write sample %s@%d: %w", sm.Name, sm.Tick, err)
		}
		if _, err := stmt.ExecContext(ctx, sm.RunID, int64(sm.Tick), int64(sm.AppTime), sm.Name, string(sm.Data.Kind), body); err != nil {
			return fmt.Errorf("write sample %s@%d: %w", sm.Name, sm.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}
