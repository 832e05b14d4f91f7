package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun inserts a run with a 10ms fundamental timestep.
func createTestRun(t *testing.T, s *Store, id string) Run {
	t.Helper()
	run := Run{ID: id, Model: "demo", Fundamental: 10 * time.Millisecond}
	if err := s.CreateRun(context.Background(), run); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	return run
}

// scalarSample builds a scalar sample at tick, with app time tick*10ms.
func scalarSample(runID string, tick uint64, name string, v float64) Sample {
	return Sample{
		RunID:   runID,
		Tick:    tick,
		AppTime: time.Duration(tick) * 10 * time.Millisecond,
		Name:    name,
		Data:    signal.ScalarData(v),
	}
}
