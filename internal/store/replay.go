package store

import (
	"context"
	"fmt"
	"time"
)

// Frame groups the samples logged at one tick, in name order.
type Frame struct {
	Tick    uint64
	AppTime time.Duration
	Samples []Sample
}

// Replay reads a run back one tick at a time, in tick order, calling fn for
// each logged tick. It stops at the first error fn returns.
func (s *Store) Replay(ctx context.Context, runID string, fn func(Frame) error) error {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	samples, err := s.ReadSamples(ctx, runID)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	var cur *Frame
	for _, sm := range samples {
		if cur != nil && cur.Tick != sm.Tick {
			if err := fn(*cur); err != nil {
				return err
			}
			cur = nil
		}
		if cur == nil {
			cur = &Frame{Tick: sm.Tick, AppTime: sm.AppTime}
		}
		cur.Samples = append(cur.Samples, sm)
	}
	if cur != nil {
		return fn(*cur)
	}
	return nil
}
