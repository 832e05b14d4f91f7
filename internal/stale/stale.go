// Package stale turns the age of externally sourced data into a validity
// flag.
//
// A Tracker records when data was last decoded successfully. A block keeps
// emitting its last good value and reports IsValid alongside it, so
// downstream logic can react to a silent source without the tick failing.
package stale

import "time"

// Tracker reports whether the last good update is within a threshold.
// The zero value is a tracker with threshold 0 that has never been updated.
type Tracker struct {
	last      time.Duration
	updated   bool
	threshold time.Duration
}

// New creates a tracker with the given freshness threshold. A threshold of
// zero means data is valid only during the tick it arrived in.
func New(threshold time.Duration) Tracker {
	if threshold < 0 {
		threshold = 0
	}
	return Tracker{threshold: threshold}
}

// FromMillis creates a tracker from a threshold in milliseconds, the unit
// parameter files use.
func FromMillis(ms float64) Tracker {
	if !(ms > 0) {
		return New(0)
	}
	return New(time.Duration(ms * float64(time.Millisecond)))
}

// MarkUpdated records now as the last good update. Call it only after new
// data was actually decoded, not merely attempted.
func (t *Tracker) MarkUpdated(now time.Duration) {
	t.last = now
	t.updated = true
}

// IsValid reports whether an update has ever happened and now-last does not
// exceed the threshold.
func (t *Tracker) IsValid(now time.Duration) bool {
	return t.updated && now-t.last <= t.threshold
}

// Threshold returns the configured threshold.
func (t *Tracker) Threshold() time.Duration {
	return t.threshold
}

// LastUpdate returns the time of the last good update. ok is false if the
// tracker was never updated.
func (t *Tracker) LastUpdate() (last time.Duration, ok bool) {
	return t.last, t.updated
}

// Retune rebuilds the tracker if threshold differs from the current one and
// reports whether it did. A rebuilt tracker has no history: it counts as
// never updated until the next MarkUpdated.
func (t *Tracker) Retune(threshold time.Duration) bool {
	if threshold < 0 {
		threshold = 0
	}
	if threshold == t.threshold {
		return false
	}
	*t = New(threshold)
	return true
}
