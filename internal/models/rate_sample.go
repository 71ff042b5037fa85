package models

import "time"

// RateSample is the per-window measurement emitted when a window seals.
// A gap crossing several boundaries produces one zero-count sample per
// skipped window, so the history always reflects wall-clock continuity.
type RateSample struct {
	WindowStart    time.Time
	WindowDuration time.Duration
	RecordCount    uint64
	PerSecondRate  float64
	WeightedRate   float64
}
