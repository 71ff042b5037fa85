package aggregators

import (
	"time"

	"logpulse/internal/models"
)

//go:generate mockgen -source=resize_policy.go -destination=./mocks/resize_policy_mock.go -package=mocks
type ResizePolicy interface {
	// Next returns the duration for the window that follows a seal, given the
	// current duration and the mean record count over the sample history.
	Next(current time.Duration, avgCount float64) time.Duration
}

// hysteresisPolicy shrinks busy windows and grows quiet ones, with a dead
// band between the two thresholds so the duration does not oscillate:
//
//	avg > high  => halve, never below the 15s floor
//	avg < low   => add 10s, capped by max when max > 0
//	otherwise   => unchanged
type hysteresisPolicy struct {
	high float64
	low  float64
	max  time.Duration
}

// NewHysteresisPolicy creates the policy. high and low come straight from
// required configuration; max = 0 leaves growth uncapped.
func NewHysteresisPolicy(high, low float64, max time.Duration) ResizePolicy {
	return &hysteresisPolicy{high: high, low: low, max: max}
}

func (p *hysteresisPolicy) Next(current time.Duration, avgCount float64) time.Duration {
	switch {
	case avgCount > p.high && current > models.MinWindowDuration:
		half := current / 2
		if half < models.MinWindowDuration {
			half = models.MinWindowDuration
		}
		return half

	case avgCount < p.low:
		grown := current + models.WindowGrowthStep
		if p.max > 0 && grown > p.max {
			grown = p.max
		}
		return grown

	default:
		return current
	}
}
