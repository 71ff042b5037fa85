package models

import "time"

const (
	// MinWindowDuration is the hard floor a window may shrink to.
	MinWindowDuration = 15 * time.Second

	// WindowGrowthStep is the fixed increment applied when a window grows.
	WindowGrowthStep = 10 * time.Second
)

// Window is one open aggregation interval: a start instant, a duration, and
// the records that fell inside [Start, Start+Duration). Exactly one window is
// open at any moment.
type Window struct {
	Start    time.Time
	Duration time.Duration
	Records  []Record
}

// NewWindow opens a window anchored at start covering d.
func NewWindow(start time.Time, d time.Duration) Window {
	return Window{Start: start, Duration: d}
}

// End returns the exclusive upper bound of the window.
func (w Window) End() time.Time {
	return w.Start.Add(w.Duration)
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End())
}

// Append adds a record to the window. Membership is the caller's concern;
// the window itself never rejects a record.
func (w *Window) Append(rec Record) {
	w.Records = append(w.Records, rec)
}

// Seal computes the rate sample for the closed window. The weighted rate is
// filled in by the aggregator afterwards, from its sample history.
func (w Window) Seal() RateSample {
	secs := w.Duration.Seconds()
	var perSecond float64
	if secs > 0 {
		perSecond = float64(len(w.Records)) / secs
	}
	return RateSample{
		WindowStart:    w.Start,
		WindowDuration: w.Duration,
		RecordCount:    uint64(len(w.Records)),
		PerSecondRate:  perSecond,
	}
}
