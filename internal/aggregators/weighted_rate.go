package aggregators

// weightedRate smooths per-second rates across sealed windows with an
// exponentially weighted moving average: newer windows dominate, older ones
// decay geometrically. Seeded by the first sample so the estimate never
// climbs up from an artificial zero.
type weightedRate struct {
	alpha  float64
	value  float64
	seeded bool
}

func newWeightedRate(alpha float64) *weightedRate {
	return &weightedRate{alpha: alpha}
}

// Update folds in the rate of a freshly sealed window and returns the new
// smoothed value.
func (w *weightedRate) Update(rate float64) float64 {
	if !w.seeded {
		w.value = rate
		w.seeded = true
		return w.value
	}
	w.value = w.alpha*rate + (1-w.alpha)*w.value
	return w.value
}

// Value returns the current smoothed rate, 0 before the first Update.
func (w *weightedRate) Value() float64 {
	return w.value
}
