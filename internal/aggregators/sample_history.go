package aggregators

import (
	"logpulse/internal/models"
)

// sampleHistory is the bounded rolling record of sealed-window samples whose
// mean count drives the resize decision.
type sampleHistory struct {
	samples []models.RateSample
	max     int
}

func newSampleHistory(max int) *sampleHistory {
	if max < 1 {
		max = 1
	}
	return &sampleHistory{max: max}
}

// Push appends a sample, evicting the oldest once the history is full.
func (h *sampleHistory) Push(sample models.RateSample) {
	h.samples = append(h.samples, sample)
	if len(h.samples) > h.max {
		h.samples = h.samples[1:]
	}
}

// AverageCount returns the mean record count across retained samples,
// 0 when empty.
func (h *sampleHistory) AverageCount() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range h.samples {
		sum += s.RecordCount
	}
	return float64(sum) / float64(len(h.samples))
}

// Len returns the number of retained samples.
func (h *sampleHistory) Len() int {
	return len(h.samples)
}

// Last returns the most recent sample.
func (h *sampleHistory) Last() (models.RateSample, bool) {
	if len(h.samples) == 0 {
		return models.RateSample{}, false
	}
	return h.samples[len(h.samples)-1], true
}
