package models

import "time"

// MessageCount pairs a resolved message text with how many times it was seen.
type MessageCount struct {
	Message string `json:"message"`
	Count   uint64 `json:"count"`
}

// MessageTrend carries the decayed per-second rate of one error message,
// used to surface messages that are accelerating rather than merely common.
type MessageTrend struct {
	Message string  `json:"message"`
	Rate    float64 `json:"rate"`
}

// StatsSnapshot is the externally visible state of the pipeline, published
// atomically as a whole. Readers never see a partially updated snapshot.
type StatsSnapshot struct {
	Timestamp        time.Time      `json:"timestamp"`
	WindowStart      time.Time      `json:"windowStart"`
	WindowDuration   time.Duration  `json:"windowDuration"`
	RecordsInWindow  uint64         `json:"recordsInWindow"`
	PerSecondRate    float64        `json:"perSecondRate"`
	WeightedRate     float64        `json:"weightedRate"`
	CurrentRate      float64        `json:"currentRate"`
	PeakRate         float64        `json:"peakRate"`
	TotalRecords     uint64         `json:"totalRecords"`
	InfoRecords      uint64         `json:"infoRecords"`
	ErrorRecords     uint64         `json:"errorRecords"`
	DebugRecords     uint64         `json:"debugRecords"`
	UnmatchedRecords uint64         `json:"unmatchedRecords"`
	UnmatchedDelta   uint64         `json:"unmatchedDelta"`
	WindowsSealed    uint64         `json:"windowsSealed"`
	DistinctMessages uint64         `json:"distinctMessages"`
	TopErrors        []MessageCount `json:"topErrors,omitempty"`
	TrendingErrors   []MessageTrend `json:"trendingErrors,omitempty"`
}

// ErrorRatio returns errors as a fraction of all records, 0 when empty.
func (s StatsSnapshot) ErrorRatio() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.ErrorRecords) / float64(s.TotalRecords)
}
