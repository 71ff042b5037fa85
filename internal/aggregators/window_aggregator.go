package aggregators

import (
	"sort"
	"time"

	"logpulse/internal/interners"
	"logpulse/internal/models"
	"logpulse/internal/shared/loggers"
	"logpulse/internal/snapshots"
)

// trendFloor is the decayed error rate below which a message is considered
// cooled off and dropped from trend tracking.
const trendFloor = 1e-6

// Settings carries the window tuning knobs, resolved from configuration at
// wiring time.
type Settings struct {
	InitialDuration time.Duration
	HistoryLength   int
	SmoothingFactor float64
	TopMessages     int
}

//go:generate mockgen -source=window_aggregator.go -destination=./mocks/window_aggregator_mock.go -package=mocks
type WindowAggregator interface {
	// Ingest folds one record into the open window, sealing and resizing
	// first if the record's instant lies beyond the window boundary. Must be
	// called from a single goroutine; ordering is the caller's guarantee.
	Ingest(rec models.Record)

	// PublishSnapshot publishes the current state to the snapshot cell.
	// No-op until the first record has opened a window.
	PublishSnapshot()

	// Finalize seals the open partial window, if any, and publishes a last
	// snapshot. Called once after the input stream ends.
	Finalize()
}

// windowAggregator owns the adaptive window state machine. All state is
// confined to the consumer goroutine; the only shared structures it touches
// are the interner (its own mutex) and the snapshot cell (atomic).
type windowAggregator struct {
	settings Settings

	interner interners.Interner
	policy   ResizePolicy
	cell     *snapshots.Cell
	nowFn    func() time.Time

	opened bool
	window models.Window

	history  *sampleHistory
	weighted *weightedRate

	lastSample models.RateSample
	sealed     uint64

	totalRecords uint64
	infoRecords  uint64
	errorRecords uint64
	debugRecords uint64

	unmatchedTotal         uint64
	unmatchedAtLastPublish uint64

	peakRate      float64
	latestArrival time.Time
	recent        []time.Time // arrivals within the trailing second, oldest first

	errorCounts       map[models.Handle]uint64  // per-message error totals, all time
	windowErrorCounts map[models.Handle]uint64  // per-message error counts, open window only
	errorTrends       map[models.Handle]float64 // decayed per-second error rate per message

	logger loggers.Logger
}

func NewWindowAggregator(settings Settings, interner interners.Interner, policy ResizePolicy, cell *snapshots.Cell, logger loggers.Logger) WindowAggregator {
	return newWindowAggregator(settings, interner, policy, cell, logger, time.Now)
}

func newWindowAggregator(settings Settings, interner interners.Interner, policy ResizePolicy, cell *snapshots.Cell, logger loggers.Logger, nowFn func() time.Time) *windowAggregator {
	return &windowAggregator{
		settings:          settings,
		interner:          interner,
		policy:            policy,
		cell:              cell,
		nowFn:             nowFn,
		history:           newSampleHistory(settings.HistoryLength),
		weighted:          newWeightedRate(settings.SmoothingFactor),
		errorCounts:       make(map[models.Handle]uint64),
		windowErrorCounts: make(map[models.Handle]uint64),
		errorTrends:       make(map[models.Handle]float64),
		logger:            logger,
	}
}

func (agg *windowAggregator) Ingest(rec models.Record) {
	if !agg.opened {
		// The first record anchors the window timeline.
		agg.window = models.NewWindow(rec.ArrivalTime, agg.settings.InitialDuration)
		agg.opened = true
		agg.logger.Info().
			Time(loggers.FieldWindowStart, agg.window.Start).
			Dur(loggers.FieldWindowDuration, agg.window.Duration).
			Msg("first record opened the initial window")
	}

	// Seal forward until the record's instant fits. A quiet stretch spanning
	// several boundaries seals one zero-count window per boundary, each
	// feeding the history before the next resize decision. Records that
	// arrive with an instant before the window start (out-of-order input)
	// fall through and accumulate into the open window.
	sealedAny := false
	for !rec.ArrivalTime.Before(agg.window.End()) {
		agg.sealCurrentWindow()
		sealedAny = true
	}

	agg.append(rec)

	if sealedAny {
		agg.PublishSnapshot()
	}
}

func (agg *windowAggregator) PublishSnapshot() {
	if !agg.opened {
		return
	}
	agg.cell.Publish(agg.buildSnapshot())
	agg.unmatchedAtLastPublish = agg.unmatchedTotal
}

func (agg *windowAggregator) Finalize() {
	if !agg.opened {
		agg.logger.Info().Msg("aggregation finalized with no records")
		return
	}

	if len(agg.window.Records) > 0 {
		agg.sealCurrentWindow()
	}
	agg.PublishSnapshot()

	agg.logger.Info().
		Uint64(loggers.FieldRecordCount, agg.totalRecords).
		Uint64("windows_sealed", agg.sealed).
		Msg("aggregation finalized")
}

// sealCurrentWindow closes the open window into a sample, feeds the history
// and the smoothed rate, picks the next duration, and opens the successor
// window flush against the previous boundary.
func (agg *windowAggregator) sealCurrentWindow() {
	sample := agg.window.Seal()
	sample.WeightedRate = agg.weighted.Update(sample.PerSecondRate)
	agg.history.Push(sample)
	agg.lastSample = sample
	agg.sealed++

	if sample.PerSecondRate > agg.peakRate {
		agg.peakRate = sample.PerSecondRate
	}

	agg.updateErrorTrends(sample)

	next := agg.policy.Next(agg.window.Duration, agg.history.AverageCount())
	if next < models.MinWindowDuration {
		// The floor holds regardless of policy; it also keeps window
		// succession strictly advancing.
		next = models.MinWindowDuration
	}

	switch {
	case next < agg.window.Duration:
		metricWindowResizesTotal.WithLabelValues(resizeShrink).Inc()
	case next > agg.window.Duration:
		metricWindowResizesTotal.WithLabelValues(resizeGrow).Inc()
	}

	metricWindowsSealedTotal.Inc()
	metricWindowSeconds.Set(next.Seconds())
	metricPerSecondRate.Set(sample.PerSecondRate)
	metricWeightedRate.Set(sample.WeightedRate)

	agg.logger.Debug().
		Time(loggers.FieldWindowStart, sample.WindowStart).
		Dur(loggers.FieldWindowDuration, sample.WindowDuration).
		Uint64(loggers.FieldRecordCount, sample.RecordCount).
		Float64("per_second_rate", sample.PerSecondRate).
		Dur("next_duration", next).
		Msg("window sealed")

	agg.window = models.NewWindow(agg.window.End(), next)
	agg.windowErrorCounts = make(map[models.Handle]uint64)
}

func (agg *windowAggregator) append(rec models.Record) {
	agg.window.Append(rec)
	agg.totalRecords++
	metricRecordsByLevel.WithLabelValues(rec.Level.String()).Inc()

	switch rec.Level {
	case models.LevelInfo:
		agg.infoRecords++
	case models.LevelError:
		agg.errorRecords++
	case models.LevelDebug:
		agg.debugRecords++
	}

	if !rec.Valid {
		agg.unmatchedTotal++
		metricUnmatchedTotal.Inc()
	} else if rec.Level == models.LevelError {
		agg.errorCounts[rec.Handle]++
		agg.windowErrorCounts[rec.Handle]++
	}

	agg.observeArrival(rec.ArrivalTime)
}

// observeArrival maintains the deque of arrivals inside the trailing second,
// anchored at the newest instant seen so replayed streams keep a meaningful
// current rate.
func (agg *windowAggregator) observeArrival(at time.Time) {
	if at.After(agg.latestArrival) {
		agg.latestArrival = at
	}
	agg.recent = append(agg.recent, at)

	cutoff := agg.latestArrival.Add(-time.Second)
	i := 0
	for i < len(agg.recent) && !agg.recent[i].After(cutoff) {
		i++
	}
	if i > 0 {
		agg.recent = agg.recent[i:]
	}
}

// updateErrorTrends blends the sealed window's per-message error rates into
// the decayed trend scores. Messages absent from the window decay toward
// zero and are dropped once they cool below the floor.
func (agg *windowAggregator) updateErrorTrends(sample models.RateSample) {
	secs := sample.WindowDuration.Seconds()
	if secs <= 0 {
		return
	}
	alpha := agg.settings.SmoothingFactor

	for h, trend := range agg.errorTrends {
		rate := float64(agg.windowErrorCounts[h]) / secs
		next := alpha*rate + (1-alpha)*trend
		if next < trendFloor && agg.windowErrorCounts[h] == 0 {
			delete(agg.errorTrends, h)
			continue
		}
		agg.errorTrends[h] = next
	}

	for h, count := range agg.windowErrorCounts {
		if _, tracked := agg.errorTrends[h]; !tracked {
			agg.errorTrends[h] = float64(count) / secs
		}
	}
}

func (agg *windowAggregator) buildSnapshot() models.StatsSnapshot {
	currentRate := float64(len(agg.recent))
	if currentRate > agg.peakRate {
		agg.peakRate = currentRate
	}

	return models.StatsSnapshot{
		Timestamp:        agg.nowFn().UTC(),
		WindowStart:      agg.window.Start,
		WindowDuration:   agg.window.Duration,
		RecordsInWindow:  uint64(len(agg.window.Records)),
		PerSecondRate:    agg.lastSample.PerSecondRate,
		WeightedRate:     agg.weighted.Value(),
		CurrentRate:      currentRate,
		PeakRate:         agg.peakRate,
		TotalRecords:     agg.totalRecords,
		InfoRecords:      agg.infoRecords,
		ErrorRecords:     agg.errorRecords,
		DebugRecords:     agg.debugRecords,
		UnmatchedRecords: agg.unmatchedTotal,
		UnmatchedDelta:   agg.unmatchedTotal - agg.unmatchedAtLastPublish,
		WindowsSealed:    agg.sealed,
		DistinctMessages: uint64(agg.interner.Len()),
		TopErrors:        agg.topErrors(),
		TrendingErrors:   agg.trendingErrors(),
	}
}

// topErrors ranks error messages by all-time count, ties broken by text for
// deterministic output.
func (agg *windowAggregator) topErrors() []models.MessageCount {
	if agg.settings.TopMessages <= 0 || len(agg.errorCounts) == 0 {
		return nil
	}

	ranked := make([]models.MessageCount, 0, len(agg.errorCounts))
	for h, count := range agg.errorCounts {
		text, ok := agg.interner.Resolve(h)
		if !ok {
			continue
		}
		ranked = append(ranked, models.MessageCount{Message: text, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Message < ranked[j].Message
	})

	if len(ranked) > agg.settings.TopMessages {
		ranked = ranked[:agg.settings.TopMessages]
	}
	return ranked
}

// trendingErrors ranks error messages by decayed per-second rate, surfacing
// what is accelerating now rather than what has merely accumulated.
func (agg *windowAggregator) trendingErrors() []models.MessageTrend {
	if agg.settings.TopMessages <= 0 || len(agg.errorTrends) == 0 {
		return nil
	}

	ranked := make([]models.MessageTrend, 0, len(agg.errorTrends))
	for h, trend := range agg.errorTrends {
		if trend < trendFloor {
			continue
		}
		text, ok := agg.interner.Resolve(h)
		if !ok {
			continue
		}
		ranked = append(ranked, models.MessageTrend{Message: text, Rate: trend})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rate != ranked[j].Rate {
			return ranked[i].Rate > ranked[j].Rate
		}
		return ranked[i].Message < ranked[j].Message
	})

	if len(ranked) > agg.settings.TopMessages {
		ranked = ranked[:agg.settings.TopMessages]
	}
	return ranked
}
