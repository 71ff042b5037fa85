package aggregators

import (
	"logpulse/internal/shared/metrics"
)

var (
	resizeShrink = "shrink"
	resizeGrow   = "grow"

	metricWindowsSealedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "windows_sealed_total",
		},
	)

	metricWindowResizesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "window_resizes_total",
		},
		[]string{"direction"},
	)

	metricWindowSeconds = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "window_seconds",
		},
	)

	metricPerSecondRate = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "per_second_rate",
		},
	)

	metricWeightedRate = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "weighted_rate",
		},
	)

	metricRecordsByLevel = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_total",
		},
		[]string{"level"},
	)

	metricUnmatchedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "unmatched_records_total",
		},
	)
)
