package streams

import (
	"logpulse/internal/shared/metrics"
)

var (
	streamRecords = "records"

	metricRecordsProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_published_total",
		},
		[]string{"stream_id"},
	)

	metricRecordsConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricQueueDepth = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "record_queue_depth",
		},
	)
)
