package parsers

import (
	"logpulse/internal/shared/metrics"
)

var (
	outcomeMatched      = "matched"
	outcomeTimeFallback = "time_fallback"
	outcomeUnmatched    = "unmatched"

	metricLinesParsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngest,
			Name:      "lines_parsed_total",
		},
		[]string{"outcome"},
	)
)
