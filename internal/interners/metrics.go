package interners

import (
	"logpulse/internal/shared/metrics"
)

var (
	tableSize = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIntern,
			Name:      "table_size",
		},
	)
)
