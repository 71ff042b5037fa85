package reporters

import (
	"logpulse/internal/shared/metrics"
)

var (
	metricReportsRenderedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "reports_rendered_total",
		},
	)

	metricSnapshotExportsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "snapshot_exports_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
