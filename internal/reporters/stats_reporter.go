package reporters

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"logpulse/internal/exporters"
	"logpulse/internal/models"
	"logpulse/internal/shared/loggers"
	"logpulse/internal/shared/metrics"
	"logpulse/internal/snapshots"
)

type StatsReporter interface {
	// Start begins rendering the latest snapshot to the output on the report
	// cadence.
	Start(ctx context.Context)
	// Stop halts the ticker and renders the closing summary. Call it after
	// the consumer has finalized so the summary covers the whole stream.
	Stop()
}

type statsReporter struct {
	cell     *snapshots.Cell
	exporter exporters.SnapshotExporter // nil disables file export
	out      io.Writer
	interval time.Duration
	topN     int

	proc *process.Process

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewStatsReporter(cell *snapshots.Cell, exporter exporters.SnapshotExporter, out io.Writer, interval time.Duration, topN int, logger loggers.Logger) StatsReporter {
	// Best effort: without a readable process handle the report simply
	// omits the RSS figure.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
		logger.Warn().Err(err).Msg("process handle unavailable, reports omit rss")
	}

	return &statsReporter{
		cell:     cell,
		exporter: exporter,
		out:      out,
		interval: interval,
		topN:     topN,
		proc:     proc,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (r *statsReporter) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.renderTick()
			}
		}
	}()
}

func (r *statsReporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()

	if snap, ok := r.cell.Latest(); ok {
		r.renderSummary(snap)
	}
}

func (r *statsReporter) renderTick() {
	snap, ok := r.cell.Latest()
	if !ok {
		fmt.Fprintln(r.out, "-- waiting for first records --")
		return
	}

	r.render(snap)
	metricReportsRenderedTotal.Inc()

	if r.exporter == nil {
		return
	}
	if svcErr := r.exporter.Export(snap); svcErr != nil {
		metricSnapshotExportsTotal.WithLabelValues(svcErr.Code).Inc()
		r.logger.Warn().
			Str(loggers.FieldErrorCode, svcErr.Code).
			Err(svcErr.Cause).
			Msg("snapshot export failed")
		return
	}
	metricSnapshotExportsTotal.WithLabelValues(metrics.ValueNoError).Inc()
}

func (r *statsReporter) render(snap models.StatsSnapshot) {
	fmt.Fprintf(r.out, "=== Log Stats @ %s ===\n", snap.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Window:    %s starting %s (%d records)\n",
		snap.WindowDuration, snap.WindowStart.Format("15:04:05"), snap.RecordsInWindow)
	fmt.Fprintf(r.out, "Rates:     current %.0f/s | window %.2f/s | weighted %.2f/s | peak %.2f/s\n",
		snap.CurrentRate, snap.PerSecondRate, snap.WeightedRate, snap.PeakRate)
	fmt.Fprintf(r.out, "Levels:    INFO %.1f%% | ERROR %.1f%% | DEBUG %.1f%%\n",
		percent(snap.InfoRecords, snap.TotalRecords),
		percent(snap.ErrorRecords, snap.TotalRecords),
		percent(snap.DebugRecords, snap.TotalRecords))
	fmt.Fprintf(r.out, "Malformed: %d total (+%d)\n", snap.UnmatchedRecords, snap.UnmatchedDelta)

	if len(snap.TopErrors) > 0 {
		fmt.Fprintln(r.out, "Top errors:")
		for i, e := range snap.TopErrors {
			if i >= r.topN {
				break
			}
			fmt.Fprintf(r.out, "  %d. %s (%d)\n", i+1, e.Message, e.Count)
		}
	}
	if len(snap.TrendingErrors) > 0 {
		fmt.Fprintln(r.out, "Trending:")
		for i, e := range snap.TrendingErrors {
			if i >= r.topN {
				break
			}
			fmt.Fprintf(r.out, "  %d. %s (%.2f/s)\n", i+1, e.Message, e.Rate)
		}
	}

	fmt.Fprintf(r.out, "Distinct messages: %d | Windows sealed: %d | Total: %d\n",
		snap.DistinctMessages, snap.WindowsSealed, snap.TotalRecords)
	fmt.Fprintf(r.out, "Memory: %s\n\n", r.memoryLine())
}

func (r *statsReporter) renderSummary(snap models.StatsSnapshot) {
	fmt.Fprintf(r.out, "=== Final summary @ %s ===\n", snap.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Records:   %d total | INFO %d | ERROR %d | DEBUG %d | malformed %d\n",
		snap.TotalRecords, snap.InfoRecords, snap.ErrorRecords, snap.DebugRecords, snap.UnmatchedRecords)
	fmt.Fprintf(r.out, "Rates:     weighted %.2f/s | peak %.2f/s\n", snap.WeightedRate, snap.PeakRate)
	fmt.Fprintf(r.out, "Windows:   %d sealed, last %s\n", snap.WindowsSealed, snap.WindowDuration)
	fmt.Fprintf(r.out, "Messages:  %d distinct\n", snap.DistinctMessages)

	for i, e := range snap.TopErrors {
		if i >= r.topN {
			break
		}
		if i == 0 {
			fmt.Fprintln(r.out, "Top errors:")
		}
		fmt.Fprintf(r.out, "  %d. %s (%d)\n", i+1, e.Message, e.Count)
	}
}

func (r *statsReporter) memoryLine() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	line := fmt.Sprintf("heap %.1f MiB", mib(ms.HeapAlloc))

	if r.proc != nil {
		if info, err := r.proc.MemoryInfo(); err == nil {
			line += fmt.Sprintf(" | rss %.1f MiB", mib(info.RSS))
		}
	}
	return line
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func mib(b uint64) float64 {
	return float64(b) / (1 << 20)
}
