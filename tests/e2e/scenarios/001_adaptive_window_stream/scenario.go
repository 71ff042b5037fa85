package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"logpulse/internal/app"
	"logpulse/internal/shared/configs"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	initialWindow   = 15 * time.Second
	highThreshold   = 100.0 // mean records per window above which windows halve
	lowThreshold    = 30.0  // mean records per window below which windows grow
	smoothingFactor = 0.5
	topMessages     = 3
)

// ### End - fixed configs

// snapshot mirrors the /snapshot JSON body.
type snapshot struct {
	WindowStart      time.Time     `json:"windowStart"`
	WindowDuration   time.Duration `json:"windowDuration"`
	RecordsInWindow  uint64        `json:"recordsInWindow"`
	PerSecondRate    float64       `json:"perSecondRate"`
	WeightedRate     float64       `json:"weightedRate"`
	CurrentRate      float64       `json:"currentRate"`
	PeakRate         float64       `json:"peakRate"`
	TotalRecords     uint64        `json:"totalRecords"`
	InfoRecords      uint64        `json:"infoRecords"`
	ErrorRecords     uint64        `json:"errorRecords"`
	DebugRecords     uint64        `json:"debugRecords"`
	UnmatchedRecords uint64        `json:"unmatchedRecords"`
	UnmatchedDelta   uint64        `json:"unmatchedDelta"`
	WindowsSealed    uint64        `json:"windowsSealed"`
	DistinctMessages uint64        `json:"distinctMessages"`
	TopErrors        []rankedCount `json:"topErrors"`
	TrendingErrors   []rankedRate  `json:"trendingErrors"`
}

type rankedCount struct {
	Message string `json:"message"`
	Count   uint64 `json:"count"`
}

type rankedRate struct {
	Message string  `json:"message"`
	Rate    float64 `json:"rate"`
}

// main runs the e2e scenario: 001_adaptive_window_stream
//
// This scenario runs the full monitor in-process (the input surface is stdin,
// so it cannot be driven over the network like an HTTP service) and feeds it
// a deterministic stream whose event timestamps are anchored at the wall
// clock. It then reads the final stats through the ops HTTP server.
//
// What it tests:
//   - Line parsing, including the "Error NNN - " prefix strip and one
//     malformed line interned whole
//   - Window sealing on boundary crossings and on end-of-input finalize
//   - Adaptive resizing in both directions: a quiet first window grows the
//     duration 15s -> 25s, a 300-record burst halves it back to the 15s floor
//   - Per-level tallies, unmatched counting, top and trending error ranking
//   - The clean-shutdown guarantee: EOF drains everything before the final
//     snapshot is published
//   - The ops HTTP surface: /healthz, /metrics and /snapshot
//
// Expected results (computed from the stream below):
//   - 326 records total: 259 INFO, 54 ERROR, 12 DEBUG, 1 unmatched
//   - 3 windows sealed; the open window after finalize is back at 15s
//   - lastWindowRate 5/15s, weighted rate 3.5167 (alpha 0.5 over 1.4, 12, 1/3)
//   - top errors: Disk quota exceeded (50), Connection reset by peer (3),
//     Permission denied (1); Disk quota exceeded trends first
func main() {
	port := 18099

	base := time.Now().UTC().Truncate(time.Second)
	input, want := buildStream(base)

	cfg := &configs.Config{
		Log: configs.LogConfig{Level: "warn", MaxSizeMB: 50},
		Monitor: configs.MonitorConfig{
			Port:              port,
			ReadHeaderTimeout: 5,
			ReadTimeout:       10,
			WriteTimeout:      10,
			IdleTimeout:       30,
		},
		Pipeline: configs.PipelineConfig{QueueCapacity: 256},
		Window: configs.WindowConfig{
			InitialDuration: initialWindow,
			HighThreshold:   highThreshold,
			LowThreshold:    lowThreshold,
			HistoryLength:   8,
			SmoothingFactor: smoothingFactor,
		},
		Report: configs.ReportConfig{Interval: 200 * time.Millisecond, TopMessages: topMessages},
	}

	fmt.Println("Starting e2e scenario: 001_adaptive_window_stream")
	fmt.Printf("PORT: %d\n", port)
	fmt.Printf("BASE_INSTANT: %s\n", base.Format(time.RFC3339))
	fmt.Printf("INPUT_LINES: %d\n", strings.Count(input, "\n"))
	fmt.Println()

	application, err := app.New(cfg, strings.NewReader(input), io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- application.Start()
	}()

	select {
	case err := <-pipelineDone:
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Pipeline failed: %v\n", err)
			os.Exit(1)
		}
	case <-time.After(30 * time.Second):
		fmt.Fprintln(os.Stderr, "ERROR: Pipeline did not finish within 30s")
		os.Exit(1)
	}
	fmt.Println("Pipeline drained and finalized")

	baseURL := fmt.Sprintf("http://localhost:%d", port)
	client := &http.Client{Timeout: 5 * time.Second}

	var failures []string
	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Printf("PASS %s\n", name)
			return
		}
		fmt.Printf("FAIL %s: %s\n", name, detail)
		failures = append(failures, name)
	}

	// Ops surface first. The listener comes up concurrently with the
	// pipeline, so give it a moment.
	status := 0
	for attempt := 0; attempt < 50; attempt++ {
		status, _ = get(client, baseURL+"/healthz")
		if status == http.StatusOK {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	check("healthz", status == http.StatusOK, fmt.Sprintf("status %d", status))

	status, body := get(client, baseURL+"/metrics")
	check("metrics status", status == http.StatusOK, fmt.Sprintf("status %d", status))
	check("metrics content", strings.Contains(body, "logpulse_aggregation_windows_sealed_total"),
		"missing logpulse_aggregation_windows_sealed_total")

	status, body = get(client, baseURL+"/snapshot")
	check("snapshot status", status == http.StatusOK, fmt.Sprintf("status %d", status))

	var got snapshot
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to decode snapshot: %v\n", err)
		os.Exit(1)
	}

	check("total records", got.TotalRecords == want.TotalRecords,
		fmt.Sprintf("got %d want %d", got.TotalRecords, want.TotalRecords))
	check("info records", got.InfoRecords == want.InfoRecords,
		fmt.Sprintf("got %d want %d", got.InfoRecords, want.InfoRecords))
	check("error records", got.ErrorRecords == want.ErrorRecords,
		fmt.Sprintf("got %d want %d", got.ErrorRecords, want.ErrorRecords))
	check("debug records", got.DebugRecords == want.DebugRecords,
		fmt.Sprintf("got %d want %d", got.DebugRecords, want.DebugRecords))
	check("unmatched records", got.UnmatchedRecords == want.UnmatchedRecords,
		fmt.Sprintf("got %d want %d", got.UnmatchedRecords, want.UnmatchedRecords))
	check("unmatched delta reset", got.UnmatchedDelta == 0,
		fmt.Sprintf("got %d want 0", got.UnmatchedDelta))
	check("windows sealed", got.WindowsSealed == want.WindowsSealed,
		fmt.Sprintf("got %d want %d", got.WindowsSealed, want.WindowsSealed))
	check("distinct messages", got.DistinctMessages == want.DistinctMessages,
		fmt.Sprintf("got %d want %d", got.DistinctMessages, want.DistinctMessages))

	check("window duration back at floor", got.WindowDuration == initialWindow,
		fmt.Sprintf("got %s want %s", got.WindowDuration, initialWindow))
	check("window start advanced", got.WindowStart.Equal(base.Add(55*time.Second)),
		fmt.Sprintf("got %s want %s", got.WindowStart.Format(time.RFC3339), base.Add(55*time.Second).Format(time.RFC3339)))
	check("open window empty after finalize", got.RecordsInWindow == 0,
		fmt.Sprintf("got %d want 0", got.RecordsInWindow))

	check("last window rate", closeTo(got.PerSecondRate, want.PerSecondRate, 0.001),
		fmt.Sprintf("got %.4f want %.4f", got.PerSecondRate, want.PerSecondRate))
	check("weighted rate", closeTo(got.WeightedRate, want.WeightedRate, 0.001),
		fmt.Sprintf("got %.4f want %.4f", got.WeightedRate, want.WeightedRate))
	check("current rate", closeTo(got.CurrentRate, want.CurrentRate, 0.001),
		fmt.Sprintf("got %.4f want %.4f", got.CurrentRate, want.CurrentRate))
	// The burst's trailing-second arrivals can raise the peak past the sealed
	// 12/s if a report tick lands mid-burst, so the peak is a range check.
	check("peak rate", got.PeakRate >= 12 && got.PeakRate <= 60,
		fmt.Sprintf("got %.4f want within [12, 60]", got.PeakRate))

	check("top errors", equalCounts(got.TopErrors, want.TopErrors),
		fmt.Sprintf("got %v want %v", got.TopErrors, want.TopErrors))
	check("trending leader", len(got.TrendingErrors) > 0 && got.TrendingErrors[0].Message == "Disk quota exceeded",
		fmt.Sprintf("got %v", got.TrendingErrors))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Shutdown failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d checks failed: %s\n", len(failures), strings.Join(failures, ", "))
		os.Exit(1)
	}
	fmt.Println("=== Statistics ===")
	fmt.Printf("Records aggregated: %d\n", got.TotalRecords)
	fmt.Printf("Windows sealed: %d\n", got.WindowsSealed)
	fmt.Printf("Peak rate: %.2f/s\n", got.PeakRate)
	fmt.Printf("Distinct messages: %d\n", got.DistinctMessages)
	fmt.Println("Scenario completed successfully")
}

// buildStream lays out three phases of event time, anchored at base so the
// malformed line's wall-clock arrival stays inside the live window:
//
//	[base,    base+15s)  21 records (quiet)  -> grow to 25s on seal
//	[base+15, base+40s)  300 records (burst) -> halve to the 15s floor on seal
//	[base+40, base+55s)  5 records (tail)    -> sealed by finalize
func buildStream(base time.Time) (string, snapshot) {
	var b strings.Builder

	// Phase 1: 20 valid records in the first two seconds, one malformed line.
	for i := 0; i < 10; i++ {
		b.WriteString(line(base, "INFO", "User logged in"))
	}
	b.WriteString("oops this is not a log line\n")
	for i := 0; i < 4; i++ {
		b.WriteString(line(base.Add(1*time.Second), "INFO", "User logged in"))
	}
	for i := 0; i < 3; i++ {
		b.WriteString(line(base.Add(1*time.Second), "ERROR", "Error 503 - Connection reset by peer"))
	}
	b.WriteString(line(base.Add(2*time.Second), "ERROR", "Permission denied"))
	for i := 0; i < 2; i++ {
		b.WriteString(line(base.Add(2*time.Second), "DEBUG", "Entering request handler"))
	}

	// Phase 2: 60 records per second for five seconds, all inside the grown
	// 25s window.
	for sec := 20; sec <= 24; sec++ {
		at := base.Add(time.Duration(sec) * time.Second)
		for i := 0; i < 48; i++ {
			b.WriteString(line(at, "INFO", "Request completed"))
		}
		for i := 0; i < 10; i++ {
			b.WriteString(line(at, "ERROR", "Disk quota exceeded"))
		}
		for i := 0; i < 2; i++ {
			b.WriteString(line(at, "DEBUG", "Cache key computed"))
		}
	}

	// Phase 3: the first record crosses the phase-2 boundary and seals it;
	// the rest land a second later.
	b.WriteString(line(base.Add(40*time.Second), "INFO", "User logged in"))
	for i := 0; i < 4; i++ {
		b.WriteString(line(base.Add(41*time.Second), "INFO", "User logged in"))
	}

	want := snapshot{
		TotalRecords:     326,
		InfoRecords:      259,
		ErrorRecords:     54,
		DebugRecords:     12,
		UnmatchedRecords: 1,
		WindowsSealed:    3,
		DistinctMessages: 8,
		PerSecondRate:    5.0 / 15.0,
		WeightedRate:     smoothingFactor*(5.0/15.0) + (1-smoothingFactor)*(smoothingFactor*12.0+(1-smoothingFactor)*1.4),
		CurrentRate:      4,
		TopErrors: []rankedCount{
			{Message: "Disk quota exceeded", Count: 50},
			{Message: "Connection reset by peer", Count: 3},
			{Message: "Permission denied", Count: 1},
		},
	}
	return b.String(), want
}

func line(at time.Time, level, message string) string {
	return fmt.Sprintf("[%s] %s - IP:10.0.0.1 %s\n", at.UTC().Format("2006-01-02T15:04:05Z"), level, message)
}

func get(client *http.Client, url string) (int, string) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err.Error()
	}
	return resp.StatusCode, string(body)
}

func closeTo(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

func equalCounts(got, want []rankedCount) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
