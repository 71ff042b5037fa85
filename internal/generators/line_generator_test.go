package generators

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpulse/internal/interners"
	"logpulse/internal/models"
	"logpulse/internal/parsers"
	"logpulse/internal/shared/loggers"
)

func baseOptions() Options {
	return Options{
		Seed:        42,
		Rate:        100000, // effectively unpaced for tests
		Count:       200,
		InfoWeight:  70,
		ErrorWeight: 20,
		DebugWeight: 10,
		PoolSize:    5,
	}
}

func newFixedGenerator(t *testing.T, opts Options, out *bytes.Buffer) *lineGenerator {
	t.Helper()

	gen, err := NewLineGenerator(opts, out)
	require.NoError(t, err)

	g, ok := gen.(*lineGenerator)
	require.True(t, ok)
	g.nowFn = func() time.Time {
		return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	}
	return g
}

func TestLineGenerator_DeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer

	opts := baseOptions()
	opts.MalformedRatio = 0.1
	opts.ErrorCodeRatio = 0.5

	g1 := newFixedGenerator(t, opts, &first)
	g2 := newFixedGenerator(t, opts, &second)

	_, err := g1.Run(context.Background())
	require.NoError(t, err)
	_, err = g2.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestLineGenerator_LinesRoundTripThroughParser(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := baseOptions()
	opts.ErrorCodeRatio = 0.5
	g := newFixedGenerator(t, opts, &out)

	sum, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(200), sum.Lines)
	assert.Equal(t, sum.Lines, sum.Info+sum.Error+sum.Debug)

	logger, _ := loggers.New("info")
	parser := parsers.NewLineParser(interners.NewMessageInterner(), logger)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 200)

	var info, errCount, debug uint64
	for _, line := range lines {
		rec := parser.Parse(line, time.Now())
		require.True(t, rec.Valid, "line should match the grammar: %q", line)
		assert.Equal(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), rec.ArrivalTime)

		switch rec.Level {
		case models.LevelInfo:
			info++
		case models.LevelError:
			errCount++
		case models.LevelDebug:
			debug++
		}
	}

	assert.Equal(t, sum.Info, info)
	assert.Equal(t, sum.Error, errCount)
	assert.Equal(t, sum.Debug, debug)
}

func TestLineGenerator_MalformedLinesNeverParse(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := baseOptions()
	opts.Count = 50
	opts.MalformedRatio = 1
	g := newFixedGenerator(t, opts, &out)

	sum, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(50), sum.Malformed)

	logger, _ := loggers.New("info")
	parser := parsers.NewLineParser(interners.NewMessageInterner(), logger)

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		rec := parser.Parse(line, time.Now())
		assert.False(t, rec.Valid, "malformed line should not match: %q", line)
	}
}

func TestLineGenerator_BoundedMessagePool(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := baseOptions()
	opts.Count = 500
	opts.PoolSize = 3
	g := newFixedGenerator(t, opts, &out)

	_, err := g.Run(context.Background())
	require.NoError(t, err)

	logger, _ := loggers.New("info")
	interner := interners.NewMessageInterner()
	parser := parsers.NewLineParser(interner, logger)

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		parser.Parse(line, time.Now())
	}

	// Three levels, three messages each.
	assert.LessOrEqual(t, interner.Len(), 9)
}

func TestLineGenerator_CountZeroStopsOnContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	opts := baseOptions()
	opts.Count = 0
	g := newFixedGenerator(t, opts, &out)

	sum, err := g.Run(ctx)
	require.Error(t, err)
	assert.Zero(t, sum.Lines)
}

func TestLineGenerator_BurstPhase(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := baseOptions()
	opts.BurstEvery = time.Minute
	opts.BurstFor = 10 * time.Second
	opts.BurstFactor = 5
	g := newFixedGenerator(t, opts, &out)

	assert.True(t, g.inBurst(0))
	assert.True(t, g.inBurst(9*time.Second))
	assert.False(t, g.inBurst(10*time.Second))
	assert.False(t, g.inBurst(59*time.Second))
	assert.True(t, g.inBurst(time.Minute))
	assert.True(t, g.inBurst(61*time.Second))
}

func TestNewLineGenerator_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "zero rate", mutate: func(o *Options) { o.Rate = 0 }},
		{name: "zero weights", mutate: func(o *Options) { o.InfoWeight, o.ErrorWeight, o.DebugWeight = 0, 0, 0 }},
		{name: "zero pool", mutate: func(o *Options) { o.PoolSize = 0 }},
		{name: "malformed ratio above one", mutate: func(o *Options) { o.MalformedRatio = 1.5 }},
		{name: "negative error code ratio", mutate: func(o *Options) { o.ErrorCodeRatio = -0.1 }},
		{name: "burst factor below one", mutate: func(o *Options) {
			o.BurstEvery = time.Minute
			o.BurstFor = 10 * time.Second
			o.BurstFactor = 0.5
		}},
		{name: "burst slice longer than cycle", mutate: func(o *Options) {
			o.BurstEvery = time.Minute
			o.BurstFor = 2 * time.Minute
			o.BurstFactor = 2
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			opts := baseOptions()
			tt.mutate(&opts)

			_, err := NewLineGenerator(opts, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}
