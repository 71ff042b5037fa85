package generators

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"logpulse/internal/models"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Options controls the shape and pacing of the synthetic stream.
type Options struct {
	Seed  int64   // rng seed; 0 seeds from the clock
	Rate  float64 // lines per second
	Count uint64  // total lines to emit; 0 runs until the context ends

	InfoWeight  int
	ErrorWeight int
	DebugWeight int

	PoolSize       int     // distinct messages kept per level
	ErrorCodeRatio float64 // share of ERROR lines carrying an "Error NNN - " prefix
	MalformedRatio float64 // share of lines violating the grammar

	// Burst episodes: for the first BurstFor of every BurstEvery cycle the
	// limit is Rate*BurstFactor. BurstEvery of zero disables episodes.
	BurstEvery  time.Duration
	BurstFor    time.Duration
	BurstFactor float64
}

// Summary reports what a run emitted.
type Summary struct {
	Lines     uint64
	Info      uint64
	Error     uint64
	Debug     uint64
	Malformed uint64
	Elapsed   time.Duration
}

// LineGenerator emits synthetic log lines in the monitor's input grammar.
type LineGenerator interface {
	// Run emits lines until Count is reached or ctx ends. The summary is
	// valid either way.
	Run(ctx context.Context) (Summary, error)
}

type lineGenerator struct {
	opts    Options
	out     io.Writer
	rng     *rand.Rand
	limiter *rate.Limiter
	bursty  bool

	infoPool  []string
	errorPool []string
	debugPool []string

	nowFn func() time.Time
}

var infoPhrases = []string{
	"User logged in",
	"Request completed",
	"Cache refreshed",
	"Session established",
	"Heartbeat ok",
	"Configuration reloaded",
}

var errorPhrases = []string{
	"Connection reset by peer",
	"Disk quota exceeded",
	"Timeout while reading upstream",
	"Permission denied",
	"Checksum mismatch",
}

var debugPhrases = []string{
	"Entering request handler",
	"Cache key computed",
	"Retrying with backoff",
	"Payload decoded",
}

var malformedTemplates = []string{
	"this line does not match anything",
	"[2025-07-01T10 truncated before the level",
	"INFO - IP:10.0.0.1 level without a timestamp",
	"<garbage %d>",
}

var errorCodes = []int{400, 401, 403, 404, 408, 409, 429, 500, 502, 503, 504}

func NewLineGenerator(opts Options, out io.Writer) (LineGenerator, error) {
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("rate must be positive, got %v", opts.Rate)
	}
	if opts.InfoWeight+opts.ErrorWeight+opts.DebugWeight <= 0 {
		return nil, fmt.Errorf("level weights must sum to a positive value")
	}
	if opts.PoolSize < 1 {
		return nil, fmt.Errorf("pool size must be at least 1, got %d", opts.PoolSize)
	}
	if opts.MalformedRatio < 0 || opts.MalformedRatio > 1 {
		return nil, fmt.Errorf("malformed ratio must be within [0, 1], got %v", opts.MalformedRatio)
	}
	if opts.ErrorCodeRatio < 0 || opts.ErrorCodeRatio > 1 {
		return nil, fmt.Errorf("error code ratio must be within [0, 1], got %v", opts.ErrorCodeRatio)
	}
	if opts.BurstEvery > 0 {
		if opts.BurstFactor < 1 {
			return nil, fmt.Errorf("burst factor must be at least 1, got %v", opts.BurstFactor)
		}
		if opts.BurstFor <= 0 || opts.BurstFor >= opts.BurstEvery {
			return nil, fmt.Errorf("burst duration must be within (0, burst interval), got %v", opts.BurstFor)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Burst of 1 keeps emission smooth; throughput spikes come from the
	// episode limit, not from the token bucket.
	return &lineGenerator{
		opts:      opts,
		out:       out,
		rng:       rand.New(rand.NewSource(seed)),
		limiter:   rate.NewLimiter(rate.Limit(opts.Rate), 1),
		infoPool:  buildPool(infoPhrases, opts.PoolSize),
		errorPool: buildPool(errorPhrases, opts.PoolSize),
		debugPool: buildPool(debugPhrases, opts.PoolSize),
		nowFn:     time.Now,
	}, nil
}

func (g *lineGenerator) Run(ctx context.Context) (Summary, error) {
	start := g.nowFn()
	var sum Summary

	for g.opts.Count == 0 || sum.Lines < g.opts.Count {
		if err := g.limiter.Wait(ctx); err != nil {
			sum.Elapsed = g.nowFn().Sub(start)
			return sum, err
		}
		g.adjustLimit(g.nowFn().Sub(start))

		line, level, malformed := g.nextLine()
		if _, err := fmt.Fprintln(g.out, line); err != nil {
			sum.Elapsed = g.nowFn().Sub(start)
			return sum, fmt.Errorf("write line: %w", err)
		}

		sum.Lines++
		switch {
		case malformed:
			sum.Malformed++
		case level == models.LevelInfo:
			sum.Info++
		case level == models.LevelError:
			sum.Error++
		case level == models.LevelDebug:
			sum.Debug++
		}
	}

	sum.Elapsed = g.nowFn().Sub(start)
	return sum, nil
}

// adjustLimit flips the limiter between the base and burst rates as the run
// moves through burst episodes.
func (g *lineGenerator) adjustLimit(elapsed time.Duration) {
	if g.opts.BurstEvery <= 0 {
		return
	}
	burst := g.inBurst(elapsed)
	if burst == g.bursty {
		return
	}
	g.bursty = burst
	if burst {
		g.limiter.SetLimit(rate.Limit(g.opts.Rate * g.opts.BurstFactor))
		return
	}
	g.limiter.SetLimit(rate.Limit(g.opts.Rate))
}

// inBurst reports whether elapsed falls in the burst slice of its cycle. The
// slice sits at the start of each cycle.
func (g *lineGenerator) inBurst(elapsed time.Duration) bool {
	return elapsed%g.opts.BurstEvery < g.opts.BurstFor
}

func (g *lineGenerator) nextLine() (string, models.Level, bool) {
	if g.rng.Float64() < g.opts.MalformedRatio {
		return g.malformedLine(), models.LevelNone, true
	}

	level := g.pickLevel()
	prefix := ""
	if level == models.LevelError && g.rng.Float64() < g.opts.ErrorCodeRatio {
		prefix = fmt.Sprintf("Error %d - ", errorCodes[g.rng.Intn(len(errorCodes))])
	}

	line := fmt.Sprintf("[%s] %s - IP:%s %s%s",
		g.nowFn().UTC().Format(timeLayout), level, g.ip(), prefix, g.message(level))
	return line, level, false
}

func (g *lineGenerator) malformedLine() string {
	tpl := malformedTemplates[g.rng.Intn(len(malformedTemplates))]
	if tpl == "<garbage %d>" {
		return fmt.Sprintf(tpl, g.rng.Intn(1000))
	}
	return tpl
}

func (g *lineGenerator) pickLevel() models.Level {
	n := g.rng.Intn(g.opts.InfoWeight + g.opts.ErrorWeight + g.opts.DebugWeight)
	switch {
	case n < g.opts.InfoWeight:
		return models.LevelInfo
	case n < g.opts.InfoWeight+g.opts.ErrorWeight:
		return models.LevelError
	default:
		return models.LevelDebug
	}
}

func (g *lineGenerator) message(level models.Level) string {
	switch level {
	case models.LevelError:
		return g.errorPool[g.rng.Intn(len(g.errorPool))]
	case models.LevelDebug:
		return g.debugPool[g.rng.Intn(len(g.debugPool))]
	default:
		return g.infoPool[g.rng.Intn(len(g.infoPool))]
	}
}

func (g *lineGenerator) ip() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rng.Intn(223)+1, g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(254)+1)
}

// buildPool sizes a phrase list to exactly size entries, deriving numbered
// variants once the base list runs out.
func buildPool(base []string, size int) []string {
	if size <= len(base) {
		return base[:size]
	}
	pool := make([]string, 0, size)
	pool = append(pool, base...)
	for i := len(base); i < size; i++ {
		pool = append(pool, fmt.Sprintf("%s (task %d)", base[i%len(base)], i))
	}
	return pool
}
