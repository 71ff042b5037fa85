package parsers

import (
	"regexp"
	"time"

	"logpulse/internal/interners"
	"logpulse/internal/models"
	"logpulse/internal/shared/loggers"
)

// lineRegex is the log line grammar:
//
//	[2025-07-01T10:00:00Z] ERROR - IP:10.0.0.7 Error 504 - Upstream timed out
//
// The "Error NNN - " prefix is optional and stripped before interning so the
// same message groups together across error numbers. The IP token is required
// by the grammar but carries no aggregate.
var lineRegex = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z)\]\s+(INFO|ERROR|DEBUG)\s+-\s+IP:(?:\S+)\s+(?:Error \d+ -\s+)?(.*)$`)

const (
	timestampLayout = "2006-01-02T15:04:05Z"

	submatchTimestamp = 1
	submatchLevel     = 2
	submatchMessage   = 3
)

//go:generate mockgen -source=line_parser.go -destination=./mocks/line_parser_mock.go -package=mocks
type LineParser interface {
	// Parse turns one raw input line into a Record. It never fails: a line
	// that does not match the grammar yields an invalid Record whose handle
	// interns the whole raw line, so nothing is dropped and the original
	// text stays inspectable.
	Parse(line string, receivedAt time.Time) models.Record
}

type lineParser struct {
	interner interners.Interner
	logger   loggers.Logger
}

func NewLineParser(interner interners.Interner, logger loggers.Logger) LineParser {
	return &lineParser{
		interner: interner,
		logger:   logger,
	}
}

func (p *lineParser) Parse(line string, receivedAt time.Time) models.Record {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		metricLinesParsedTotal.WithLabelValues(outcomeUnmatched).Inc()
		p.logger.Debug().
			Str(loggers.FieldLine, line).
			Msg("line did not match log grammar")

		return models.Record{
			Handle:      p.interner.Intern(line),
			ArrivalTime: receivedAt,
			Level:       models.LevelNone,
			Valid:       false,
		}
	}

	outcome := outcomeMatched
	arrivalTime, err := time.Parse(timestampLayout, m[submatchTimestamp])
	if err != nil {
		// Shape matched but the value is not a real instant (e.g. month 13).
		// Fall back to ingestion time; the record stays valid.
		arrivalTime = receivedAt
		outcome = outcomeTimeFallback
	}
	metricLinesParsedTotal.WithLabelValues(outcome).Inc()

	return models.Record{
		Handle:      p.interner.Intern(m[submatchMessage]),
		ArrivalTime: arrivalTime,
		Level:       models.ParseLevel(m[submatchLevel]),
		Valid:       true,
	}
}
