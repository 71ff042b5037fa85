package models

import "time"

// Handle is the stable identity of one distinct message text, issued by the
// interner. Identical text always maps to the same Handle and a Handle is
// never reused for different text while the process runs.
type Handle uint64

// Level is the severity extracted from a matched log line.
type Level uint8

const (
	LevelNone Level = iota
	LevelInfo
	LevelError
	LevelDebug
)

// String returns the wire form of the level as it appears in log lines.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "NONE"
	}
}

// ParseLevel converts the captured level token to a Level.
// Unrecognized tokens map to LevelNone.
func ParseLevel(s string) Level {
	switch s {
	case "INFO":
		return LevelInfo
	case "ERROR":
		return LevelError
	case "DEBUG":
		return LevelDebug
	default:
		return LevelNone
	}
}

// Record is the parsed form of one input line, produced by the parser for
// every line (valid or not) and consumed exactly once by the aggregator.
//
// ArrivalTime is the timestamp carried by the line when it parses, otherwise
// the time the reader received the line. Valid=false marks a line that did
// not match the log grammar ("no match"); such records still count toward
// traffic volume but never resolve to a meaningful message.
type Record struct {
	Handle      Handle
	ArrivalTime time.Time
	Level       Level
	Valid       bool
}
