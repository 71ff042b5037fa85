package streams

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"logpulse/internal/models"
	"logpulse/internal/parsers"
	"logpulse/internal/shared/loggers"
)

// maxLineBytes tolerates pathological single-line inputs without aborting
// the whole stream.
const maxLineBytes = 1 << 20

//go:generate mockgen -source=record_producer.go -destination=./mocks/record_producer_mock.go -package=mocks
type RecordProducer interface {
	// Run reads lines until EOF or context cancellation, parsing each into a
	// Record and publishing it to the queue in input order. It always closes
	// the queue before returning, so the consumer can drain and finish.
	Run(ctx context.Context) error
}

type recordProducer struct {
	in     io.Reader
	parser parsers.LineParser
	queue  *BoundedQueue[models.Record]

	nowFn func() time.Time

	logger loggers.Logger
}

func NewRecordProducer(in io.Reader, parser parsers.LineParser, queue *BoundedQueue[models.Record], logger loggers.Logger) RecordProducer {
	return &recordProducer{
		in:     in,
		parser: parser,
		queue:  queue,
		nowFn:  time.Now,
		logger: logger,
	}
}

func (producer *recordProducer) Run(ctx context.Context) error {
	defer producer.queue.Close()

	scanner := bufio.NewScanner(producer.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines uint64
	for scanner.Scan() {
		receivedAt := producer.nowFn().UTC()
		rec := producer.parser.Parse(scanner.Text(), receivedAt)

		if err := producer.queue.Publish(ctx, rec); err != nil {
			// Cancelled mid-stream: the record never entered the queue, but
			// everything already accepted will still be consumed.
			producer.logger.Info().
				Uint64(loggers.FieldRecordCount, lines).
				Msg("input reader stopped by cancellation")
			return fmt.Errorf("publish record: %w", err)
		}
		lines++
		metricRecordsProducedTotal.WithLabelValues(streamRecords).Inc()
		metricQueueDepth.Set(float64(producer.queue.Len()))
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("input line exceeds %d bytes: %w", maxLineBytes, err)
		}
		return fmt.Errorf("read input: %w", err)
	}

	producer.logger.Info().
		Uint64(loggers.FieldRecordCount, lines).
		Msg("input reached end of stream")
	return nil
}
