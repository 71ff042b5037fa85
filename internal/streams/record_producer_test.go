package streams

import (
	"context"
	"errors"
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

type errorReader struct {
	err error
}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, r.err
}

func newProducerFixture(t *testing.T, input string, capacity int) (*recordProducer, *BoundedQueue[models.Record], interners.Interner) {
	t.Helper()

	logger, err := loggers.New("info")
	require.NoError(t, err)

	interner := interners.NewMessageInterner()
	queue := NewBoundedQueue[models.Record](capacity)
	producer := &recordProducer{
		in:     strings.NewReader(input),
		parser: parsers.NewLineParser(interner, logger),
		queue:  queue,
		nowFn:  func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) },
		logger: logger,
	}
	return producer, queue, interner
}

func TestRecordProducer_Run_PublishesRecordsInInputOrder(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"[2025-07-01T10:00:00Z] INFO - IP:10.0.0.1 User login successful",
		"garbage line",
		"[2025-07-01T10:00:02Z] ERROR - IP:10.0.0.2 Error 500 - Disk quota exceeded",
	}, "\n") + "\n"

	producer, queue, interner := newProducerFixture(t, input, 16)

	require.NoError(t, producer.Run(context.Background()))

	var got []models.Record
	for rec := range queue.C() {
		got = append(got, rec)
	}
	require.Len(t, got, 3, "every line yields exactly one record")

	assert.True(t, got[0].Valid)
	assert.Equal(t, models.LevelInfo, got[0].Level)

	assert.False(t, got[1].Valid)
	raw, ok := interner.Resolve(got[1].Handle)
	require.True(t, ok)
	assert.Equal(t, "garbage line", raw)

	assert.True(t, got[2].Valid)
	assert.Equal(t, models.LevelError, got[2].Level)
	msg, ok := interner.Resolve(got[2].Handle)
	require.True(t, ok)
	assert.Equal(t, "Disk quota exceeded", msg)
}

func TestRecordProducer_Run_ClosesQueueOnEOF(t *testing.T) {
	t.Parallel()

	producer, queue, _ := newProducerFixture(t, "", 4)

	require.NoError(t, producer.Run(context.Background()))

	_, ok := <-queue.C()
	assert.False(t, ok, "queue closes as soon as input ends")
}

func TestRecordProducer_Run_StampsIngestTimeOnUnmatchedLines(t *testing.T) {
	t.Parallel()

	producer, queue, _ := newProducerFixture(t, "not a log line\n", 4)

	require.NoError(t, producer.Run(context.Background()))

	rec := <-queue.C()
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), rec.ArrivalTime)
}

func TestRecordProducer_Run_StopsOnCancellationUnderBackpressure(t *testing.T) {
	t.Parallel()

	producer, queue, _ := newProducerFixture(t, "line one\nline two\n", 1)

	// Fill the queue so the first publish has to block.
	require.NoError(t, queue.Publish(context.Background(), models.Record{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// The queue still closes so the consumer can drain what was accepted.
	rec, ok := <-queue.C()
	require.True(t, ok)
	assert.Equal(t, models.Record{}, rec)
	_, ok = <-queue.C()
	assert.False(t, ok)
}

func TestRecordProducer_Run_SurfacesReadErrors(t *testing.T) {
	t.Parallel()

	logger, err := loggers.New("info")
	require.NoError(t, err)

	interner := interners.NewMessageInterner()
	queue := NewBoundedQueue[models.Record](4)
	readErr := errors.New("stdin torn down")
	producer := &recordProducer{
		in:     &errorReader{err: readErr},
		parser: parsers.NewLineParser(interner, logger),
		queue:  queue,
		nowFn:  time.Now,
		logger: logger,
	}

	err = producer.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)

	_, ok := <-queue.C()
	assert.False(t, ok, "queue closes on read failure too")
}
