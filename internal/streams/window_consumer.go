package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"logpulse/internal/aggregators"
	"logpulse/internal/models"
	"logpulse/internal/shared/loggers"
	"logpulse/internal/shared/metrics"
	"logpulse/internal/shared/svcerrors"
)

//go:generate mockgen -source=window_consumer.go -destination=./mocks/window_consumer_mock.go -package=mocks
type WindowConsumer interface {
	Start(ctx context.Context)
	Stop()
	// Done is closed once the worker has drained the queue and finalized,
	// or was forced out. Shutdown waits on this before tearing down readers.
	Done() <-chan struct{}
}

type windowConsumer struct {
	queue      *BoundedQueue[models.Record]
	aggregator aggregators.WindowAggregator
	tickEvery  time.Duration

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}

	logger loggers.Logger
}

func NewWindowConsumer(queue *BoundedQueue[models.Record], aggregator aggregators.WindowAggregator, tickEvery time.Duration, logger loggers.Logger) WindowConsumer {
	return &windowConsumer{
		queue:      queue,
		aggregator: aggregator,
		tickEvery:  tickEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		logger:     logger,
	}
}

// Start spawns the single worker goroutine. One lane only: sealing and
// resizing decisions depend on strict record order, so the aggregation side
// must never fan out.
func (consumer *windowConsumer) Start(ctx context.Context) {
	consumer.wg.Add(1)
	go func() {
		defer consumer.wg.Done()

		consumer.runWorker(ctx)
	}()
}

// Stop forces the worker out without draining and waits for it. The graceful
// path is closing the queue: the worker then drains fully, finalizes the open
// window, and exits on its own.
func (consumer *windowConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *windowConsumer) Done() <-chan struct{} {
	return consumer.doneCh
}

func (consumer *windowConsumer) runWorker(ctx context.Context) {
	defer close(consumer.doneCh)

	ctx = consumer.logger.WithContext(ctx)

	ticker := time.NewTicker(consumer.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case rec, ok := <-consumer.queue.C():
			if !ok {
				// End of input: everything accepted has been consumed.
				consumer.finalize(ctx)
				return
			}
			consumer.consume(ctx, rec)
			metricQueueDepth.Set(float64(consumer.queue.Len()))
		case <-ticker.C:
			// Refresh the published snapshot between seals so readers see
			// rate movement inside long windows.
			consumer.publish(ctx)
		}
	}
}

func (consumer *windowConsumer) consume(ctx context.Context, rec models.Record) {
	defer consumer.recoverWorkerPanic(ctx)

	consumer.aggregator.Ingest(rec)
	metricRecordsConsumedTotal.WithLabelValues(streamRecords, metrics.ValueNoError).Inc()
}

func (consumer *windowConsumer) publish(ctx context.Context) {
	defer consumer.recoverWorkerPanic(ctx)

	consumer.aggregator.PublishSnapshot()
}

func (consumer *windowConsumer) finalize(ctx context.Context) {
	defer consumer.recoverWorkerPanic(ctx)

	consumer.aggregator.Finalize()
	loggers.Ctx(ctx).Info().Msg("consumer drained and finalized")
}

// recoverWorkerPanic keeps a panic in aggregation code from crashing the
// worker goroutine.
func (consumer *windowConsumer) recoverWorkerPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}

	loggers.Ctx(ctx).Error().
		Bytes(loggers.FieldErrorStack, debug.Stack()).
		Msg("consumer panic recovered")

	// Convert panic value to error
	var panicErr error
	if err, ok := r.(error); ok {
		panicErr = err
	} else {
		panicErr = fmt.Errorf("%v", r)
	}

	svcErr := svcerrors.NewInternalErrorPanic(panicErr)
	metricRecordsConsumedTotal.WithLabelValues(streamRecords, svcErr.Code).Inc()
}
