package streams

import (
	"context"
	"sync"
)

// BoundedQueue is a FIFO channel with an explicit capacity bound between the
// producer and the consumer. When the consumer lags, Publish blocks
// (backpressure) instead of dropping: memory stays bounded by capacity and
// every accepted record is eventually processed.
//
// Single-producer discipline: the producer is the only publisher and the only
// closer, and must call Close only after its final Publish.
type BoundedQueue[T any] struct {
	ch        chan T
	closeOnce sync.Once
}

const minQueueCapacity = 1

// NewBoundedQueue creates a queue holding at most capacity elements.
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity < minQueueCapacity {
		capacity = minQueueCapacity
	}
	return &BoundedQueue[T]{ch: make(chan T, capacity)}
}

// Publish enqueues msg, blocking while the queue is full. It returns the
// context error if ctx is done before space frees up.
func (queue *BoundedQueue[T]) Publish(ctx context.Context, msg T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case queue.ch <- msg:
		return nil
	}
}

// C exposes the receive side. After Close the channel drains any buffered
// elements, then reports closed.
func (queue *BoundedQueue[T]) C() <-chan T {
	return queue.ch
}

// Close signals end-of-input. Idempotent.
func (queue *BoundedQueue[T]) Close() {
	queue.closeOnce.Do(func() { close(queue.ch) })
}

// Len returns the number of buffered elements.
func (queue *BoundedQueue[T]) Len() int { return len(queue.ch) }

// Cap returns the capacity bound.
func (queue *BoundedQueue[T]) Cap() int { return cap(queue.ch) }
