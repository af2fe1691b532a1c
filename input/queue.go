package input

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrQueueClosed is returned when posting to a closed queue.
var ErrQueueClosed = errors.New("input: queue closed")

// QueueConfig configures an event queue.
type QueueConfig struct {
	// BufferSize is the channel capacity. Post blocks once it is full.
	// Default: 256
	BufferSize int
}

// DefaultQueueConfig returns sensible defaults.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{BufferSize: 256}
}

// Queue serializes events posted from any goroutine onto the goroutine
// running Run, which emits them into a Source one at a time and in arrival
// order.
type Queue struct {
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
	delivered atomic.Uint64
}

// NewQueue creates a queue with the given configuration.
func NewQueue(config QueueConfig) *Queue {
	size := config.BufferSize
	if size < 1 {
		size = DefaultQueueConfig().BufferSize
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// Post enqueues ev. It blocks while the buffer is full and fails once the
// queue is closed or ctx is done. A Post racing with Close may succeed
// without its event being delivered.
func (q *Queue) Post(ctx context.Context, ev Event) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.ch <- ev:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and wakes producers blocked in Post. Events
// already queued are still delivered by Run. Close never blocks.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

// Delivered returns the number of events emitted so far.
func (q *Queue) Delivered() uint64 {
	return q.delivered.Load()
}

// Run emits queued events into src until the queue is closed and drained,
// or ctx is done. Each event is handled to completion before the next one
// is taken off the queue.
func (q *Queue) Run(ctx context.Context, src *Source) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-q.ch:
			q.emit(src, ev)
		case <-q.done:
			return q.drain(ctx, src)
		}
	}
}

func (q *Queue) drain(ctx context.Context, src *Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case ev := <-q.ch:
			q.emit(src, ev)
		default:
			return nil
		}
	}
}

func (q *Queue) emit(src *Source, ev Event) {
	src.Emit(ev)
	q.delivered.Add(1)
}
