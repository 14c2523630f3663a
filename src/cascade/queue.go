package cascade

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize   = 64
	DefaultEmitTimeout = 10 * time.Second
)

// Queue decouples sync runs from the matcher's availability: Emit only enqueues,
// and a single worker delivers events to the sink in order.
type Queue struct {
	sink    Emitter
	events  chan TransactionsImported
	timeout time.Duration
	logger  *zap.Logger
	onError func(TransactionsImported, error)

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

type QueueOption func(*Queue)

// WithErrorHook is called for every event the sink failed to deliver.
func WithErrorHook(fn func(TransactionsImported, error)) QueueOption {
	return func(q *Queue) { q.onError = fn }
}

func NewQueue(sink Emitter, size int, timeout time.Duration, logger *zap.Logger, opts ...QueueOption) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultEmitTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		sink:    sink,
		events:  make(chan TransactionsImported, size),
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Emit enqueues the event without blocking.
func (q *Queue) Emit(_ context.Context, event TransactionsImported) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return &CascadeError{Sink: "queue", EventID: event.EventID, Err: ErrQueueClosed}
	}
	select {
	case q.events <- event:
		return nil
	default:
		return &CascadeError{Sink: "queue", EventID: event.EventID, Err: ErrQueueFull}
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for event := range q.events {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.sink.Emit(ctx, event)
		cancel()

		if err != nil {
			q.logger.Warn("auto-match trigger failed",
				zap.String("event_id", event.EventID),
				zap.String("run_id", event.RunID),
				zap.Error(err))
			if q.onError != nil {
				q.onError(event, err)
			}
			continue
		}
		q.logger.Info("auto-match trigger delivered",
			zap.String("event_id", event.EventID),
			zap.String("run_id", event.RunID),
			zap.Int("count", event.Count))
	}
}

// Close stops accepting events and waits until queued ones are delivered or ctx ends.
func (q *Queue) Close(ctx context.Context) error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.events)
		q.mu.Unlock()
	})
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
