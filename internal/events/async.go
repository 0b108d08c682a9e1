package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors returned by AsyncEventEmitter.EmitEvent.
var (
	ErrEmitterStopped = errors.New("event emitter is stopped")
	ErrQueueFull      = errors.New("event queue is full")
)

// AsyncEmitterConfig holds configuration options for AsyncEventEmitter.
type AsyncEmitterConfig struct {
	// WorkerCount is the number of goroutines delivering events.
	// If zero or negative, defaults to 1.
	WorkerCount int

	// QueueSize is the number of events that may wait for delivery.
	// If zero or negative, defaults to 1.
	QueueSize int
}

// DefaultAsyncEmitterConfig returns an AsyncEmitterConfig with reasonable defaults.
func DefaultAsyncEmitterConfig() AsyncEmitterConfig {
	return AsyncEmitterConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// AsyncEventEmitter queues events and delivers them to the wrapped emitter
// from a pool of worker goroutines, so request handlers never wait on
// event handlers. Events still queued when Stop is called are delivered
// before Stop returns.
type AsyncEventEmitter struct {
	next   EventEmitter
	events chan queuedEvent
	config AsyncEmitterConfig
	logger *slog.Logger

	// mu guards stopped against concurrent EmitEvent and Stop.
	mu      sync.RWMutex
	stopped bool
	started bool
	wg      sync.WaitGroup

	errHandler func(event *CategoryEvent, err error)
}

// queuedEvent keeps the emitting request's context values (trace ID,
// request logger) without its cancellation.
type queuedEvent struct {
	ctx   context.Context
	event *CategoryEvent
}

// NewAsyncEventEmitter creates an AsyncEventEmitter delivering to next.
// Call Start before emitting and Stop during shutdown.
func NewAsyncEventEmitter(next EventEmitter, config AsyncEmitterConfig, logger *slog.Logger) *AsyncEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "async_event_emitter")

	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}

	return &AsyncEventEmitter{
		next:   next,
		events: make(chan queuedEvent, config.QueueSize),
		config: config,
		logger: logger,
		errHandler: func(event *CategoryEvent, err error) {
			logger.Error("event delivery failed",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err)
		},
	}
}

// SetErrorHandler replaces the function called when delivery fails.
// It must be called before Start.
func (e *AsyncEventEmitter) SetErrorHandler(handler func(event *CategoryEvent, err error)) {
	e.errHandler = handler
}

// Start launches the delivery workers. Calling Start more than once has no effect.
func (e *AsyncEventEmitter) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.stopped {
		return
	}
	e.started = true

	for i := 0; i < e.config.WorkerCount; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}

	e.logger.Info("event workers started",
		"worker_count", e.config.WorkerCount,
		"queue_size", e.config.QueueSize)
}

// EmitEvent queues event for delivery. It never blocks: if the queue is
// full it returns ErrQueueFull, and after Stop it returns ErrEmitterStopped.
func (e *AsyncEventEmitter) EmitEvent(ctx context.Context, event *CategoryEvent) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.stopped {
		return ErrEmitterStopped
	}

	select {
	case e.events <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(e.events))
	}
}

// Stop refuses new events, waits for queued events to be delivered and
// for the workers to exit. It is safe to call more than once.
func (e *AsyncEventEmitter) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.events)
	started := e.started
	e.mu.Unlock()

	if !started {
		// Deliver whatever was queued before Start was ever called.
		for queued := range e.events {
			e.deliver(queued)
		}
		return
	}

	e.wg.Wait()
	e.logger.Info("event workers stopped")
}

func (e *AsyncEventEmitter) worker(id int) {
	defer e.wg.Done()

	log := e.logger.With("worker_id", id)
	log.Debug("event worker started")

	for queued := range e.events {
		e.deliver(queued)
	}

	log.Debug("event worker exiting")
}

func (e *AsyncEventEmitter) deliver(queued queuedEvent) {
	defer func() {
		if r := recover(); r != nil {
			e.errHandler(queued.event, fmt.Errorf("event handler panicked: %v", r))
		}
	}()

	if err := e.next.EmitEvent(queued.ctx, queued.event); err != nil {
		e.errHandler(queued.event, err)
	}
}
