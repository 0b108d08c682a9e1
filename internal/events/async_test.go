package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingEmitter holds every delivery until release is closed.
type blockingEmitter struct {
	release chan struct{}
	mu      sync.Mutex
	got     []*CategoryEvent
}

func (b *blockingEmitter) EmitEvent(_ context.Context, event *CategoryEvent) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, event)
	return nil
}

func (b *blockingEmitter) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.got)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAsyncEventEmitter_DeliversAllBeforeStop(t *testing.T) {
	t.Parallel()

	inner := NewInMemoryEventEmitter(discardLogger())
	handler := &MockEventHandler{}
	inner.RegisterHandler(handler)

	emitter := NewAsyncEventEmitter(inner, AsyncEmitterConfig{WorkerCount: 3, QueueSize: 50}, discardLogger())
	emitter.Start()

	for i := 0; i < 20; i++ {
		require.NoError(t, emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryCreated, uuid.New(), "Tech")))
	}
	emitter.Stop()

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, 20, handler.HandledCount)
}

func TestAsyncEventEmitter_QueueFull(t *testing.T) {
	t.Parallel()

	inner := &blockingEmitter{release: make(chan struct{})}
	emitter := NewAsyncEventEmitter(inner, AsyncEmitterConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	// Without workers running, the single slot fills immediately.
	require.NoError(t, emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryCreated, uuid.New(), "a")))
	err := emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryCreated, uuid.New(), "b"))
	assert.ErrorIs(t, err, ErrQueueFull)

	close(inner.release)
	emitter.Start()
	emitter.Stop()
	assert.Equal(t, 1, inner.count())
}

func TestAsyncEventEmitter_StopWithoutStartDrains(t *testing.T) {
	t.Parallel()

	inner := &blockingEmitter{release: make(chan struct{})}
	close(inner.release)
	emitter := NewAsyncEventEmitter(inner, AsyncEmitterConfig{WorkerCount: 1, QueueSize: 4}, discardLogger())

	require.NoError(t, emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryDeleted, uuid.New(), "a")))
	emitter.Stop()

	assert.Equal(t, 1, inner.count())
}

func TestAsyncEventEmitter_AfterStop(t *testing.T) {
	t.Parallel()

	emitter := NewAsyncEventEmitter(NoopEmitter{}, DefaultAsyncEmitterConfig(), discardLogger())
	emitter.Start()
	emitter.Stop()
	emitter.Stop()
	emitter.Start()

	err := emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryUpdated, uuid.New(), "a"))
	assert.ErrorIs(t, err, ErrEmitterStopped)
}

func TestAsyncEventEmitter_ErrorHandler(t *testing.T) {
	t.Parallel()

	boom := errors.New("handler down")
	inner := NewInMemoryEventEmitter(discardLogger())
	inner.RegisterHandler(EventHandlerFunc(func(context.Context, *CategoryEvent) error { return boom }))
	inner.RegisterHandler(EventHandlerFunc(func(context.Context, *CategoryEvent) error { panic("bad handler") }))

	var mu sync.Mutex
	var failures []error
	emitter := NewAsyncEventEmitter(inner, AsyncEmitterConfig{WorkerCount: 1, QueueSize: 2}, discardLogger())
	emitter.SetErrorHandler(func(_ *CategoryEvent, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	})
	emitter.Start()

	require.NoError(t, emitter.EmitEvent(context.Background(), NewCategoryEvent(CategoryCreated, uuid.New(), "a")))
	emitter.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), "panicked")
}

func TestAsyncEventEmitter_KeepsContextValues(t *testing.T) {
	t.Parallel()

	type key struct{}
	var got interface{}
	inner := NewInMemoryEventEmitter(discardLogger())
	inner.RegisterHandler(EventHandlerFunc(func(ctx context.Context, _ *CategoryEvent) error {
		got = ctx.Value(key{})
		return ctx.Err()
	}))

	emitter := NewAsyncEventEmitter(inner, AsyncEmitterConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "trace-1"))
	require.NoError(t, emitter.EmitEvent(ctx, NewCategoryEvent(CategoryCreated, uuid.New(), "a")))
	cancel()

	emitter.Start()
	emitter.Stop()

	assert.Equal(t, "trace-1", got)
}
