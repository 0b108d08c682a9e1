package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type identifies what happened to a category.
type Type string

// Category lifecycle event types.
const (
	CategoryCreated Type = "category.created"
	CategoryUpdated Type = "category.updated"
	CategoryDeleted Type = "category.deleted"
)

// CategoryEvent records a completed mutation of a category.
type CategoryEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type Type `json:"type"`

	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`

	// OccurredAt is the timestamp when the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCategoryEvent creates a CategoryEvent stamped with a fresh ID and the current time.
func NewCategoryEvent(eventType Type, categoryID uuid.UUID, categoryName string) *CategoryEvent {
	return &CategoryEvent{
		ID:           uuid.New(),
		Type:         eventType,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		OccurredAt:   time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *CategoryEvent) error
}

// EventHandlerFunc adapts an ordinary function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *CategoryEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *CategoryEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *CategoryEvent) error
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NoopEmitter) EmitEvent(context.Context, *CategoryEvent) error { return nil }
