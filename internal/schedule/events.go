package schedule

import "context"

// EventKind identifies a slot lifecycle transition.
type EventKind string

const (
	EventConfirmed EventKind = "slot_confirmed"
	EventCompleted EventKind = "slot_completed"
	EventDeleted   EventKind = "slot_deleted"
)

// Event is emitted on slot lifecycle transitions for the analytics
// aggregator. Transport and aggregation live outside this package.
type Event struct {
	Kind            EventKind
	OwnerID         string
	SlotID          string
	Subject         string
	DurationMinutes int
}

// Hook receives slot lifecycle events. Implementations must not fail the
// owning operation; errors are logged by the caller and dropped.
type Hook interface {
	SlotEvent(ctx context.Context, ev Event)
}

// NopHook discards all events.
type NopHook struct{}

func (NopHook) SlotEvent(context.Context, Event) {}
