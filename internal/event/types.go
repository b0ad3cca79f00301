// Package event defines event types for decoupling components in the planner.
// These events let the task store announce mutations without knowing who
// persists or renders them.
package event

import (
	"time"

	"github.com/Iron-Ham/planner/internal/task"
)

// Event type identifiers.
const (
	TypeTaskAdded     = "task.added"
	TypeTaskToggled   = "task.toggled"
	TypeTaskDeleted   = "task.deleted"
	TypeTasksChanged  = "tasks.changed"
	TypeTasksReloaded = "tasks.reloaded"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "task.added", "tasks.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Task Mutation Events
// -----------------------------------------------------------------------------

// TaskAddedEvent is emitted after a task is appended to the sequence.
type TaskAddedEvent struct {
	baseEvent
	Task task.Task
}

// NewTaskAddedEvent creates a TaskAddedEvent.
func NewTaskAddedEvent(t task.Task) TaskAddedEvent {
	return TaskAddedEvent{
		baseEvent: newBaseEvent(TypeTaskAdded),
		Task:      t,
	}
}

// TaskToggledEvent is emitted after a task's completion flag flips.
// Task holds the state after the flip.
type TaskToggledEvent struct {
	baseEvent
	Task task.Task
}

// NewTaskToggledEvent creates a TaskToggledEvent.
func NewTaskToggledEvent(t task.Task) TaskToggledEvent {
	return TaskToggledEvent{
		baseEvent: newBaseEvent(TypeTaskToggled),
		Task:      t,
	}
}

// TaskDeletedEvent is emitted after a task is removed.
type TaskDeletedEvent struct {
	baseEvent
	Task     task.Task
	Position int // 1-based position the task occupied
}

// NewTaskDeletedEvent creates a TaskDeletedEvent.
func NewTaskDeletedEvent(t task.Task, position int) TaskDeletedEvent {
	return TaskDeletedEvent{
		baseEvent: newBaseEvent(TypeTaskDeleted),
		Task:      t,
		Position:  position,
	}
}

// -----------------------------------------------------------------------------
// Sequence Events
// -----------------------------------------------------------------------------

// TasksChangedEvent carries the whole sequence after a mutation. It is the
// event the persistence layer listens to.
type TasksChangedEvent struct {
	baseEvent
	Tasks []task.Task
}

// NewTasksChangedEvent creates a TasksChangedEvent. The slice is copied.
func NewTasksChangedEvent(tasks []task.Task) TasksChangedEvent {
	return TasksChangedEvent{
		baseEvent: newBaseEvent(TypeTasksChanged),
		Tasks:     task.Clone(tasks),
	}
}

// TasksReloadedEvent carries the sequence after it was replaced wholesale
// from storage. Persistence must not write it back.
type TasksReloadedEvent struct {
	baseEvent
	Tasks  []task.Task
	Source string // what triggered the reload, e.g. "watch"
}

// NewTasksReloadedEvent creates a TasksReloadedEvent. The slice is copied.
func NewTasksReloadedEvent(tasks []task.Task, source string) TasksReloadedEvent {
	return TasksReloadedEvent{
		baseEvent: newBaseEvent(TypeTasksReloaded),
		Tasks:     task.Clone(tasks),
		Source:    source,
	}
}
