// Package event provides a synchronous pub-sub bus connecting the task store
// to whatever reacts to its mutations.
//
// The store publishes one event per effective mutation ([TaskAddedEvent],
// [TaskToggledEvent], [TaskDeletedEvent]) followed by a [TasksChangedEvent]
// carrying a copy of the whole sequence. The planner subscribes the
// persistence adapter to "tasks.changed", which gives the save-on-change hook.
// A [TasksReloadedEvent] is published when the sequence is replaced from
// storage; nothing writes it back.
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, and a panicking handler does not stop delivery to the
// others.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//
//	bus.Subscribe(event.TypeTasksChanged, func(e event.Event) {
//	    changed := e.(event.TasksChangedEvent)
//	    adapter.Save("tasks", changed.Tasks)
//	})
//
//	bus.SubscribeAll(func(e event.Event) {
//	    logger.Debug("event", "type", e.EventType())
//	})
package event
