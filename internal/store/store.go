// Package store holds the ordered task sequence for a session and publishes
// an event for every change to it.
package store

import (
	"time"

	"github.com/Iron-Ham/planner/internal/event"
	"github.com/Iron-Ham/planner/internal/task"
)

// Store owns the task sequence. Insertion order is display order.
//
// Store is not safe for concurrent use. Callers serialize access; the TUI
// does so by running every mutation inside its update loop.
type Store struct {
	tasks []task.Task
	bus   *event.Bus
	clock func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for new task ids.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New creates a store seeded with initial. The slice is copied. Events are
// published on bus; a nil bus disables publishing.
func New(bus *event.Bus, initial []task.Task, opts ...Option) *Store {
	s := &Store{
		tasks: task.Clone(initial),
		bus:   bus,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new pending task. Text is trimmed; when nothing remains the
// sequence is left untouched and ok is false.
func (s *Store) Add(text string) (added task.Task, ok bool) {
	text, ok = task.CleanText(text)
	if !ok {
		return task.Task{}, false
	}

	added = task.Task{ID: s.nextID(), Text: text}
	s.tasks = append(s.tasks, added)

	s.publish(event.NewTaskAddedEvent(added))
	s.publishChanged()
	return added, true
}

// nextID returns the current time in milliseconds, or one past the largest
// existing id when the clock has not moved beyond it.
func (s *Store) nextID() int64 {
	id := s.clock().UnixMilli()
	if highest := task.MaxID(s.tasks); id <= highest {
		id = highest + 1
	}
	return id
}

// Toggle flips the completion flag of the task with the given id and returns
// its new state. Unknown ids are a no-op.
func (s *Store) Toggle(id int64) (task.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}

	s.tasks[i] = s.tasks[i].Toggled()
	toggled := s.tasks[i]

	s.publish(event.NewTaskToggledEvent(toggled))
	s.publishChanged()
	return toggled, true
}

// Delete removes the task with the given id and returns it. Unknown ids are
// a no-op.
func (s *Store) Delete(id int64) (task.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	s.publish(event.NewTaskDeletedEvent(removed, i+1))
	s.publishChanged()
	return removed, true
}

// Replace swaps the whole sequence, typically after the storage slot was
// changed by another process. It publishes a TasksReloadedEvent rather than
// a TasksChangedEvent so the new state is not written straight back.
func (s *Store) Replace(tasks []task.Task, source string) {
	s.tasks = task.Clone(tasks)
	s.publish(event.NewTasksReloadedEvent(s.tasks, source))
}

// CompletedCount returns the number of completed tasks.
func (s *Store) CompletedCount() int {
	return task.CompletedCount(s.tasks)
}

// Tasks returns a copy of the sequence.
func (s *Store) Tasks() []task.Task {
	return task.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Find returns the task with the given id and its 1-based position.
func (s *Store) Find(id int64) (task.Task, int, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, 0, false
	}
	return s.tasks[i], i + 1, true
}

// At returns the task at a 1-based display position.
func (s *Store) At(position int) (task.Task, bool) {
	if position < 1 || position > len(s.tasks) {
		return task.Task{}, false
	}
	return s.tasks[position-1], true
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) publish(e event.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func (s *Store) publishChanged() {
	s.publish(event.NewTasksChangedEvent(s.tasks))
}
