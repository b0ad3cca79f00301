// Package planner wires the task store to the persistence adapter: it loads
// the initial sequence from a slot and saves the sequence back after every
// change.
package planner

import (
	"time"

	"github.com/Iron-Ham/planner/internal/event"
	"github.com/Iron-Ham/planner/internal/logging"
	"github.com/Iron-Ham/planner/internal/storage"
	"github.com/Iron-Ham/planner/internal/store"
	"github.com/Iron-Ham/planner/internal/task"
)

// ReloadSourceWatch marks reloads triggered by the slot watcher.
const ReloadSourceWatch = "watch"

// Persister is the part of storage.Adapter the planner needs.
type Persister interface {
	Load(key string) []task.Task
	Fetch(key string) ([]task.Task, error)
	Save(key string, tasks []task.Task)
}

var _ Persister = (*storage.Adapter)(nil)

// Planner is one open task list bound to a storage slot.
type Planner struct {
	key     string
	store   *store.Store
	bus     *event.Bus
	persist Persister
	logger  *logging.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	clock func() time.Time
	bus   *event.Bus
}

// WithClock sets the time source for new task ids.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithBus publishes store events on an existing bus instead of a private one.
func WithBus(bus *event.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// Open loads the slot named key and returns a planner whose store saves to
// the same slot after every mutation. Load failures leave the list empty.
func Open(persist Persister, key string, logger *logging.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = event.NewBus(logger)
	}

	p := &Planner{
		key:     key,
		bus:     o.bus,
		persist: persist,
		logger:  logger.WithComponent("planner").WithKey(key),
	}

	initial := persist.Load(key)
	var storeOpts []store.Option
	if o.clock != nil {
		storeOpts = append(storeOpts, store.WithClock(o.clock))
	}
	p.store = store.New(p.bus, initial, storeOpts...)

	p.bus.Subscribe(event.TypeTasksChanged, func(e event.Event) {
		changed, ok := e.(event.TasksChangedEvent)
		if !ok {
			return
		}
		p.persist.Save(p.key, changed.Tasks)
	})
	p.bus.SubscribeAll(func(e event.Event) {
		p.logger.Debug("task event", "type", e.EventType())
	})

	p.logger.Info("opened task list", "tasks", len(initial))
	return p
}

// Store returns the task store.
func (p *Planner) Store() *store.Store {
	return p.store
}

// Key returns the slot key.
func (p *Planner) Key() string {
	return p.key
}

// Bus returns the event bus the store publishes on.
func (p *Planner) Bus() *event.Bus {
	return p.bus
}

// Reload re-reads the slot and replaces the in-memory sequence when it
// differs. A slot that cannot be read leaves the sequence unchanged. It
// reports whether the sequence was replaced.
func (p *Planner) Reload() bool {
	tasks, err := p.persist.Fetch(p.key)
	if err != nil {
		p.logger.Warn("reload failed, keeping current tasks", "error", err)
		return false
	}
	if task.Equal(tasks, p.store.Tasks()) {
		return false
	}

	p.store.Replace(tasks, ReloadSourceWatch)
	p.logger.Info("reloaded task list", "tasks", len(tasks))
	return true
}

// Summary returns the completed and total task counts.
func (p *Planner) Summary() (completed, total int) {
	return p.store.CompletedCount(), p.store.Len()
}
