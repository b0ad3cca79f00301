package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/logging"
	"github.com/Iron-Ham/planner/internal/task"
)

// Adapter mirrors task sequences to slots on a Backend.
//
// Load and Save never return errors: a slot that cannot be read loads as an
// empty sequence and a failed write leaves the caller's state as it was.
// Every failure is logged.
type Adapter struct {
	backend Backend
	logger  *logging.Logger
}

// NewAdapter creates an adapter over backend. A nil logger discards output.
func NewAdapter(backend Backend, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Adapter{
		backend: backend,
		logger:  logger.WithComponent("storage"),
	}
}

// Load reads the slot named key. Missing, unreadable or corrupt slots yield
// an empty sequence.
func (a *Adapter) Load(key string) []task.Task {
	tasks, err := a.Fetch(key)
	if err != nil {
		log := a.logger.WithKey(key)
		if errors.Is(err, errors.ErrSlotNotFound) {
			log.Debug("slot not found, starting empty", "path", a.backend.Path(key))
		} else {
			log.Error("failed to load slot, starting empty", "error", err)
		}
		return []task.Task{}
	}
	return tasks
}

// Fetch reads and decodes the slot, returning the error that Load swallows.
// Callers that must keep their current state on failure use it directly.
func (a *Adapter) Fetch(key string) ([]task.Task, error) {
	data, err := a.backend.Read(key)
	if err != nil {
		return nil, err
	}

	tasks, dropped, err := Decode(data)
	if err != nil {
		return nil, errors.NewStorageError("decode slot", err).WithKey(key).WithPath(a.backend.Path(key))
	}
	if dropped > 0 {
		a.logger.WithKey(key).Warn("dropped invalid entries from slot", "dropped", dropped, "kept", len(tasks))
	}
	return tasks, nil
}

// Save writes tasks to the slot named key. Failures are logged.
func (a *Adapter) Save(key string, tasks []task.Task) {
	if err := a.Store(key, tasks); err != nil {
		a.logger.WithKey(key).Error("failed to save slot", "error", err, "tasks", len(tasks))
		return
	}
	a.logger.WithKey(key).Debug("saved slot", "tasks", len(tasks))
}

// Store encodes and writes tasks, returning the error that Save swallows.
func (a *Adapter) Store(key string, tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return errors.NewStorageError("encode slot", err).WithKey(key)
	}
	return a.backend.Write(key, data)
}

// Encode serializes tasks as an indented JSON array. A nil sequence encodes
// as [].
func Encode(tasks []task.Task) ([]byte, error) {
	data, err := json.MarshalIndent(task.Clone(tasks), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses slot contents. Entries that cannot be decoded, have blank
// text or repeat an earlier id are skipped and counted in dropped. Anything
// other than a JSON array (or null) is ErrSlotCorrupted.
func Decode(data []byte) (tasks []task.Task, dropped int, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []task.Task{}, 0, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errors.ErrSlotCorrupted, err)
	}

	tasks = make([]task.Task, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, entry := range raw {
		var t task.Task
		if err := json.Unmarshal(entry, &t); err != nil {
			dropped++
			continue
		}
		text, ok := task.CleanText(t.Text)
		if !ok || seen[t.ID] {
			dropped++
			continue
		}
		t.Text = text
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, dropped, nil
}
