package planner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/planner/internal/event"
	"github.com/Iron-Ham/planner/internal/logging"
	"github.com/Iron-Ham/planner/internal/storage"
	"github.com/Iron-Ham/planner/internal/task"
)

func newAdapter(t *testing.T) (*storage.Adapter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return storage.NewAdapter(storage.NewFileBackend(fs, "/data"), nil), fs
}

func clockAt(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestOpen_EmptySlot(t *testing.T) {
	adapter, _ := newAdapter(t)
	p := Open(adapter, storage.DefaultKey, nil)

	if p.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Store().Len())
	}
	if p.Key() != storage.DefaultKey {
		t.Errorf("Key() = %q", p.Key())
	}
	if p.Bus() == nil {
		t.Error("Bus() should not be nil")
	}
}

func TestOpen_LoadsExistingSlot(t *testing.T) {
	adapter, _ := newAdapter(t)
	saved := []task.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b", Completed: true}}
	adapter.Save("work", saved)

	p := Open(adapter, "work", nil)

	if !task.Equal(p.Store().Tasks(), saved) {
		t.Errorf("Tasks() = %v, want %v", p.Store().Tasks(), saved)
	}
	if completed, total := p.Summary(); completed != 1 || total != 2 {
		t.Errorf("Summary() = %d, %d; want 1, 2", completed, total)
	}
}

func TestMutationsArePersisted(t *testing.T) {
	adapter, _ := newAdapter(t)
	p := Open(adapter, storage.DefaultKey, nil, WithClock(clockAt(1000)))

	added, ok := p.Store().Add("Buy milk")
	if !ok {
		t.Fatal("Add failed")
	}
	assertPersisted(t, adapter, p)

	p.Store().Add("Walk the dog")
	p.Store().Toggle(added.ID)
	assertPersisted(t, adapter, p)

	p.Store().Delete(added.ID)
	assertPersisted(t, adapter, p)

	// A second session sees the same list.
	reopened := Open(adapter, storage.DefaultKey, nil)
	if !task.Equal(reopened.Store().Tasks(), p.Store().Tasks()) {
		t.Errorf("reopened = %v, want %v", reopened.Store().Tasks(), p.Store().Tasks())
	}
}

func assertPersisted(t *testing.T, adapter *storage.Adapter, p *Planner) {
	t.Helper()
	if got := adapter.Load(p.Key()); !task.Equal(got, p.Store().Tasks()) {
		t.Errorf("slot = %v, store = %v", got, p.Store().Tasks())
	}
}

func TestNoOpsDoNotWrite(t *testing.T) {
	adapter, fs := newAdapter(t)
	p := Open(adapter, storage.DefaultKey, nil)

	p.Store().Add("   ")
	p.Store().Toggle(42)
	p.Store().Delete(42)

	if exists, _ := afero.Exists(fs, "/data/tasks.json"); exists {
		t.Error("no-op mutations should not create the slot")
	}
}

func TestOpenDoesNotWrite(t *testing.T) {
	adapter, fs := newAdapter(t)
	_ = afero.WriteFile(fs, "/data/tasks.json", []byte("not json"), 0o644)

	p := Open(adapter, storage.DefaultKey, nil)
	if p.Store().Len() != 0 {
		t.Errorf("corrupt slot should open empty, got %d tasks", p.Store().Len())
	}

	data, _ := afero.ReadFile(fs, "/data/tasks.json")
	if string(data) != "not json" {
		t.Error("opening must not overwrite the slot")
	}
}

func TestReload(t *testing.T) {
	adapter, fs := newAdapter(t)
	p := Open(adapter, storage.DefaultKey, nil)
	p.Store().Add("mine")

	var reloaded []event.TasksReloadedEvent
	p.Bus().Subscribe(event.TypeTasksReloaded, func(e event.Event) {
		reloaded = append(reloaded, e.(event.TasksReloadedEvent))
	})

	if p.Reload() {
		t.Error("Reload with unchanged slot should report false")
	}

	// Another process writes the slot.
	external := []task.Task{{ID: 5, Text: "theirs", Completed: true}}
	other := storage.NewAdapter(storage.NewFileBackend(fs, "/data"), nil)
	other.Save(storage.DefaultKey, external)

	if !p.Reload() {
		t.Fatal("Reload should replace the sequence")
	}
	if !task.Equal(p.Store().Tasks(), external) {
		t.Errorf("Tasks() = %v, want %v", p.Store().Tasks(), external)
	}
	if len(reloaded) != 1 || reloaded[0].Source != ReloadSourceWatch {
		t.Errorf("reload events = %v", reloaded)
	}

	// The reload itself is not written back.
	data, _ := afero.ReadFile(fs, "/data/tasks.json")
	if got, _, _ := storage.Decode(data); !task.Equal(got, external) {
		t.Errorf("slot changed after reload: %s", data)
	}
}

func TestReload_FailureKeepsState(t *testing.T) {
	adapter, fs := newAdapter(t)
	var buf bytes.Buffer
	p := Open(adapter, storage.DefaultKey, logging.NewWriterLogger(&buf, logging.LevelDebug))
	p.Store().Add("keep me")

	_ = afero.WriteFile(fs, "/data/tasks.json", []byte("{broken"), 0o644)

	if p.Reload() {
		t.Error("Reload of a corrupt slot should report false")
	}
	if p.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Store().Len())
	}
	if !strings.Contains(buf.String(), "reload failed") {
		t.Errorf("expected reload failure in log: %s", buf.String())
	}
}

func TestWithBus(t *testing.T) {
	adapter, _ := newAdapter(t)
	bus := event.NewBus(nil)

	var types []string
	bus.SubscribeAll(func(e event.Event) { types = append(types, e.EventType()) })

	p := Open(adapter, storage.DefaultKey, nil, WithBus(bus))
	p.Store().Add("a")

	if p.Bus() != bus {
		t.Error("Bus() should return the supplied bus")
	}
	if len(types) != 2 {
		t.Errorf("events = %v, want added + changed", types)
	}
}

func TestEventsAreLogged(t *testing.T) {
	adapter, _ := newAdapter(t)
	var buf bytes.Buffer
	p := Open(adapter, storage.DefaultKey, logging.NewWriterLogger(&buf, logging.LevelDebug))

	p.Store().Add("a")

	out := buf.String()
	for _, want := range []string{event.TypeTaskAdded, event.TypeTasksChanged, `"component":"planner"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}
