package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/planner/internal/task"
)

// SlotPath returns where the file backend keeps the slot named key.
func SlotPath(dir, key string) string {
	return filepath.Join(dir, key+".json")
}

// WriteSlot writes raw slot contents, creating dir if needed.
// Returns the path written.
func WriteSlot(t *testing.T, dir, key, contents string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	path := SlotPath(dir, key)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write slot %s: %v", key, err)
	}
	return path
}

// ReadSlot decodes the slot file named key. It fails the test if the file
// is missing or is not a JSON task array.
func ReadSlot(t *testing.T, dir, key string) []task.Task {
	t.Helper()

	data, err := os.ReadFile(SlotPath(dir, key))
	if err != nil {
		t.Fatalf("failed to read slot %s: %v", key, err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatalf("slot %s is not a task array: %v\n%s", key, err, data)
	}
	return tasks
}

// Texts returns the text of each task, in order.
func Texts(tasks []task.Task) []string {
	texts := make([]string, len(tasks))
	for i, t := range tasks {
		texts[i] = t.Text
	}
	return texts
}

// WaitForSignal fails the test if nothing arrives on ch within timeout.
func WaitForSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("no signal within %v", timeout)
	}
}

// Eventually polls cond until it returns true or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

// SkipIfShort skips tests that touch the real filesystem or wait on timers.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
}
