// Package task defines the task record shared by the store, the persistence
// adapter and the user interfaces.
package task

import "strings"

// Task is a single to-do item.
type Task struct {
	// ID is the creation time in Unix milliseconds, bumped when needed so it
	// stays unique within a sequence.
	ID int64 `json:"id" yaml:"id"`

	// Text is the trimmed, non-empty description.
	Text string `json:"text" yaml:"text"`

	// Completed reports whether the task has been checked off.
	Completed bool `json:"completed" yaml:"completed"`
}

// Toggled returns a copy of t with Completed flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// Mark returns the checkbox glyph used by text renderings.
func (t Task) Mark() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// CleanText trims surrounding whitespace. The boolean is false when nothing
// remains.
func CleanText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}

// Clone returns an independent copy of tasks. A nil input yields an empty,
// non-nil slice so it serializes as [] rather than null.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Equal reports whether two sequences hold the same tasks in the same order.
func Equal(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MaxID returns the largest id in tasks, or 0 for an empty sequence.
func MaxID(tasks []Task) int64 {
	var highest int64
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
