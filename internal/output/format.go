// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/planner/internal/task"
	"github.com/Iron-Ham/planner/internal/util"
)

// EmptyMessage is shown instead of a list or counter when there are no tasks.
const EmptyMessage = "No tasks yet. Add one to get started!"

// Format selects how `planner list` prints tasks.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Entry is a task together with its 1-based display position. Positions are
// kept when a list is filtered so they still work as references.
type Entry struct {
	Position  int `json:"position" yaml:"position"`
	task.Task `yaml:",inline"`
}

// Entries numbers tasks in display order.
func Entries(tasks []task.Task) []Entry {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{Position: i + 1, Task: t}
	}
	return entries
}

// Write renders entries in the given format.
func Write(w io.Writer, format Format, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, e := range entries {
			FormatTask(w, e)
		}
		return nil
	}
}

// FormatTask formats a task line for the text list.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces,
// checkbox, text)
func FormatTask(w io.Writer, e Entry) {
	fmt.Fprintf(w, "%4d  %s %s\n", e.Position, e.Mark(), util.NormalizeText(e.Text))
}

// Summary returns the progress line for a list.
func Summary(completed, total int) string {
	if total == 0 {
		return EmptyMessage
	}
	return fmt.Sprintf("%d of %d tasks completed.", completed, total)
}
