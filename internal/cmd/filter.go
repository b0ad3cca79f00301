package cmd

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/output"
	"github.com/Iron-Ham/planner/internal/task"
	"github.com/Iron-Ham/planner/internal/util"
)

// globMeta are the characters that make a --match value a glob rather than
// a plain substring.
const globMeta = "*?[{"

// taskFilter selects the tasks `planner list` prints.
type taskFilter struct {
	match     glob.Glob
	pending   bool
	completed bool
}

// newTaskFilter compiles a --match pattern. A pattern without glob
// characters matches anywhere in the text.
func newTaskFilter(pattern string, pending, completed bool) (*taskFilter, error) {
	f := &taskFilter{pending: pending, completed: completed}
	if pattern == "" {
		return f, nil
	}

	if !strings.ContainsAny(pattern, globMeta) {
		pattern = "*" + pattern + "*"
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.NewValidationError("invalid pattern").WithField("match").WithValue(pattern).WithCause(err)
	}
	f.match = g
	return f, nil
}

func (f *taskFilter) keep(t task.Task) bool {
	if f.pending && t.Completed {
		return false
	}
	if f.completed && !t.Completed {
		return false
	}
	if f.match != nil && !f.match.Match(strings.ToLower(util.NormalizeText(t.Text))) {
		return false
	}
	return true
}

func (f *taskFilter) apply(entries []output.Entry) []output.Entry {
	kept := make([]output.Entry, 0, len(entries))
	for _, e := range entries {
		if f.keep(e.Task) {
			kept = append(kept, e)
		}
	}
	return kept
}
