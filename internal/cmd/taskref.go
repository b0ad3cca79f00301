package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/store"
	"github.com/Iron-Ham/planner/internal/task"
)

// addRefFlags registers --id on a command that takes a task reference.
func addRefFlags(c *cobra.Command) {
	c.Flags().Int64("id", 0, "select the task by id instead of list position")
}

// resolveTask finds the task named by a list position argument or by --id.
// Positions are 1-based, as printed by `planner list`.
func resolveTask(cmd *cobra.Command, s *store.Store, args []string) (task.Task, error) {
	if cmd.Flags().Changed("id") {
		if len(args) > 0 {
			return task.Task{}, errors.NewValidationError("cannot use both a task number and --id")
		}
		id, _ := cmd.Flags().GetInt64("id")
		t, _, ok := s.Find(id)
		if !ok {
			return task.Task{}, errors.NewTaskError(fmt.Sprintf("no task with id %d", id), errors.ErrTaskNotFound).WithTaskID(id)
		}
		return t, nil
	}

	if len(args) == 0 {
		return task.Task{}, errors.NewValidationError("task number required")
	}

	pos, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return task.Task{}, errors.NewValidationError("invalid task number").WithField("task").WithValue(args[0])
	}
	t, ok := s.At(pos)
	if !ok {
		return task.Task{}, errors.NewTaskError(fmt.Sprintf("task number out of range: %d", pos), errors.ErrTaskNotFound).WithPosition(pos)
	}
	return t, nil
}
