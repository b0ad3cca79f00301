package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/planner/internal/errors"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task to the end of the list",
	Long: `Add a task to the end of the list. Arguments are joined with spaces, so
quoting is optional:

  planner add Buy milk
  planner add "Call the plumber"`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	added, ok := a.planner.Store().Add(strings.Join(args, " "))
	if !ok {
		return errors.NewTaskError("task text is empty", errors.ErrEmptyText)
	}
	if err := a.saveErr(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", added.Text)
	return nil
}
