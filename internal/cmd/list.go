package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the task list",
	Long: `Print the task list with the numbers other commands use to refer to
tasks. Filtering keeps the original numbers.

  planner list --pending
  planner list --match 'call*'
  planner list -o json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("output", "o", "", "output format: text, json or yaml (default from output.format)")
	listCmd.Flags().StringP("match", "m", "", "only tasks whose text matches a glob pattern (case-insensitive)")
	listCmd.Flags().Bool("pending", false, "only tasks not yet completed")
	listCmd.Flags().Bool("completed", false, "only completed tasks")
	listCmd.MarkFlagsMutuallyExclusive("pending", "completed")
	rootCmd.AddCommand(listCmd)
}

// runList also serves the root command when it is not attached to a
// terminal. The list flags are then absent and read as their zero values.
func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	formatName, _ := cmd.Flags().GetString("output")
	if formatName == "" {
		formatName = a.cfg.Output.Format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return errors.NewValidationError(err.Error()).WithField("output")
	}

	pattern, _ := cmd.Flags().GetString("match")
	pending, _ := cmd.Flags().GetBool("pending")
	completed, _ := cmd.Flags().GetBool("completed")
	filter, err := newTaskFilter(pattern, pending, completed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tasks := a.planner.Store().Tasks()
	if len(tasks) == 0 && format == output.FormatText {
		fmt.Fprintln(out, output.EmptyMessage)
		return nil
	}
	return output.Write(out, format, filter.apply(output.Entries(tasks)))
}
