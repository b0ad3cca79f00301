package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done [number]",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between pending and completed",
	Long: `Toggle a task between pending and completed. The task is named by its
number in 'planner list', or by id with --id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	addRefFlags(doneCmd)
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	s := a.planner.Store()
	t, err := resolveTask(cmd, s, args)
	if err != nil {
		return err
	}

	toggled, _ := s.Toggle(t.ID)
	if err := a.saveErr(); err != nil {
		return err
	}

	verb := "Reopened"
	if toggled.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, toggled.Text)
	return nil
}
