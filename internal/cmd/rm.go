package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm [number]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long: `Delete a task. The task is named by its number in 'planner list', or by
id with --id. Later tasks move up one position.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRm,
}

func init() {
	addRefFlags(rmCmd)
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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

	removed, _ := s.Delete(t.ID)
	if err := a.saveErr(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", removed.Text)
	return nil
}
