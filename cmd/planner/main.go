// Package main is the entry point for the planner CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/planner/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", cmd.ErrorMessage(err))
		os.Exit(cmd.ExitCode(err))
	}
}
