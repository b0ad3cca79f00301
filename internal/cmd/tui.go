package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/planner/internal/storage"
	"github.com/Iron-Ham/planner/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task screen",
	Long: `Open the interactive task screen. This is what 'planner' does on its own
when run in a terminal.

With storage.watch enabled, changes made from another shell show up
immediately.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := tui.Options{
		MaxTextWidth: a.cfg.TUI.MaxTextWidth,
		ShowHelp:     a.cfg.TUI.ShowHelp,
		Logger:       a.logger,
	}
	if a.cfg.Storage.Watch {
		if w := a.watch(); w != nil {
			defer w.Close()
			opts.Changes = w.Changes()
		}
	}

	return tui.Run(a.planner, opts)
}

// watch starts a watcher on the open slot. A watcher that cannot start only
// disables live reload.
func (a *app) watch() *storage.Watcher {
	// The watcher needs the directory to exist before the first save.
	if err := os.MkdirAll(a.backend.Dir(), 0o755); err != nil {
		a.logger.Warn("slot watcher disabled", "error", err)
		return nil
	}
	w, err := storage.NewWatcher(a.backend.Path(a.planner.Key()), storage.DefaultDebounce, a.logger)
	if err != nil {
		a.logger.Warn("slot watcher disabled", "error", err)
		return nil
	}
	return w
}
