package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/planner/internal/config"
	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/exitcode"
	"github.com/Iron-Ham/planner/internal/logging"
	"github.com/Iron-Ham/planner/internal/planner"
	"github.com/Iron-Ham/planner/internal/storage"
	"github.com/Iron-Ham/planner/internal/task"
)

// app is everything a command needs to work on one task list.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	backend *storage.FileBackend
	persist *reportingPersister
	planner *planner.Planner
}

// reportingPersister saves like storage.Adapter but remembers the first
// failure, so a one-shot command can exit non-zero instead of losing a
// change silently.
type reportingPersister struct {
	*storage.Adapter
	logger *logging.Logger
	err    error
}

func (r *reportingPersister) Save(key string, tasks []task.Task) {
	if err := r.Adapter.Store(key, tasks); err != nil {
		r.logger.WithKey(key).Error("failed to save slot", "error", err)
		if r.err == nil {
			r.err = err
		}
	}
}

// openApp loads the configuration, applies the --slot and --data-dir
// overrides and opens the selected task list.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, configError(err)
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Storage.Dir = dir
	}
	if slot, _ := cmd.Flags().GetString("slot"); slot != "" {
		if err := storage.ValidateKey(slot); err != nil {
			return nil, err
		}
		cfg.Storage.Key = slot
	}

	dir := cfg.Storage.ResolveDir()
	logger := newLogger(cfg, dir)
	backend := storage.NewOSBackend(dir)
	persist := &reportingPersister{
		Adapter: storage.NewAdapter(backend, logger),
		logger:  logger.WithComponent("storage"),
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		persist: persist,
		planner: planner.Open(persist, cfg.Storage.Key, logger),
	}, nil
}

// newLogger opens the log file in the data directory. Logging problems never
// stop a command.
func newLogger(cfg *config.Config, dir string) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.NewLogger(dir, cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		return logging.NopLogger()
	}
	return logger
}

// saveErr reports the first failed write since the list was opened.
func (a *app) saveErr() error {
	return a.persist.err
}

// Close releases the log file.
func (a *app) Close() error {
	return a.logger.Close()
}

// configErr marks an invalid configuration for ExitCode.
type configErr struct {
	err error
}

func configError(err error) error {
	return &configErr{err: err}
}

func (e *configErr) Error() string {
	return "invalid configuration: " + e.err.Error()
}

func (e *configErr) Unwrap() error {
	return e.err
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}

	var cfgErr *configErr
	if errors.As(err, &cfgErr) {
		return exitcode.ConfigError
	}
	var storageErr *errors.StorageError
	if errors.As(err, &storageErr) {
		return exitcode.StorageError
	}
	return exitcode.UserError
}

// ErrorMessage returns the text to print for a command error.
func ErrorMessage(err error) string {
	if errors.IsUserFacing(err) {
		return errors.UserMessage(err)
	}
	return err.Error()
}
