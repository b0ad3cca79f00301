// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, empty text).
	UserError = 1

	// ConfigError indicates an invalid configuration file or setting.
	ConfigError = 2

	// StorageError indicates the task list could not be read or written.
	StorageError = 3
)
