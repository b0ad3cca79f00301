// Package logging provides structured diagnostics logging for the planner.
//
// The package wraps Go's log/slog to write JSON lines to a log file in the
// planner's data directory. Storage failures are swallowed by the persistence
// layer and only ever reported here, so the log is the one place to look when
// tasks fail to save or load.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Persistent context attributes (slot key, component)
//   - Size-based rotation with numbered backups and optional gzip
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dataDir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithKey("tasks").Warn("slot corrupted, starting empty", "error", err)
//
// When logging is disabled use [NopLogger], which discards everything.
//
// # Thread Safety
//
// [Logger] and [RotatingWriter] are safe for concurrent use; the slot watcher
// logs from its own goroutine.
package logging
