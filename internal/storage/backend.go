// Package storage persists task sequences in named key-value slots.
//
// A [Backend] maps a slot key to raw bytes. [FileBackend] stores each slot as
// a JSON file on an afero filesystem. [Adapter] sits on top of a Backend and
// implements the persistence policy: loads and saves never fail from the
// caller's point of view, problems are logged instead.
package storage

import (
	"regexp"

	"github.com/Iron-Ham/planner/internal/errors"
)

// DefaultKey is the slot key used when none is configured.
const DefaultKey = "tasks"

// Backend reads and writes raw slot contents.
type Backend interface {
	// Read returns the slot contents. A slot that was never written yields
	// an error matching errors.ErrSlotNotFound.
	Read(key string) ([]byte, error)

	// Write replaces the slot contents.
	Write(key string, data []byte) error

	// Path describes where the slot lives, for logs and `config path`.
	Path(key string) string
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateKey reports whether key can name a slot. Keys map directly to file
// names, so path separators and leading dots are rejected.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.NewValidationError("must start with a letter or digit and contain only letters, digits, '.', '_' or '-'").
			WithField("key").
			WithValue(key).
			WithCause(errors.ErrInvalidKey)
	}
	return nil
}
