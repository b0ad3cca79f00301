package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/planner/internal/errors"
)

// SlotExt is the file extension of slot files.
const SlotExt = ".json"

// FileBackend stores each slot as <dir>/<key>.json.
//
// Writes go to a temporary file that is renamed into place, so a reader
// never sees a half-written slot. On the OS filesystem every read and write
// also holds the directory's FileLock.
type FileBackend struct {
	fs   afero.Fs
	dir  string
	lock bool
}

// NewFileBackend creates a backend on an arbitrary afero filesystem. No
// cross-process lock is taken; tests use it with afero.NewMemMapFs.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir}
}

// NewOSBackend creates a backend on the real filesystem with flock-based
// locking.
func NewOSBackend(dir string) *FileBackend {
	return &FileBackend{fs: afero.NewOsFs(), dir: dir, lock: true}
}

// Dir returns the storage directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the slot file path for key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+SlotExt)
}

// Read returns the contents of the slot file.
func (b *FileBackend) Read(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	path := b.Path(key)

	unlock, err := b.acquire(false)
	if err != nil {
		return nil, errors.NewStorageError("acquire lock", err).WithKey(key).WithPath(path).WithRetryable(true)
	}
	defer unlock()

	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError("read slot", errors.ErrSlotNotFound).WithKey(key).WithPath(path).WithSeverity(errors.SeverityInfo)
		}
		return nil, errors.NewStorageError("read slot", err).WithKey(key).WithPath(path)
	}
	return data, nil
}

// Write atomically replaces the slot file, creating the directory when
// needed.
func (b *FileBackend) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	path := b.Path(key)

	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return errors.NewStorageError("create storage dir", fmt.Errorf("%w: %w", errors.ErrStorageUnavailable, err)).WithKey(key).WithPath(b.dir)
	}

	unlock, err := b.acquire(true)
	if err != nil {
		return errors.NewStorageError("acquire lock", err).WithKey(key).WithPath(path).WithRetryable(true)
	}
	defer unlock()

	tmp := path + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, data, 0o644); err != nil {
		return errors.NewStorageError("write temp file", err).WithKey(key).WithPath(tmp)
	}

	if err := b.fs.Rename(tmp, path); err != nil {
		_ = b.fs.Remove(tmp) // best-effort cleanup
		return errors.NewStorageError("rename temp file", err).WithKey(key).WithPath(path)
	}
	return nil
}

// Keys lists the slots present in the storage directory.
func (b *FileBackend) Keys() ([]string, error) {
	matches, err := afero.Glob(b.fs, filepath.Join(b.dir, "*"+SlotExt))
	if err != nil {
		return nil, errors.NewStorageError("list slots", err).WithPath(b.dir)
	}

	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		key := filepath.Base(m)
		key = key[:len(key)-len(SlotExt)]
		if ValidateKey(key) == nil {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// acquire takes the directory lock when locking is enabled. Reads skip it
// when the directory does not exist yet, since there is nothing to guard and
// creating the lock file would create the directory as a side effect.
func (b *FileBackend) acquire(forWrite bool) (func(), error) {
	if !b.lock {
		return func() {}, nil
	}
	if !forWrite {
		if exists, _ := afero.DirExists(b.fs, b.dir); !exists {
			return func() {}, nil
		}
	}

	fl := NewFileLock(b.dir)
	if err := fl.Lock(); err != nil {
		return nil, err
	}
	return func() { _ = fl.Unlock() }, nil
}
