package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/planner/internal/errors"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"tasks", false},
		{"work-2024", false},
		{"home_list.v2", false},
		{"A", false},
		{"", true},
		{".hidden", true},
		{"-dash", true},
		{"a/b", true},
		{"../up", true},
		{"with space", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidKey) {
				t.Errorf("error should wrap ErrInvalidKey: %v", err)
			}
		})
	}
}

func TestFileBackend_ReadMissing(t *testing.T) {
	b := NewFileBackend(afero.NewMemMapFs(), testDir)

	_, err := b.Read(DefaultKey)
	if !errors.Is(err, errors.ErrSlotNotFound) {
		t.Fatalf("Read() error = %v, want ErrSlotNotFound", err)
	}

	var storageErr *errors.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %T", err)
	}
	if storageErr.Key != DefaultKey || storageErr.Path != b.Path(DefaultKey) {
		t.Errorf("context = key %q path %q", storageErr.Key, storageErr.Path)
	}
}

func TestFileBackend_WriteCreatesDirAndLeavesNoTemp(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewFileBackend(fs, testDir)

	if err := b.Write(DefaultKey, []byte("[]\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := b.Read(DefaultKey)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Read() = %q", data)
	}
	if exists, _ := afero.Exists(fs, b.Path(DefaultKey)+".tmp"); exists {
		t.Error("temp file left behind")
	}
}

func TestFileBackend_Overwrite(t *testing.T) {
	b := NewFileBackend(afero.NewMemMapFs(), testDir)

	_ = b.Write(DefaultKey, []byte("first"))
	_ = b.Write(DefaultKey, []byte("second"))

	data, _ := b.Read(DefaultKey)
	if string(data) != "second" {
		t.Errorf("Read() = %q, want second", data)
	}
}

func TestFileBackend_Path(t *testing.T) {
	b := NewFileBackend(afero.NewMemMapFs(), testDir)
	if got, want := b.Path("work"), filepath.Join(testDir, "work.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if b.Dir() != testDir {
		t.Errorf("Dir() = %q", b.Dir())
	}
}

func TestFileBackend_Keys(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewFileBackend(fs, testDir)

	_ = b.Write("tasks", []byte("[]"))
	_ = b.Write("work", []byte("[]"))
	_ = afero.WriteFile(fs, filepath.Join(testDir, "notes.txt"), []byte("x"), 0o644)
	_ = afero.WriteFile(fs, filepath.Join(testDir, ".hidden.json"), []byte("x"), 0o644)

	keys, err := b.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "tasks" || keys[1] != "work" {
		t.Errorf("Keys() = %v, want [tasks work]", keys)
	}
}

// -----------------------------------------------------------------------------
// OS backend with locking
// -----------------------------------------------------------------------------

func TestOSBackend_RoundTripWithLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b := NewOSBackend(dir)

	if _, err := b.Read(DefaultKey); !errors.Is(err, errors.ErrSlotNotFound) {
		t.Fatalf("Read() before write = %v, want ErrSlotNotFound", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("reading a missing slot should not create the directory")
	}

	if err := b.Write(DefaultKey, []byte(`[{"id":1,"text":"a","completed":false}]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LockFileName)); err != nil {
		t.Errorf("lock file should exist after write: %v", err)
	}

	data, err := b.Read(DefaultKey)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(data) == 0 {
		t.Error("Read() returned no data")
	}
}

func TestFileLock_LockUnlock(t *testing.T) {
	dir := t.TempDir()
	fl := NewFileLock(dir)

	if err := fl.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LockFileName)); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}
	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	fl := NewFileLock(t.TempDir())
	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock without Lock should not error: %v", err)
	}
}
