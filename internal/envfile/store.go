// Package envfile applies the encryption engine to key=value configuration
// files: a line-oriented codec that tolerates malformed input, and the
// SecretStore boundary for reading and writing the file text.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// SecretStore is the external collaborator boundary for configuration
// text. The codec itself never touches the filesystem; callers read a
// snapshot through a store, transform it in memory, and write it back.
// I/O errors are surfaced untouched and never retried here.
//
// The store provides no file-level locking: concurrent callers racing to
// encrypt and write the same file can lose updates, and serializing
// read-modify-write cycles is the caller's responsibility.
type SecretStore interface {
	// Read returns the full text of the named file.
	Read(name string) (string, error)

	// Write replaces the full text of the named file.
	Write(name string, text string) error
}

// FileStore implements SecretStore on the local filesystem.
type FileStore struct{}

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Read returns the content of the named file.
func (s *FileStore) Read(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// Write atomically replaces the named file via a temp file and rename,
// so a crash mid-write never leaves a half-encrypted configuration.
// Files are created with 0600 permissions.
func (s *FileStore) Write(name string, text string) error {
	dir := filepath.Dir(name)

	tmp, err := os.CreateTemp(dir, filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, name); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}
