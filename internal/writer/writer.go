// Package writer provides conditional, idempotent file persistence.
//
// WriteOnce only touches storage when content actually changes, so repeated
// runs never generate spurious modification events. Replace always writes
// but stays atomic: content lands in a temp file in the target directory
// and is renamed into place, so readers never observe a partial file.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists unit content
type Writer struct{}

// New creates a Writer
func New() *Writer {
	return &Writer{}
}

// WriteOnce writes content to path iff the target is absent or its current
// bytes differ. Returns whether a write occurred.
func (w *Writer) WriteOnce(path string, content []byte) (bool, error) {
	current, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(current, content) {
			return false, nil
		}
	case !os.IsNotExist(err):
		return false, fmt.Errorf("read current content: %w", err)
	}

	if err := Replace(path, content); err != nil {
		return false, err
	}
	return true, nil
}

// Replace atomically writes content to path, preserving the existing file
// mode when the target already exists.
func Replace(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace target: %w", err)
	}
	return nil
}
