// Package fileutil reads blog documents and writes them back in place.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sentinel errors for document I/O.
var (
	ErrNotFound   = errors.New("document not found")
	ErrNotRegular = errors.New("document is not a regular file")
	ErrRead       = errors.New("failed to read document")
	ErrWrite      = errors.New("failed to write document")
)

// ReadDocument returns the full content of the file at path.
// A missing file is reported as ErrNotFound so callers can treat it as a warning.
func ReadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the target plan
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	return string(data), nil
}

// WriteIfChanged replaces the file at path with updated when it differs from
// original. It reports whether a write happened. The new content is staged in
// a temp file next to path and renamed over it, keeping the original mode.
func WriteIfChanged(path, original, updated string) (bool, error) {
	if original == updated {
		return false, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".blogpatch-*.tmp")
	if err != nil {
		return false, fmt.Errorf("%w: creating temp file: %v", ErrWrite, err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmpFile.WriteString(updated); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmpFile.Close(); err != nil {
		cleanup()
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return true, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
