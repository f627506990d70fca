package fs

import (
	"fmt"
	"path/filepath"
)

// Canonicalize returns the absolute, symlink-free form of path.
func (f *realFS) Canonicalize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrPathResolution)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get absolute path for %s: %w", ErrPathResolution, path, err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to resolve symlinks for %s: %w", ErrPathResolution, absPath, err)
	}

	return resolved, nil
}
