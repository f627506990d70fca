package fs

import (
	"errors"
	"os"
	"syscall"
)

// Exists checks if a file or directory exists at the given path.
// A path whose parent is a regular file does not exist.
func (f *realFS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if isAbsent(err) {
		return false, nil
	}
	return false, err
}

func isAbsent(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
