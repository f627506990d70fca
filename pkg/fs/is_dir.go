package fs

import "os"

// IsDir checks if the path exists and is a directory.
func (f *realFS) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if isAbsent(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile checks if the path exists and is a regular file.
func (f *realFS) IsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if isAbsent(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
