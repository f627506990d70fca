package fs

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=fs.go -destination=mocks/fs.gen.go -package=mocks

// FS interface provides the read-only file system probes used to locate hooks.
type FS interface {
	// Exists checks if a file or directory exists at the given path.
	Exists(path string) (bool, error)

	// IsDir checks if the path exists and is a directory.
	IsDir(path string) (bool, error)

	// IsFile checks if the path exists and is a regular file (symlinks are followed).
	IsFile(path string) (bool, error)

	// Canonicalize returns the absolute, symlink-free form of path.
	Canonicalize(path string) (string, error)
}

type realFS struct {
	// No fields needed for basic file system operations
}

// NewFS creates a new FS instance.
func NewFS() FS {
	return &realFS{}
}
