package hook

import (
	"fmt"
	"path/filepath"

	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=locator.go -destination=mocks/locator.gen.go -package=mocks

// Locator finds the hook a directory provides for a hook name.
type Locator interface {
	// Find returns the hook named hookName provided by directory, or nil if
	// there is none. hooksDirNames are tried in order and the first existing
	// hooks directory wins, even if it does not hold the hook.
	Find(directory, hookName string, hooksDirNames []string) (*Hook, error)
}

type realLocator struct {
	fs fs.FS
}

// NewLocator creates a new Locator instance.
func NewLocator(fsInstance fs.FS) Locator {
	return &realLocator{fs: fsInstance}
}

// Find returns the hook named hookName provided by directory, or nil if there is none.
func (l *realLocator) Find(directory, hookName string, hooksDirNames []string) (*Hook, error) {
	if len(hooksDirNames) == 0 {
		return nil, ErrNoHooksDirNames
	}

	isDir, err := l.fs.IsDir(directory)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrProbe, directory, err)
	}
	if !isDir {
		return nil, nil
	}

	hooksDir, err := l.findHooksDir(directory, hooksDirNames)
	if err != nil || hooksDir == "" {
		return nil, err
	}

	// The executable bit is not checked: permission problems surface when the hook runs.
	scriptPath := filepath.Join(hooksDir, hookName)
	isFile, err := l.fs.IsFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrProbe, directory, err)
	}
	if !isFile {
		return nil, nil
	}

	return &Hook{
		ScriptPath: scriptPath,
		BaseDir:    directory,
	}, nil
}

func (l *realLocator) findHooksDir(directory string, names []string) (string, error) {
	for _, name := range names {
		hooksDir := filepath.Join(directory, name)

		isDir, err := l.fs.IsDir(hooksDir)
		if err != nil {
			return "", fmt.Errorf("%w %s: %w", ErrProbe, directory, err)
		}
		if isDir {
			return hooksDir, nil
		}
	}

	return "", nil
}
