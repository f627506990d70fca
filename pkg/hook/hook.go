package hook

import (
	"fmt"
	"path/filepath"
)

// Hook is a script dispatched for a named event.
type Hook struct {
	// ScriptPath is the absolute path of the script.
	ScriptPath string
	// BaseDir is the directory holding the hooks directory (`/foo/bar` for
	// `/foo/bar/git-hooks/pre-commit`). The script runs from there.
	BaseDir string
}

// Key identifies a hook. Two hooks are the same hook if their keys are equal.
type Key struct {
	ScriptPath string
	BaseDir    string
}

// Key returns the identity of the hook.
func (h Hook) Key() Key {
	return Key{ScriptPath: h.ScriptPath, BaseDir: h.BaseDir}
}

// RelBaseDir returns BaseDir relative to repoRoot ("." for the root itself).
func (h Hook) RelBaseDir(repoRoot string) (string, error) {
	rel, err := filepath.Rel(repoRoot, h.BaseDir)
	if err != nil {
		return "", fmt.Errorf("failed to make %s relative to %s: %w", h.BaseDir, repoRoot, err)
	}
	return rel, nil
}

func (h Hook) String() string {
	return fmt.Sprintf("%s (in %s)", h.ScriptPath, h.BaseDir)
}
