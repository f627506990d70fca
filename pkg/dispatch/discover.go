package dispatch

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
)

// Discover returns the hooks Run would execute, in execution order.
func (d *realDispatcher) Discover(params RunParams) ([]hook.Hook, error) {
	_, hooks, err := d.discover(params)
	if err != nil {
		d.setState(StateSystemError)
		return nil, err
	}
	return hooks, nil
}

// discover returns the canonical repository root and the hooks to run.
func (d *realDispatcher) discover(params RunParams) (string, []hook.Hook, error) {
	if err := validateParams(params); err != nil {
		return "", nil, err
	}

	repoRoot, err := d.resolveRepoRoot(params.RepoRoot)
	if err != nil {
		return "", nil, err
	}
	d.logger.Debugf("repo root = %s, hooks dir names = %v, root policy = %s",
		repoRoot, params.HooksDirNames, params.RootPolicy)

	d.setState(StateEnumerating)
	changes, err := d.changedPaths(repoRoot)
	if err != nil {
		return "", nil, err
	}

	set := newHookSet()
	for _, change := range changes {
		d.setState(StateExpanding)
		dirs, err := d.existingAncestors(repoRoot, change.Path, params.RootPolicy)
		if err != nil {
			return "", nil, err
		}

		d.setState(StateProbing)
		for _, dir := range dirs {
			d.logger.Debugf("searching hook in %s", dir)
			h, err := d.locator.Find(dir, params.HookName, params.HooksDirNames)
			if err != nil {
				return "", nil, err
			}
			if h == nil {
				continue
			}

			if !set.Add(*h) {
				d.logger.Debugf("skip hook %s (already scheduled)", h.ScriptPath)
				continue
			}
			d.logger.Debugf("found hook %s", h.ScriptPath)
		}
	}

	return repoRoot, set.List(), nil
}

func validateParams(params RunParams) error {
	if params.HookName == "" || params.HookName == "." || params.HookName == ".." ||
		strings.ContainsAny(params.HookName, `/\`) {
		return fmt.Errorf("%w: %q", hook.ErrInvalidHookName, params.HookName)
	}
	if len(params.HooksDirNames) == 0 {
		return hook.ErrNoHooksDirNames
	}
	if !filepath.IsAbs(params.RepoRoot) {
		return fmt.Errorf("%w: %s", ErrRepoRootNotAbsolute, params.RepoRoot)
	}
	return nil
}

func (d *realDispatcher) resolveRepoRoot(repoRoot string) (string, error) {
	isDir, err := d.fs.IsDir(repoRoot)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrResolvePath, repoRoot, err)
	}
	if !isDir {
		return "", fmt.Errorf("%w: %s", ErrRepoRootNotDir, repoRoot)
	}

	canonical, err := d.fs.Canonicalize(repoRoot)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrResolvePath, repoRoot, err)
	}

	return canonical, nil
}

// changedPaths returns the status entries that may trigger hooks, in the order git reports them.
func (d *realDispatcher) changedPaths(repoRoot string) ([]git.ChangeRecord, error) {
	records, err := d.git.Status(repoRoot)
	if err != nil {
		return nil, err
	}

	changes := make([]git.ChangeRecord, 0, len(records))
	for _, record := range records {
		d.logger.Debugf("found git entry: %q (%s)", record.Path, record.Status)
		if !record.Status.IsChanged() {
			continue
		}

		if !utf8.ValidString(record.Path) {
			return nil, fmt.Errorf("%w: %q", ErrPathEncoding, record.Path)
		}
		if !filepath.IsLocal(filepath.FromSlash(record.Path)) {
			return nil, fmt.Errorf("%w: %q", ErrPathOutsideRepo, record.Path)
		}

		d.logger.Debugf("found changed git entry: %s", record.Path)
		changes = append(changes, record)
	}

	return changes, nil
}

// existingAncestors returns the ancestors of path that exist on disk. A
// change may have removed some of them.
func (d *realDispatcher) existingAncestors(repoRoot, path string, policy RootPolicy) ([]string, error) {
	ancestors := Ancestors(repoRoot, path, policy)

	var dirs []string
	for _, dir := range ancestors {
		d.logger.Debugf("testing path: %s", dir)
		exists, err := d.fs.Exists(dir)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrResolvePath, dir, err)
		}
		if !exists {
			d.logger.Debugf("skip missing directory %s", dir)
			continue
		}
		dirs = append(dirs, dir)
	}

	if len(ancestors) > 0 && len(dirs) == 0 {
		d.logger.Warnf("no directory containing %s exists any more, it triggers no hook", path)
	}
	if policy == RootExclude {
		d.logger.Debugf("found the repo dir, stopping before %s", repoRoot)
	}

	return dirs, nil
}
