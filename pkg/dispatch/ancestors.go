package dispatch

import "path/filepath"

// Ancestors returns the directories containing repoRoot/relPath, closest
// first, from its parent up to repoRoot. repoRoot itself is only part of the
// result under RootInclude. relPath is slash separated; a path that is not
// local to repoRoot, or that names repoRoot itself, has no ancestors.
func Ancestors(repoRoot, relPath string, policy RootPolicy) []string {
	relPath = filepath.FromSlash(relPath)
	if !filepath.IsLocal(relPath) {
		return nil
	}

	repoRoot = filepath.Clean(repoRoot)
	path := filepath.Join(repoRoot, relPath)
	if path == repoRoot {
		return nil
	}

	var dirs []string
	for dir := filepath.Dir(path); dir != repoRoot; dir = filepath.Dir(dir) {
		// Reached the file system root without meeting repoRoot
		if filepath.Dir(dir) == dir {
			return nil
		}
		dirs = append(dirs, dir)
	}
	if policy == RootInclude {
		dirs = append(dirs, repoRoot)
	}

	return dirs
}
