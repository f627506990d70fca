package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// SetupTestRepo creates a temporary git repository for testing and returns
// its symlink-free absolute path.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp directory: %v", err)
	}

	RunGit(t, tmpDir, "init", "--quiet")
	configureGitUser(t, tmpDir)

	return tmpDir
}

// RunGit runs a git command in dir and fails the test on error.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}

	return string(output)
}

// WriteTestFile writes content to dir/relPath, creating parent directories.
func WriteTestFile(t *testing.T, dir, relPath, content string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write %s: %v", relPath, err)
	}

	return path
}

func configureGitUser(t *testing.T, dir string) {
	t.Helper()
	RunGit(t, dir, "config", "user.name", "Test User")
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "commit.gpgsign", "false")
}
