//go:build e2e

package test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/lerenn/git-hooks-dispatch/pkg/dispatch"
	"github.com/lerenn/git-hooks-dispatch/pkg/executor"
	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	"github.com/stretchr/testify/require"
)

// TestSetup holds the test environment setup
type TestSetup struct {
	RepoPath string
	Stdout   *bytes.Buffer
	Stderr   *bytes.Buffer
}

// setupTestEnvironment creates a git repository with one initial commit.
func setupTestEnvironment(t *testing.T) *TestSetup {
	t.Helper()

	repoPath := git.SetupTestRepo(t)
	git.WriteTestFile(t, repoPath, "README.md", "# Test Repository\n", 0644)
	git.RunGit(t, repoPath, "add", "README.md")
	git.RunGit(t, repoPath, "commit", "--quiet", "-m", "Initial commit")

	return &TestSetup{
		RepoPath: repoPath,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	}
}

// writeHook installs an executable shell hook at relPath.
func writeHook(t *testing.T, setup *TestSetup, relPath, body string) string {
	t.Helper()
	return git.WriteTestFile(t, setup.RepoPath, relPath, "#!/bin/sh\n"+body+"\n", 0755)
}

// stageFile writes relPath and adds it to the index.
func stageFile(t *testing.T, setup *TestSetup, relPath string) {
	t.Helper()
	git.WriteTestFile(t, setup.RepoPath, relPath, relPath+"\n", 0644)
	git.RunGit(t, setup.RepoPath, "add", relPath)
}

// newDispatcher wires a dispatcher over the real file system, git and
// executor, with hook output captured in setup.
func newDispatcher(setup *TestSetup, verbose bool) dispatch.Dispatcher {
	return dispatch.NewDispatcher(dispatch.NewDispatcherParams{
		FS:  fs.NewFS(),
		Git: git.NewGit(),
		Executor: executor.NewExecutorWithParams(executor.NewExecutorParams{
			Stdin:  bytes.NewReader(nil),
			Stdout: setup.Stdout,
			Stderr: setup.Stderr,
		}),
		Out:     setup.Stdout,
		Verbose: verbose,
	})
}

func runParams(setup *TestSetup, hookName string, args ...string) dispatch.RunParams {
	return dispatch.RunParams{
		RepoRoot:      setup.RepoPath,
		HookName:      hookName,
		HookArgs:      args,
		HooksDirNames: []string{"git-hooks", "hooks"},
		RootPolicy:    dispatch.RootExclude,
	}
}

// buildBinary compiles git-hooks-dispatch into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()

	binPath := filepath.Join(t.TempDir(), "git-hooks-dispatch")
	cmd := exec.Command("go", "build", "-o", binPath, "../cmd/git-hooks-dispatch")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", output)

	return binPath
}

// installDispatcher makes git run binPath for hookName.
func installDispatcher(t *testing.T, setup *TestSetup, hookName, binPath string) {
	t.Helper()

	script := "#!/bin/sh\nexec \"" + binPath + "\" " + hookName + " \"$@\"\n"
	path := filepath.Join(setup.RepoPath, ".git", "hooks", hookName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
}
