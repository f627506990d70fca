//go:build unit

package dispatch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	executormocks "github.com/lerenn/git-hooks-dispatch/pkg/executor/mocks"
	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	gitmocks "github.com/lerenn/git-hooks-dispatch/pkg/git/mocks"
	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
	hookmocks "github.com/lerenn/git-hooks-dispatch/pkg/hook/mocks"
	"github.com/lerenn/git-hooks-dispatch/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

type testDispatcher struct {
	dispatcher   Dispatcher
	mockGit      *gitmocks.MockGit
	mockExecutor *executormocks.MockExecutor
	out          *bytes.Buffer
	root         string
}

// newTestDispatcher builds a dispatcher over a real temporary directory, with
// git and the executor mocked.
func newTestDispatcher(t *testing.T, ctrl *gomock.Controller, verbose bool) testDispatcher {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	td := testDispatcher{
		mockGit:      gitmocks.NewMockGit(ctrl),
		mockExecutor: executormocks.NewMockExecutor(ctrl),
		out:          &bytes.Buffer{},
		root:         root,
	}
	td.dispatcher = NewDispatcher(NewDispatcherParams{
		FS:       fs.NewFS(),
		Git:      td.mockGit,
		Executor: td.mockExecutor,
		Out:      td.out,
		Verbose:  verbose,
	})

	return td
}

// writeHook creates an executable hook script at root/relPath.
func (td testDispatcher) writeHook(t *testing.T, relPath string) string {
	t.Helper()

	path := filepath.Join(td.root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func (td testDispatcher) mkdir(t *testing.T, relPath string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(td.root, filepath.FromSlash(relPath)), 0755))
}

func (td testDispatcher) path(relPath string) string {
	return filepath.Join(td.root, filepath.FromSlash(relPath))
}

func (td testDispatcher) params() RunParams {
	return RunParams{
		RepoRoot:      td.root,
		HookName:      "pre-commit",
		HooksDirNames: []string{"hooks"},
		RootPolicy:    RootExclude,
	}
}

func TestRun_SingleHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/hooks/pre-commit")
	td.mkdir(t, "1")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.IndexNew},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), script, gomock.Len(0)).Return(0, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Code)
	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, []hook.Hook{{ScriptPath: script, BaseDir: td.path("1")}}, result.Executed)
	assert.Nil(t, result.Failed)
}

func TestRun_NoChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return(nil, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Code)
	assert.Equal(t, StateSucceeded, result.State)
	assert.Empty(t, result.Executed)
}

func TestRun_ClosestHookRunsFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	child := td.writeHook(t, "1/2/hooks/pre-commit")
	parent := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexModified},
	}, nil)
	gomock.InOrder(
		td.mockExecutor.EXPECT().Execute(td.path("1/2"), child, gomock.Len(0)).Return(0, nil),
		td.mockExecutor.EXPECT().Execute(td.path("1"), parent, gomock.Len(0)).Return(0, nil),
	)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Code)
	assert.Len(t, result.Executed, 2)
}

func TestRun_HookRunsOnceForSeveralFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.IndexNew},
		{Path: "1/b", Status: git.WtModified},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), script, gomock.Len(0)).Return(0, nil).Times(1)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 1)
}

func TestRun_SharedAncestorKeepsFirstPosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	deep := td.writeHook(t, "1/2/hooks/pre-commit")
	shared := td.writeHook(t, "1/hooks/pre-commit")
	other := td.writeHook(t, "1/3/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexNew},
		{Path: "1/3/b", Status: git.IndexNew},
	}, nil)
	gomock.InOrder(
		td.mockExecutor.EXPECT().Execute(td.path("1/2"), deep, gomock.Len(0)).Return(0, nil),
		td.mockExecutor.EXPECT().Execute(td.path("1"), shared, gomock.Len(0)).Return(0, nil),
		td.mockExecutor.EXPECT().Execute(td.path("1/3"), other, gomock.Len(0)).Return(0, nil),
	)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 3)
}

func TestRun_FailingHookStopsDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	child := td.writeHook(t, "1/2/hooks/pre-commit")
	td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexNew},
	}, nil)
	// The parent hook must not run
	td.mockExecutor.EXPECT().Execute(td.path("1/2"), child, gomock.Len(0)).Return(3, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Code)
	assert.Equal(t, StateHookFailed, result.State)
	require.NotNil(t, result.Failed)
	assert.Equal(t, child, result.Failed.ScriptPath)
	assert.Len(t, result.Executed, 1)
}

func TestRun_ForwardsHookArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.IndexNew},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), script, []string{"--", "-x", "a b"}).Return(0, nil)

	params := td.params()
	params.HookArgs = []string{"--", "-x", "a b"}
	_, err := td.dispatcher.Run(params)
	assert.NoError(t, err)
}

func TestRun_RootExclude_RootHookNotExecuted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.writeHook(t, "hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "a", Status: git.IndexNew},
		{Path: "1/b", Status: git.IndexNew},
	}, nil)
	td.mkdir(t, "1")

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Empty(t, result.Executed)
}

func TestRun_RootInclude_RootHookExecutedLast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	rootHook := td.writeHook(t, "hooks/pre-commit")
	childHook := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/b", Status: git.IndexNew},
	}, nil)
	gomock.InOrder(
		td.mockExecutor.EXPECT().Execute(td.path("1"), childHook, gomock.Len(0)).Return(0, nil),
		td.mockExecutor.EXPECT().Execute(td.root, rootHook, gomock.Len(0)).Return(0, nil),
	)

	params := td.params()
	params.RootPolicy = RootInclude
	result, err := td.dispatcher.Run(params)
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 2)
}

func TestRun_UntrackedFileDoesNotTriggerHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.WtNew},
		{Path: "1/b", Status: git.Ignored},
	}, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Empty(t, result.Executed)
}

func TestRun_MissingAncestorIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/hooks/pre-commit")

	// 1/gone was removed along with the file
	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/gone/a", Status: git.WtDeleted},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), script, gomock.Len(0)).Return(0, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 1)
}

func TestRun_RemovedDirectoryTreeIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	var logs bytes.Buffer
	dispatcher := NewDispatcher(NewDispatcherParams{
		FS:       fs.NewFS(),
		Git:      td.mockGit,
		Executor: td.mockExecutor,
		Logger:   logger.NewZapLogger(zapcore.WarnLevel, &logs),
	})

	// Neither gone nor gone/dir exist any more
	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "gone/dir/a", Status: git.IndexDeleted},
	}, nil)

	result, err := dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Empty(t, result.Executed)
	assert.Contains(t, logs.String(), "WARN")
	assert.Contains(t, logs.String(), "no directory containing gone/dir/a exists any more")
}

func TestRun_PathNamingTheRootTriggersNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.writeHook(t, "hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "a/..", Status: git.IndexModified},
		{Path: ".", Status: git.WtModified},
	}, nil)

	params := td.params()
	params.RootPolicy = RootInclude
	result, err := td.dispatcher.Run(params)
	assert.NoError(t, err)
	assert.Empty(t, result.Executed)
}

func TestRun_RenameTriggersNewLocationOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.writeHook(t, "1/hooks/pre-commit")
	script := td.writeHook(t, "2/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "2/new", OrigPath: "1/old", Status: git.IndexRenamed},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("2"), script, gomock.Len(0)).Return(0, nil)

	result, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 1)
}

func TestRun_HooksDirNamesTriedInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/git-hooks/pre-commit")
	td.writeHook(t, "1/hooks/pre-commit")
	fallback := td.writeHook(t, "2/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.IndexNew},
		{Path: "2/a", Status: git.IndexNew},
	}, nil)
	gomock.InOrder(
		td.mockExecutor.EXPECT().Execute(td.path("1"), script, gomock.Len(0)).Return(0, nil),
		td.mockExecutor.EXPECT().Execute(td.path("2"), fallback, gomock.Len(0)).Return(0, nil),
	)

	params := td.params()
	params.HooksDirNames = []string{"git-hooks", "hooks"}
	result, err := td.dispatcher.Run(params)
	assert.NoError(t, err)
	assert.Len(t, result.Executed, 2)
}

func TestRun_VerboseEchoesHookLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, true)
	child := td.writeHook(t, "1/2/hooks/pre-commit")
	parent := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexNew},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1/2"), child, gomock.Len(0)).Return(0, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), parent, gomock.Len(0)).Return(0, nil)

	_, err := td.dispatcher.Run(td.params())
	assert.NoError(t, err)
	want := "git-hooks-dispatch: Executing hook (" + filepath.Join("1", "2") + ")\n" +
		"git-hooks-dispatch: Executing hook (1)\n"
	assert.Equal(t, want, td.out.String())
}

func TestRun_ExecutorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	script := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/a", Status: git.IndexNew},
	}, nil)
	td.mockExecutor.EXPECT().Execute(td.path("1"), script, gomock.Len(0)).Return(0, errors.New("exec format error"))

	_, err := td.dispatcher.Run(td.params())
	assert.ErrorIs(t, err, ErrExecute)
}

func TestRun_StatusError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.mockGit.EXPECT().Status(td.root).Return(nil, git.ErrStatusFailed)

	_, err := td.dispatcher.Run(td.params())
	assert.ErrorIs(t, err, git.ErrStatusFailed)
}

func TestRun_InvalidPathEncoding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/\xff", Status: git.IndexNew},
	}, nil)

	_, err := td.dispatcher.Run(td.params())
	assert.ErrorIs(t, err, ErrPathEncoding)
}

func TestRun_PathOutsideRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "../a", Status: git.IndexNew},
	}, nil)

	_, err := td.dispatcher.Run(td.params())
	assert.ErrorIs(t, err, ErrPathOutsideRepo)
}

func TestRun_ProbeErrorAbortsBeforeExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	td.mkdir(t, "1/2")
	mockLocator := hookmocks.NewMockLocator(ctrl)
	dispatcher := NewDispatcher(NewDispatcherParams{
		FS:       fs.NewFS(),
		Git:      td.mockGit,
		Executor: td.mockExecutor,
		Locator:  mockLocator,
	})

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexNew},
	}, nil)
	gomock.InOrder(
		mockLocator.EXPECT().Find(td.path("1/2"), "pre-commit", []string{"hooks"}).
			Return(&hook.Hook{ScriptPath: td.path("1/2/hooks/pre-commit"), BaseDir: td.path("1/2")}, nil),
		mockLocator.EXPECT().Find(td.path("1"), "pre-commit", []string{"hooks"}).
			Return(nil, hook.ErrProbe),
	)

	// Nothing runs, not even the hook found before the failure
	_, err := dispatcher.Run(td.params())
	assert.ErrorIs(t, err, hook.ErrProbe)
}

func TestRun_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*RunParams)
		wantErr error
	}{
		{"empty hook name", func(p *RunParams) { p.HookName = "" }, hook.ErrInvalidHookName},
		{"dot dot hook name", func(p *RunParams) { p.HookName = ".." }, hook.ErrInvalidHookName},
		{"hook name with separator", func(p *RunParams) { p.HookName = "a/pre-commit" }, hook.ErrInvalidHookName},
		{"no hooks dir names", func(p *RunParams) { p.HooksDirNames = nil }, hook.ErrNoHooksDirNames},
		{"relative repo root", func(p *RunParams) { p.RepoRoot = "repo" }, ErrRepoRootNotAbsolute},
		{"missing repo root", func(p *RunParams) { p.RepoRoot = filepath.Join(p.RepoRoot, "missing") }, ErrRepoRootNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No git or executor call is expected
			td := newTestDispatcher(t, ctrl, false)
			params := td.params()
			tt.modify(&params)

			_, err := td.dispatcher.Run(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDiscover_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDispatcher(t, ctrl, false)
	child := td.writeHook(t, "1/2/hooks/pre-commit")
	parent := td.writeHook(t, "1/hooks/pre-commit")

	td.mockGit.EXPECT().Status(td.root).Return([]git.ChangeRecord{
		{Path: "1/2/a", Status: git.IndexNew},
		{Path: "1/b", Status: git.WtModified},
	}, nil).Times(2)

	first, err := td.dispatcher.Discover(td.params())
	require.NoError(t, err)
	second, err := td.dispatcher.Discover(td.params())
	require.NoError(t, err)

	want := []hook.Hook{
		{ScriptPath: child, BaseDir: td.path("1/2")},
		{ScriptPath: parent, BaseDir: td.path("1")},
	}
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}
