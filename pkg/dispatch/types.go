package dispatch

import (
	"io"

	"github.com/lerenn/git-hooks-dispatch/pkg/executor"
	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
	"github.com/lerenn/git-hooks-dispatch/pkg/logger"
)

// RootPolicy tells whether the repository root is a hook location.
type RootPolicy int

const (
	// RootExclude ends every ancestor walk before the repository root.
	RootExclude RootPolicy = iota
	// RootInclude probes the repository root last.
	RootInclude
)

func (p RootPolicy) String() string {
	if p == RootInclude {
		return "include"
	}
	return "exclude"
}

// State is the stage a run is in.
type State int

// Run states. Succeeded, HookFailed and SystemError are terminal.
const (
	StateIdle State = iota
	StateEnumerating
	StateExpanding
	StateProbing
	StateExecuting
	StateSucceeded
	StateHookFailed
	StateSystemError
)

var stateNames = [...]string{
	StateIdle:        "Idle",
	StateEnumerating: "Enumerating",
	StateExpanding:   "Expanding",
	StateProbing:     "Probing",
	StateExecuting:   "Executing",
	StateSucceeded:   "Succeeded",
	StateHookFailed:  "HookFailed",
	StateSystemError: "SystemError",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// RunParams contains parameters for Run and Discover.
type RunParams struct {
	// RepoRoot is the absolute path of the working tree; no directory above it is probed.
	RepoRoot string
	// HookName is the script name looked up in hooks directories, e.g. "pre-commit".
	HookName string
	// HookArgs are forwarded verbatim to every hook.
	HookArgs []string
	// HooksDirNames are the hooks directory names, tried in order.
	HooksDirNames []string
	RootPolicy    RootPolicy
}

// Result is the outcome of a run that did not hit a system error.
type Result struct {
	// Code is 0, or the exit code of the hook that failed.
	Code  int
	State State
	// Executed lists the hooks that were run, in order, including the failed one.
	Executed []hook.Hook
	Failed   *hook.Hook
}

// NewDispatcherParams contains parameters for creating a new Dispatcher instance.
type NewDispatcherParams struct {
	FS       fs.FS
	Git      git.Git
	Executor executor.Executor
	// Locator defaults to a Locator over FS.
	Locator hook.Locator
	// Logger defaults to a noop logger.
	Logger logger.Logger
	// Out receives the verbose hook echo. Defaults to io.Discard.
	Out     io.Writer
	Verbose bool
}
