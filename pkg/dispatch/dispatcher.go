package dispatch

import (
	"io"

	"github.com/lerenn/git-hooks-dispatch/pkg/executor"
	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
	"github.com/lerenn/git-hooks-dispatch/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=dispatcher.go -destination=mocks/dispatcher.gen.go -package=mocks

// Dispatcher finds and runs the hooks triggered by the working tree changes.
type Dispatcher interface {
	// Run discovers the hooks and executes them one by one, stopping at the
	// first non-zero exit code. A failing hook is reported in the Result,
	// errors are reserved for system failures.
	Run(params RunParams) (Result, error)
	// Discover returns the hooks Run would execute, in execution order.
	Discover(params RunParams) ([]hook.Hook, error)
}

type realDispatcher struct {
	fs       fs.FS
	git      git.Git
	executor executor.Executor
	locator  hook.Locator
	logger   logger.Logger
	out      io.Writer
	verbose  bool
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(params NewDispatcherParams) Dispatcher {
	d := &realDispatcher{
		fs:       params.FS,
		git:      params.Git,
		executor: params.Executor,
		locator:  params.Locator,
		logger:   params.Logger,
		out:      params.Out,
		verbose:  params.Verbose,
	}
	if d.locator == nil {
		d.locator = hook.NewLocator(d.fs)
	}
	if d.logger == nil {
		d.logger = logger.NewNoopLogger()
	}
	if d.out == nil {
		d.out = io.Discard
	}
	return d
}

func (d *realDispatcher) setState(state State) {
	d.logger.Debugf("state: %s", state)
}
