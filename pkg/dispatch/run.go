package dispatch

import (
	"fmt"

	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
)

// Run discovers the hooks and executes them one by one, stopping at the first failure.
func (d *realDispatcher) Run(params RunParams) (Result, error) {
	repoRoot, hooks, err := d.discover(params)
	if err != nil {
		d.setState(StateSystemError)
		return Result{}, err
	}

	result, err := d.execute(repoRoot, hooks, params.HookArgs)
	if err != nil {
		d.setState(StateSystemError)
		return result, err
	}

	d.setState(result.State)
	return result, nil
}

func (d *realDispatcher) execute(repoRoot string, hooks []hook.Hook, args []string) (Result, error) {
	d.setState(StateExecuting)

	result := Result{State: StateSucceeded}
	for i := range hooks {
		h := hooks[i]

		if d.verbose {
			rel, err := h.RelBaseDir(repoRoot)
			if err != nil {
				return result, fmt.Errorf("%w: %w", ErrResolvePath, err)
			}
			fmt.Fprintf(d.out, "git-hooks-dispatch: Executing hook (%s)\n", rel)
		}
		d.logger.Infof("executing hook (%s) in (%s)", h.ScriptPath, h.BaseDir)

		code, err := d.executor.Execute(h.BaseDir, h.ScriptPath, args)
		if err != nil {
			return result, fmt.Errorf("%w %s: %w", ErrExecute, h.ScriptPath, err)
		}
		result.Executed = append(result.Executed, h)

		if code != 0 {
			d.logger.Errorf("hook exit with status code (%d)", code)
			result.Code = code
			result.State = StateHookFailed
			result.Failed = &h
			return result, nil
		}
	}

	return result, nil
}
