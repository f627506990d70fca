package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=executor.go -destination=mocks/executor.gen.go -package=mocks

// Executor runs one hook script.
type Executor interface {
	// Execute runs scriptPath with args from workingDir, relays its output and
	// waits for it. A non-zero exit code is returned as a code, not an error.
	Execute(workingDir, scriptPath string, args []string) (int, error)
}

// NewExecutorParams contains parameters for creating a new Executor instance.
type NewExecutorParams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type realExecutor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an Executor relaying hook I/O to the current process.
func NewExecutor() Executor {
	return NewExecutorWithParams(NewExecutorParams{})
}

// NewExecutorWithParams creates an Executor with custom streams. Nil streams
// default to the process' own.
func NewExecutorWithParams(params NewExecutorParams) Executor {
	e := &realExecutor{
		stdin:  params.Stdin,
		stdout: params.Stdout,
		stderr: params.Stderr,
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Execute runs scriptPath with args from workingDir and returns its exit code.
func (e *realExecutor) Execute(workingDir, scriptPath string, args []string) (int, error) {
	cmd := exec.Command(scriptPath, args...)
	cmd.Dir = workingDir
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr), nil
	}

	return 0, fmt.Errorf("%w %s: %w", ErrSpawn, scriptPath, err)
}

// exitCode returns the child's exit code, or 1 when it has none (killed by a signal).
func exitCode(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code > 0 {
		return code
	}
	return 1
}
