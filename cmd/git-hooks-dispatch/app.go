package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lerenn/git-hooks-dispatch/cmd/git-hooks-dispatch/internal/cli"
	"github.com/lerenn/git-hooks-dispatch/pkg/config"
	"github.com/lerenn/git-hooks-dispatch/pkg/dispatch"
	"github.com/lerenn/git-hooks-dispatch/pkg/executor"
	"github.com/lerenn/git-hooks-dispatch/pkg/fs"
	"github.com/lerenn/git-hooks-dispatch/pkg/git"
	"github.com/lerenn/git-hooks-dispatch/pkg/hook"
	"github.com/lerenn/git-hooks-dispatch/pkg/logger"
	"github.com/spf13/cobra"
)

// app holds everything read from the process at start, so commands never
// look at the ambient environment themselves.
type app struct {
	env    cli.Environment
	stdout io.Writer
	stderr io.Writer
	getwd  func() (string, error)

	fs       fs.FS
	git      git.Git
	executor executor.Executor
	config   config.Manager

	newDispatcher func(params dispatch.NewDispatcherParams) dispatch.Dispatcher

	exitCode int
}

func newApp(environ []string, stdout, stderr io.Writer) *app {
	return &app{
		env:      cli.ParseEnvironment(environ),
		stdout:   stdout,
		stderr:   stderr,
		getwd:    os.Getwd,
		fs:       fs.NewFS(),
		git:      git.NewGit(),
		executor: executor.NewExecutorWithParams(executor.NewExecutorParams{Stdout: stdout, Stderr: stderr}),
		config:   config.NewManager(),

		newDispatcher: dispatch.NewDispatcher,
	}
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string) int {
	// cobra falls back to os.Args on nil
	if args == nil {
		args = []string{}
	}

	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "git-hooks-dispatch: %v\n", err)
		return 1
	}
	return a.exitCode
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-hooks-dispatch <hook> [args...]",
		Short: "Run the local hooks of every directory touched by the working tree changes",
		Long: `Dispatch a git hook to the hook scripts of the directories containing changed files.

For each changed path, every directory from the path's parent up to the
repository root is checked for a hooks directory (see --hooks-dir) holding a
script named after the hook. Matching scripts run closest first, once each,
from the directory holding the hooks directory. The first failing hook stops
the dispatch and its exit code becomes git-hooks-dispatch's exit code.

Arguments after the hook name are forwarded verbatim to every hook.

Install it as a git hook, e.g. in .git/hooks/pre-commit:

  #!/bin/sh
  exec git-hooks-dispatch pre-commit "$@"`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDispatch(cmd, args[0], args[1:])
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	// Everything after the hook name belongs to the hook
	rootCmd.Flags().SetInterspersed(false)
	cli.AddFlags(rootCmd.Flags())

	return rootCmd
}

func (a *app) runDispatch(cmd *cobra.Command, hookName string, hookArgs []string) error {
	flags := cmd.Flags()

	allowCustom, err := flags.GetBool(cli.FlagAllowCustomHook)
	if err != nil {
		return err
	}
	if !allowCustom {
		if err := hook.ValidateName(hookName); err != nil {
			return err
		}
	}

	level, err := cli.ResolveLogLevel(flags, a.env)
	if err != nil {
		return err
	}
	log := logger.NewZapLogger(level, a.stderr)
	for _, kv := range a.env.GitVars() {
		log.Debugf("env: %s", kv)
	}
	log.Debugf("hook = %s, args = %q", hookName, hookArgs)

	wd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	topLevel, err := a.git.TopLevel(wd)
	if err != nil {
		return err
	}
	// Hooks are reported relative to the same symlink-free root the dispatcher walks
	repoRoot, err := a.fs.Canonicalize(topLevel)
	if err != nil {
		return err
	}

	settings, err := cli.ResolveSettings(flags, a.env, repoRoot, a.config)
	if err != nil {
		return err
	}
	log.Debugf("settings: %+v", settings)

	dispatcher := a.newDispatcher(dispatch.NewDispatcherParams{
		FS:       a.fs,
		Git:      a.git,
		Executor: a.executor,
		Logger:   log,
		Out:      a.stdout,
		Verbose:  settings.Verbose,
	})
	params := dispatch.RunParams{
		RepoRoot:      repoRoot,
		HookName:      hookName,
		HookArgs:      hookArgs,
		HooksDirNames: settings.HooksDirs,
		RootPolicy:    settings.RootPolicy,
	}

	dryRun, err := flags.GetBool(cli.FlagDryRun)
	if err != nil {
		return err
	}
	if dryRun {
		return a.printHooks(dispatcher, params)
	}

	result, err := dispatcher.Run(params)
	if err != nil {
		return err
	}
	a.exitCode = result.Code
	return nil
}

// printHooks lists the hooks a dispatch would run, one per line.
func (a *app) printHooks(dispatcher dispatch.Dispatcher, params dispatch.RunParams) error {
	hooks, err := dispatcher.Discover(params)
	if err != nil {
		return err
	}

	for _, h := range hooks {
		rel, err := h.RelBaseDir(params.RepoRoot)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s\t%s\n", rel, h.ScriptPath)
	}
	return nil
}
