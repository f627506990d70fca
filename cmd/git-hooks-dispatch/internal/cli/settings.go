package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lerenn/git-hooks-dispatch/pkg/config"
	"github.com/lerenn/git-hooks-dispatch/pkg/dispatch"
	"github.com/lerenn/git-hooks-dispatch/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Flag names, also used as settings keys.
const (
	FlagHooksDir        = "hooks-dir"
	FlagIncludeRoot     = "include-root"
	FlagVerbose         = "verbose"
	FlagDryRun          = "dry-run"
	FlagConfig          = "config"
	FlagLogLevel        = "log-level"
	FlagAllowCustomHook = "allow-custom-hook"
)

// Settings is the resolved configuration of one invocation.
type Settings struct {
	HooksDirs  []string
	RootPolicy dispatch.RootPolicy
	Verbose    bool
	ConfigPath string
}

// AddFlags registers the command line flags on flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.StringSlice(FlagHooksDir, nil,
		"Hooks directory name, may be repeated; tried in order (default "+strings.Join(config.DefaultHooksDirs, ",")+")")
	flags.Bool(FlagIncludeRoot, false, "Also run the hook found at the repository root")
	flags.BoolP(FlagVerbose, "v", false, "Print each hook location before running it")
	flags.Bool(FlagDryRun, false, "List the hooks that would run without running them")
	flags.StringP(FlagConfig, "c", "", "Configuration file (default <repository root>/"+config.FileName+")")
	flags.String(FlagLogLevel, "", "Log level: debug, info, warn or error (default warn)")
	flags.Bool(FlagAllowCustomHook, false, "Accept hook names git does not know about")
}

// ResolveLogLevel returns the log level from the flag, then the environment.
func ResolveLogLevel(flags *pflag.FlagSet, env Environment) (zapcore.Level, error) {
	v := viper.New()
	if err := v.BindPFlag(FlagLogLevel, flags.Lookup(FlagLogLevel)); err != nil {
		return zapcore.WarnLevel, err
	}
	if value, ok := env.Lookup(EnvLogLevel); ok {
		if err := v.MergeConfigMap(map[string]any{FlagLogLevel: value}); err != nil {
			return zapcore.WarnLevel, err
		}
	}

	return logger.ParseLevel(v.GetString(FlagLogLevel))
}

// ResolveSettings merges, by decreasing priority, the command line flags, the
// environment, the configuration file and the defaults.
func ResolveSettings(flags *pflag.FlagSet, env Environment, repoRoot string, manager config.Manager) (Settings, error) {
	configPath, err := flags.GetString(FlagConfig)
	if err != nil {
		return Settings{}, err
	}
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(repoRoot, config.FileName)
	}

	fileConfig, err := loadFileConfig(manager, configPath, explicit)
	if err != nil {
		return Settings{}, err
	}

	v := viper.New()

	// Lowest priority: the configuration file (already holding the defaults)
	v.SetDefault(FlagHooksDir, fileConfig.HooksDirs)
	v.SetDefault(FlagIncludeRoot, fileConfig.IncludeRoot)
	v.SetDefault(FlagVerbose, fileConfig.Verbose)

	// Then the environment snapshot
	overrides, err := environmentOverrides(env)
	if err != nil {
		return Settings{}, err
	}
	if err := v.MergeConfigMap(overrides); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	// Highest priority: flags set on the command line
	for _, name := range []string{FlagHooksDir, FlagIncludeRoot, FlagVerbose} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return Settings{}, err
		}
	}

	settings := Settings{
		HooksDirs:  v.GetStringSlice(FlagHooksDir),
		RootPolicy: dispatch.RootExclude,
		Verbose:    v.GetBool(FlagVerbose),
		ConfigPath: configPath,
	}
	if v.GetBool(FlagIncludeRoot) {
		settings.RootPolicy = dispatch.RootInclude
	}

	resolved := config.Config{HooksDirs: settings.HooksDirs}
	if err := resolved.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	return settings, nil
}

// loadFileConfig loads the configuration file. Only an explicitly requested file must exist.
func loadFileConfig(manager config.Manager, configPath string, mustExist bool) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if mustExist {
		cfg, err = manager.LoadConfig(configPath)
	} else {
		cfg, err = manager.LoadConfigWithFallback(configPath)
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}

func environmentOverrides(env Environment) (map[string]any, error) {
	overrides := map[string]any{}

	if value, ok := env.Lookup(EnvHooksDirs); ok && value != "" {
		var dirs []string
		for _, dir := range strings.Split(value, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				dirs = append(dirs, dir)
			}
		}
		overrides[FlagHooksDir] = dirs
	}

	for key, name := range map[string]string{FlagIncludeRoot: EnvIncludeRoot, FlagVerbose: EnvVerbose} {
		value, ok := env.Lookup(name)
		if !ok || value == "" {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w %s=%q: %w", ErrInvalidEnvironment, name, value, err)
		}
		overrides[key] = b
	}

	return overrides, nil
}
