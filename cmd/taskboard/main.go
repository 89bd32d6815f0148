package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/config"
	"github.com/hylla/taskboard/internal/platform"
	"github.com/hylla/taskboard/internal/tui"
	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

// program is the subset of *tea.Program the CLI drives.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the TUI program; tests swap it out.
var programFactory = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithContext(ctx))
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run builds the command tree and executes it with args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetIn(os.Stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
	logLevel   string
}

// resolvePaths returns per-user paths and the effective config path.
func (o *rootOptions) resolvePaths() (platform.Paths, string, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: o.appName,
		DevMode: o.devMode,
	})
	if err != nil {
		return platform.Paths{}, "", fmt.Errorf("resolve paths: %w", err)
	}
	configPath := strings.TrimSpace(o.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	return paths, configPath, nil
}

// loadConfig loads the config file and applies flag overrides.
func (o *rootOptions) loadConfig(configPath string) (config.Config, error) {
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	return cfg, nil
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{
		appName: "taskboard",
		devMode: version == "dev",
	}
	if envDev, ok := parseBoolEnv("TASKBOARD_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("TASKBOARD_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Organize your daily tasks in the terminal",
		Long: `taskboard is a single-screen task board.

Add, edit, complete, delete, and filter tasks by category. Tasks live in
memory for the length of the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/log path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev) and dev file logging")
	flags.StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newPathsCommand(opts, stdout),
		newConfigCommand(opts, stdout),
	)
	return root
}

func newPathsCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and log locations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, configPath, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", configPath)
			_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

func newConfigCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, configPath, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("config already exists: %s (use --force to overwrite)", configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.Write(configPath, config.Default()); err != nil {
				return fmt.Errorf("write config %q: %w", configPath, err)
			}
			_, _ = fmt.Fprintf(stdout, "wrote %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}

// runBoard loads config, wires logging, and runs the TUI until it exits.
func runBoard(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	paths, configPath, err := opts.resolvePaths()
	if err != nil {
		return err
	}
	cfg, err := opts.loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// The TUI owns the terminal; runtime logs go to the dev file sink only.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "log_dir", paths.LogDir)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	board := app.NewBoard(uuid.NewString, app.BoardConfig{
		Filter: cfg.Board.Filter(),
		Seed:   app.DefaultSeed(),
	})
	logger.Debug("board seeded", "tasks", board.Len(), "filter", board.Filter())

	m := tui.NewModel(
		board,
		tui.WithLogger(logger),
		tui.WithDefaultCategory(cfg.Board.Category()),
		tui.WithShowStats(cfg.Board.ShowStats),
		tui.WithKeyConfig(toTUIKeyConfig(cfg.Keys)),
	)
	logger.Info("starting tui program loop")
	final, err := programFactory(ctx, m).Run()
	if err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	if done, ok := final.(tui.Model); ok {
		stats := done.Board().Stats()
		logger.Info("tui program finished", "total", stats.Total, "active", stats.Active, "completed", stats.Completed)
	} else {
		logger.Info("tui program finished")
	}
	return nil
}

// toTUIKeyConfig maps config key overrides onto the TUI key map.
func toTUIKeyConfig(cfg config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		AddTask:    cfg.AddTask,
		EditTask:   cfg.EditTask,
		ToggleTask: cfg.ToggleTask,
		DeleteTask: cfg.DeleteTask,
		NextFilter: cfg.NextFilter,
		CopyTitle:  cfg.CopyTitle,
	}
}

// parseBoolEnv reads a boolean env var; ok is false when unset or malformed.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
