// bearrun is a terminal side-scroller: help the bear run home before the
// clock runs out.
//
// Usage:
//
//	bearrun play             - Play in this terminal
//	bearrun serve            - Start SSH server for remote play
//	bearrun scores           - Show recent runs and stats
//	bearrun simulate         - Run headless sessions with the autopilot
//	bearrun config           - Print the effective run configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.bearrun/runs.db)
//	--config <path>     - Load a custom run config YAML
//	--log-level <lvl>   - debug, info, warn or error
//
// Every global flag can also be set from a BEARRUN_* environment variable.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-run/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	env config.EnvConfig
)

func main() {
	var err error
	env, err = config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bearrun",
		Short: "Bear Run - a terminal side-scroller",
		Long: `Bear Run is a side-scrolling runner for the terminal. Jump over
stumps, rocks and crates, survive the blackouts and reach the goal
before the clock runs out.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View recorded runs
  simulate  - Run headless sessions with the autopilot
  config    - Print the run configuration

Examples:
  bearrun play
  bearrun play --seed 42 --mute
  bearrun serve --ssh :2222
  bearrun scores --best
  bearrun simulate --runs 20`,
		SilenceUsage: true,
	}

	// Global persistent flags, defaulted from the environment
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to the runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom run config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bearrun",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// loadRunConfig loads the run config or exits.
func loadRunConfig(logger *log.Logger) config.RunConfig {
	run, err := config.LoadRun(flagConfig)
	if err != nil {
		logger.Fatal("cannot load run config", "error", err)
	}
	return run
}

// playerName picks the name recorded with a run.
func playerName() string {
	if env.Player != "" {
		return env.Player
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
