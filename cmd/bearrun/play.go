package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bear-run/internal/audio"
	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/games/bearrun"
	"github.com/vovakirdan/bear-run/internal/platform/tui"
	"github.com/vovakirdan/bear-run/internal/storage"
)

var (
	flagMute    bool
	flagVolume  float64
	flagLogFile string
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play Bear Run",
		Long: `Start a run in this terminal.

Controls:
  Space/Up   - Jump (restart after the run is over)
  R          - Restart after the run is over
  ?          - More keys
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

The terminal owns stdout while playing, so logs go to --log-file.

Examples:
  bearrun play
  bearrun play --seed 42
  bearrun play --mute
  bearrun play --config ./my-run.yaml`,
		Args: cobra.NoArgs,
		Run:  runPlay,
	}

	cmd.Flags().BoolVar(&flagMute, "mute", !env.Audio, "Disable sound")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound volume in (0, 1]")
	cmd.Flags().StringVar(&flagLogFile, "log-file", env.LogFile, "Where to write logs while playing")
	return cmd
}

func runPlay(_ *cobra.Command, _ []string) {
	logOut, err := openLogFile(flagLogFile)
	if err != nil {
		newLogger(os.Stderr).Fatal("cannot start logging", "error", err)
	}
	defer logOut.Close()
	logger := newLogger(logOut)

	run := loadRunConfig(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   playerName(),
	}

	var cues bearrun.Cues = audio.Nop{}
	if !flagMute {
		player, audioErr := audio.New(flagVolume)
		if audioErr != nil {
			logger.Warn("audio disabled", "error", audioErr)
		} else {
			defer player.Close()
			cues = player
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(run, cfg, tui.Deps{
		Store:  store,
		Cues:   cues,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game exited with error", "error", runErr)
		os.Exit(1)
	}
}
