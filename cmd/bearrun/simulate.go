package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/games/bearrun"
	"github.com/vovakirdan/bear-run/internal/scheduler"
	"github.com/vovakirdan/bear-run/internal/storage"
)

var (
	flagRuns     int
	flagWidth    float64
	flagHeight   float64
	flagLead     float64
	flagRealtime bool
	flagRecord   bool
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run headless sessions with the autopilot",
		Long: `Run sessions without a terminal. A simple autopilot jumps when an
obstacle gets close. Sessions run on a virtual clock, so a full run takes
milliseconds; --realtime plays one at wall-clock speed instead.

Examples:
  bearrun simulate
  bearrun simulate --runs 50 --seed 1
  bearrun simulate --width 1920 --height 480
  bearrun simulate --realtime --log-level debug
  bearrun simulate --runs 10 --record`,
		Args: cobra.NoArgs,
		Run:  runSimulate,
	}

	cmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of sessions to run")
	cmd.Flags().Float64Var(&flagWidth, "width", 800, "Surface width in pixels")
	cmd.Flags().Float64Var(&flagHeight, "height", 200, "Surface height in pixels")
	cmd.Flags().Float64Var(&flagLead, "lead", bearrun.DefaultAutopilot().LeadFrames, "Autopilot lead in frames")
	cmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run one session at wall-clock speed")
	cmd.Flags().BoolVar(&flagRecord, "record", false, "Save results to the runs database")
	return cmd
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	run := loadRunConfig(logger)
	surface := bearrun.Size{W: flagWidth, H: flagHeight}
	pilot := bearrun.Autopilot{LeadFrames: flagLead}

	var store *storage.Store
	if flagRecord {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Fatal("cannot open runs database", "error", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if flagRealtime {
		res, err := simulateRealtime(run, surface, pilot, seed, logger)
		if err != nil {
			logger.Error("simulation interrupted", "error", err)
			return
		}
		report(logger, store, 1, seed, res)
		return
	}

	won := 0
	for i := range max(flagRuns, 1) {
		runSeed := seed + int64(i)
		res := simulateVirtual(run, surface, pilot, runSeed, flagFPS)
		if res.Phase == bearrun.PhaseWon {
			won++
		}
		report(logger, store, i+1, runSeed, res)
	}
	fmt.Printf("\n%d/%d runs reached the goal\n", won, max(flagRuns, 1))
}

// simulateVirtual runs one session to the end on the virtual clock.
func simulateVirtual(run config.RunConfig, surface bearrun.Size, pilot bearrun.Autopilot, seed int64, fps int) bearrun.Result {
	sched := scheduler.NewManual(time.Second / time.Duration(max(fps, 1)))
	session := bearrun.NewSession(run, surface, sched, bearrun.WithSource(bearrun.NewSource(seed)))

	var (
		res  bearrun.Result
		done bool
	)
	session.Start()
	pilot.Drive(session, sched, func(r bearrun.Result) {
		res = r
		done = true
	})

	// The timeout bounds every session; the slack covers frame rounding
	limit := run.Timing.Total + time.Second
	for !done && sched.Now() < limit {
		sched.Step()
	}
	if !done {
		session.Stop()
		res = session.Result()
	}
	return res
}

// simulateRealtime runs one session on the wall clock until it ends or the
// process is interrupted.
func simulateRealtime(run config.RunConfig, surface bearrun.Size, pilot bearrun.Autopilot, seed int64, logger *log.Logger) (bearrun.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := scheduler.NewLoop(flagFPS)
	session := bearrun.NewSession(run, surface, loop, bearrun.WithSource(bearrun.NewSource(seed)))

	var res bearrun.Result
	finished := false
	loop.Post(func() {
		session.Start()
		pilot.Drive(session, loop, func(r bearrun.Result) {
			res = r
			finished = true
			cancel()
		})
	})

	// Progress lines while the session runs
	var progress func()
	progress = func() {
		loop.After(time.Second, func() {
			snap := session.Snapshot()
			logger.Debug("running", "clock", snap.Clock, "speed", fmt.Sprintf("%.2f", snap.Speed), "obstacles", len(snap.Obstacles), "blackout", snap.BlackedOut)
			if !snap.Phase.Over() {
				progress()
			}
		})
	}
	loop.Post(progress)

	err := loop.Run(ctx)
	if finished {
		return res, nil
	}
	session.Stop()
	return session.Result(), err
}

func report(logger *log.Logger, store *storage.Store, n int, seed int64, res bearrun.Result) {
	fmt.Printf("run %3d  seed %-20d %-5s %-9s survived %6.2fs  spawned %3d  jumps %3d\n",
		n, seed, res.Phase, res.Reason, res.Elapsed.Seconds(), res.Spawned, res.Jumps)

	if store == nil {
		return
	}
	if _, err := store.SaveRun(storage.NewRun("autopilot", seed, res)); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
