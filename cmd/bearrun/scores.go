package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bear-run/internal/platform/tui"
	"github.com/vovakirdan/bear-run/internal/storage"
)

var (
	flagBest  bool
	flagLimit int
	flagBoard bool
	flagClear bool
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show recorded runs",
		Long: `Display recorded runs and overall statistics.

By default the most recent runs are listed. With --best, wins come first
ordered by fastest finish, then losses by longest survival.

Examples:
  bearrun scores
  bearrun scores --best --limit 5
  bearrun scores --board
  bearrun scores --clear`,
		Args: cobra.NoArgs,
		Run:  runScores,
	}

	cmd.Flags().BoolVar(&flagBest, "best", false, "Rank runs instead of listing the latest")
	cmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&flagBoard, "board", false, "Browse runs in an interactive scoreboard")
	cmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	return cmd
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open runs database", "error", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			logger.Error("cannot clear runs", "error", err)
			return
		}
		logger.Info("runs cleared", "db", flagDBPath)
		return
	}

	if flagBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			logger.Error("scoreboard failed", "error", err)
		}
		return
	}

	var runs []storage.Run
	if flagBest {
		runs, err = store.BestRuns(flagLimit)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		logger.Error("cannot retrieve runs", "error", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bearrun play' to record the first one!")
		return
	}

	title := "Recent runs"
	if flagBest {
		title = "Best runs"
	}
	fmt.Println(title)
	fmt.Println()

	fmt.Printf("  %-4s  %-7s  %-9s  %-9s  %-5s  %-12s  %s\n", "Rank", "Outcome", "Reason", "Survived", "Jumps", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-9s  %-9s  %-5s  %-12s  %s\n", "----", "-------", "------", "--------", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7s  %-9s  %8.2fs  %-5d  %-12s  %s\n",
			i+1, r.Outcome, r.Reason, r.Survived.Seconds(), r.Jumps, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("cannot compute stats", "error", err)
		return
	}
	printStats(stats)
}

func printStats(st *storage.Stats) {
	fmt.Println()
	fmt.Printf("Played %d, won %d, lost %d, %d jumps\n", st.Played, st.Won, st.Lost, st.TotalJumps)
	if st.FastestWin > 0 {
		fmt.Printf("Fastest win:  %.2fs\n", st.FastestWin.Seconds())
	}
	if st.LongestLoss > 0 {
		fmt.Printf("Longest loss: %.2fs\n", st.LongestLoss.Seconds())
	}
	reasons := make([]string, 0, len(st.LossByReason))
	for r := range st.LossByReason {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  lost by %-9s %d\n", r, st.LossByReason[r])
	}
}
