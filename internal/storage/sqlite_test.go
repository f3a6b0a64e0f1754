package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/bear-run/internal/games/bearrun"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRuns(t *testing.T, store *Store, runs ...Run) {
	t.Helper()
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}
}

func lost(reason string, survived time.Duration) Run {
	return Run{Player: "tester", Outcome: OutcomeLost, Reason: reason, Survived: survived}
}

func won(survived time.Duration) Run {
	return Run{Player: "tester", Outcome: OutcomeWon, Reason: "goal", Survived: survived}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	saveRuns(t, store,
		lost("collision", 12*time.Second),
		won(104500*time.Millisecond),
		lost("timeout", 105*time.Second),
	)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Reason != "timeout" || runs[2].Reason != "collision" {
		t.Errorf("unexpected order: %s, %s, %s", runs[0].Reason, runs[1].Reason, runs[2].Reason)
	}
	if runs[1].Survived != 104500*time.Millisecond || !runs[1].Won() {
		t.Errorf("won run read back as %+v", runs[1])
	}
	if runs[0].Player != "tester" {
		t.Errorf("player = %q, expected tester", runs[0].Player)
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Outcome: "running"}); err == nil {
		t.Error("expected an error for a run that has not ended")
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	saveRuns(t, store,
		lost("collision", 30*time.Second),
		won(100*time.Second),
		lost("collision", 60*time.Second),
		won(95*time.Second),
	)

	runs, err := store.BestRuns(10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}

	want := []time.Duration{95 * time.Second, 100 * time.Second, 60 * time.Second, 30 * time.Second}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(runs))
	}
	for i, d := range want {
		if runs[i].Survived != d {
			t.Errorf("rank %d survived %v, expected %v", i, runs[i].Survived, d)
		}
	}
}

func TestStoreRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveRuns(t, store, lost("collision", time.Duration(i)*time.Second))
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("expected 5 runs, got %d", len(runs))
	}

	// Non-positive limit falls back to 10
	runs, err = store.BestRuns(0)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("expected 10 runs, got %d", len(runs))
	}
}

func TestStoreRunsByOutcome(t *testing.T) {
	store := openTestStore(t)

	saveRuns(t, store, lost("collision", time.Second), won(99*time.Second), lost("timeout", 105*time.Second))

	tests := []struct {
		outcome  string
		expected int
	}{
		{OutcomeWon, 1},
		{OutcomeLost, 2},
		{"", 3},
	}
	for _, tc := range tests {
		runs, err := store.RunsByOutcome(tc.outcome, 10)
		if err != nil {
			t.Fatalf("RunsByOutcome(%q) failed: %v", tc.outcome, err)
		}
		if len(runs) != tc.expected {
			t.Errorf("RunsByOutcome(%q) returned %d runs, expected %d", tc.outcome, len(runs), tc.expected)
		}
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty ledger failed: %v", err)
	}
	if empty.Played != 0 || empty.FastestWin != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	a := lost("collision", 40*time.Second)
	a.Jumps = 12
	b := won(98 * time.Second)
	b.Jumps = 30
	saveRuns(t, store, a, b, won(96*time.Second), lost("timeout", 105*time.Second), lost("collision", 3*time.Second))

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 5 || stats.Won != 2 || stats.Lost != 3 {
		t.Errorf("played/won/lost = %d/%d/%d, expected 5/2/3", stats.Played, stats.Won, stats.Lost)
	}
	if stats.FastestWin != 96*time.Second {
		t.Errorf("FastestWin = %v, expected 96s", stats.FastestWin)
	}
	if stats.LongestLoss != 105*time.Second {
		t.Errorf("LongestLoss = %v, expected 105s", stats.LongestLoss)
	}
	if stats.TotalJumps != 42 {
		t.Errorf("TotalJumps = %d, expected 42", stats.TotalJumps)
	}
	if stats.LossByReason["collision"] != 2 || stats.LossByReason["timeout"] != 1 {
		t.Errorf("LossByReason = %v", stats.LossByReason)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store, lost("collision", time.Second), won(90*time.Second))

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected an empty ledger, got %d runs", len(runs))
	}
}

func TestNewRunFromResult(t *testing.T) {
	tests := []struct {
		name    string
		res     bearrun.Result
		outcome string
		reason  string
	}{
		{"goal", bearrun.Result{Phase: bearrun.PhaseWon, Reason: bearrun.EndGoal, Elapsed: 97 * time.Second}, OutcomeWon, "goal"},
		{"crash", bearrun.Result{Phase: bearrun.PhaseLost, Reason: bearrun.EndCollision, Elapsed: 5 * time.Second}, OutcomeLost, "collision"},
		{"time up", bearrun.Result{Phase: bearrun.PhaseLost, Reason: bearrun.EndTimeout, Elapsed: 105 * time.Second}, OutcomeLost, "timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRun("p1", 42, tc.res)
			if r.Outcome != tc.outcome || r.Reason != tc.reason || r.Survived != tc.res.Elapsed || r.Seed != 42 {
				t.Errorf("NewRun() = %+v", r)
			}
		})
	}
}
