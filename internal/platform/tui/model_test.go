package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/games/bearrun"
	"github.com/vovakirdan/bear-run/internal/storage"
)

func shortRun() config.RunConfig {
	cfg := config.DefaultRunConfig()
	cfg.Timing.Total = 200 * time.Millisecond
	cfg.Timing.DisplayGrace = 0
	cfg.Goal.RevealAt = 0
	cfg.Obstacles.IntervalMin = time.Hour
	cfg.Obstacles.IntervalMax = time.Hour
	return cfg
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	cfg.Player = "tester"
	return NewModel(shortRun(), cfg, Deps{
		Store:  store,
		Logger: log.New(io.Discard),
	})
}

// frame delivers a frame at the given offset from the scheduler origin.
func frame(t *testing.T, m Model, at time.Duration) Model {
	t.Helper()
	next, _ := m.Update(FrameMsg(m.sched.origin.Add(at)))
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model from Update, got %T", next)
	}
	return model
}

func TestModelRecordsOutcomeOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := newTestModel(t, store)
	m.Init()

	m = frame(t, m, 10*time.Millisecond)
	if got := m.Snapshot().Phase; got != bearrun.PhaseRunning {
		t.Fatalf("expected running after the first frame, got %v", got)
	}

	m = frame(t, m, 300*time.Millisecond)
	if got := m.Snapshot().Reason; got != bearrun.EndTimeout {
		t.Fatalf("expected timeout, got %v", got)
	}
	m = frame(t, m, 320*time.Millisecond)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	r := runs[0]
	if r.Outcome != storage.OutcomeLost || r.Reason != "timeout" {
		t.Errorf("expected lost/timeout, got %s/%s", r.Outcome, r.Reason)
	}
	if r.Player != "tester" || r.Seed != 42 {
		t.Errorf("expected player tester with seed 42, got %s/%d", r.Player, r.Seed)
	}
}

func TestModelJumpKeyRestartsAfterEnd(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m = frame(t, m, 10*time.Millisecond)
	m = frame(t, m, 300*time.Millisecond)
	if !m.Snapshot().Phase.Over() {
		t.Fatal("expected the run to be over")
	}
	gen := m.Snapshot().Generation

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)

	snap := m.Snapshot()
	if snap.Phase != bearrun.PhaseNotStarted {
		t.Errorf("expected a fresh session, got %v", snap.Phase)
	}
	if snap.Generation != gen+1 {
		t.Errorf("expected generation %d, got %d", gen+1, snap.Generation)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("expected no obstacles before the first tick, got %d", len(snap.Obstacles))
	}
}

func TestModelResizeRebuildsSession(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m = frame(t, m, 10*time.Millisecond)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 41})
	m = next.(Model)

	snap := m.Snapshot()
	if snap.Phase != bearrun.PhaseNotStarted {
		t.Errorf("expected a new session after resize, got %v", snap.Phase)
	}
	// 160x40 cells is 1280x640 pixels
	if snap.Surface != (bearrun.Size{W: 1280, H: 640}) {
		t.Errorf("expected 1280x640 surface, got %+v", snap.Surface)
	}
	if m.screen.Width() != 160 || m.screen.Height() != 40 {
		t.Errorf("expected 160x40 screen, got %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !m.IsQuitting() {
		t.Error("expected quitting after q")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view while quitting")
	}
}

func TestModelSaveScreenshot(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m = frame(t, m, 10*time.Millisecond)

	path, err := m.SaveScreenshot(t.TempDir())
	if err != nil {
		t.Fatalf("SaveScreenshot() failed: %v", err)
	}
	if filepath.Ext(path) != ".txt" {
		t.Errorf("expected a .txt screenshot, got %s", path)
	}
}

func TestModelDefaultLoggerStaysSilent(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() failed: %v", err)
	}
	stderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = stderr })

	m := NewModel(shortRun(), core.DefaultConfig(), Deps{})
	m.deps.Logger.Error("must not reach the terminal")

	os.Stderr = stderr
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected nothing on stderr, got %q", out)
	}
}
