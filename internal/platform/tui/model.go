package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/games/bearrun"
	"github.com/vovakirdan/bear-run/internal/storage"
)

// Deps are the collaborators of a play model. Every field is optional.
type Deps struct {
	Store  *storage.Store
	Cues   bearrun.Cues
	Logger *log.Logger
}

// Model is the Bubble Tea model for one player's Bear Run. Update is the
// only goroutine that touches the session.
type Model struct {
	session *bearrun.Session
	sched   *teaScheduler
	screen  *core.Screen
	run     config.RunConfig
	config  core.RuntimeConfig
	deps    Deps
	keys    KeyMap
	help    help.Model

	seed     int64
	savedGen uint64
	saved    bool // Outcome of generation savedGen is in the ledger
	quitting bool
}

// NewModel creates a model sized to cfg. The session starts on Init.
func NewModel(run config.RunConfig, cfg core.RuntimeConfig, deps Deps) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Cues == nil {
		deps.Cues = bearrun.NopCues{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		sched:  newTeaScheduler(cfg.TickRate),
		screen: core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		run:    run,
		config: cfg,
		deps:   deps,
		keys:   DefaultKeyMap(),
		help:   h,
		seed:   cfg.Seed,
	}
	m.session = m.newSession()
	return m
}

// playRows leaves the bottom row for the help footer.
func playRows(rows int) int {
	return max(rows-1, 1)
}

func (m *Model) newSession() *bearrun.Session {
	play := m.config
	play.ScreenH = playRows(play.ScreenH)
	w, h := play.SurfaceSize()
	surface := bearrun.Size{W: w, H: h}
	m.deps.Logger.Debug("new session", "surface", fmt.Sprintf("%.0fx%.0f", surface.W, surface.H), "seed", m.seed)
	return bearrun.NewSession(m.run, surface, m.sched,
		bearrun.WithSource(bearrun.NewSource(m.seed)),
		bearrun.WithCues(m.deps.Cues),
	)
}

// Init starts the session and its frame loop.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return m.sched.drain()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		m.sched.handleFrame(time.Time(msg))
		m.recordOutcome()

	case timerMsg:
		m.sched.handleTimer(msg.id)
	}

	return m, m.sched.drain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.session.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionJump:
		// One key both jumps and, once the run is over, restarts
		if m.session.Phase().Over() {
			m.restart()
		} else {
			m.session.RequestJump()
		}

	case core.ActionRestart:
		m.restart()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, m.sched.drain()
}

func (m *Model) restart() {
	if m.session.RequestRestart() {
		m.deps.Logger.Debug("run restarted", "generation", m.session.Generation())
	}
}

// handleResize rebuilds the session for the new surface. The scale is fixed
// for a session's lifetime, so a resize mid-run starts over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))

	m.session.Stop()
	m.session = m.newSession()
	m.saved = false
	m.session.Start()

	return m, m.sched.drain()
}

// recordOutcome writes a finished run to the ledger once per generation.
func (m *Model) recordOutcome() {
	if !m.session.Phase().Over() {
		return
	}
	gen := m.session.Generation()
	if m.saved && m.savedGen == gen {
		return
	}
	m.saved = true
	m.savedGen = gen

	res := m.session.Result()
	m.deps.Logger.Info("run finished",
		"outcome", res.Phase,
		"reason", res.Reason,
		"survived", res.Elapsed.Round(10*time.Millisecond),
		"spawned", res.Spawned,
		"jumps", res.Jumps,
	)

	if m.deps.Store == nil {
		return
	}
	if _, err := m.deps.Store.SaveRun(storage.NewRun(m.config.Player, m.seed, res)); err != nil {
		m.deps.Logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot writes the frame under ~/.bearrun/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	path, err := m.SaveScreenshot(filepath.Join(home, ".bearrun", "screenshots"))
	if err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.deps.Logger.Info("screenshot saved", "path", path)
}

// Snapshot exposes the current session snapshot.
func (m Model) Snapshot() bearrun.Snapshot {
	return m.session.Snapshot()
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawScene(m.screen, m.session.Snapshot())
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + footer
}

// SaveScreenshot writes the current frame as plain text under dir and
// returns the file path.
func (m Model) SaveScreenshot(dir string) (string, error) {
	DrawScene(m.screen, m.session.Snapshot())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("bearrun_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// Run starts the Bubble Tea program with the given model.
func Run(run config.RunConfig, cfg core.RuntimeConfig, deps Deps) error {
	p := tea.NewProgram(
		NewModel(run, cfg, deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
