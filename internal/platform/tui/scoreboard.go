package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-run/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the stats sidebar
	sidebarWidth       = 26
	maxRuns            = 100
)

// boardTab filters the ledger by outcome.
type boardTab struct {
	title   string
	outcome string // Empty means every run
}

var boardTabs = []boardTab{
	{title: "All", outcome: ""},
	{title: "Won", outcome: storage.OutcomeWon},
	{title: "Lost", outcome: storage.OutcomeLost},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next filter"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the run ledger.
type ScoreboardModel struct {
	store    *storage.Store
	tab      int
	runs     []storage.Run
	stats    *storage.Stats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Outcome", Width: 8},
		{Title: "Reason", Width: 10},
		{Title: "Survived", Width: 9},
		{Title: "Jumps", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the current tab and the aggregate stats.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		if runs, err := m.store.RunsByOutcome(boardTabs[m.tab].outcome, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Outcome,
			r.Reason,
			formatSurvived(r.Survived),
			fmt.Sprintf("%d", r.Jumps),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatSurvived(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(boardTabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(boardTabs) - 1) % len(boardTabs)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("BEAR RUN - RUNS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar() {
		sidebarStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(sidebarWidth).
			Padding(0, 1)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.renderStats()), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(boardTabs))
	for i, t := range boardTabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(" " + t.title + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderStats renders the aggregate numbers for the sidebar.
func (m ScoreboardModel) renderStats() string {
	var b strings.Builder
	b.WriteString("Stats\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	st := m.stats
	if st == nil || st.Played == 0 {
		b.WriteString("No runs yet")
		return b.String()
	}

	fmt.Fprintf(&b, "Played:  %d\n", st.Played)
	fmt.Fprintf(&b, "Won:     %d\n", st.Won)
	fmt.Fprintf(&b, "Lost:    %d\n", st.Lost)
	fmt.Fprintf(&b, "Jumps:   %d\n", st.TotalJumps)
	if st.FastestWin > 0 {
		fmt.Fprintf(&b, "Fastest: %s\n", formatSurvived(st.FastestWin))
	}
	if st.LongestLoss > 0 {
		fmt.Fprintf(&b, "Longest: %s\n", formatSurvived(st.LongestLoss))
	}

	reasons := make([]string, 0, len(st.LossByReason))
	for r := range st.LossByReason {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(&b, "  %-10s %d\n", r, st.LossByReason[r])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nGo and help the bear home!")
	}
	return m.table.View()
}

// IsQuitting returns true if the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
