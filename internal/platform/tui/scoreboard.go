package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

// ScoreSource is the read side of the store the scoreboard shows.
type ScoreSource interface {
	Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
	History(ctx context.Context, playerID int64, limit int) ([]storage.Run, error)
}

// ScoreTab selects which table the scoreboard shows.
type ScoreTab int

const (
	TabLeaderboard ScoreTab = iota
	TabHistory
)

func (t ScoreTab) String() string {
	if t == TabHistory {
		return "My runs"
	}
	return "Leaderboard"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Refresh, k.Back, k.Quit},
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
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoresLoadedMsg carries freshly read rows for one tab.
type scoresLoadedMsg struct {
	tab  ScoreTab
	rows []table.Row
	err  error
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	source    ScoreSource
	playerID  int64 // zero for guests, who only see the leaderboard
	player    string
	tab       ScoreTab
	rows      []table.Row
	loading   bool
	err       error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	timeout   time.Duration
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source ScoreSource, playerID int64, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:   source,
		playerID: playerID,
		player:   player,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
		timeout:  DefaultSubmitTimeout,
		loading:  true,
	}
	m.table = m.createTable()
	return m
}

// columns returns the table columns for the current tab.
func (m ScoreboardModel) columns() []table.Column {
	if m.tab == TabHistory {
		return []table.Column{
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 8},
			{Title: "Character", Width: 10},
			{Title: "Played", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Best", Width: 7},
		{Title: "Runs", Width: 6},
		{Title: "Last played", Width: 14},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, tabs, and help
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

// Init loads the first tab.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.loadCmd(m.tab)
}

// loadCmd reads one tab from the store off the UI loop.
func (m ScoreboardModel) loadCmd(tab ScoreTab) tea.Cmd {
	source, playerID, timeout := m.source, m.playerID, m.timeout
	return func() tea.Msg {
		if source == nil {
			return scoresLoadedMsg{tab: tab}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if tab == TabHistory {
			runs, err := source.History(ctx, playerID, storage.DefaultHistoryLimit)
			return scoresLoadedMsg{tab: tab, rows: historyRows(runs), err: err}
		}
		entries, err := source.Leaderboard(ctx, storage.DefaultLeaderboardLimit)
		return scoresLoadedMsg{tab: tab, rows: leaderboardRows(entries), err: err}
	}
}

func leaderboardRows(entries []storage.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			e.Username,
			fmt.Sprintf("%d", e.BestScore),
			fmt.Sprintf("%d", e.Runs),
			e.LastPlayed.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func historyRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Score),
			r.PlayTime.Truncate(100 * time.Millisecond).String(),
			r.CharacterID,
			r.PlayedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
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

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			if m.playerID == 0 {
				return m, nil
			}
			m.tab = (m.tab + 1) % 2
			return m.reload()

		case key.Matches(msg, m.keys.Refresh):
			return m.reload()

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case scoresLoadedMsg:
		if msg.tab != m.tab {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.table.SetRows(m.rows)
		m.table.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// reload rebuilds the table for the current tab and fetches its rows.
func (m ScoreboardModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.rows = nil
	m.table = m.createTable()
	return m, m.loadCmd(m.tab)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	if m.tab == TabHistory {
		title = "RUNS - " + m.player
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs draws the tab strip. Guests only get the leaderboard.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := []ScoreTab{TabLeaderboard}
	if m.playerID != 0 {
		tabs = append(tabs, TabHistory)
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t == m.tab {
			parts[i] = activeTabStyle.Render(t.String())
		} else {
			parts[i] = tabStyle.Render(t.String())
		}
	}
	return strings.Join(parts, " ")
}

// renderTableContent renders the table or a placeholder.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	case m.loading:
		return emptyStyle.Render("Loading...")
	case len(m.rows) == 0 && m.tab == TabHistory:
		return emptyStyle.Render("No runs yet.\nEvery point you score is a coin!")
	case len(m.rows) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// Rows returns the rows currently shown.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

// Tab returns the active tab.
func (m ScoreboardModel) Tab() ScoreTab {
	return m.tab
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
