package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page identifies one of the session's views.
type Page int

const (
	PageMenu Page = iota
	PageGame
	PageHangar
	PageScores
	PageQuit
)

// MenuItem is one selectable line of the main menu.
type MenuItem struct {
	Title  string
	Target Page
	Guest  bool // available without an account
}

// defaultMenuItems lists the main menu in display order.
var defaultMenuItems = []MenuItem{
	{Title: "Play", Target: PageGame, Guest: true},
	{Title: "Hangar", Target: PageHangar},
	{Title: "Leaderboard", Target: PageScores, Guest: true},
	{Title: "Quit", Target: PageQuit, Guest: true},
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	menuMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	player    string
	coins     int
	hasCoins  bool
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when the user picks an entry
}

// NewMenuModel creates a menu for player. An empty player means guest play,
// which hides the entries that need an account.
func NewMenuModel(player string, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(defaultMenuItems))
	for _, it := range defaultMenuItems {
		if player == "" && !it.Guest {
			continue
		}
		items = append(items, it)
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		player:    player,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case coinsMsg:
		m.coins = msg.coins
		m.hasCoins = true
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			if selected.Target == PageQuit {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("J U M P Y   B I R D"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuMutedStyle.Render(m.playerLine()), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) playerLine() string {
	if m.player == "" {
		return "Playing as guest. Runs are not saved."
	}
	if !m.hasCoins {
		return fmt.Sprintf("Player: %s", m.player)
	}
	return fmt.Sprintf("Player: %s  |  Coins: %d", m.player, m.coins)
}

// Selected returns the chosen item, or nil if none yet.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
