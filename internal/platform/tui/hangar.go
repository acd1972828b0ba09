package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
	"github.com/vovakirdan/jumpy-bird/internal/registry"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

// Shop is what the hangar needs to list and buy characters.
type Shop interface {
	Account
	Unlock(ctx context.Context, characterID string, cost int) (int, error)
}

// HangarKeyMap defines the key bindings for the hangar.
type HangarKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HangarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HangarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Buy}, {k.Back, k.Quit}}
}

// DefaultHangarKeyMap returns default key bindings.
func DefaultHangarKeyMap() HangarKeyMap {
	return HangarKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "unlock"),
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

// hangarLoadedMsg carries the owned set and balance.
type hangarLoadedMsg struct {
	owned []string
	coins int
	err   error
}

// unlockResultMsg carries the outcome of a purchase.
type unlockResultMsg struct {
	id      string
	balance int
	err     error
}

var (
	hangarOwnedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Width(10)
	hangarLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	hangarErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hangarBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// HangarModel lists every registered character and lets the player unlock
// the ones they can afford.
type HangarModel struct {
	shop      Shop
	items     []registry.Character
	owned     map[string]bool
	coins     int
	loaded    bool
	busy      bool
	status    string
	statusErr bool
	cursor    int
	width     int
	height    int
	keys      HangarKeyMap
	help      help.Model
	timeout   time.Duration
	quitting  bool
	goingBack bool
}

// NewHangarModel creates a hangar backed by shop.
func NewHangarModel(shop Shop, width, height int) HangarModel {
	return HangarModel{
		shop:    shop,
		items:   registry.List(),
		owned:   map[string]bool{jumpy.DefaultCharacter: true},
		width:   width,
		height:  height,
		keys:    DefaultHangarKeyMap(),
		help:    help.New(),
		timeout: DefaultSubmitTimeout,
	}
}

// Init loads the owned characters and the balance.
func (m HangarModel) Init() tea.Cmd {
	shop, timeout := m.shop, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		owned, err := shop.UnlockedCharacters(ctx, shop.PlayerID())
		if err != nil {
			return hangarLoadedMsg{err: err}
		}
		coins, err := shop.Coins(ctx)
		return hangarLoadedMsg{owned: owned, coins: coins, err: err}
	}
}

// Update handles messages for the hangar.
func (m HangarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case hangarLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.setStatus("Could not load your hangar: "+msg.err.Error(), true)
			return m, nil
		}
		for _, id := range msg.owned {
			m.owned[id] = true
		}
		m.coins = msg.coins
		return m, nil

	case unlockResultMsg:
		m.busy = false
		switch {
		case msg.err == nil:
			m.owned[msg.id] = true
			m.coins = msg.balance
			m.setStatus(fmt.Sprintf("Unlocked %s!", m.name(msg.id)), false)
		case errors.Is(msg.err, storage.ErrInsufficientCoins):
			m.setStatus("Not enough coins.", true)
		case errors.Is(msg.err, storage.ErrAlreadyUnlocked):
			m.owned[msg.id] = true
			m.setStatus("Already in your hangar.", false)
		default:
			m.setStatus("Purchase failed: "+msg.err.Error(), true)
		}
		return m, nil
	}

	return m, nil
}

func (m HangarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.goingBack = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Buy):
		return m.buy()
	}

	return m, nil
}

// buy starts a purchase of the character under the cursor.
func (m HangarModel) buy() (tea.Model, tea.Cmd) {
	if m.busy || !m.loaded || len(m.items) == 0 {
		return m, nil
	}
	c := m.items[m.cursor]
	if m.owned[c.ID] || c.Free() {
		m.setStatus(c.Name+" is already yours.", false)
		return m, nil
	}
	if c.Cost > m.coins {
		m.setStatus(fmt.Sprintf("%s costs %d coins, you have %d.", c.Name, c.Cost, m.coins), true)
		return m, nil
	}

	m.busy = true
	m.setStatus("Unlocking "+c.Name+"...", false)

	shop, timeout := m.shop, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		balance, err := shop.Unlock(ctx, c.ID, c.Cost)
		return unlockResultMsg{id: c.ID, balance: balance, err: err}
	}
}

func (m *HangarModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m HangarModel) name(id string) string {
	for _, c := range m.items {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// View renders the hangar.
func (m HangarModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HANGAR"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuMutedStyle.Render(fmt.Sprintf("Coins: %d", m.coins)), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, c := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		var tag string
		if m.owned[c.ID] || c.Free() {
			tag = hangarOwnedStyle.Render("owned")
		} else {
			tag = hangarLockedStyle.Render(fmt.Sprintf("%d coins", c.Cost))
		}
		line := fmt.Sprintf("%s%s %-8s %s %s",
			cursor, ColorStyle(c.Color).Render(string(c.Glyph)), c.Name, tag, menuMutedStyle.Render(c.Blurb))
		if i > 0 {
			list.WriteString("\n")
		}
		list.WriteString(line)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hangarBoxStyle.Render(list.String())))
	b.WriteString("\n\n")

	if m.status != "" {
		style := menuMutedStyle
		if m.statusErr {
			style = hangarErrorStyle
		}
		b.WriteString(centerText(style.Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HangarModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HangarModel) IsQuitting() bool {
	return m.quitting
}

// Coins returns the last known balance.
func (m HangarModel) Coins() int {
	return m.coins
}
