package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

// Options configures one player session.
type Options struct {
	// Store persists runs and unlocks. Nil means nothing is saved.
	Store *storage.Store

	// Username identifies the player. Empty means guest play.
	Username string

	// Game is the tuning the simulation runs with.
	Game config.JumpyConfig

	// Runtime holds the terminal size, tick rate and seed.
	Runtime core.RuntimeConfig

	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// SkipMenu starts directly in the game.
	SkipMenu bool
}

// SessionModel manages the full session flow: menu, game, hangar and
// scoreboard. It is the top-level model for both local and SSH play.
type SessionModel struct {
	opts     Options
	ledger   *storage.Ledger
	player   string
	page     Page
	menu     MenuModel
	game     *GameModel
	hangar   *HangarModel
	scores   *ScoreboardModel
	ticking  bool
	quitting bool
}

// NewSessionModel resolves the player and builds the session. A store
// failure downgrades the session to guest play rather than refusing it.
func NewSessionModel(ctx context.Context, opts Options) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := SessionModel{opts: opts}
	if opts.Store != nil && opts.Username != "" {
		p, err := opts.Store.EnsurePlayer(ctx, opts.Username)
		if err != nil {
			opts.Logger.Warn("playing as guest", "user", opts.Username, "error", err)
		} else {
			m.ledger = storage.NewLedger(opts.Store, p.ID)
			m.player = p.Username
		}
	}

	m.menu = NewMenuModel(m.player, opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m
}

// account returns the ledger as an Account, or a nil interface for guests.
func (m SessionModel) account() Account {
	if m.ledger == nil {
		return nil
	}
	return m.ledger
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.SkipMenu {
		return func() tea.Msg { return openPageMsg{page: PageGame} }
	}
	return tea.Batch(m.menu.Init(), fetchCoins(m.account(), DefaultSubmitTimeout, m.opts.Logger))
}

// openPageMsg switches the session to another page.
type openPageMsg struct {
	page Page
}

// Update routes messages to the active page.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height

	case openPageMsg:
		return m.open(msg.page)

	case TickMsg:
		if m.page != PageGame || m.game == nil {
			// The tick chain ends here and restarts on re-entry.
			m.ticking = false
			return m, nil
		}

	case submitResultMsg, rosterMsg:
		// Results of work started by the game, even if the player has left it.
		if m.game != nil {
			return m.updateGame(msg)
		}
		return m, nil

	case coinsMsg:
		m.menu, _ = updateAs(m.menu, msg)
		if m.game != nil {
			g, _ := updateAs(*m.game, msg)
			m.game = &g
		}
		return m, nil
	}

	switch m.page {
	case PageGame:
		return m.updateGame(msg)
	case PageHangar:
		return m.updateHangar(msg)
	case PageScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateAs runs a child model's Update and restores its concrete type.
func updateAs[T tea.Model](child T, msg tea.Msg) (T, tea.Cmd) {
	next, cmd := child.Update(msg)
	if t, ok := next.(T); ok {
		return t, cmd
	}
	return child, cmd
}

// open switches to page, building its model on first use.
func (m SessionModel) open(page Page) (tea.Model, tea.Cmd) {
	w, h := m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH
	m.page = page

	switch page {
	case PageGame:
		if m.game == nil {
			g := NewGameModel(m.opts.Game, m.account(), m.player, m.opts.Runtime, m.opts.Logger)
			m.game = &g
			m.ticking = true
			return m, g.Init()
		}
		g, cmd := m.game.reenter(!m.ticking)
		g.screen.Resize(w, playfieldHeight(h))
		m.game = &g
		m.ticking = true
		return m, cmd

	case PageHangar:
		if m.ledger == nil {
			m.page = PageMenu
			return m, nil
		}
		hg := NewHangarModel(m.ledger, w, h)
		m.hangar = &hg
		return m, hg.Init()

	case PageScores:
		var src ScoreSource
		var playerID int64
		if m.opts.Store != nil {
			src = m.opts.Store
		}
		if m.ledger != nil {
			playerID = m.ledger.PlayerID()
		}
		sb := NewScoreboardModel(src, playerID, m.player, w, h)
		m.scores = &sb
		return m, sb.Init()

	default:
		m.page = PageMenu
		m.menu = NewMenuModel(m.player, w, h)
		return m, fetchCoins(m.account(), DefaultSubmitTimeout, m.opts.Logger)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = updateAs(m.menu, msg)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.open(selected.Target)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, cmd := updateAs(*m.game, msg)
	m.game = &g

	if g.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if g.BackToMenu() && m.page == PageGame {
		return m.open(PageMenu)
	}

	return m, cmd
}

// updateHangar handles updates when in the hangar.
func (m SessionModel) updateHangar(msg tea.Msg) (tea.Model, tea.Cmd) {
	hg, cmd := updateAs(*m.hangar, msg)
	m.hangar = &hg

	if hg.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if hg.IsGoingBack() {
		m.hangar = nil
		return m.open(PageMenu)
	}

	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	sb, cmd := updateAs(*m.scores, msg)
	m.scores = &sb

	if sb.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if sb.IsGoingBack() {
		m.scores = nil
		return m.open(PageMenu)
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.page == PageGame && m.game != nil:
		return m.game.View()
	case m.page == PageHangar && m.hangar != nil:
		return m.hangar.View()
	case m.page == PageScores && m.scores != nil:
		return m.scores.View()
	}
	return m.menu.View()
}

// Page returns the active page.
func (m SessionModel) Page() Page {
	return m.page
}

// Player returns the resolved username, empty for guests.
func (m SessionModel) Player() string {
	return m.player
}

// Run plays a local session on the current terminal until the player quits.
func Run(ctx context.Context, opts Options) error {
	model := NewSessionModel(ctx, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
