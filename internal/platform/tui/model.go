package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/jumpy-bird/internal/characters"
	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
)

// DefaultSubmitTimeout bounds one run submission.
const DefaultSubmitTimeout = 5 * time.Second

// Account is what the game needs from the persistence side for one player.
// A nil Account means guest play.
type Account interface {
	jumpy.RunSubmitter
	jumpy.CharacterSource
	PlayerID() int64
	Coins(ctx context.Context) (int, error)
}

// submitResultMsg carries the outcome of a run submission back to the loop.
type submitResultMsg struct {
	runID   uuid.UUID
	receipt jumpy.Receipt
	err     error
}

// rosterMsg carries the characters selectable by the player.
type rosterMsg struct {
	ids []string
}

// coinsMsg carries a balance read from the store.
type coinsMsg struct {
	coins int
}

// GameModel is the Bubble Tea model that drives one game session.
type GameModel struct {
	machine    *jumpy.Machine
	screen     *core.Screen
	account    Account
	config     core.RuntimeConfig
	clock      FixedStep
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	logger     *log.Logger
	player     string
	timeout    time.Duration
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model for the named player. account may be nil
// for guest play.
func NewGameModel(game config.JumpyConfig, account Account, player string, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	machine := jumpy.NewMachine(game, cfg.Seed)
	machine.SetGuest(account == nil)

	return GameModel{
		machine:    machine,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		account:    account,
		config:     cfg,
		clock:      NewFixedStep(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		player:     player,
		timeout:    DefaultSubmitTimeout,
	}
}

// Init starts the tick loop and asks for the roster and balance.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		m.rosterCmd(),
		m.coinsCmd(),
	)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case submitResultMsg:
		if !m.machine.ReportSubmission(msg.runID, msg.receipt, msg.err) {
			m.logger.Debug("stale submission result dropped", "run", msg.runID)
		}
		return m, nil

	case rosterMsg:
		m.machine.SetRoster(msg.ids)
		return m, nil

	case coinsMsg:
		m.machine.SetCoins(msg.coins)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	state := m.machine.State()
	if m.keyMapper.IsBack(msg) && state != jumpy.StateActive {
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, state, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick runs as many fixed steps as the wall clock allows. Input queued
// since the last tick is applied on the first of them.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	steps := m.clock.Advance(now)
	for i := 0; i < steps; i++ {
		res := m.machine.Step(m.clock.Dt(), m.inputFrame)
		m.inputFrame.Clear()

		if res.Finished != nil {
			m.logger.Info("run finished",
				"run", res.Finished.RunID,
				"score", res.Finished.FinalScore,
				"time", res.Finished.ElapsedActiveTime.Round(time.Millisecond),
				"character", res.Finished.CharacterID,
			)
			if m.account != nil {
				cmds = append(cmds, m.submitCmd(*res.Finished))
			}
		}
		if res.EnteredIdle {
			cmds = append(cmds, m.rosterCmd())
		}
	}

	return m, tea.Batch(cmds...)
}

// submitCmd hands the run to the store off the simulation loop.
func (m GameModel) submitCmd(run jumpy.RunResult) tea.Cmd {
	account, timeout, logger := m.account, m.timeout, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		receipt, err := account.SubmitRunResult(ctx, run)
		if err != nil {
			logger.Warn("run not saved", "run", run.RunID, "error", err)
		}
		return submitResultMsg{runID: run.RunID, receipt: receipt, err: err}
	}
}

// rosterCmd asks the store which characters the player can pick.
func (m GameModel) rosterCmd() tea.Cmd {
	if m.account == nil {
		return func() tea.Msg {
			return rosterMsg{ids: jumpy.Roster(context.Background(), nil, 0)}
		}
	}
	account, timeout := m.account, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return rosterMsg{ids: jumpy.Roster(ctx, account, account.PlayerID())}
	}
}

// coinsCmd reads the balance once at start.
func (m GameModel) coinsCmd() tea.Cmd {
	return fetchCoins(m.account, m.timeout, m.logger)
}

// fetchCoins reads account's balance off the UI loop. Guests have none.
func fetchCoins(account Account, timeout time.Duration, logger *log.Logger) tea.Cmd {
	if account == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		coins, err := account.Coins(ctx)
		if err != nil {
			logger.Warn("cannot read balance", "error", err)
			return nil
		}
		return coinsMsg{coins: coins}
	}
}

// reenter prepares a model the player left for the menu. Wall time spent
// away is not simulated, and the roster is re-read in case of new unlocks.
func (m GameModel) reenter(tick bool) (GameModel, tea.Cmd) {
	m.backToMenu = false
	m.inputFrame.Clear()
	m.clock.Reset()

	cmds := []tea.Cmd{m.rosterCmd(), m.coinsCmd()}
	if tick {
		cmds = append(cmds, tickCmd(m.config.TickRate))
	}
	return m, tea.Batch(cmds...)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".jumpy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("jumpy_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m *GameModel) render() {
	snap := m.machine.Snapshot()
	jumpy.Render(snap, m.screen, characters.Skin(snap.Character))
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	snap := m.machine.Snapshot()
	return RenderFrame(m.screen, m.statusLeft(snap), statusHints(snap.State))
}

// statusLeft describes who is playing and how the run is going.
func (m GameModel) statusLeft(snap jumpy.Snapshot) string {
	who := m.player
	if m.account == nil {
		who = "guest"
	}
	return fmt.Sprintf("%s  ·  %s  ·  %s  ·  gap %.0f",
		who, snap.State, snap.Elapsed.Truncate(time.Second), snap.Difficulty.GapHeight)
}

// statusHints lists the keys that do something in state.
func statusHints(state jumpy.State) string {
	switch state {
	case jumpy.StateIdle:
		return "space flap  ←/→ character  b menu  q quit"
	case jumpy.StateActive:
		return "space flap  p pause  q quit"
	case jumpy.StatePaused:
		return "p resume  b menu  q quit"
	default:
		return "r restart  b menu  q quit"
	}
}

// Snapshot exposes the machine state, mainly for tests.
func (m GameModel) Snapshot() jumpy.Snapshot {
	return m.machine.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
