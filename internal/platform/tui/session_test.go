package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "jumpy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestSession(t *testing.T, store *storage.Store, user string) SessionModel {
	t.Helper()
	return NewSessionModel(context.Background(), Options{
		Store:    store,
		Username: user,
		Game:     config.DefaultJumpyConfig(),
		Runtime:  testRuntime(),
	})
}

func updateSession(m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func menuTitles(m MenuModel) []string {
	titles := make([]string, len(m.items))
	for i, it := range m.items {
		titles[i] = it.Title
	}
	return titles
}

func TestSessionResolvesPlayer(t *testing.T) {
	store := openStore(t)
	m := newTestSession(t, store, "alice")

	assert.Equal(t, "alice", m.Player())
	assert.Equal(t, PageMenu, m.Page())
	assert.Equal(t, []string{"Play", "Hangar", "Leaderboard", "Quit"}, menuTitles(m.menu))

	p, err := store.PlayerByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, storage.StartingCoins, p.Coins)
}

func TestSessionGuestHidesHangar(t *testing.T) {
	m := newTestSession(t, nil, "alice")
	assert.Empty(t, m.Player())
	assert.Equal(t, []string{"Play", "Leaderboard", "Quit"}, menuTitles(m.menu))
	assert.Contains(t, m.View(), "guest")
}

func TestSessionInvalidNameFallsBackToGuest(t *testing.T) {
	m := newTestSession(t, openStore(t), "   ")
	assert.Empty(t, m.Player())
	assert.Nil(t, m.account())
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t, openStore(t), "alice")

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PageGame, m.Page())
	require.NotNil(t, m.game)

	m, _ = updateSession(m, runeKey('b'))
	assert.Equal(t, PageMenu, m.Page())
	assert.NotNil(t, m.game, "game is kept for the next visit")

	// Ticks arriving outside the game end the tick chain
	m, _ = updateSession(m, frameTime(1))
	assert.False(t, m.ticking)

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PageGame, m.Page())
	assert.True(t, m.ticking)
	assert.False(t, m.game.BackToMenu())
}

func TestSessionOpensHangarAndScores(t *testing.T) {
	m := newTestSession(t, openStore(t), "alice")

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PageHangar, m.Page())
	for _, msg := range runCmds(cmd) {
		m, _ = updateSession(m, msg)
	}
	assert.True(t, m.hangar.loaded)
	assert.Equal(t, storage.StartingCoins, m.hangar.Coins())

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, PageMenu, m.Page())
	assert.Nil(t, m.hangar)

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = updateSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PageScores, m.Page())
	for _, msg := range runCmds(cmd) {
		m, _ = updateSession(m, msg)
	}
	assert.False(t, m.scores.loading)
}

func TestSessionSkipMenu(t *testing.T) {
	m := NewSessionModel(context.Background(), Options{
		Game:     config.DefaultJumpyConfig(),
		Runtime:  testRuntime(),
		SkipMenu: true,
	})

	msgs := runCmds(m.Init())
	require.Len(t, msgs, 1)
	m, _ = updateSession(m, msgs[0])
	assert.Equal(t, PageGame, m.Page())
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newTestSession(t, nil, "")
	m, cmd := updateSession(m, runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}
