package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

// fakeAccount records submissions in memory.
type fakeAccount struct {
	mu        sync.Mutex
	coins     int
	unlocked  []string
	submitted []jumpy.RunResult
	failWith  error
}

func (f *fakeAccount) SubmitRunResult(_ context.Context, run jumpy.RunResult) (jumpy.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return jumpy.Receipt{}, f.failWith
	}
	f.submitted = append(f.submitted, run)
	f.coins += run.FinalScore
	return jumpy.Receipt{NewCoinBalance: f.coins}, nil
}

func (f *fakeAccount) UnlockedCharacters(context.Context, int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.unlocked...), nil
}

func (f *fakeAccount) PlayerID() int64 { return 1 }

func (f *fakeAccount) Coins(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coins, nil
}

func (f *fakeAccount) Unlock(_ context.Context, id string, cost int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.unlocked {
		if u == id {
			return f.coins, storage.ErrAlreadyUnlocked
		}
	}
	if cost > f.coins {
		return f.coins, storage.ErrInsufficientCoins
	}
	f.coins -= cost
	f.unlocked = append(f.unlocked, id)
	return f.coins, nil
}

var errOffline = errors.New("offline")

// runCmds executes cmd, expanding batches, and returns every non-nil message
// except ticks.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmds(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// frameTime returns the wall time of tick n at 60 Hz.
func frameTime(n int) TickMsg {
	return TickMsg(time.Unix(1000, 0).Add(time.Duration(n) * (time.Second / 60)))
}
