package storage

import (
	"context"

	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
)

// Ledger binds the store to one player so the simulation can submit runs
// and look up unlocks without knowing about storage.
type Ledger struct {
	store    *Store
	playerID int64
}

// NewLedger returns a ledger for playerID.
func NewLedger(store *Store, playerID int64) *Ledger {
	return &Ledger{store: store, playerID: playerID}
}

// PlayerID returns the bound player.
func (l *Ledger) PlayerID() int64 {
	return l.playerID
}

// SubmitRunResult implements jumpy.RunSubmitter.
func (l *Ledger) SubmitRunResult(ctx context.Context, run jumpy.RunResult) (jumpy.Receipt, error) {
	balance, err := l.store.SubmitRun(ctx, l.playerID, RunRecord{
		RunID:       run.RunID.String(),
		Score:       run.FinalScore,
		PlayTime:    run.ElapsedActiveTime,
		CharacterID: run.CharacterID,
	})
	if err != nil {
		return jumpy.Receipt{}, err
	}
	return jumpy.Receipt{NewCoinBalance: balance}, nil
}

// UnlockedCharacters implements jumpy.CharacterSource.
func (l *Ledger) UnlockedCharacters(ctx context.Context, userID int64) ([]string, error) {
	return l.store.UnlockedCharacters(ctx, userID)
}

// Coins returns the bound player's balance.
func (l *Ledger) Coins(ctx context.Context) (int, error) {
	return l.store.Coins(ctx, l.playerID)
}

// Unlock buys a character for the bound player.
func (l *Ledger) Unlock(ctx context.Context, characterID string, cost int) (int, error) {
	return l.store.UnlockCharacter(ctx, l.playerID, characterID, cost)
}

// Ensure Ledger implements the simulation's collaborator interfaces
var (
	_ jumpy.RunSubmitter    = (*Ledger)(nil)
	_ jumpy.CharacterSource = (*Ledger)(nil)
)
