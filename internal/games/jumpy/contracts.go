package jumpy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCharacter is always selectable, whatever the progression store says.
const DefaultCharacter = "bird"

// RunResult is the terminal snapshot of one run, produced once at the
// Active to Over transition.
type RunResult struct {
	RunID             uuid.UUID
	FinalScore        int
	ElapsedActiveTime time.Duration
	CharacterID       string
}

// Receipt is what the persistence collaborator returns for a saved run.
type Receipt struct {
	NewCoinBalance int
}

// RunSubmitter persists run results. Implementations must treat a repeated
// RunID as already saved. The machine never retries.
type RunSubmitter interface {
	SubmitRunResult(ctx context.Context, run RunResult) (Receipt, error)
}

// CharacterSource answers which characters a player has unlocked.
type CharacterSource interface {
	UnlockedCharacters(ctx context.Context, userID int64) ([]string, error)
}

// Roster returns the characters selectable by userID: the default character
// first, followed by the unlocked ones without duplicates. A nil source, an
// error, or an empty answer all collapse to the default character alone.
func Roster(ctx context.Context, src CharacterSource, userID int64) []string {
	roster := []string{DefaultCharacter}
	if src == nil {
		return roster
	}
	ids, err := src.UnlockedCharacters(ctx, userID)
	if err != nil {
		return roster
	}
	seen := map[string]bool{DefaultCharacter: true}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		roster = append(roster, id)
	}
	return roster
}

// SubmitStatus tracks the persistence outcome of the latest run.
type SubmitStatus int

const (
	SubmitNone    SubmitStatus = iota // no run finished yet
	SubmitPending                     // handed to the submitter, no answer yet
	SubmitSaved
	SubmitFailed
	SubmitSkipped // guest play, nothing to save
)

// String returns a short label for the status.
func (s SubmitStatus) String() string {
	switch s {
	case SubmitNone:
		return "none"
	case SubmitPending:
		return "saving"
	case SubmitSaved:
		return "saved"
	case SubmitFailed:
		return "not saved"
	case SubmitSkipped:
		return "guest"
	default:
		return "unknown"
	}
}
