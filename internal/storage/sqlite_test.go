package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(score int) RunRecord {
	return RunRecord{
		RunID:       uuid.NewString(),
		Score:       score,
		PlayTime:    time.Duration(score) * time.Second,
		CharacterID: jumpy.DefaultCharacter,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs migrations again without error
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestEnsurePlayer(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	p, err := store.EnsurePlayer(ctx, "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, StartingCoins, p.Coins)
	assert.NotZero(t, p.ID)

	again, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)

	_, err = store.EnsurePlayer(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidUsername)
	_, err = store.EnsurePlayer(ctx, string(make([]byte, 40)))
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = store.PlayerByName(ctx, "bob")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	_, err = store.Coins(ctx, 999)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestSubmitRunCreditsCoins(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	balance, err := store.SubmitRun(ctx, p.ID, record(7))
	require.NoError(t, err)
	assert.Equal(t, StartingCoins+7, balance)

	balance, err = store.SubmitRun(ctx, p.ID, record(0))
	require.NoError(t, err)
	assert.Equal(t, StartingCoins+7, balance)

	coins, err := store.Coins(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, balance, coins)
}

func TestSubmitRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	run := record(10)
	first, err := store.SubmitRun(ctx, p.ID, run)
	require.NoError(t, err)
	second, err := store.SubmitRun(ctx, p.ID, run)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	history, err := store.History(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSubmitRunRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	_, err = store.SubmitRun(ctx, p.ID, RunRecord{Score: 1})
	assert.Error(t, err)
	_, err = store.SubmitRun(ctx, p.ID, record(-1))
	assert.Error(t, err)
	_, err = store.SubmitRun(ctx, p.ID+100, record(3))
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	coins, err := store.Coins(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StartingCoins, coins)
}

func TestUnlockCharacter(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	_, err = store.UnlockCharacter(ctx, p.ID, "penguin", 50)
	require.ErrorIs(t, err, ErrInsufficientCoins)

	_, err = store.SubmitRun(ctx, p.ID, record(30))
	require.NoError(t, err)

	balance, err := store.UnlockCharacter(ctx, p.ID, "penguin", 50)
	require.NoError(t, err)
	assert.Equal(t, StartingCoins+30-50, balance)

	_, err = store.UnlockCharacter(ctx, p.ID, "penguin", 50)
	require.ErrorIs(t, err, ErrAlreadyUnlocked)

	balance, err = store.UnlockCharacter(ctx, p.ID, "bat", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	ids, err := store.UnlockedCharacters(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"penguin", "bat"}, ids)

	coins, err := store.Coins(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, coins)
}

func TestConcurrentUnlocksCannotOverspend(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	// 25 coins buy at most two characters at 10 each.
	var wg sync.WaitGroup
	var mu sync.Mutex
	bought := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.UnlockCharacter(ctx, p.ID, fmt.Sprintf("c%d", i), 10); err == nil {
				mu.Lock()
				bought++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, bought)
	coins, err := store.Coins(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, coins)
}

func TestLeaderboardAndRank(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	scores := map[string][]int{
		"alice": {5, 40, 12},
		"bob":   {40},
		"carol": {3},
		"dave":  {},
	}
	ids := map[string]int64{}
	for name, runs := range scores {
		p, err := store.EnsurePlayer(ctx, name)
		require.NoError(t, err)
		ids[name] = p.ID
		for _, s := range runs {
			_, err := store.SubmitRun(ctx, p.ID, record(s))
			require.NoError(t, err)
		}
	}

	board, err := store.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 3, "players without runs are not listed")

	assert.Equal(t, "alice", board[0].Username)
	assert.Equal(t, 40, board[0].BestScore)
	assert.Equal(t, 3, board[0].Runs)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "bob", board[1].Username)
	assert.Equal(t, 1, board[1].Rank, "ties share a rank")
	assert.Equal(t, "carol", board[2].Username)
	assert.Equal(t, 3, board[2].Rank)
	assert.False(t, board[0].LastPlayed.IsZero())

	top, err := store.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	rank, best, err := store.PlayerRank(ctx, ids["carol"])
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
	assert.Equal(t, 3, best)

	rank, best, err = store.PlayerRank(ctx, ids["bob"])
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.Equal(t, 40, best)

	rank, _, err = store.PlayerRank(ctx, ids["dave"])
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err := store.SubmitRun(ctx, p.ID, record(i))
		require.NoError(t, err)
	}

	history, err := store.History(ctx, p.ID, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 5, history[0].Score)
	assert.Equal(t, 4, history[1].Score)
	assert.Equal(t, 3, history[2].Score)
	assert.Equal(t, 5*time.Second, history[0].PlayTime)
	assert.Equal(t, jumpy.DefaultCharacter, history[0].CharacterID)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)

	empty, err := store.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Runs)
	assert.True(t, empty.LastPlayed.IsZero())

	for _, s := range []int{2, 4, 9} {
		_, err := store.SubmitRun(ctx, p.ID, record(s))
		require.NoError(t, err)
	}

	st, err := store.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Runs)
	assert.Equal(t, 9, st.BestScore)
	assert.InDelta(t, 5.0, st.AvgScore, 1e-9)
	assert.Equal(t, int64(15), st.TotalScore)
	assert.Equal(t, 15*time.Second, st.TotalPlayTime)
}

func TestLedgerContracts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)
	ledger := NewLedger(store, p.ID)

	run := jumpy.RunResult{RunID: uuid.New(), FinalScore: 60, ElapsedActiveTime: time.Minute, CharacterID: "bird"}
	receipt, err := ledger.SubmitRunResult(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, StartingCoins+60, receipt.NewCoinBalance)

	again, err := ledger.SubmitRunResult(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, receipt, again)

	_, err = ledger.Unlock(ctx, "penguin", 50)
	require.NoError(t, err)

	assert.Equal(t, []string{jumpy.DefaultCharacter, "penguin"}, jumpy.Roster(ctx, ledger, ledger.PlayerID()))

	coins, err := ledger.Coins(ctx)
	require.NoError(t, err)
	assert.Equal(t, StartingCoins+60-50, coins)
}

func TestLedgerClosedStore(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	p, err := store.EnsurePlayer(ctx, "alice")
	require.NoError(t, err)
	ledger := NewLedger(store, p.ID)
	store.Close()

	_, err = ledger.SubmitRunResult(ctx, jumpy.RunResult{RunID: uuid.New(), FinalScore: 1})
	assert.Error(t, err)
	assert.Equal(t, []string{jumpy.DefaultCharacter}, jumpy.Roster(ctx, ledger, p.ID))
}

func TestOpenUsesWAL(t *testing.T) {
	store := openTestStore(t)

	var mode string
	err := store.db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}
