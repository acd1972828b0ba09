package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// StartingCoins is the balance of a newly created player.
const StartingCoins = 25

// Default page sizes.
const (
	DefaultLeaderboardLimit = 100
	DefaultHistoryLimit     = 50
	maxUsernameLen          = 32
)

var (
	// ErrUnknownPlayer is returned for operations on a player ID that does not exist.
	ErrUnknownPlayer = errors.New("storage: unknown player")

	// ErrInvalidUsername is returned for empty or oversized usernames.
	ErrInvalidUsername = errors.New("storage: invalid username")

	// ErrInsufficientCoins is returned when a purchase exceeds the balance.
	ErrInsufficientCoins = errors.New("storage: insufficient coins")

	// ErrAlreadyUnlocked is returned when buying a character twice.
	ErrAlreadyUnlocked = errors.New("storage: character already unlocked")
)

// Player is an account row.
type Player struct {
	ID        int64
	Username  string
	Coins     int
	CreatedAt time.Time
}

// RunRecord is one finished run as handed to the store.
type RunRecord struct {
	RunID       string // unique per run; resubmitting the same ID is a no-op
	Score       int
	PlayTime    time.Duration
	CharacterID string
}

// Run is a stored run.
type Run struct {
	ID          int64
	RunID       string
	Score       int
	PlayTime    time.Duration
	CharacterID string
	PlayedAt    time.Time
}

// LeaderboardEntry is one row of the best-score-per-player table.
type LeaderboardEntry struct {
	Rank       int
	Username   string
	BestScore  int
	Runs       int
	LastPlayed time.Time
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Runs          int
	BestScore     int
	AvgScore      float64
	TotalScore    int64
	TotalPlayTime time.Duration
	LastPlayed    time.Time
}

// EnsurePlayer returns the player with the given username, creating it with
// the starting balance on first use.
func (s *Store) EnsurePlayer(ctx context.Context, username string) (Player, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return Player{}, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO players (username) VALUES (?) ON CONFLICT(username) DO NOTHING",
		username,
	); err != nil {
		return Player{}, fmt.Errorf("storage: cannot create player: %w", err)
	}

	return s.PlayerByName(ctx, username)
}

// PlayerByName looks up a player. Returns ErrUnknownPlayer if absent.
func (s *Store) PlayerByName(ctx context.Context, username string) (Player, error) {
	var p Player
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, coins, created_at FROM players WHERE username = ?",
		strings.TrimSpace(username),
	).Scan(&p.ID, &p.Username, &p.Coins, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, username)
	}
	if err != nil {
		return Player{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// Coins returns the current balance of a player.
func (s *Store) Coins(ctx context.Context, playerID int64) (int, error) {
	return coins(ctx, s.db, playerID)
}

// querier is the part of *sql.DB and *sql.Tx that balance lookups need.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func coins(ctx context.Context, q querier, playerID int64) (int, error) {
	var balance int
	err := q.QueryRowContext(ctx, "SELECT coins FROM players WHERE id = ?", playerID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownPlayer, playerID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query coins: %w", err)
	}
	return balance, nil
}

// SubmitRun records a finished run and credits one coin per point, in one
// transaction. A RunID that was already recorded changes nothing and returns
// the current balance. Returns the new balance.
func (s *Store) SubmitRun(ctx context.Context, playerID int64, run RunRecord) (int, error) {
	if run.RunID == "" {
		return 0, errors.New("storage: run without id")
	}
	if run.Score < 0 {
		return 0, fmt.Errorf("storage: negative score %d", run.Score)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := coins(ctx, tx, playerID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, player_id, score, play_time_ms, character_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		run.RunID, playerID, run.Score, run.PlayTime.Milliseconds(), run.CharacterID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}

	if inserted > 0 && run.Score > 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE players SET coins = coins + ? WHERE id = ?",
			run.Score, playerID,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot credit coins: %w", err)
		}
	}

	balance, err := coins(ctx, tx, playerID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return balance, nil
}

// UnlockedCharacters returns the IDs a player has bought, oldest first.
func (s *Store) UnlockedCharacters(ctx context.Context, playerID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT character_id FROM unlocks WHERE player_id = ? ORDER BY id",
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// UnlockCharacter buys a character for cost coins. The balance is read
// inside the transaction, so concurrent sessions cannot spend the same
// coins twice. Returns the new balance.
func (s *Store) UnlockCharacter(ctx context.Context, playerID int64, characterID string, cost int) (int, error) {
	if characterID == "" {
		return 0, errors.New("storage: empty character id")
	}
	if cost < 0 {
		return 0, fmt.Errorf("storage: negative cost %d", cost)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	balance, err := coins(ctx, tx, playerID)
	if err != nil {
		return 0, err
	}

	var owned int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM unlocks WHERE player_id = ? AND character_id = ?",
		playerID, characterID,
	).Scan(&owned); err != nil {
		return 0, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	if owned > 0 {
		return balance, fmt.Errorf("%w: %s", ErrAlreadyUnlocked, characterID)
	}
	if balance < cost {
		return balance, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCoins, balance, cost)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE players SET coins = coins - ? WHERE id = ?",
		cost, playerID,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot debit coins: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO unlocks (player_id, character_id) VALUES (?, ?)",
		playerID, characterID,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot save unlock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit unlock: %w", err)
	}
	return balance - cost, nil
}

// Leaderboard returns the best score of each player, highest first.
// Players with equal best scores share a rank.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.username, MAX(r.score) AS best, COUNT(*), MAX(r.played_at)
		 FROM runs r
		 JOIN players p ON p.id = r.player_id
		 GROUP BY r.player_id
		 ORDER BY best DESC, p.username ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var lastPlayed any
		if err := rows.Scan(&e.Username, &e.BestScore, &e.Runs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.LastPlayed = parseTime(lastPlayed)

		e.Rank = len(entries) + 1
		if n := len(entries); n > 0 && entries[n-1].BestScore == e.BestScore {
			e.Rank = entries[n-1].Rank
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerRank returns the player's leaderboard rank and best score.
// A player without runs has rank 0.
func (s *Store) PlayerRank(ctx context.Context, playerID int64) (rank int, best int, err error) {
	var bestScore sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM runs WHERE player_id = ?",
		playerID,
	).Scan(&bestScore); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !bestScore.Valid {
		return 0, 0, nil
	}

	var ahead int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
			SELECT player_id FROM runs GROUP BY player_id HAVING MAX(score) > ?
		 )`,
		bestScore.Int64,
	).Scan(&ahead); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}

	return ahead + 1, int(bestScore.Int64), nil
}

// History returns a player's most recent runs, newest first.
func (s *Store) History(ctx context.Context, playerID int64, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, score, play_time_ms, character_id, played_at
		 FROM runs
		 WHERE player_id = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var playMS int64
		var playedAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Score, &playMS, &r.CharacterID, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.PlayTime = time.Duration(playMS) * time.Millisecond
		r.PlayedAt = parseTime(playedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats retrieves aggregated statistics for a player.
func (s *Store) Stats(ctx context.Context, playerID int64) (PlayerStats, error) {
	var st PlayerStats
	var playMS int64
	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(play_time_ms), 0), MAX(played_at)
		 FROM runs WHERE player_id = ?`,
		playerID,
	).Scan(&st.Runs, &st.BestScore, &st.AvgScore, &st.TotalScore, &playMS, &lastPlayed)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	st.TotalPlayTime = time.Duration(playMS) * time.Millisecond
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}
