package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

var (
	flagLimit   int
	flagHistory bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard or a player's runs",
	Long: `Display the best score of every player, or with --history the latest
runs of the player given by --user together with their totals.

Examples:
  jumpy scores
  jumpy scores --limit 10
  jumpy scores --user alice --history`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show the runs of --user instead of the leaderboard")
}

// openStore opens the database named by --db.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

// lookupPlayer resolves --user to an existing player.
func lookupPlayer(ctx context.Context, store *storage.Store) (storage.Player, error) {
	if flagUser == "" {
		return storage.Player{}, errors.New("this command needs --user (or JUMPY_USER)")
	}
	p, err := store.PlayerByName(ctx, flagUser)
	if errors.Is(err, storage.ErrUnknownPlayer) {
		return p, fmt.Errorf("no player named %q yet, play a run first", flagUser)
	}
	return p, err
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistory {
		return printHistory(cmd.Context(), store)
	}
	return printLeaderboard(cmd.Context(), store)
}

func printLeaderboard(ctx context.Context, store *storage.Store) error {
	board, err := store.Leaderboard(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving leaderboard: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(board) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jumpy play --user <name>' to set the first high score!")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tPlayer\tBest\tRuns\tLast played")
	fmt.Fprintln(w, "  ----\t------\t----\t----\t-----------")
	for _, e := range board {
		fmt.Fprintf(w, "  #%d\t%s\t%d\t%d\t%s\n",
			e.Rank, e.Username, e.BestScore, e.Runs, e.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Show the caller's own standing if they are not on screen
	if flagUser == "" {
		return nil
	}
	p, err := store.PlayerByName(ctx, flagUser)
	if err != nil {
		return nil
	}
	rank, best, err := store.PlayerRank(ctx, p.ID)
	if err == nil && rank > 0 {
		fmt.Println()
		fmt.Printf("%s: rank #%d, best %d\n", p.Username, rank, best)
	}
	return nil
}

func printHistory(ctx context.Context, store *storage.Store) error {
	p, err := lookupPlayer(ctx, store)
	if err != nil {
		return err
	}
	runs, err := store.History(ctx, p.ID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}
	stats, err := store.Stats(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Printf("Runs - %s (%d coins)\n", p.Username, p.Coins)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Score\tTime\tCharacter\tPlayed")
	fmt.Fprintln(w, "  -----\t----\t---------\t------")
	for _, r := range runs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n",
			r.Score, r.PlayTime.Round(100*time.Millisecond), r.CharacterID, r.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Total play time: %s\n",
		stats.Runs, stats.BestScore, stats.AvgScore, stats.TotalPlayTime.Round(time.Second))
	return nil
}
