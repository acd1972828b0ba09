package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpy-bird/internal/registry"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List all characters",
	Long: `Shows every character with its price. With --user, characters the
player owns are marked and the balance is shown.`,
	Args: cobra.NoArgs,
	RunE: runCharacters,
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <character>",
	Short: "Buy a character with coins",
	Long: `Unlock a character for the player given by --user. The price is
taken from the player's coins; every point scored earns one coin.

Examples:
  jumpy unlock penguin --user alice`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlock,
}

func runCharacters(cmd *cobra.Command, _ []string) error {
	chars := registry.List()
	if len(chars) == 0 {
		fmt.Println("No characters available.")
		return nil
	}

	owned := map[string]bool{}
	coins := -1
	if flagUser != "" {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if p, err := store.PlayerByName(cmd.Context(), flagUser); err == nil {
			ids, err := store.UnlockedCharacters(cmd.Context(), p.ID)
			if err != nil {
				return fmt.Errorf("retrieving unlocks: %w", err)
			}
			for _, id := range ids {
				owned[id] = true
			}
			coins = p.Coins
		}
	}

	fmt.Println("Characters:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range chars {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "ID", "Glyph", "Price", "Name")
	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "--", "-----", "-----", "----")
	for _, c := range chars {
		price := fmt.Sprintf("%d", c.Cost)
		switch {
		case c.Free():
			price = "free"
		case owned[c.ID]:
			price = "owned"
		}
		fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, c.ID, string(c.Glyph), price, c.Name)
	}

	fmt.Println()
	if coins >= 0 {
		fmt.Printf("%s has %d coins.\n", flagUser, coins)
	}
	fmt.Println("Run 'jumpy unlock <id> --user <name>' to buy one.")
	return nil
}

func runUnlock(cmd *cobra.Command, args []string) error {
	id := strings.ToLower(strings.TrimSpace(args[0]))
	c, err := registry.Get(id)
	if err != nil {
		return fmt.Errorf("unknown character %q, run 'jumpy characters' to see them", id)
	}
	if c.Free() {
		fmt.Printf("%s is free and always available.\n", c.Name)
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	balance, err := unlock(cmd.Context(), store, c)
	switch {
	case errors.Is(err, storage.ErrInsufficientCoins):
		return fmt.Errorf("%s costs %d coins, %s has %d", c.Name, c.Cost, flagUser, balance)
	case errors.Is(err, storage.ErrAlreadyUnlocked):
		fmt.Printf("%s already owns %s.\n", flagUser, c.Name)
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("Unlocked %s! %s has %d coins left.\n", c.Name, flagUser, balance)
	return nil
}

// unlock buys c for --user. On ErrInsufficientCoins the current balance is
// returned alongside the error.
func unlock(ctx context.Context, store *storage.Store, c registry.Character) (int, error) {
	p, err := lookupPlayer(ctx, store)
	if err != nil {
		return 0, err
	}
	ledger := storage.NewLedger(store, p.ID)
	balance, err := ledger.Unlock(ctx, c.ID, c.Cost)
	if errors.Is(err, storage.ErrInsufficientCoins) {
		return p.Coins, err
	}
	return balance, err
}
