package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/platform/tui"
	"github.com/vovakirdan/jumpy-bird/internal/storage"
)

var (
	flagLogFile  string
	flagSkipMenu bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Jumpy Bird",
	Long: `Start a local session: main menu, game, hangar and leaderboard.

Controls:
  Space/Up   - Flap (also starts a run)
  Left/Right - Pick a character before the first flap
  P/Esc      - Pause / resume
  R/Enter    - Restart (after game over)
  B          - Back to menu (when not flying)
  Ctrl+S     - Save a screenshot to ~/.jumpy/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Without --user you play as a guest and runs are not saved.

Examples:
  jumpy play --user alice
  jumpy play --difficulty easy
  jumpy play --config ./my-jumpy.yaml --no-menu`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the game)")
	playCmd.Flags().BoolVar(&flagSkipMenu, "no-menu", false, "Start directly in the game")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "jumpy")

	// Get terminal size before the program starts
	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}

	var store *storage.Store
	if flagUser != "" {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Continue without storage - the game still works
			fmt.Fprintf(os.Stderr, "Warning: could not open database, playing as guest: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	return tui.Run(cmd.Context(), tui.Options{
		Store:    store,
		Username: flagUser,
		Game:     game,
		Runtime:  rt,
		Logger:   logger,
		SkipMenu: flagSkipMenu,
	})
}
