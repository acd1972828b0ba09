// jumpy is a flappy-style arcade game for the terminal.
//
// Usage:
//
//	jumpy play               - Play locally (menu, hangar, leaderboard)
//	jumpy serve              - Start SSH server for remote play
//	jumpy scores             - Show the leaderboard or a player's runs
//	jumpy characters         - List characters and prices
//	jumpy unlock <character> - Buy a character with coins
//	jumpy simulate           - Run the autopilot headless
//	jumpy config init|show   - Write or print the game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.jumpy/jumpy.db)
//	--user <name>       - Player name (empty = guest)
//	--log-level <level> - debug, info, warn, error
//
// JUMPY_DB, JUMPY_USER and JUMPY_SSH_ADDR override the defaults and may be
// set in a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import characters to register them
	_ "github.com/vovakirdan/jumpy-bird/internal/characters"
	"github.com/vovakirdan/jumpy-bird/internal/config"
)

const defaultDBPath = "~/.jumpy/jumpy.db"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagUser       string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string

	logLevel = log.InfoLevel
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumpy",
	Short: "Jumpy Bird - flap through the pillars in your terminal",
	Long: `Jumpy Bird is a flappy-style arcade game for the terminal.

Every point you score is a coin. Spend coins in the hangar on new
characters, and climb the shared leaderboard.

Available commands:
  play        - Play locally
  serve       - Start SSH server for remote play
  scores      - View the leaderboard or your runs
  characters  - List characters
  unlock      - Buy a character
  simulate    - Headless autopilot runs
  config      - Write or print the game config

Examples:
  jumpy play --user alice
  jumpy play --difficulty hard
  jumpy serve --ssh :2222
  jumpy scores --user alice --history`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", defaultDBPath, "Path to game database (env JUMPY_DB)")
	pf.StringVar(&flagUser, "user", "", "Player name, empty plays as guest (env JUMPY_USER)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads .env, applies environment overrides to flags the user did not
// set, and validates the global flags.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	envOverride(cmd, "db", "JUMPY_DB", &flagDBPath)
	envOverride(cmd, "user", "JUMPY_USER", &flagUser)
	envOverride(cmd, "ssh", "JUMPY_SSH_ADDR", &flagSSHAddr)

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logLevel = level

	if flagFPS <= 0 || flagFPS > 240 {
		return fmt.Errorf("invalid --fps %d: must be between 1 and 240", flagFPS)
	}
	return nil
}

// envOverride sets *dst from env unless the flag was given explicitly.
func envOverride(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

// newLogger returns a logger at the configured level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// loadGameConfig reads the game config and applies the difficulty preset.
func loadGameConfig() (config.JumpyConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.JumpyConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}
