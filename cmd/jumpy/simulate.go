package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
)

var (
	flagRuns     int
	flagRunLimit time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless runs",
	Long: `Play runs with the built-in autopilot at the configured tick rate,
without a terminal UI. Run i uses seed --seed + i, so the same flags always
produce the same table. Useful to check that a config is playable.

Examples:
  jumpy simulate --seed 42
  jumpy simulate --runs 20 --limit 5m --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of runs")
	simulateCmd.Flags().DurationVar(&flagRunLimit, "limit", 2*time.Minute, "Stop a run after this much game time")
}

// simResult is one autopilot run.
type simResult struct {
	seed  int64
	run   jumpy.RunResult
	ended bool
	final config.Difficulty
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagRuns <= 0 {
		return fmt.Errorf("invalid --runs %d", flagRuns)
	}
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := newLogger(os.Stderr, "jumpy-sim")
	logger.Debug("simulating", "runs", flagRuns, "seed", seed, "limit", flagRunLimit)

	dt := core.RuntimeConfig{TickRate: flagFPS}.TickDuration()
	results, err := simulate(cmd.Context(), game, seed, flagRuns, dt, flagRunLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Autopilot - %d runs from seed %d\n\n", len(results), seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Seed\tScore\tTime\tEnd\tFinal gap\tFinal interval")
	best, total := 0, 0
	for _, r := range results {
		end := "crash"
		if !r.ended {
			end = "limit"
		}
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%.0f\t%.2fs\n",
			r.seed, r.run.FinalScore, r.run.ElapsedActiveTime.Round(100*time.Millisecond), end,
			r.final.GapHeight, r.final.SpawnInterval)
		best = max(best, r.run.FinalScore)
		total += r.run.FinalScore
	}
	if err := w.Flush(); err != nil {
		return err
	}
	hardest := config.NewDifficultyScaler(game.Difficulty).Hardest()
	fmt.Printf("\nBest: %d  Average: %.1f\n", best, float64(total)/float64(len(results)))
	fmt.Printf("Curve limit: gap %.0f, interval %.2fs\n", hardest.GapHeight, hardest.SpawnInterval)
	return nil
}

// simulate plays n independent runs in parallel. Each run owns its machine,
// so results depend only on the seed.
func simulate(ctx context.Context, cfg config.JumpyConfig, seed int64, n int, dt float64, limit time.Duration) ([]simResult, error) {
	results := make([]simResult, n)
	scaler := config.NewDifficultyScaler(cfg.Difficulty)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := seed + int64(i)
			run, ended := jumpy.AutoRun(jumpy.NewMachine(cfg, s), dt, limit)
			results[i] = simResult{
				seed:  s,
				run:   run,
				ended: ended,
				final: scaler.Evaluate(run.ElapsedActiveTime.Seconds()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
