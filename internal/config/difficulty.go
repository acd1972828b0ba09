package config

import (
	"math"

	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// Difficulty is the pair of obstacle parameters in effect at a moment of a run.
type Difficulty struct {
	SpawnInterval float64 // seconds between obstacle spawns
	GapHeight     float64 // vertical opening of newly spawned obstacles
}

// DifficultyScaler maps elapsed active time to obstacle parameters.
// It holds no run state; Evaluate is a pure function of its argument.
type DifficultyScaler struct {
	cfg DifficultyConfig
}

// NewDifficultyScaler creates a new difficulty scaler.
func NewDifficultyScaler(cfg DifficultyConfig) *DifficultyScaler {
	return &DifficultyScaler{cfg: cfg}
}

// Level returns the difficulty level in [InitialLevel, 1] for the given
// elapsed active time. The level approaches 1 exponentially and only reaches
// it when the exponential underflows.
func (d *DifficultyScaler) Level(elapsed float64) float64 {
	start := core.ClampF(d.cfg.InitialLevel, 0.0, 1.0)
	if !d.cfg.Enabled || d.cfg.TimeConstant <= 0 {
		return start
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return 1.0 - (1.0-start)*math.Exp(-elapsed/d.cfg.TimeConstant)
}

// Evaluate returns the obstacle parameters for the given elapsed active time.
// Both values are non-increasing in elapsed and never drop below their floors.
func (d *DifficultyScaler) Evaluate(elapsed float64) Difficulty {
	level := d.Level(elapsed)
	return Difficulty{
		SpawnInterval: interpolate(d.cfg.SpawnInterval, level),
		GapHeight:     interpolate(d.cfg.GapHeight, level),
	}
}

// Hardest returns the limit values the curve approaches.
func (d *DifficultyScaler) Hardest() Difficulty {
	return Difficulty{
		SpawnInterval: d.cfg.SpawnInterval.Floor,
		GapHeight:     d.cfg.GapHeight.Floor,
	}
}

// interpolate moves from Initial (level 0) to Floor (level 1).
func interpolate(c Curve, level float64) float64 {
	v := c.Initial - (c.Initial-c.Floor)*level
	return math.Max(v, c.Floor)
}
