// Package config provides YAML-based game configuration loading and
// difficulty scaling for the game.
package config

import (
	"errors"
	"fmt"
)

// JumpyConfig contains all tuning for the simulation.
// Distances are world units (the field is World.Width x World.Height,
// y grows downward), times are seconds.
type JumpyConfig struct {
	World      World            `yaml:"world"`
	Physics    Physics          `yaml:"physics"`
	Player     Player           `yaml:"player"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// World defines the playfield dimensions.
type World struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"`
}

// Physics defines vertical motion and scroll parameters.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`        // units/s², positive = down
	JumpImpulse  float64 `yaml:"jump_impulse"`   // velocity set by a flap, negative = up
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // terminal velocity
	ScrollSpeed  float64 `yaml:"scroll_speed"`   // obstacle speed, units/s
}

// Player defines the body's fixed column and hitbox.
type Player struct {
	X          float64 `yaml:"x"`
	StartY     float64 `yaml:"start_y"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// Obstacles defines pillar geometry and placement bounds.
type Obstacles struct {
	Width        float64 `yaml:"width"`
	MinGap       float64 `yaml:"min_gap"` // hard floor for any gap
	TopMargin    float64 `yaml:"top_margin"`
	BottomMargin float64 `yaml:"bottom_margin"`
	ReactionTime float64 `yaml:"reaction_time"` // seconds a player needs between pillars
}

// DifficultyConfig defines the difficulty progression curve.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	InitialLevel  float64 `yaml:"initial_level"` // 0.0 = easy, approaching 1.0 = hard
	TimeConstant  float64 `yaml:"time_constant"` // seconds to cover ~63% of the remaining range
	SpawnInterval Curve   `yaml:"spawn_interval"`
	GapHeight     Curve   `yaml:"gap_height"`
}

// Curve is a value that decays from Initial towards Floor as difficulty rises.
type Curve struct {
	Initial float64 `yaml:"initial"`
	Floor   float64 `yaml:"floor"`
}

// MinSpacing returns the smallest horizontal distance allowed between two
// consecutive obstacles: what the body covers in one reaction time plus the
// width of a pillar.
func (c JumpyConfig) MinSpacing() float64 {
	return c.Physics.ScrollSpeed*c.Obstacles.ReactionTime + c.Obstacles.Width
}

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the invariants the simulation relies on. A config that
// passes can never produce an unplayable gap or overlapping obstacles.
func (c JumpyConfig) Validate() error {
	w, p, pl, o, d := c.World, c.Physics, c.Player, c.Obstacles, c.Difficulty

	if w.Width <= 0 || w.Height <= 0 {
		return invalid("world size must be positive, got %vx%v", w.Width, w.Height)
	}
	if w.GroundY <= 0 || w.GroundY > w.Height {
		return invalid("ground_y %v must be within (0, %v]", w.GroundY, w.Height)
	}
	if p.Gravity <= 0 || p.MaxFallSpeed <= 0 || p.ScrollSpeed <= 0 {
		return invalid("gravity, max_fall_speed and scroll_speed must be positive")
	}
	if p.JumpImpulse >= 0 {
		return invalid("jump_impulse must be negative (upward), got %v", p.JumpImpulse)
	}
	if pl.HalfWidth <= 0 || pl.HalfHeight <= 0 {
		return invalid("player hitbox must be positive")
	}
	if pl.X-pl.HalfWidth < 0 || pl.X+pl.HalfWidth > w.Width {
		return invalid("player x %v puts the hitbox outside the field", pl.X)
	}
	if pl.StartY <= 0 || pl.StartY >= w.GroundY {
		return invalid("player start_y %v must be between ceiling and ground", pl.StartY)
	}
	if o.Width <= 0 || o.ReactionTime < 0 || o.TopMargin < 0 || o.BottomMargin < 0 {
		return invalid("obstacle width must be positive and margins non-negative")
	}
	if o.MinGap <= 2*pl.HalfHeight {
		return invalid("min_gap %v must exceed the player height %v", o.MinGap, 2*pl.HalfHeight)
	}
	if d.InitialLevel < 0 || d.InitialLevel >= 1 {
		return invalid("initial_level %v must be within [0, 1)", d.InitialLevel)
	}
	if d.TimeConstant <= 0 {
		return invalid("time_constant must be positive")
	}
	if d.SpawnInterval.Floor <= 0 || d.SpawnInterval.Initial < d.SpawnInterval.Floor {
		return invalid("spawn_interval needs 0 < floor <= initial")
	}
	if d.GapHeight.Initial < d.GapHeight.Floor {
		return invalid("gap_height needs floor <= initial")
	}
	if d.GapHeight.Floor < o.MinGap {
		return invalid("gap_height floor %v is below min_gap %v", d.GapHeight.Floor, o.MinGap)
	}
	if o.TopMargin+o.BottomMargin+d.GapHeight.Initial > w.Height {
		return invalid("gap_height %v does not fit between the margins", d.GapHeight.Initial)
	}
	if spacing := d.SpawnInterval.Floor * p.ScrollSpeed; spacing < c.MinSpacing() {
		return invalid("spawn_interval floor gives spacing %v, below minimum %v", spacing, c.MinSpacing())
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset freezes progression at the configured initial level.
func ApplyPreset(cfg *JumpyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
