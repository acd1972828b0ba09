package config

import (
	_ "embed"
)

//go:embed defaults/jumpy.yaml
var defaultJumpyYAML []byte

// DefaultJumpyConfig returns the default configuration.
// It mirrors defaults/jumpy.yaml and is the base every loaded file is
// unmarshalled onto, so a partial YAML only overrides what it names.
func DefaultJumpyConfig() JumpyConfig {
	return JumpyConfig{
		World: World{
			Width:   600,
			Height:  400,
			GroundY: 400,
		},
		Physics: Physics{
			Gravity:      900,
			JumpImpulse:  -350,
			MaxFallSpeed: 600,
			ScrollSpeed:  150,
		},
		Player: Player{
			X:          120,
			StartY:     200,
			HalfWidth:  12,
			HalfHeight: 8,
		},
		Obstacles: Obstacles{
			Width:        52,
			MinGap:       80,
			TopMargin:    40,
			BottomMargin: 40,
			ReactionTime: 0.6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			TimeConstant: 60,
			SpawnInterval: Curve{
				Initial: 2.2,
				Floor:   1.2,
			},
			GapHeight: Curve{
				Initial: 150,
				Floor:   100,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `--print-config` style
// dumps and as a template for user configs.
func DefaultYAML() []byte {
	return defaultJumpyYAML
}
