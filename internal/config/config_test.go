package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultJumpyConfig(), cfg)
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultJumpyConfig().Validate())
}

func TestMinSpacing(t *testing.T) {
	cfg := DefaultJumpyConfig()
	// 150 units/s * 0.6 s + 52 units of pillar
	assert.InDelta(t, 142.0, cfg.MinSpacing(), 1e-9)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JumpyConfig)
	}{
		{"positive jump", func(c *JumpyConfig) { c.Physics.JumpImpulse = 10 }},
		{"zero gravity", func(c *JumpyConfig) { c.Physics.Gravity = 0 }},
		{"ground below field", func(c *JumpyConfig) { c.World.GroundY = c.World.Height + 1 }},
		{"start on ground", func(c *JumpyConfig) { c.Player.StartY = c.World.GroundY }},
		{"gap floor below min gap", func(c *JumpyConfig) { c.Difficulty.GapHeight.Floor = c.Obstacles.MinGap - 1 }},
		{"min gap narrower than player", func(c *JumpyConfig) {
			c.Obstacles.MinGap = 2 * c.Player.HalfHeight
			c.Difficulty.GapHeight.Floor = c.Obstacles.MinGap
		}},
		{"negative gap floor", func(c *JumpyConfig) { c.Difficulty.GapHeight.Floor = -5 }},
		{"spawn floor too short", func(c *JumpyConfig) { c.Difficulty.SpawnInterval.Floor = 0.5 }},
		{"spawn floor above initial", func(c *JumpyConfig) { c.Difficulty.SpawnInterval.Floor = 3 }},
		{"gap does not fit", func(c *JumpyConfig) { c.Difficulty.GapHeight.Initial = 390 }},
		{"initial level one", func(c *JumpyConfig) { c.Difficulty.InitialLevel = 1 }},
		{"player outside field", func(c *JumpyConfig) { c.Player.X = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultJumpyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 1200\n"))
	require.NoError(t, err)

	assert.Equal(t, 1200.0, cfg.Physics.Gravity)
	assert.Equal(t, DefaultJumpyConfig().Physics.JumpImpulse, cfg.Physics.JumpImpulse)
	assert.Equal(t, DefaultJumpyConfig().Difficulty, cfg.Difficulty)
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  scroll_speed: 200\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Physics.ScrollSpeed)
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("physics: [not, a, map"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	invalidCfg := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidCfg, []byte("physics:\n  jump_impulse: 5\n"), 0o600))
	_, err = Load(invalidCfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jumpy.yaml")

	require.NoError(t, WriteTemplate(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultYAML(), data)

	assert.Error(t, WriteTemplate(path), "existing file must not be overwritten")
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultJumpyConfig()
	ApplyPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)

	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel, "fixed keeps the current level")

	before := cfg
	ApplyPreset(&cfg, "")
	assert.Equal(t, before, cfg)
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(s)
		require.NoError(t, err)
		assert.Equal(t, DifficultyPreset(s), p)
	}
	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}
