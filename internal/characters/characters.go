// Package characters registers the built-in character skins.
// Import it for side effects.
package characters

import (
	"github.com/vovakirdan/jumpy-bird/internal/core"
	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
	"github.com/vovakirdan/jumpy-bird/internal/registry"
)

// Built-in character IDs.
const (
	Bird    = jumpy.DefaultCharacter
	Penguin = "penguin"
	Bat     = "bat"
	UFO     = "ufo"
	Dragon  = "dragon"
)

func init() {
	registry.Register(registry.Character{
		ID:    Bird,
		Name:  "Bird",
		Glyph: jumpy.DefaultGlyph,
		Color: core.ColorBrightYellow,
		Blurb: "The original. Always in the hangar.",
	})
	registry.Register(registry.Character{
		ID:    Penguin,
		Name:  "Penguin",
		Glyph: '◆',
		Color: core.ColorBrightWhite,
		Cost:  50,
		Blurb: "Flies anyway.",
	})
	registry.Register(registry.Character{
		ID:    Bat,
		Name:  "Bat",
		Glyph: 'ᴥ',
		Color: core.ColorMagenta,
		Cost:  100,
		Blurb: "Prefers the night shift.",
	})
	registry.Register(registry.Character{
		ID:    UFO,
		Name:  "UFO",
		Glyph: '◎',
		Color: core.ColorBrightCyan,
		Cost:  200,
		Blurb: "Not from around here.",
	})
	registry.Register(registry.Character{
		ID:    Dragon,
		Name:  "Dragon",
		Glyph: '◈',
		Color: core.ColorBrightRed,
		Cost:  500,
		Blurb: "Expensive. Worth it.",
	})
}

// Skin returns how the character with id is drawn, falling back to the
// default skin for unknown IDs.
func Skin(id string) jumpy.Skin {
	c, err := registry.Get(id)
	if err != nil {
		return jumpy.DefaultSkin
	}
	return jumpy.Skin{Name: c.Name, Glyph: c.Glyph, Color: c.Color}
}
