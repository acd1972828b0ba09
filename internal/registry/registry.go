// Package registry provides a global catalog of playable characters.
// Characters register themselves in init() functions, allowing the platform
// and the shop to discover skins and prices without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// Character is a selectable skin. Characters are purely cosmetic; they
// never change the physics.
type Character struct {
	// ID is the stable identifier stored in unlocks and run history.
	ID string

	// Name is the human-readable name shown in menus.
	Name string

	// Glyph and Color are how the character is drawn on the playfield.
	Glyph rune
	Color core.Color

	// Cost is the unlock price in coins. Zero means always available.
	Cost int

	// Blurb is a one-line description for the shop.
	Blurb string
}

// Free reports whether the character needs no unlock.
func (c Character) Free() bool {
	return c.Cost == 0
}

var (
	characters = make(map[string]Character)
	mu         sync.RWMutex
)

// Register adds a character to the catalog.
// Typically called from an init() function.
// Panics if the ID is empty, already registered, or the cost is negative.
func Register(c Character) {
	mu.Lock()
	defer mu.Unlock()

	if c.ID == "" {
		panic("registry: character with empty id")
	}
	if c.Cost < 0 {
		panic(fmt.Sprintf("registry: character %q has negative cost", c.ID))
	}
	if _, exists := characters[c.ID]; exists {
		panic(fmt.Sprintf("registry: character %q already registered", c.ID))
	}

	characters[c.ID] = c
}

// List returns all registered characters, cheapest first, ties by ID.
func List() []Character {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Character, 0, len(characters))
	for _, c := range characters {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Cost != result[j].Cost {
			return result[i].Cost < result[j].Cost
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a character by ID.
// Returns an error if the ID is not registered.
func Get(id string) (Character, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := characters[id]
	if !ok {
		return Character{}, fmt.Errorf("registry: unknown character %q", id)
	}

	return c, nil
}

// Exists checks if a character with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := characters[id]
	return ok
}

// unregister removes a character; tests use it to restore the catalog.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(characters, id)
}
