package characters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jumpy-bird/internal/games/jumpy"
	"github.com/vovakirdan/jumpy-bird/internal/registry"
)

func TestDefaultCharacterIsFree(t *testing.T) {
	c, err := registry.Get(jumpy.DefaultCharacter)
	require.NoError(t, err)
	assert.True(t, c.Free())

	list := registry.List()
	require.NotEmpty(t, list)
	assert.Equal(t, jumpy.DefaultCharacter, list[0].ID, "cheapest first")
}

func TestOnlyDefaultIsFree(t *testing.T) {
	for _, c := range registry.List() {
		if c.ID != jumpy.DefaultCharacter {
			assert.Positive(t, c.Cost, c.ID)
		}
		assert.NotZero(t, c.Glyph, c.ID)
		assert.NotEmpty(t, c.Name, c.ID)
	}
}

func TestSkin(t *testing.T) {
	assert.Equal(t, "Penguin", Skin(Penguin).Name)
	assert.Equal(t, jumpy.DefaultSkin, Skin("no-such-character"))
}
