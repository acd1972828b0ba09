package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jumpy-bird/internal/core"
)

func register(t *testing.T, c Character) {
	t.Helper()
	Register(c)
	t.Cleanup(func() { unregister(c.ID) })
}

func TestRegisterAndGet(t *testing.T) {
	register(t, Character{ID: "test-owl", Name: "Owl", Glyph: 'O', Color: core.ColorGray, Cost: 30})

	require.True(t, Exists("test-owl"))
	c, err := Get("test-owl")
	require.NoError(t, err)
	assert.Equal(t, "Owl", c.Name)
	assert.Equal(t, 30, c.Cost)
	assert.False(t, c.Free())

	_, err = Get("test-missing")
	assert.Error(t, err)
	assert.False(t, Exists("test-missing"))
}

func TestListOrder(t *testing.T) {
	register(t, Character{ID: "test-c", Cost: 10})
	register(t, Character{ID: "test-a", Cost: 10})
	register(t, Character{ID: "test-b", Cost: 0})

	var ids []string
	for _, c := range List() {
		if len(c.ID) > 5 && c.ID[:5] == "test-" {
			ids = append(ids, c.ID)
		}
	}
	assert.Equal(t, []string{"test-b", "test-a", "test-c"}, ids)
}

func TestRegisterPanics(t *testing.T) {
	register(t, Character{ID: "test-dup"})

	assert.Panics(t, func() { Register(Character{ID: "test-dup"}) })
	assert.Panics(t, func() { Register(Character{}) })
	assert.Panics(t, func() { Register(Character{ID: "test-neg", Cost: -1}) })
	assert.False(t, Exists("test-neg"))
}
