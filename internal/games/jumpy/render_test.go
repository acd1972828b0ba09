package jumpy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
)

func TestRenderIdle(t *testing.T) {
	m := newTestMachine(t, 1)
	screen := core.NewScreen(60, 20)
	skin := Skin{Name: "Penguin", Glyph: 'P', Color: core.ColorWhite}

	Render(m.Snapshot(), screen, skin)

	assert.Equal(t, strings.Repeat(string(GroundChar), 60), screen.Row(19))
	// x=120 of 600 -> column 12, y=200 of 400 over 19 rows -> row 9
	cell := screen.GetCell(12, 9)
	assert.Equal(t, 'P', cell.Rune)
	assert.Equal(t, core.ColorWhite, cell.Color)

	out := screen.String()
	assert.Contains(t, out, "JUMPY BIRD")
	assert.Contains(t, out, "Penguin")
	assert.Contains(t, out, "Score: 0")
}

func TestRenderPillars(t *testing.T) {
	cfg := config.DefaultJumpyConfig()
	snap := NewMachine(cfg, 1).Snapshot()
	snap.State = StateActive
	snap.Obstacles = []Obstacle{{X: 300, Width: 52, UpperHeight: 100, GapHeight: 120, LowerHeight: 180}}

	screen := core.NewScreen(60, 20)
	Render(snap, screen, Skin{})

	assert.Equal(t, PillarChar, screen.GetCell(30, 1).Rune)
	assert.Equal(t, PillarCapTop, screen.GetCell(30, 3).Rune)
	assert.Equal(t, ' ', screen.GetCell(30, 8).Rune, "gap is empty")
	// gap bottom 220 -> ceil(10.45) = row 11
	assert.Equal(t, PillarCapLow, screen.GetCell(30, 11).Rune)
	assert.Equal(t, PillarChar, screen.GetCell(30, 18).Rune)
	// Default skin when none is given.
	assert.Equal(t, DefaultGlyph, screen.GetCell(12, 9).Rune)
}

func TestRenderOverShowsSubmitStatus(t *testing.T) {
	tests := []struct {
		status SubmitStatus
		want   string
	}{
		{SubmitPending, "Saving run"},
		{SubmitSaved, "Saved"},
		{SubmitFailed, "Score not saved"},
		{SubmitSkipped, "Guest run"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			snap := newTestMachine(t, 1).Snapshot()
			snap.State = StateOver
			snap.Submit = tt.status

			screen := core.NewScreen(60, 20)
			Render(snap, screen, DefaultSkin)

			out := screen.String()
			assert.Contains(t, out, "GAME OVER")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRenderPaused(t *testing.T) {
	snap := newTestMachine(t, 1).Snapshot()
	snap.State = StatePaused

	screen := core.NewScreen(40, 12)
	Render(snap, screen, DefaultSkin)

	assert.Contains(t, screen.String(), "PAUSED")
}

func TestRenderTinyScreen(t *testing.T) {
	snap := newTestMachine(t, 1).Snapshot()
	assert.NotPanics(t, func() {
		Render(snap, core.NewScreen(0, 0), DefaultSkin)
		Render(snap, core.NewScreen(3, 1), DefaultSkin)
		Render(snap, core.NewScreen(5, 3), DefaultSkin)
	})
}
