package jumpy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// Visual characters for rendering
const (
	PillarChar    = '█'
	PillarCapTop  = '▄'
	PillarCapLow  = '▀'
	GroundChar    = '═'
	DefaultGlyph  = '▶'
	DivingGlyph   = '▼'
	divingTiltDeg = 60
)

// Skin is how the selected character is drawn.
type Skin struct {
	Name  string
	Glyph rune
	Color core.Color
}

// DefaultSkin is used when the character catalog has nothing better.
var DefaultSkin = Skin{Name: "Bird", Glyph: DefaultGlyph, Color: core.ColorBrightYellow}

// Render draws a snapshot onto dst, scaling world units to cells.
// The bottom row is the ground; everything above it is the playfield.
func Render(snap Snapshot, dst *core.Screen, skin Skin) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 1 || h < 2 {
		return
	}
	if skin.Glyph == 0 {
		skin = DefaultSkin
	}

	v := viewport{world: snap, cols: w, rows: h - 1}

	dst.DrawHLine(0, h-1, w, GroundChar, core.ColorGreen)

	for _, o := range snap.Obstacles {
		drawPillars(dst, v, o)
	}

	glyph := skin.Glyph
	if snap.State == StateOver || snap.Body.Tilt >= divingTiltDeg {
		glyph = DivingGlyph
	}
	dst.SetColored(v.col(snap.Body.X), core.Clamp(v.row(snap.Body.Y), 0, v.rows-1), glyph, skin.Color)

	drawHUD(dst, snap)

	switch snap.State {
	case StateIdle:
		name := skin.Name
		if len(snap.Roster) > 1 {
			name = "← " + name + " →"
		}
		drawCenteredMessage(dst, core.ColorBrightCyan,
			"JUMPY BIRD",
			name,
			"SPACE to flap  ·  Q to quit")
	case StatePaused:
		drawCenteredMessage(dst, core.ColorYellow, "PAUSED", "Press P to resume")
	case StateOver:
		drawCenteredMessage(dst, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  |  Best: %d", snap.Score, snap.Best),
			submitLine(snap),
			"Press R to restart")
	}
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	world Snapshot
	cols  int
	rows  int
}

func (v viewport) col(x float64) int {
	if v.world.World.Width <= 0 {
		return 0
	}
	return int(math.Floor(x / v.world.World.Width * float64(v.cols)))
}

func (v viewport) row(y float64) int {
	if v.world.World.GroundY <= 0 {
		return 0
	}
	return int(math.Floor(y / v.world.World.GroundY * float64(v.rows)))
}

// drawPillars renders both pillars of one obstacle, each capped at the gap.
func drawPillars(dst *core.Screen, v viewport, o Obstacle) {
	x0 := v.col(o.X)
	x1 := core.Max(v.col(o.Right()), x0+1)
	gapTop := core.Clamp(v.row(o.GapTop()), 0, v.rows)
	gapBottom := core.Clamp(int(math.Ceil(o.GapBottom()/v.world.World.GroundY*float64(v.rows))), gapTop, v.rows)

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			dst.SetColored(x, y, PillarChar, core.ColorGreen)
		}
		if gapTop > 0 {
			dst.SetColored(x, gapTop-1, PillarCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < v.rows; y++ {
			dst.SetColored(x, y, PillarChar, core.ColorGreen)
		}
		if gapBottom < v.rows {
			dst.SetColored(x, gapBottom, PillarCapLow, core.ColorBrightGreen)
		}
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.Best), core.ColorBrightWhite)
	if snap.CoinsKnown {
		coins := fmt.Sprintf(" Coins: %d ", snap.Coins)
		dst.DrawTextColored(dst.Width()-len([]rune(coins))-1, 0, coins, core.ColorBrightYellow)
	}
}

func submitLine(snap Snapshot) string {
	switch snap.Submit {
	case SubmitPending:
		return "Saving run..."
	case SubmitSaved:
		return fmt.Sprintf("Saved  |  +%d coins", snap.Score)
	case SubmitFailed:
		return "Score not saved"
	case SubmitSkipped:
		return "Guest run, not saved"
	default:
		return ""
	}
}

// drawCenteredMessage draws a box in the center of the screen with one
// line per entry; empty entries leave a blank line.
func drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		lc := core.ColorDefault
		if i == 0 {
			lc = c
		}
		dst.DrawTextColored(x, boxY+1+i, l, lc)
	}
}
