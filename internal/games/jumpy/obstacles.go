package jumpy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// Obstacle is a pair of pillars with a vertical gap between them.
// UpperHeight + GapHeight + LowerHeight always equals the field height.
type Obstacle struct {
	X           float64 // Horizontal position (left edge)
	Width       float64
	UpperHeight float64 // Upper pillar spans [0, UpperHeight)
	GapHeight   float64
	LowerHeight float64 // Lower pillar spans [UpperHeight+GapHeight, field height)
	Passed      bool    // Whether the player has been credited for this obstacle
}

// Right returns the x-coordinate of the right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// CenterX returns the center line the player must cross to score.
func (o Obstacle) CenterX() float64 {
	return o.X + o.Width/2
}

// GapTop returns the y-coordinate where the gap starts.
func (o Obstacle) GapTop() float64 {
	return o.UpperHeight
}

// GapBottom returns the y-coordinate where the lower pillar starts.
func (o Obstacle) GapBottom() float64 {
	return o.UpperHeight + o.GapHeight
}

// Span returns a box covering the obstacle's full column.
func (o Obstacle) Span(fieldHeight float64) core.Box {
	return core.NewBox(o.X, 0, o.Width, fieldHeight)
}

// ObstacleField handles spawning, movement, and removal of obstacles.
// Obstacles are kept ordered by X, leftmost first.
type ObstacleField struct {
	obstacles []Obstacle
	rng       *rand.Rand

	width        float64
	height       float64
	obstacleW    float64
	scrollSpeed  float64
	minGap       float64
	topMargin    float64
	bottomMargin float64

	sinceSpawn float64 // seconds since the last spawn
}

// NewObstacleField creates an empty field that draws gap positions from rng.
// The spawn timer starts overdue, so the first active tick spawns an obstacle.
func NewObstacleField(cfg config.JumpyConfig, rng *rand.Rand) *ObstacleField {
	return &ObstacleField{
		obstacles:    make([]Obstacle, 0, 8),
		rng:          rng,
		width:        cfg.World.Width,
		height:       cfg.World.Height,
		obstacleW:    cfg.Obstacles.Width,
		scrollSpeed:  cfg.Physics.ScrollSpeed,
		minGap:       cfg.Obstacles.MinGap,
		topMargin:    cfg.Obstacles.TopMargin,
		bottomMargin: cfg.Obstacles.BottomMargin,
		sinceSpawn:   math.Inf(1),
	}
}

// Tick scrolls obstacles left, spawns a new one when the spawn interval has
// elapsed, and drops obstacles that have left the field.
func (f *ObstacleField) Tick(dt float64, d config.Difficulty) {
	shift := f.scrollSpeed * dt
	for i := range f.obstacles {
		f.obstacles[i].X -= shift
	}

	f.sinceSpawn += dt
	if f.sinceSpawn >= d.SpawnInterval {
		f.Spawn(f.randomCenter(d.GapHeight), d.GapHeight)
		f.sinceSpawn = 0
	}

	// Remove obstacles whose right edge has passed the left boundary
	valid := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.Right() >= 0 {
			valid = append(valid, o)
		}
	}
	f.obstacles = valid
}

// randomCenter picks a gap center that keeps the whole gap inside the margins.
func (f *ObstacleField) randomCenter(gap float64) float64 {
	minCenter := f.topMargin + gap/2
	maxCenter := f.height - f.bottomMargin - gap/2
	if maxCenter < minCenter {
		maxCenter = minCenter // Edge case for very short fields
	}
	return minCenter + f.rng.Float64()*(maxCenter-minCenter)
}

// Spawn appends an obstacle at the right edge with the gap centered on center.
// A gap narrower than the playable floor, or one that does not fit in the
// field, is a programming error and panics.
func (f *ObstacleField) Spawn(center, gap float64) {
	if gap < f.minGap {
		panic(fmt.Sprintf("jumpy: gap height %.2f below playable floor %.2f", gap, f.minGap))
	}
	upper := center - gap/2
	lower := f.height - upper - gap
	if upper < 0 || lower < 0 {
		panic(fmt.Sprintf("jumpy: gap centered at %.2f does not fit field height %.2f", center, f.height))
	}

	f.obstacles = append(f.obstacles, Obstacle{
		X:           f.width,
		Width:       f.obstacleW,
		UpperHeight: upper,
		GapHeight:   gap,
		LowerHeight: lower,
	})
}

// Obstacles returns a copy of the live obstacles, leftmost first.
func (f *ObstacleField) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Height returns the field height.
func (f *ObstacleField) Height() float64 {
	return f.height
}
