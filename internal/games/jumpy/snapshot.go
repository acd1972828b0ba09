package jumpy

import (
	"slices"
	"time"

	"github.com/vovakirdan/jumpy-bird/internal/config"
)

// BodyView is a read-only copy of the body.
type BodyView struct {
	X, Y       float64
	Velocity   float64
	HalfWidth  float64
	HalfHeight float64
	Tilt       float64 // degrees, display only
}

// Snapshot is everything a renderer needs. It shares no memory with the
// machine, so holding on to it never affects the simulation.
type Snapshot struct {
	State      State
	World      config.World
	Body       BodyView
	Obstacles  []Obstacle
	Score      int
	Best       int
	Elapsed    time.Duration
	Ticks      int
	Difficulty config.Difficulty
	Character  string
	Roster     []string
	Submit     SubmitStatus
	SubmitErr  error
	Coins      int
	CoinsKnown bool
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State: m.state,
		World: m.cfg.World,
		Body: BodyView{
			X:          m.body.X,
			Y:          m.body.Y,
			Velocity:   m.body.Velocity,
			HalfWidth:  m.body.HalfWidth,
			HalfHeight: m.body.HalfHeight,
			Tilt:       m.body.Tilt(),
		},
		Obstacles:  m.field.Obstacles(),
		Score:      m.score.Score(),
		Best:       m.score.Best(),
		Elapsed:    time.Duration(m.elapsed * float64(time.Second)),
		Ticks:      m.ticks,
		Difficulty: m.scaler.Evaluate(m.elapsed),
		Character:  m.character,
		Roster:     slices.Clone(m.roster),
		Submit:     m.submit,
		SubmitErr:  m.submitErr,
		Coins:      m.coins,
		CoinsKnown: m.hasCoins,
	}
}
