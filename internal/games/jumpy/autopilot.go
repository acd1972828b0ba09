package jumpy

import (
	"time"

	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// autopilotSlack keeps the bot's flap point this far above the lower pillar.
const autopilotSlack = 12.0

// ShouldFlap is a simple bot: it lets the body fall until it nears the bottom
// of the next gap, then flaps. With no obstacle ahead it holds mid-field.
func ShouldFlap(snap Snapshot) bool {
	b := snap.Body
	if b.Velocity < 0 {
		return false
	}

	floor := snap.World.Height/2 + b.HalfHeight
	for _, o := range snap.Obstacles {
		if o.Right() < b.X-b.HalfWidth {
			continue
		}
		floor = o.GapBottom() - b.HalfHeight - autopilotSlack
		break
	}
	return b.Y >= floor
}

// AutoRun plays one run with ShouldFlap at a fixed dt, starting from Idle
// (or restarting from Over). It stops at the first collision or once limit of
// active time has passed; the flag reports whether the run actually ended.
func AutoRun(m *Machine, dt float64, limit time.Duration) (RunResult, bool) {
	if dt <= 0 {
		return RunResult{CharacterID: m.character}, false
	}
	if m.State() == StateOver {
		m.Step(0, core.NewInputFrame(core.ActionRestart))
	}
	if m.State() == StatePaused {
		m.Step(0, core.NewInputFrame(core.ActionResume))
	}

	for {
		in := core.NewInputFrame()
		if m.State() == StateIdle || ShouldFlap(m.Snapshot()) {
			in.Set(core.ActionJump)
		}
		res := m.Step(dt, in)
		if res.Finished != nil {
			return *res.Finished, true
		}

		elapsed := time.Duration(m.elapsed * float64(time.Second))
		if elapsed >= limit {
			return RunResult{
				FinalScore:        m.Score(),
				ElapsedActiveTime: elapsed,
				CharacterID:       m.runCharacter,
			}, false
		}
	}
}
