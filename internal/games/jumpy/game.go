// Package jumpy implements the side-scrolling simulation core: a body falling
// under gravity, a field of scrolling pillar pairs, collision, scoring and the
// state machine that drives a run from Idle through Over.
package jumpy

import (
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// State is a phase of the game.
type State int

const (
	StateIdle   State = iota // waiting for the first flap, nothing moves
	StateActive              // simulation running
	StatePaused              // simulation frozen, resumable
	StateOver                // run finished, result finalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// StepResult reports what happened during one Step.
type StepResult struct {
	State       State
	Scored      int        // points credited this step
	Started     bool       // Idle -> Active happened
	EnteredIdle bool       // Over -> Idle happened; the roster should be refreshed
	Finished    *RunResult // non-nil exactly once per run, at Active -> Over
}

// Machine owns one run at a time and advances it under an explicit timestep.
// It is not safe for concurrent use; the driving loop is its only caller.
type Machine struct {
	cfg    config.JumpyConfig
	scaler *config.DifficultyScaler
	seeder *rand.Rand // hands out one seed per run

	state   State
	body    *Body
	field   *ObstacleField
	score   ScoreTracker
	elapsed float64 // active seconds of the current run
	ticks   int

	character    string // selection shown in Idle
	runCharacter string // locked at Idle -> Active
	roster       []string

	guest     bool
	lastRun   uuid.UUID
	submit    SubmitStatus
	submitErr error
	coins     int
	hasCoins  bool
}

// NewMachine creates a machine in Idle. The seed fixes the whole sequence of
// gap placements across runs, so equal seeds and inputs replay identically.
func NewMachine(cfg config.JumpyConfig, seed int64) *Machine {
	m := &Machine{
		cfg:       cfg,
		scaler:    config.NewDifficultyScaler(cfg.Difficulty),
		seeder:    rand.New(rand.NewSource(seed)),
		character: DefaultCharacter,
		roster:    []string{DefaultCharacter},
	}
	m.enterIdle()
	return m
}

// Step applies the frame's actions in order, then advances one tick of dt
// seconds if the machine is Active. Actions that do not apply to the current
// state are ignored. A non-positive dt advances nothing.
func (m *Machine) Step(dt float64, in core.InputFrame) StepResult {
	var res StepResult

	for _, a := range in.Actions() {
		switch m.state {
		case StateIdle:
			switch a {
			case core.ActionJump:
				m.start()
				m.body.ApplyImpulse()
				res.Started = true
			case core.ActionLeft:
				m.cycleCharacter(-1)
			case core.ActionRight:
				m.cycleCharacter(1)
			}
		case StateActive:
			switch a {
			case core.ActionJump:
				m.body.ApplyImpulse()
			case core.ActionPause:
				m.state = StatePaused
			}
		case StatePaused:
			if a == core.ActionResume {
				m.state = StateActive
			}
		case StateOver:
			if a == core.ActionRestart {
				m.enterIdle()
				res.EnteredIdle = true
			}
		}
	}

	if m.state == StateActive && dt > 0 {
		res.Scored, res.Finished = m.tick(dt)
	}

	res.State = m.state
	return res
}

// tick advances the field, then the body, then resolves collision before
// crediting any score.
func (m *Machine) tick(dt float64) (int, *RunResult) {
	d := m.scaler.Evaluate(m.elapsed)
	m.field.Tick(dt, d)
	m.body.Tick(dt)
	m.elapsed += dt
	m.ticks++

	if Collides(m.body, m.field, m.cfg.World.GroundY) {
		return 0, m.finish()
	}
	return m.score.Tick(m.body, m.field), nil
}

// start builds a fresh body and field for a new run.
func (m *Machine) start() {
	m.body = NewBody(m.cfg)
	m.field = NewObstacleField(m.cfg, rand.New(rand.NewSource(m.seeder.Int63())))
	m.score.Reset()
	m.elapsed = 0
	m.ticks = 0
	m.runCharacter = m.character
	m.state = StateActive
}

// enterIdle discards the run. The body waits at its start position and the
// field is empty until the first flap.
func (m *Machine) enterIdle() {
	m.body = NewBody(m.cfg)
	m.field = NewObstacleField(m.cfg, nil)
	m.score.Reset()
	m.elapsed = 0
	m.ticks = 0
	m.state = StateIdle
}

func (m *Machine) finish() *RunResult {
	m.state = StateOver
	run := &RunResult{
		RunID:             uuid.New(),
		FinalScore:        m.score.Score(),
		ElapsedActiveTime: time.Duration(m.elapsed * float64(time.Second)),
		CharacterID:       m.runCharacter,
	}
	m.lastRun = run.RunID
	m.submitErr = nil
	if m.guest {
		m.submit = SubmitSkipped
	} else {
		m.submit = SubmitPending
	}
	return run
}

// ReportSubmission records the outcome of submitting the run with runID.
// Outcomes for anything but the latest pending run are dropped; the return
// value reports whether this one was applied.
func (m *Machine) ReportSubmission(runID uuid.UUID, receipt Receipt, err error) bool {
	if runID != m.lastRun || m.submit != SubmitPending {
		return false
	}
	if err != nil {
		m.submit = SubmitFailed
		m.submitErr = err
		return true
	}
	m.submit = SubmitSaved
	m.coins = receipt.NewCoinBalance
	m.hasCoins = true
	return true
}

// SetGuest marks the session as anonymous: finished runs are not submitted.
func (m *Machine) SetGuest(guest bool) {
	m.guest = guest
}

// Guest reports whether finished runs skip submission.
func (m *Machine) Guest() bool {
	return m.guest
}

// SetCoins records a coin balance read from the store.
func (m *Machine) SetCoins(balance int) {
	m.coins = balance
	m.hasCoins = true
}

// SetRoster replaces the selectable characters. The default character is
// always kept; a selection that is no longer available falls back to it.
func (m *Machine) SetRoster(ids []string) {
	roster := []string{DefaultCharacter}
	for _, id := range ids {
		if id != "" && !slices.Contains(roster, id) {
			roster = append(roster, id)
		}
	}
	m.roster = roster
	if !slices.Contains(m.roster, m.character) {
		m.character = DefaultCharacter
	}
}

// SelectCharacter picks id if it is in the roster.
func (m *Machine) SelectCharacter(id string) bool {
	if !slices.Contains(m.roster, id) {
		return false
	}
	m.character = id
	return true
}

func (m *Machine) cycleCharacter(delta int) {
	n := len(m.roster)
	i := slices.Index(m.roster, m.character)
	if n == 0 || i < 0 {
		return
	}
	m.character = m.roster[(i+delta+n)%n]
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Score returns the score of the current run.
func (m *Machine) Score() int {
	return m.score.Score()
}

// Best returns the best score of the session.
func (m *Machine) Best() int {
	return m.score.Best()
}

// Character returns the selected character.
func (m *Machine) Character() string {
	return m.character
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.JumpyConfig {
	return m.cfg
}
