// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxCatchUpSteps bounds how many simulation steps one late tick may run.
const maxCatchUpSteps = 5

// FixedStep converts irregular tick delivery into a whole number of fixed
// simulation steps. Leftover time carries over to the next tick.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
	last     time.Time
}

// NewFixedStep creates a clock stepping tickRate times per second.
func NewFixedStep(tickRate int) FixedStep {
	if tickRate <= 0 {
		tickRate = 60
	}
	return FixedStep{
		step:     time.Second / time.Duration(tickRate),
		maxSteps: maxCatchUpSteps,
	}
}

// Dt returns the step length in seconds.
func (f *FixedStep) Dt() float64 {
	return f.step.Seconds()
}

// Advance records a tick at now and returns how many steps to simulate.
// The first tick after a reset runs exactly one step. When the program
// stalls, the backlog is dropped after maxSteps instead of spiralling.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
		return 1
	}
	elapsed := now.Sub(f.last)
	f.last = now
	if elapsed <= 0 {
		return 0
	}

	f.acc += elapsed
	n := int(f.acc / f.step)
	if n > f.maxSteps {
		f.acc = 0
		return f.maxSteps
	}
	f.acc -= time.Duration(n) * f.step
	return n
}

// Reset forgets the last tick and any carried-over time.
func (f *FixedStep) Reset() {
	f.acc = 0
	f.last = time.Time{}
}
