package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Set(ActionJump)
	f.Set(ActionPause) // duplicate collapses

	got := f.Actions()
	if len(got) != 2 {
		t.Fatalf("expected 2 queued actions, got %d (%v)", len(got), got)
	}
	if got[0] != ActionPause || got[1] != ActionJump {
		t.Errorf("actions out of order: %v", got)
	}
}

func TestInputFrameRemove(t *testing.T) {
	f := NewInputFrame(ActionJump, ActionPause, ActionRestart)
	f.Remove(ActionPause)
	f.Remove(ActionLeft) // not queued

	got := f.Actions()
	if len(got) != 2 || got[0] != ActionJump || got[1] != ActionRestart {
		t.Errorf("actions after Remove = %v, want [Jump Restart]", got)
	}
	if f.Has(ActionPause) {
		t.Error("removed action still reported by Has")
	}
}

func TestInputFrameIgnoresNone(t *testing.T) {
	f := NewInputFrame(ActionNone)
	if !f.Empty() {
		t.Error("ActionNone should never be queued")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame(ActionJump, ActionRestart)
	if !f.Has(ActionRestart) {
		t.Fatal("Has should report queued action")
	}

	f.Clear()

	if !f.Empty() || f.Has(ActionJump) {
		t.Error("Clear should drop all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionJump:    "Jump",
		ActionResume:  "Resume",
		ActionRight:   "Right",
		Action(99):    "Unknown",
		ActionNone:    "None",
		ActionRestart: "Restart",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), a.String(), want)
		}
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickDuration(); got != 1.0/60.0 {
		t.Errorf("TickDuration() = %v, expected 1/60", got)
	}

	cfg.TickRate = 0
	if got := cfg.TickDuration(); got != 1.0/60.0 {
		t.Errorf("zero TickRate should fall back to 1/60, got %v", got)
	}
}
