package engine

import "testing"

func TestInitialPhase(t *testing.T) {
	m := NewMachine()
	if m.Phase() != PhaseStart {
		t.Errorf("new machine phase = %v, want PhaseStart", m.Phase())
	}

	var zero Machine
	if zero.Phase() != PhaseStart {
		t.Errorf("zero machine phase = %v, want PhaseStart", zero.Phase())
	}
}

func TestHappyPath(t *testing.T) {
	m := NewMachine()

	if !m.Begin() {
		t.Fatal("Begin from Start should succeed")
	}
	if !m.Playing() {
		t.Errorf("phase = %v, want PhasePlaying", m.Phase())
	}

	if !m.End() {
		t.Fatal("End from Playing should succeed")
	}
	if !m.Over() {
		t.Errorf("phase = %v, want PhaseGameOver", m.Phase())
	}

	if !m.Restart() {
		t.Fatal("Restart from GameOver should succeed")
	}
	if m.Phase() != PhaseStart {
		t.Errorf("phase = %v, want PhaseStart", m.Phase())
	}
}

func TestPauseToggle(t *testing.T) {
	m := NewMachine()

	// Cannot pause before the game begins.
	if m.TogglePause() {
		t.Error("TogglePause from Start should be a no-op")
	}

	m.Begin()
	if !m.TogglePause() {
		t.Fatal("TogglePause from Playing should succeed")
	}
	if !m.Paused() {
		t.Errorf("phase = %v, want PhasePaused", m.Phase())
	}

	// End is guarded while paused.
	if m.End() {
		t.Error("End from Paused should be a no-op")
	}

	if !m.TogglePause() {
		t.Fatal("TogglePause from Paused should resume")
	}
	if !m.Playing() {
		t.Errorf("phase = %v, want PhasePlaying", m.Phase())
	}
}

func TestEndEdgeFiresOnce(t *testing.T) {
	m := NewMachine()
	m.Begin()

	if !m.End() {
		t.Fatal("first End should report the edge")
	}
	if m.End() {
		t.Error("second End should not report the edge again")
	}
	if m.Begin() {
		t.Error("Begin from GameOver should be a no-op")
	}
	if m.TogglePause() {
		t.Error("TogglePause from GameOver should be a no-op")
	}
}

func TestGuardedTransitions(t *testing.T) {
	m := NewMachine()

	if m.End() {
		t.Error("End from Start should be a no-op")
	}
	if m.Restart() {
		t.Error("Restart from Start should be a no-op")
	}

	m.Begin()
	if m.Begin() {
		t.Error("Begin from Playing should be a no-op")
	}
	if m.Restart() {
		t.Error("Restart from Playing should be a no-op")
	}
}

func TestReset(t *testing.T) {
	m := NewMachine()
	m.Begin()
	m.TogglePause()

	m.Reset()
	if m.Phase() != PhaseStart {
		t.Errorf("phase after Reset = %v, want PhaseStart", m.Phase())
	}
	if !m.Begin() {
		t.Error("Begin after Reset should succeed")
	}
}
