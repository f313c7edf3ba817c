// Package engine provides the session state machine shared by every game.
//
// A game session moves through four phases:
//
//	Start ──Begin──▶ Playing ◀─TogglePause─▶ Paused
//	                    │
//	                   End
//	                    ▼
//	                 GameOver ──Restart──▶ Start
//
// Transitions are guarded: requesting a transition from the wrong phase is a
// no-op and reports false. End reports true exactly once per session, on the
// Playing→GameOver edge, which is what the platform keys one-shot work
// (best-score persistence, remote submission) off of.
package engine

// Phase is the current stage of a game session.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Machine tracks the phase of a single game session.
// The zero value is a machine in PhaseStart.
type Machine struct {
	phase Phase
}

// NewMachine returns a machine in PhaseStart.
func NewMachine() *Machine {
	return &Machine{phase: PhaseStart}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Playing reports whether the session is actively simulating.
func (m *Machine) Playing() bool {
	return m.phase == PhasePlaying
}

// Paused reports whether the session is paused.
func (m *Machine) Paused() bool {
	return m.phase == PhasePaused
}

// Over reports whether the session has ended.
func (m *Machine) Over() bool {
	return m.phase == PhaseGameOver
}

// Begin moves Start→Playing. Reports whether the transition happened.
func (m *Machine) Begin() bool {
	if m.phase != PhaseStart {
		return false
	}
	m.phase = PhasePlaying
	return true
}

// TogglePause flips Playing⇄Paused. Reports whether the transition happened.
func (m *Machine) TogglePause() bool {
	switch m.phase {
	case PhasePlaying:
		m.phase = PhasePaused
		return true
	case PhasePaused:
		m.phase = PhasePlaying
		return true
	default:
		return false
	}
}

// End moves Playing→GameOver. Reports true exactly on the edge traversal;
// a second call, or a call from any other phase, reports false.
func (m *Machine) End() bool {
	if m.phase != PhasePlaying {
		return false
	}
	m.phase = PhaseGameOver
	return true
}

// Restart moves GameOver→Start. Reports whether the transition happened.
func (m *Machine) Restart() bool {
	if m.phase != PhaseGameOver {
		return false
	}
	m.phase = PhaseStart
	return true
}

// Reset forces the machine back to PhaseStart regardless of phase.
// Used when the platform rebuilds a session wholesale.
func (m *Machine) Reset() {
	m.phase = PhaseStart
}
