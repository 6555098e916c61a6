// Package state holds the loop state shared between the driver and the game.
package state

import "time"

// Phase represents where a loop run currently is
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseRunning
	PhaseExiting
	PhaseStopped
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseStarting:
		return "Starting"
	case PhaseRunning:
		return "Running"
	case PhaseExiting:
		return "Exiting"
	case PhaseStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// GameData is the per-run loop state handed to every lifecycle hook.
//
// The driver owns the timing fields; games may only read them and call
// Shutdown. Once running is false it stays false for the rest of the run.
type GameData struct {
	frameRate uint32
	delta     time.Duration
	frame     uint64
	running   bool
	phase     Phase
}

// NewGameData creates loop state for a fresh run
func NewGameData() *GameData {
	return &GameData{running: true}
}

// DeltaTime returns the seconds elapsed since the previous iteration
func (gd *GameData) DeltaTime() float64 { return gd.delta.Seconds() }

// Delta returns DeltaTime as a duration
func (gd *GameData) Delta() time.Duration { return gd.delta }

// FrameRate returns the iteration count of the last full second
func (gd *GameData) FrameRate() uint32 { return gd.frameRate }

// Frame returns the number of completed iterations
func (gd *GameData) Frame() uint64 { return gd.frame }

// Phase returns the current phase of the run
func (gd *GameData) Phase() Phase { return gd.phase }

// IsRunning reports whether the loop should keep iterating
func (gd *GameData) IsRunning() bool { return gd.running }

// Shutdown stops the loop before its next iteration
func (gd *GameData) Shutdown() { gd.running = false }

// SetPhase moves the run forward. Moving backwards is ignored.
func (gd *GameData) SetPhase(p Phase) {
	if p > gd.phase {
		gd.phase = p
	}
}
