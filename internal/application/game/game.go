// Package game provides the lifecycle contract an application implements
// and the loop driver that runs it.
package game

import "github.com/younwookim/sceneloop/internal/application/state"

// Game is the set of hooks the loop driver calls.
//
// OnStart runs once, then OnUpdate and OnRender run once per iteration.
// Returning false from any of them stops the loop before the next
// iteration. OnExit always runs exactly once, last; its result is ignored.
type Game interface {
	OnStart(gd *state.GameData) bool
	OnUpdate(gd *state.GameData) bool
	OnRender(gd *state.GameData) bool
	OnExit(gd *state.GameData) bool
}

// Base implements every Game hook as a no-op that keeps the loop running.
type Base struct{}

func (Base) OnStart(*state.GameData) bool  { return true }
func (Base) OnUpdate(*state.GameData) bool { return true }
func (Base) OnRender(*state.GameData) bool { return true }
func (Base) OnExit(*state.GameData) bool   { return true }
