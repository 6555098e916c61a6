package game

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/younwookim/sceneloop/internal/application/state"
	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
)

// Clock supplies wall-clock time to the driver
type Clock interface {
	Now() time.Time
}

// Observer is notified after every completed iteration
type Observer func(gd *state.GameData)

// Option configures a Container
type Option func(*Container)

// WithClock replaces the real clock, e.g. with a fake or replay clock
func WithClock(clock Clock) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for loop start/stop notices
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithObserver registers a per-iteration observer
func WithObserver(obs Observer) Option {
	return func(c *Container) {
		c.observers = append(c.observers, obs)
	}
}

// Container is the loop driver. It runs a Game as fast as its hooks
// allow, with no sleeping or frame limiting.
type Container struct {
	clock     Clock
	logger    *slog.Logger
	observers []Observer
}

// NewContainer creates a driver using the real clock unless overridden
func NewContainer(opts ...Option) *Container {
	c := &Container{}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	c.logger = logging.OrDefault(c.logger)
	return c
}

// Run drives g until a hook returns false or Shutdown is called, then
// calls OnExit once. It returns the final loop state.
func (c *Container) Run(g Game) *state.GameData {
	gd := state.NewGameData()

	gd.SetPhase(state.PhaseStarting)
	c.logger.Info("loop starting")
	if !g.OnStart(gd) {
		gd.Shutdown()
	}

	timer := state.NewFrameTimer(c.clock.Now())
	gd.SetPhase(state.PhaseRunning)

	for gd.IsRunning() {
		timer.Stamp(gd)

		// Both hooks run every iteration; either one can stop the loop.
		updated := g.OnUpdate(gd)
		rendered := g.OnRender(gd)
		if !updated || !rendered {
			gd.Shutdown()
		}

		timer.Advance(gd, c.clock.Now())

		for _, obs := range c.observers {
			obs(gd)
		}
	}

	gd.SetPhase(state.PhaseExiting)
	g.OnExit(gd)
	gd.SetPhase(state.PhaseStopped)

	c.logger.Info("loop stopped", "frames", gd.Frame(), "frameRate", timer.FrameRate())

	return gd
}
