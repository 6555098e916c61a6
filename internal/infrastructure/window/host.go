// Package window runs a game.Game inside an ebiten window.
//
// Ebiten owns the loop here, so the host maps its Update/Draw calls onto
// the lifecycle hooks and reuses the driver's frame timing.
package window

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
	"github.com/younwookim/sceneloop/internal/application/game"
	"github.com/younwookim/sceneloop/internal/application/state"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
)

// ScreenSetter is implemented by games that draw to the ebiten screen.
// SetScreen is called right before each OnRender.
type ScreenSetter interface {
	SetScreen(screen *ebiten.Image)
}

// Host implements ebiten.Game around a game.Game
type Host struct {
	game   game.Game
	cfg    config.WindowConfig
	clock  game.Clock
	logger *slog.Logger

	gd      *state.GameData
	timer   *state.FrameTimer
	started bool
	ticked  bool
	exited  bool
}

// New creates a host. A nil clock means the real clock.
func New(g game.Game, cfg config.WindowConfig, clock game.Clock, logger *slog.Logger) *Host {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Host{
		game:   g,
		cfg:    cfg,
		clock:  clock,
		logger: logging.OrDefault(logger),
		gd:     state.NewGameData(),
	}
}

// Update runs OnStart on the first call, then one OnUpdate per tick.
// Implements ebiten.Game interface.
func (h *Host) Update() error {
	if !h.started {
		h.start()
	}

	if !h.gd.IsRunning() {
		return ebiten.Termination
	}

	// Time passes between ebiten ticks, so each tick first closes the
	// previous iteration and then stamps its own timing.
	if h.ticked {
		h.timer.Advance(h.gd, h.clock.Now())
	}
	h.ticked = true

	h.timer.Stamp(h.gd)
	if !h.game.OnUpdate(h.gd) {
		h.gd.Shutdown()
	}

	return nil
}

// Draw hands the screen to the game and runs OnRender.
// Implements ebiten.Game interface.
func (h *Host) Draw(screen *ebiten.Image) {
	if !h.started || h.exited || !h.gd.IsRunning() {
		return
	}

	if s, ok := h.game.(ScreenSetter); ok {
		s.SetScreen(screen)
	}
	if !h.game.OnRender(h.gd) {
		h.gd.Shutdown()
	}
}

// Layout returns the configured logical screen size.
// Implements ebiten.Game interface.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}

// Run opens the window and blocks until the game stops, then calls OnExit.
func (h *Host) Run() error {
	ebiten.SetWindowSize(h.cfg.Width*h.cfg.Scale, h.cfg.Height*h.cfg.Scale)
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetTPS(h.cfg.TPS)

	err := ebiten.RunGame(h)
	h.Exit()
	return err
}

// Exit calls OnExit once. Later calls do nothing.
func (h *Host) Exit() {
	if h.exited {
		return
	}
	if !h.started {
		h.start()
	}
	h.exited = true

	if h.ticked {
		h.timer.Advance(h.gd, h.clock.Now())
	}
	h.gd.Shutdown()
	h.gd.SetPhase(state.PhaseExiting)
	h.game.OnExit(h.gd)
	h.gd.SetPhase(state.PhaseStopped)

	h.logger.Info("window closed", "frames", h.gd.Frame(), "frameRate", h.timer.FrameRate())
}

// GameData returns the loop state of this host
func (h *Host) GameData() *state.GameData {
	return h.gd
}

func (h *Host) start() {
	h.started = true
	h.gd.SetPhase(state.PhaseStarting)
	h.logger.Info("window starting", "title", h.cfg.Title, "tps", h.cfg.TPS)

	if !h.game.OnStart(h.gd) {
		h.gd.Shutdown()
	}

	h.timer = state.NewFrameTimer(h.clock.Now())
	h.gd.SetPhase(state.PhaseRunning)
}
