package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/state"
)

const (
	sceneTitle = "title"
	scenePlay  = "play"

	// titleSeconds is how long the title stays up without input
	titleSeconds = 2.0
)

// Colors for rendering
var (
	colorTitleBG = color.RGBA{26, 26, 46, 255}
	colorPlayBG  = color.RGBA{40, 60, 40, 255}
)

type eventKind int

const (
	eventSwitch eventKind = iota
	eventSwitched
	eventQuit
)

// demoEvent is the event type routed through the scene manager
type demoEvent struct {
	Kind  eventKind
	Scene string
}

// demoData is the payload every scene hook receives
type demoData struct {
	gd          *state.GameData
	screen      *ebiten.Image
	interactive bool
	logger      *slog.Logger
}

func (d *demoData) keyPressed(key ebiten.Key) bool {
	return d.interactive && inpututil.IsKeyJustPressed(key)
}

// titleScene waits for a key or a timeout, then asks to switch to play
type titleScene struct {
	scene.Base[*demoData, demoEvent]
	elapsed float64
	entered int
}

func (s *titleScene) OnEnter(d *demoData) {
	s.elapsed = 0
	s.entered++
	d.logger.Info("entered scene", "scene", sceneTitle, "times", s.entered)
}

func (s *titleScene) OnUpdate(d *demoData) {
	s.elapsed += d.gd.DeltaTime()
}

func (s *titleScene) OnRender(d *demoData) {
	if d.screen == nil {
		return
	}
	d.screen.Fill(colorTitleBG)
	ebitenutil.DebugPrint(d.screen, "SCENELOOP\n\nPress SPACE to start")
}

func (s *titleScene) PollEvents(d *demoData, queue *scene.Queue[demoEvent]) {
	if s.elapsed >= titleSeconds || d.keyPressed(ebiten.KeySpace) {
		queue.Push(demoEvent{Kind: eventSwitch, Scene: scenePlay})
	}
}

// playScene counts updates and shows the loop timing
type playScene struct {
	scene.Base[*demoData, demoEvent]
	updates int
	from    string
}

func (s *playScene) OnEnter(d *demoData) {
	s.updates = 0
	d.logger.Info("entered scene", "scene", scenePlay)
}

func (s *playScene) OnEvent(d *demoData, event demoEvent) {
	if event.Kind == eventSwitched {
		s.from = event.Scene
	}
}

func (s *playScene) OnUpdate(d *demoData) {
	s.updates++
}

func (s *playScene) OnRender(d *demoData) {
	if d.screen == nil {
		return
	}
	d.screen.Fill(colorPlayBG)
	ebitenutil.DebugPrint(d.screen, fmt.Sprintf(
		"FPS: %d\nDT: %.4f\nUpdates: %d\nFrom: %s\n\nT: title  ESC: quit",
		d.gd.FrameRate(), d.gd.DeltaTime(), s.updates, s.from))
}

func (s *playScene) PollEvents(d *demoData, queue *scene.Queue[demoEvent]) {
	if d.keyPressed(ebiten.KeyT) {
		queue.Push(demoEvent{Kind: eventSwitch, Scene: sceneTitle})
	}
	if d.keyPressed(ebiten.KeyEscape) {
		queue.Push(demoEvent{Kind: eventQuit})
	}
}

// demoGame wires the scene manager into the lifecycle hooks
type demoGame struct {
	scenes    *scene.Manager[*demoData, demoEvent]
	data      *demoData
	initial   string
	maxFrames uint64
}

func newDemoGame(initial string, maxFrames uint64, interactive bool, logger *slog.Logger) *demoGame {
	return &demoGame{
		scenes:    scene.NewManager[*demoData, demoEvent](logger),
		data:      &demoData{interactive: interactive, logger: logger},
		initial:   initial,
		maxFrames: maxFrames,
	}
}

func (g *demoGame) OnStart(gd *state.GameData) bool {
	g.data.gd = gd
	g.scenes.AddScene(&titleScene{}, sceneTitle)
	g.scenes.AddScene(&playScene{}, scenePlay)

	if !g.scenes.SwitchScene(g.data, g.initial) {
		return false
	}
	g.scenes.Start(g.data)
	return true
}

func (g *demoGame) OnUpdate(gd *state.GameData) bool {
	g.data.gd = gd

	for _, ev := range g.scenes.PollEvents(g.data) {
		switch ev.Kind {
		case eventSwitch:
			from := g.scenes.CurrentSceneName()
			if g.scenes.SwitchScene(g.data, ev.Scene) {
				g.scenes.SendEvent(g.data, demoEvent{Kind: eventSwitched, Scene: from})
			}
		case eventQuit:
			return false
		}
	}

	g.scenes.Update(g.data)

	return g.maxFrames == 0 || gd.Frame()+1 < g.maxFrames
}

func (g *demoGame) OnRender(gd *state.GameData) bool {
	g.data.gd = gd
	g.scenes.Render(g.data)
	return true
}

func (g *demoGame) OnExit(gd *state.GameData) bool {
	g.data.gd = gd
	g.scenes.Exit(g.data)
	if err := g.scenes.Close(); err != nil {
		g.data.logger.Warn("failed to release scenes", "error", err)
	}
	return true
}

// SetScreen implements window.ScreenSetter
func (g *demoGame) SetScreen(screen *ebiten.Image) {
	g.data.screen = screen
}
