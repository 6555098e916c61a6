package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"sort"

	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
)

// active is the current-scene slot. Holding the scene itself rather than
// re-resolving the name on every call means dispatch can never miss.
type active[D, E any] struct {
	name  string
	scene Scene[D, E]
}

// Manager owns a named set of scenes and forwards lifecycle calls and
// events to the current one. With no current scene every dispatch is a no-op.
//
// Manager is not safe for concurrent use; it belongs to the loop goroutine.
type Manager[D, E any] struct {
	scenes  map[string]Scene[D, E]
	current *active[D, E]
	pending Queue[E]
	logger  *slog.Logger
}

// NewManager creates an empty manager. A nil logger falls back to stderr.
func NewManager[D, E any](logger *slog.Logger) *Manager[D, E] {
	return &Manager[D, E]{
		scenes: make(map[string]Scene[D, E]),
		logger: logging.OrDefault(logger),
	}
}

// AddScene registers s under name, replacing and releasing any scene
// already registered there. If the replaced scene was current, s takes
// its place as current.
func (m *Manager[D, E]) AddScene(s Scene[D, E], name string) {
	prev, exists := m.scenes[name]
	m.scenes[name] = s

	if m.current != nil && m.current.name == name {
		m.current.scene = s
	}

	if exists && !m.registered(prev) {
		if err := release(prev); err != nil {
			m.logger.Warn("failed to release replaced scene", "scene", name, "error", err)
		}
	}
}

// SetCurrentScene makes the scene registered under name current.
// An empty name clears the current scene. An unknown name is logged and
// ignored.
func (m *Manager[D, E]) SetCurrentScene(name string) {
	if name == "" {
		m.current = nil
		return
	}

	s, ok := m.scenes[name]
	if !ok {
		m.logger.Error("cannot set current scene: not registered", "scene", name)
		return
	}

	m.current = &active[D, E]{name: name, scene: s}
}

// SwitchScene exits the current scene, makes name current and enters it.
// It reports whether the switch happened; an unknown name changes nothing.
func (m *Manager[D, E]) SwitchScene(data D, name string) bool {
	if name != "" {
		if _, ok := m.scenes[name]; !ok {
			m.SetCurrentScene(name)
			return false
		}
	}

	m.Exit(data)
	m.SetCurrentScene(name)
	m.Enter(data)

	return true
}

// Start forwards OnStart to the current scene
func (m *Manager[D, E]) Start(data D) {
	if m.current != nil {
		m.current.scene.OnStart(data)
	}
}

// Enter forwards OnEnter to the current scene
func (m *Manager[D, E]) Enter(data D) {
	if m.current != nil {
		m.current.scene.OnEnter(data)
	}
}

// Exit forwards OnExit to the current scene
func (m *Manager[D, E]) Exit(data D) {
	if m.current != nil {
		m.current.scene.OnExit(data)
	}
}

// Update forwards OnUpdate to the current scene
func (m *Manager[D, E]) Update(data D) {
	if m.current != nil {
		m.current.scene.OnUpdate(data)
	}
}

// Render forwards OnRender to the current scene
func (m *Manager[D, E]) Render(data D) {
	if m.current != nil {
		m.current.scene.OnRender(data)
	}
}

// SendEvent delivers event to the current scene. Without a current
// scene the event is dropped.
func (m *Manager[D, E]) SendEvent(data D, event E) {
	if m.current != nil {
		m.current.scene.OnEvent(data, event)
	}
}

// PollEvents lets the current scene queue events, then drains the queue.
// Events come back in the order they were pushed.
func (m *Manager[D, E]) PollEvents(data D) []E {
	if m.current == nil {
		return []E{}
	}

	m.current.scene.PollEvents(data, &m.pending)
	return m.pending.Drain()
}

// CurrentSceneName returns the current scene name, or "" for none
func (m *Manager[D, E]) CurrentSceneName() string {
	if m.current == nil {
		return ""
	}
	return m.current.name
}

// CurrentScene returns the current scene, if any
func (m *Manager[D, E]) CurrentScene() (Scene[D, E], bool) {
	if m.current == nil {
		return nil, false
	}
	return m.current.scene, true
}

// Scene looks up a registered scene by name
func (m *Manager[D, E]) Scene(name string) (Scene[D, E], bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names returns the registered scene names in sorted order
func (m *Manager[D, E]) Names() []string {
	names := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered scenes
func (m *Manager[D, E]) Len() int {
	return len(m.scenes)
}

// Close releases every registered scene and empties the manager.
func (m *Manager[D, E]) Close() error {
	var (
		errs     []error
		released []Scene[D, E]
	)
	for _, name := range m.Names() {
		s := m.scenes[name]
		if slices.ContainsFunc(released, func(r Scene[D, E]) bool { return sameScene(r, s) }) {
			continue
		}
		released = append(released, s)

		if err := release(s); err != nil {
			errs = append(errs, fmt.Errorf("release scene %q: %w", name, err))
		}
	}

	m.scenes = make(map[string]Scene[D, E])
	m.current = nil
	m.pending.Drain()

	return errors.Join(errs...)
}

// registered reports whether s is still held under any name
func (m *Manager[D, E]) registered(s Scene[D, E]) bool {
	for _, other := range m.scenes {
		if sameScene(other, s) {
			return true
		}
	}
	return false
}

// sameScene reports whether a and b are the same instance. Scenes of
// non-comparable types are never considered the same.
func sameScene(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// release closes scenes that hold resources
func release(s any) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
