package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadEngine(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, "sceneloop demo", cfg.Window.Title)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.Equal(t, 2, cfg.Window.Scale)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "title", cfg.Scenes.Initial)
	assert.Equal(t, 0, cfg.Headless.Frames)
}

func TestLoader_LoadEngineYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"engine.yaml": {Data: []byte("window:\n  title: yaml window\n  tps: 30\nscenes:\n  initial: play\n")},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, "yaml window", cfg.Window.Title)
	assert.Equal(t, 30, cfg.Window.TPS)
	assert.Equal(t, "play", cfg.Scenes.Initial)
	assert.Equal(t, 320, cfg.Window.Width, "unset fields keep defaults")
}

func TestLoader_LoadEngineMissing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "mem")

	_, err := loader.LoadEngine()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadFileErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json":  {Data: []byte("{")},
		"engine.toml":  {Data: []byte("")},
		"invalid.json": {Data: []byte(`{"window": {"width": -1}}`)},
	}
	loader := NewFSLoader(fsys, "mem")

	_, err := loader.LoadFile("broken.json")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = loader.LoadFile("engine.toml")
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = loader.LoadFile("invalid.json")
	assert.ErrorContains(t, err, "window size must be positive")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := ApplyEnv(cfg, map[string]string{
		"SCENELOOP_WINDOW_TITLE":    "from env",
		"SCENELOOP_WINDOW_TPS":      "120",
		"SCENELOOP_LOG_LEVEL":       "debug",
		"SCENELOOP_INITIAL_SCENE":   "play",
		"SCENELOOP_HEADLESS_FRAMES": "500",
		"UNRELATED":                 "x",
	})
	require.NoError(t, err)

	assert.Equal(t, "from env", cfg.Window.Title)
	assert.Equal(t, 120, cfg.Window.TPS)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "play", cfg.Scenes.Initial)
	assert.Equal(t, 500, cfg.Headless.Frames)
	assert.Equal(t, 320, cfg.Window.Width, "unset variables leave values alone")
}

func TestApplyEnv_ExplicitZero(t *testing.T) {
	cfg := Default()
	cfg.Headless.Frames = 300

	err := ApplyEnv(cfg, map[string]string{"SCENELOOP_HEADLESS_FRAMES": "0"})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Headless.Frames, "zero means run until a scene quits")

	err = ApplyEnv(Default(), map[string]string{"SCENELOOP_WINDOW_TPS": "0"})
	assert.ErrorContains(t, err, "window tps must be positive")
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()

	err := ApplyEnv(cfg, map[string]string{"SCENELOOP_WINDOW_WIDTH": "wide"})
	assert.Error(t, err)

	err = ApplyEnv(Default(), map[string]string{"SCENELOOP_WINDOW_SCALE": "-2"})
	assert.ErrorContains(t, err, "window scale must be positive")
}

func TestEnviron_DotenvFiles(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("SCENELOOP_TEST_ONLY=from-file\nSCENELOOP_TEST_SHADOW=file\n"), 0o644))
	t.Setenv("SCENELOOP_TEST_SHADOW", "process")

	environ, err := Environ(filepath.Join(dir, "missing.env"), dotenv)
	require.NoError(t, err)

	assert.Equal(t, "from-file", environ["SCENELOOP_TEST_ONLY"])
	assert.Equal(t, "process", environ["SCENELOOP_TEST_SHADOW"], "process environment wins")
}
