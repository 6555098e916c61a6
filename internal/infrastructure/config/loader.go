// Package config loads the engine configuration from files and environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// engineFiles are tried in order by LoadEngine
var engineFiles = []string{"engine.json", "engine.yaml", "engine.yml"}

// Loader loads engine configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadEngine loads the first engine config file found, on top of Default
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	for _, name := range engineFiles {
		cfg, err := l.LoadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return nil, fmt.Errorf("no engine config in %s (tried %s): %w",
		l.basePath, strings.Join(engineFiles, ", "), fs.ErrNotExist)
}

// LoadFile loads a single config file, choosing the decoder by extension
func (l *Loader) LoadFile(name string) (*EngineConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := Default()
	switch ext := path.Ext(name); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// Validate checks the values the engine cannot run without
func (c *EngineConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale must be positive, got %d", c.Window.Scale))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps must be positive, got %d", c.Window.TPS))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless frames must not be negative, got %d", c.Headless.Frames))
	}
	return errors.Join(errs...)
}

// Environ returns the process environment layered over the given .env
// files. Missing files are skipped; process variables win.
func Environ(dotenvFiles ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, file := range dotenvFiles {
		vars, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", file, err)
		}
		for k, v := range vars {
			out[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

// ApplyEnv overrides cfg with SCENELOOP_* variables from environ
func ApplyEnv(cfg *EngineConfig, environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	override(&cfg.Window.Title, o.Title)
	override(&cfg.Window.Width, o.Width)
	override(&cfg.Window.Height, o.Height)
	override(&cfg.Window.Scale, o.Scale)
	override(&cfg.Window.TPS, o.TPS)
	override(&cfg.Log.Level, o.LogLevel)
	override(&cfg.Scenes.Initial, o.InitialScene)
	override(&cfg.Headless.Frames, o.HeadlessFrames)

	return cfg.Validate()
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
