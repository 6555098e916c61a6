package config

// EngineConfig is the root config for engine.json / engine.yaml
type EngineConfig struct {
	Window   WindowConfig   `json:"window" yaml:"window"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Scenes   ScenesConfig   `json:"scenes" yaml:"scenes"`
	Headless HeadlessConfig `json:"headless" yaml:"headless"`
}

type WindowConfig struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`   // Logical screen width (pixels)
	Height int    `json:"height" yaml:"height"` // Logical screen height (pixels)
	Scale  int    `json:"scale" yaml:"scale"`   // Window size multiplier
	TPS    int    `json:"tps" yaml:"tps"`       // Ebiten ticks per second
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type ScenesConfig struct {
	Initial string `json:"initial" yaml:"initial"` // Scene made current at start
}

type HeadlessConfig struct {
	Frames int `json:"frames" yaml:"frames"` // Iterations before shutdown, 0 = until a scene quits
}

// Default returns the built-in configuration used as the base for loading
func Default() *EngineConfig {
	return &EngineConfig{
		Window: WindowConfig{
			Title:  "sceneloop",
			Width:  320,
			Height: 240,
			Scale:  2,
			TPS:    60,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scenes: ScenesConfig{
			Initial: "title",
		},
	}
}

// envOverrides maps SCENELOOP_* variables onto EngineConfig fields.
// Nil means the variable was not set; an explicit zero still applies.
type envOverrides struct {
	Title          *string `env:"SCENELOOP_WINDOW_TITLE"`
	Width          *int    `env:"SCENELOOP_WINDOW_WIDTH"`
	Height         *int    `env:"SCENELOOP_WINDOW_HEIGHT"`
	Scale          *int    `env:"SCENELOOP_WINDOW_SCALE"`
	TPS            *int    `env:"SCENELOOP_WINDOW_TPS"`
	LogLevel       *string `env:"SCENELOOP_LOG_LEVEL"`
	InitialScene   *string `env:"SCENELOOP_INITIAL_SCENE"`
	HeadlessFrames *int    `env:"SCENELOOP_HEADLESS_FRAMES"`
}
