// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds rendering settings.
type ViewerConfig struct {
	Background [3]float32 `yaml:"background"` // RGB clear color, 0..1
	FOV        float32    `yaml:"fov"`        // vertical field of view, degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			Background: [3]float32{0.15, 0.15, 0.18},
			FOV:        45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
