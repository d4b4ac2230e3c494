package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Viewer.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Viewer.FOV)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

viewer:
  background: [0.0, 0.0, 0.0]
  fov: 60

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Viewer.Background != [3]float32{0, 0, 0} {
		t.Errorf("expected black background, got %v", cfg.Viewer.Background)
	}
	if cfg.Viewer.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Viewer.FOV)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists yet
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "objviewer.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find objviewer.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 800
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Window.Width != 800 {
		t.Errorf("expected width 800 after round trip, got %d", loaded.Window.Width)
	}
}
