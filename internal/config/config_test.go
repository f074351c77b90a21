package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS != DefaultFPS {
		t.Errorf("expected fps %d, got %d", DefaultFPS, cfg.FPS)
	}
	if cfg.Equations.PoolSize != 8 {
		t.Errorf("expected pool size 8, got %d", cfg.Equations.PoolSize)
	}
	if cfg.Descent.Interval != 80*time.Millisecond {
		t.Errorf("expected descent interval 80ms, got %v", cfg.Descent.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ambient.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Equations.Interval = 6 * time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Equations.Interval != 6*time.Second {
		t.Errorf("expected interval 6s, got %v", got.Equations.Interval)
	}
	if len(got.Flow.Layers) != 5 {
		t.Errorf("expected 5 flow layers, got %d", len(got.Flow.Layers))
	}
}

func TestLoadPartialKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "fps: 12\ndescent:\n  reset_pause: 3s\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("dense")
	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 12 {
		t.Errorf("expected fps 12, got %d", cfg.FPS)
	}
	if cfg.Descent.ResetPause != 3*time.Second {
		t.Errorf("expected reset pause 3s, got %v", cfg.Descent.ResetPause)
	}
	if cfg.Flow.Particles != 60 {
		t.Errorf("preset value lost: particles %d", cfg.Flow.Particles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyEnvMap(cfg, map[string]string{
		"AMBIENT_FPS":             "24",
		"AMBIENT_THEME":           "ocean",
		"AMBIENT_SEED":            "7",
		"AMBIENT_VIEWPORT_WIDTH":  "320",
		"AMBIENT_VIEWPORT_HEIGHT": "240",
		"FPS":                     "99",
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.FPS != 24 {
		t.Errorf("expected fps 24, got %d", cfg.FPS)
	}
	if cfg.Theme != "ocean" {
		t.Errorf("expected theme ocean, got %s", cfg.Theme)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Viewport.Width != 320 || cfg.Viewport.Height != 240 {
		t.Errorf("expected viewport 320x240, got %gx%g", cfg.Viewport.Width, cfg.Viewport.Height)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyEnvMap(cfg, map[string]string{"AMBIENT_FPS": "fast"}); err == nil {
		t.Error("expected error for non-numeric fps")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"empty viewport", func(c *Config) { c.Viewport.Width = 0 }},
		{"empty pool", func(c *Config) { c.Equations.PoolSize = 0 }},
		{"no layers", func(c *Config) { c.Flow.Layers = nil }},
		{"zero descent interval", func(c *Config) { c.Descent.Interval = 0 }},
		{"negative particles", func(c *Config) { c.Flow.Particles = -1 }},
		{"negative layer nodes", func(c *Config) { c.Flow.Layers[1].Nodes = -2 }},
		{"zero paths", func(c *Config) { c.Flow.Paths = 0 }},
		{"zero area per node", func(c *Config) { c.Field.AreaPerNode = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.apply(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestLoadRejectsNegativeFlowCounts(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"particles", "flow:\n  particles: -1\n"},
		{"layer nodes", "flow:\n  layers:\n    - {nodes: 4, x: 40}\n    - {nodes: -2, x: 100}\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "flow.yaml")
		if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path, nil)
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Equations.Interval != 8*time.Second {
		t.Errorf("expected interval 8s, got %v", cfg.Equations.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("calm preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"calm", "default", "dense", "swift"}
	if len(presets) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(presets))
	}
	for i, name := range want {
		if presets[i] != name {
			t.Errorf("preset %d: expected %s, got %s", i, name, presets[i])
		}
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
