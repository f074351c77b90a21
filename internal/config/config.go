package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/ambient/internal/visuals"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 30
	DefaultTheme    = "mono"
	DefaultWidth    = 640
	DefaultHeight   = 400
	DefaultDuration = 10.0
	EnvPrefix       = "AMBIENT_"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	FPS      int            `yaml:"fps" env:"FPS"`
	Seed     int64          `yaml:"seed" env:"SEED"`
	Theme    string         `yaml:"theme" env:"THEME"`
	Log      string         `yaml:"log" env:"LOG"`
	Duration float64        `yaml:"duration" env:"DURATION"`
	Viewport ViewportConfig `yaml:"viewport" envPrefix:"VIEWPORT_"`

	Field       visuals.FieldParams       `yaml:"field"`
	Equations   visuals.EmitterParams     `yaml:"equations"`
	Attention   visuals.AttentionParams   `yaml:"attention"`
	Flow        visuals.FlowParams        `yaml:"flow"`
	Descent     visuals.DescentParams     `yaml:"descent"`
	Transformer visuals.TransformerParams `yaml:"transformer"`
}

// ViewportConfig sizes the background surface in headless runs and
// exports. Terminal and window hosts use their own size.
type ViewportConfig struct {
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
		Duration: DefaultDuration,
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Field:       visuals.DefaultFieldParams(),
		Equations:   visuals.DefaultEmitterParams(),
		Attention:   visuals.DefaultAttentionParams(),
		Flow:        visuals.DefaultFlowParams(),
		Descent:     visuals.DefaultDescentParams(),
		Transformer: visuals.DefaultTransformerParams(),
	}
}

// Load reads a YAML file over base. A nil base starts from DefaultConfig.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays AMBIENT_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return ApplyEnvMap(cfg, nil)
}

// ApplyEnvMap is ApplyEnv with an explicit environment; nil reads the
// process environment.
func ApplyEnvMap(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalid)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.Equations.PoolSize <= 0:
		return fmt.Errorf("%w: equations pool size must be positive", ErrInvalid)
	case c.Attention.Size <= 0:
		return fmt.Errorf("%w: attention size must be positive", ErrInvalid)
	case len(c.Flow.Layers) == 0:
		return fmt.Errorf("%w: flow needs at least one layer", ErrInvalid)
	case c.Flow.Particles < 0:
		return fmt.Errorf("%w: flow particles must not be negative, got %d", ErrInvalid, c.Flow.Particles)
	case c.Flow.Paths <= 0:
		return fmt.Errorf("%w: flow paths must be positive, got %d", ErrInvalid, c.Flow.Paths)
	case c.Field.AreaPerNode <= 0:
		return fmt.Errorf("%w: field area per node must be positive", ErrInvalid)
	case c.Descent.Interval <= 0:
		return fmt.Errorf("%w: descent interval must be positive", ErrInvalid)
	}
	for i, l := range c.Flow.Layers {
		if l.Nodes < 0 {
			return fmt.Errorf("%w: flow layer %d has %d nodes", ErrInvalid, i, l.Nodes)
		}
	}
	return nil
}
