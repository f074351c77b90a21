package config

import (
	"sort"
	"time"
)

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"default": {
		Description: "stock settings",
		Apply:       func(*Config) {},
	},
	"calm": {
		Description: "slow drift, sparse labels, gentle descent",
		Apply: func(c *Config) {
			c.FPS = 20
			c.Field.InitialSpeed = 0.15
			c.Field.AreaPerNode = 40000
			c.Equations.PoolSize = 5
			c.Equations.Interval = 8 * time.Second
			c.Attention.Interval = 250 * time.Millisecond
			c.Attention.ResampleChance = 0.15
			c.Flow.MinSpeed, c.Flow.MaxSpeed = 0.0015, 0.0035
			c.Descent.LearningRate = 0.03
			c.Descent.Interval = 160 * time.Millisecond
		},
	},
	"dense": {
		Description: "crowded field and a busy network",
		Apply: func(c *Config) {
			c.Field.AreaPerNode = 12000
			c.Field.LinkDistance = 120
			c.Equations.PoolSize = 14
			c.Flow.Particles = 60
			c.Flow.Paths = 8
		},
	},
	"swift": {
		Description: "fast ticks and a hot learning rate",
		Apply: func(c *Config) {
			c.FPS = 60
			c.Field.InitialSpeed = 0.6
			c.Equations.Interval = 2 * time.Second
			c.Attention.Interval = 50 * time.Millisecond
			c.Attention.Smoothing = 0.2
			c.Flow.MinSpeed, c.Flow.MaxSpeed = 0.006, 0.014
			c.Descent.LearningRate = 0.08
			c.Descent.Interval = 40 * time.Millisecond
			c.Descent.ResetPause = time.Second
		},
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
