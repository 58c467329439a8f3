package config

import (
	"math"
	"sort"
)

// Presets adjust the default configuration for common studies.
var Presets = map[string]func(*Config){
	"reference": func(c *Config) {},
	"fine": func(c *Config) {
		c.Run.StepsPerPeriod = 1000
	},
	"coarse": func(c *Config) {
		c.Run.StepsPerPeriod = 20
	},
	"long": func(c *Config) {
		c.Run.Periods = 100
	},
	"kicked": func(c *Config) {
		c.Physics.ThetaDot0 = 1.0
	},
	"large-angle": func(c *Config) {
		c.Physics.Theta0 = math.Pi / 4
	},
	"quick-sweep": func(c *Config) {
		c.Convergence.Divisors = []float64{1e4, 3e3, 1e3, 300, 100, 30, 10}
		c.Convergence.Periods = 1
		c.Convergence.FitPoints = 5
	},
}

// GetPreset returns a fresh configuration for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
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
