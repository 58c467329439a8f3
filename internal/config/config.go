package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

const (
	DefaultStepsPerPeriod = 100
	DefaultPeriods        = 3.0
	DefaultSweepScheme    = "symplectic"
	DefaultSweepPeriods   = 5.0
	DefaultFitPoints      = 8
	DefaultFigureDir      = "figures"
	DefaultDPI            = 400
	DefaultFormat         = "png"
	DefaultFigureWidth    = 8.0
	DefaultFigureHeight   = 6.0
)

// DefaultDivisors are the T0/dt ratios of the convergence sweep, finest first.
var DefaultDivisors = []float64{1e6, 3e5, 1e5, 3e4, 1e4, 3e3, 1e3, 300, 100, 50, 30, 20, 15, 13, 11, 10}

type Config struct {
	Physics     PhysicsConfig     `yaml:"physics" toml:"physics"`
	Run         RunConfig         `yaml:"run" toml:"run"`
	Convergence ConvergenceConfig `yaml:"convergence" toml:"convergence"`
	Figures     FiguresConfig     `yaml:"figures" toml:"figures"`
}

type PhysicsConfig struct {
	Mass      float64 `yaml:"mass" toml:"mass"`
	Length    float64 `yaml:"length" toml:"length"`
	Gravity   float64 `yaml:"gravity" toml:"gravity"`
	Theta0    float64 `yaml:"theta0" toml:"theta0"`
	ThetaDot0 float64 `yaml:"theta_dot0" toml:"theta_dot0"`
}

type RunConfig struct {
	Schemes        []string `yaml:"schemes" toml:"schemes"`
	StepsPerPeriod int      `yaml:"steps_per_period" toml:"steps_per_period"`
	Periods        float64  `yaml:"periods" toml:"periods"`
}

type ConvergenceConfig struct {
	Scheme    string    `yaml:"scheme" toml:"scheme"`
	Divisors  []float64 `yaml:"divisors" toml:"divisors"`
	Periods   float64   `yaml:"periods" toml:"periods"`
	FitPoints int       `yaml:"fit_points" toml:"fit_points"`
	Workers   int       `yaml:"workers" toml:"workers"`
}

// FiguresConfig sizes are in inches.
type FiguresConfig struct {
	Dir       string  `yaml:"dir" toml:"dir"`
	DPI       int     `yaml:"dpi" toml:"dpi"`
	Format    string  `yaml:"format" toml:"format"`
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	Normalize bool    `yaml:"normalize" toml:"normalize"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Mass:    physics.DefaultMass,
			Length:  physics.DefaultLength,
			Gravity: physics.DefaultGravity,
			Theta0:  physics.DefaultTheta0,
		},
		Run: RunConfig{
			Schemes:        []string{"all"},
			StepsPerPeriod: DefaultStepsPerPeriod,
			Periods:        DefaultPeriods,
		},
		Convergence: ConvergenceConfig{
			Scheme:    DefaultSweepScheme,
			Divisors:  append([]float64(nil), DefaultDivisors...),
			Periods:   DefaultSweepPeriods,
			FitPoints: DefaultFitPoints,
		},
		Figures: FiguresConfig{
			Dir:       DefaultFigureDir,
			DPI:       DefaultDPI,
			Format:    DefaultFormat,
			Width:     DefaultFigureWidth,
			Height:    DefaultFigureHeight,
			Normalize: true,
		},
	}
}

// Load overlays the file at path onto the defaults. Files ending in .toml
// are decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.DecodeFile(path, cfg)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Pendulum builds the physical system described by c.
func (c PhysicsConfig) Pendulum() *physics.Pendulum {
	return &physics.Pendulum{
		Mass:      c.Mass,
		Length:    c.Length,
		Gravity:   c.Gravity,
		Theta0:    c.Theta0,
		ThetaDot0: c.ThetaDot0,
	}
}

// PhysicsFrom records the parameters of p.
func PhysicsFrom(p *physics.Pendulum) PhysicsConfig {
	return PhysicsConfig{
		Mass:      p.Mass,
		Length:    p.Length,
		Gravity:   p.Gravity,
		Theta0:    p.Theta0,
		ThetaDot0: p.ThetaDot0,
	}
}

func (c *Config) Validate() error {
	if err := c.Physics.Pendulum().Validate(); err != nil {
		return err
	}

	if c.Run.StepsPerPeriod <= 0 {
		return invalid("run.steps_per_period", c.Run.StepsPerPeriod, "must be positive")
	}
	if !positive(c.Run.Periods) {
		return invalid("run.periods", c.Run.Periods, "must be positive and finite")
	}

	if c.Convergence.Scheme == "" {
		return invalid("convergence.scheme", c.Convergence.Scheme, "must not be empty")
	}
	if len(c.Convergence.Divisors) == 0 {
		return invalid("convergence.divisors", c.Convergence.Divisors, "must not be empty")
	}
	for _, d := range c.Convergence.Divisors {
		if !positive(d) {
			return invalid("convergence.divisors", d, "must be positive and finite")
		}
	}
	if !positive(c.Convergence.Periods) {
		return invalid("convergence.periods", c.Convergence.Periods, "must be positive and finite")
	}
	if c.Convergence.FitPoints < 0 {
		return invalid("convergence.fit_points", c.Convergence.FitPoints, "must not be negative")
	}
	if c.Convergence.Workers < 0 {
		return invalid("convergence.workers", c.Convergence.Workers, "must not be negative")
	}

	if c.Figures.Dir == "" {
		return invalid("figures.dir", c.Figures.Dir, "must not be empty")
	}
	if c.Figures.DPI <= 0 {
		return invalid("figures.dpi", c.Figures.DPI, "must be positive")
	}
	if !positive(c.Figures.Width) || !positive(c.Figures.Height) {
		return invalid("figures.size", [2]float64{c.Figures.Width, c.Figures.Height}, "must be positive and finite")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(arg string, value any, reason string) error {
	return dynamo.InvalidArgument("config", arg, value, reason)
}
