package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Physics.Length != 0.1 {
		t.Errorf("expected length 0.1, got %f", cfg.Physics.Length)
	}
	if cfg.Run.StepsPerPeriod != 100 {
		t.Errorf("expected 100 steps per period, got %d", cfg.Run.StepsPerPeriod)
	}
	if len(cfg.Convergence.Divisors) != 16 {
		t.Errorf("expected 16 divisors, got %d", len(cfg.Convergence.Divisors))
	}
	if cfg.Figures.DPI != 400 || cfg.Figures.Dir != "figures" {
		t.Errorf("unexpected figure defaults: %+v", cfg.Figures)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Convergence.Divisors[0] = 1
	if DefaultDivisors[0] != 1e6 {
		t.Error("default divisors share storage with config")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("physics:\n  theta0: 0.2\nrun:\n  schemes: [symplectic]\n  periods: 10\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Physics.Theta0 != 0.2 {
		t.Errorf("expected theta0 0.2, got %f", cfg.Physics.Theta0)
	}
	if cfg.Run.Periods != 10 || len(cfg.Run.Schemes) != 1 || cfg.Run.Schemes[0] != "symplectic" {
		t.Errorf("unexpected run section: %+v", cfg.Run)
	}
	// untouched fields keep defaults
	if cfg.Physics.Gravity != 9.81 || cfg.Run.StepsPerPeriod != 100 {
		t.Errorf("defaults lost: %+v %+v", cfg.Physics, cfg.Run)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := []byte("[figures]\ndpi = 150\nformat = \"jpg\"\n\n[convergence]\nscheme = \"explicit\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Figures.DPI != 150 || cfg.Figures.Format != "jpg" {
		t.Errorf("unexpected figures section: %+v", cfg.Figures)
	}
	if cfg.Convergence.Scheme != "explicit" {
		t.Errorf("expected scheme explicit, got %s", cfg.Convergence.Scheme)
	}
	if cfg.Figures.Dir != "figures" {
		t.Errorf("expected default dir, got %s", cfg.Figures.Dir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := GetPreset("kicked")
			cfg.Run.Schemes = []string{"explicit", "rk4"}

			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}

			if got.Physics.ThetaDot0 != 1.0 {
				t.Errorf("expected theta_dot0 1.0, got %f", got.Physics.ThetaDot0)
			}
			if len(got.Run.Schemes) != 2 || got.Run.Schemes[1] != "rk4" {
				t.Errorf("unexpected schemes: %v", got.Run.Schemes)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		arg    string
	}{
		{"steps per period", func(c *Config) { c.Run.StepsPerPeriod = 0 }, "run.steps_per_period"},
		{"periods", func(c *Config) { c.Run.Periods = -1 }, "run.periods"},
		{"divisor", func(c *Config) { c.Convergence.Divisors = []float64{100, math.NaN()} }, "convergence.divisors"},
		{"no divisors", func(c *Config) { c.Convergence.Divisors = nil }, "convergence.divisors"},
		{"scheme", func(c *Config) { c.Convergence.Scheme = "" }, "convergence.scheme"},
		{"dpi", func(c *Config) { c.Figures.DPI = 0 }, "figures.dpi"},
		{"size", func(c *Config) { c.Figures.Height = 0 }, "figures.size"},
		{"length", func(c *Config) { c.Physics.Length = 0 }, "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var argErr *dynamo.ArgumentError
			if !errors.As(err, &argErr) || argErr.Arg != tt.arg {
				t.Errorf("expected arg %s, got %v", tt.arg, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fine")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Run.StepsPerPeriod != 1000 {
		t.Errorf("expected 1000 steps per period, got %d", cfg.Run.StepsPerPeriod)
	}

	cfg.Run.StepsPerPeriod = 1
	if GetPreset("fine").Run.StepsPerPeriod != 1000 {
		t.Error("preset mutated through returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
