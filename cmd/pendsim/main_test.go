package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pendsim/internal/config"
)

func resetGlobals() {
	configFile = ""
	presetName = ""
	verbose = false
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Cleanup(resetGlobals)

	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("run:\n  steps_per_period: 500\n  periods: 7\nphysics:\n  theta0: 0.2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	presetName = "long"
	configFile = path

	cmd := newSimulateCmd()
	if err := cmd.ParseFlags([]string{"--periods", "2", "--scheme", "explicit", "--scheme", "rk4"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// flag beats file beats preset
	if cfg.Run.Periods != 2 {
		t.Errorf("expected periods from flag, got %g", cfg.Run.Periods)
	}
	if cfg.Run.StepsPerPeriod != 500 {
		t.Errorf("expected steps from file, got %d", cfg.Run.StepsPerPeriod)
	}
	if cfg.Physics.Theta0 != 0.2 {
		t.Errorf("expected theta0 from file, got %f", cfg.Physics.Theta0)
	}
	if len(cfg.Run.Schemes) != 2 || cfg.Run.Schemes[1] != "rk4" {
		t.Errorf("expected schemes from repeated flag, got %v", cfg.Run.Schemes)
	}
	// untouched default flag does not override the file
	if cfg.Physics.Gravity != 9.81 {
		t.Errorf("expected default gravity, got %f", cfg.Physics.Gravity)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	t.Cleanup(resetGlobals)

	presetName = "nope"
	if _, err := resolveConfig(newSimulateCmd()); err == nil {
		t.Error("expected error for unknown preset")
	}

	presetName = ""
	cmd := newSimulateCmd()
	if err := cmd.ParseFlags([]string{"--length", "-1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, applyRunFlags); err == nil {
		t.Error("expected validation error for negative length")
	}
}

func TestConfigInit(t *testing.T) {
	t.Cleanup(resetGlobals)

	path := filepath.Join(t.TempDir(), "pendsim.toml")
	root := newRootCmd()
	root.SetArgs([]string{"--preset", "coarse", "config", "init", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Run.StepsPerPeriod != 20 {
		t.Errorf("expected preset written to file, got %d steps", cfg.Run.StepsPerPeriod)
	}

	root = newRootCmd()
	root.SetArgs([]string{"config", "init", path})
	if err := root.Execute(); err == nil {
		t.Error("expected refusal to overwrite without --force")
	}
}

func TestSimulateCommand(t *testing.T) {
	t.Cleanup(resetGlobals)

	root := newRootCmd()
	root.SetArgs([]string{"simulate", "--periods", "1", "--scheme", "symplectic"})
	if err := root.Execute(); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	root = newRootCmd()
	root.SetArgs([]string{"simulate", "--scheme", "leapfrog"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestPhysicsFlags(t *testing.T) {
	t.Cleanup(resetGlobals)

	cmd := newConvergenceCmd()
	if err := cmd.ParseFlags([]string{"--theta-dot0", "0.5", "--mass", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd, applyPhysicsFlags, applySweepFlags)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if cfg.Physics.ThetaDot0 != 0.5 || cfg.Physics.Mass != 2 {
		t.Errorf("expected flags applied, got %+v", cfg.Physics)
	}
	if cfg.Physics.Length != 0.1 {
		t.Errorf("expected default length, got %f", cfg.Physics.Length)
	}
}
