package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	s := cfg.Snake
	if s.InitialLength != 5 {
		t.Errorf("expected initial length 5, got %v", s.InitialLength)
	}
	if s.Boost.MinLength != s.InitialLength {
		t.Errorf("expected boost floor %v to equal initial length %v", s.Boost.MinLength, s.InitialLength)
	}
	if s.Boost.CostPerSecond != 0.7 || s.Boost.SpeedMultiplier != 1.8 {
		t.Errorf("unexpected boost defaults: %+v", s.Boost)
	}
	if s.Movement.SpeedMax != 120 || s.Movement.SpeedMin != 85 {
		t.Errorf("unexpected speed endpoints: %+v", s.Movement)
	}
	if s.Camera.LengthCap != 1500 {
		t.Errorf("expected zoom length cap 1500, got %v", s.Camera.LengthCap)
	}
}

func TestDecayBracketsSortedDescending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	override := `
snake:
  decay:
    brackets:
      - { above: 50, rate: 0.03 }
      - { above: 1000, rate: 0.5 }
      - { above: 200, rate: 0.15 }
`
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	b := cfg.Snake.Decay.Brackets
	if len(b) != 3 {
		t.Fatalf("expected 3 brackets, got %d", len(b))
	}
	for i := 1; i < len(b); i++ {
		if b[i-1].Above < b[i].Above {
			t.Errorf("brackets not sorted descending: %+v", b)
		}
	}
}

func TestLoadOverlayKeepsUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("snake:\n  boost:\n    cost_per_second: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Snake.Boost.CostPerSecond != 1.5 {
		t.Errorf("override not applied, got %v", cfg.Snake.Boost.CostPerSecond)
	}
	if cfg.Snake.Boost.SpeedMultiplier != 1.8 {
		t.Errorf("unset field lost its default, got %v", cfg.Snake.Boost.SpeedMultiplier)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("snake:\n  spacing:\n    base_gap: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for zero base gap")
	}
	if !strings.Contains(err.Error(), "base_gap") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Snake.Boost.CostPerSecond = 0.9

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config failed: %v", err)
	}
	if back.Snake.Boost.CostPerSecond != 0.9 {
		t.Errorf("expected 0.9 after reload, got %v", back.Snake.Boost.CostPerSecond)
	}
}
