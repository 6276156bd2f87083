package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("session_budget_sec: 90\nhold_duration_sec: 5\nline_ratio: 0.6\nhttp_addr: \":9090\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SessionBudgetSec != 90 {
		t.Errorf("session budget = %d, want 90", cfg.SessionBudgetSec)
	}
	if cfg.HoldDurationSec != 5 {
		t.Errorf("hold duration = %d, want 5", cfg.HoldDurationSec)
	}
	if cfg.LineRatio != 0.6 {
		t.Errorf("line ratio = %f, want 0.6", cfg.LineRatio)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("http addr = %s, want :9090", cfg.HTTPAddr)
	}

	// Untouched fields keep their defaults.
	if cfg.AngleToleranceDeg != 15 {
		t.Errorf("angle tolerance = %f, want default 15", cfg.AngleToleranceDeg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestApplySettings(t *testing.T) {
	cfg := Default()

	cfg = cfg.ApplySettings(map[string]string{
		KeySessionBudget:  "120",
		KeyHoldDuration:   "15",
		KeyLineRatio:      "0.65",
		KeyAngleTolerance: "not-a-number",
		"unknown_key":     "whatever",
	})

	if cfg.SessionBudgetSec != 120 {
		t.Errorf("session budget = %d, want 120", cfg.SessionBudgetSec)
	}
	if cfg.HoldDurationSec != 15 {
		t.Errorf("hold duration = %d, want 15", cfg.HoldDurationSec)
	}
	if cfg.LineRatio != 0.65 {
		t.Errorf("line ratio = %f, want 0.65", cfg.LineRatio)
	}
	if cfg.AngleToleranceDeg != 15 {
		t.Errorf("unparsable setting must not change the value, got %f", cfg.AngleToleranceDeg)
	}
}

func TestApplySettings_RejectsNonsenseValues(t *testing.T) {
	cfg := Default()

	cfg = cfg.ApplySettings(map[string]string{
		KeySessionBudget: "-10",
		KeyLineRatio:     "1.5",
	})

	if cfg.SessionBudgetSec != 60 {
		t.Errorf("negative budget accepted: %d", cfg.SessionBudgetSec)
	}
	if cfg.LineRatio != 0.7 {
		t.Errorf("out-of-range line ratio accepted: %f", cfg.LineRatio)
	}
}

func TestAssessAndTickInterval(t *testing.T) {
	cfg := Default()
	cfg.SessionBudgetSec = 30
	cfg.TickIntervalMs = 50

	a := cfg.Assess()
	if a.SessionBudget != 30 {
		t.Errorf("assess budget = %d, want 30", a.SessionBudget)
	}
	if a.LineRatio != cfg.LineRatio {
		t.Errorf("assess line ratio = %f, want %f", a.LineRatio, cfg.LineRatio)
	}

	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("tick interval = %v, want 50ms", cfg.TickInterval())
	}
}
