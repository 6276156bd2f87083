// Package config loads the Armline configuration from a YAML file and
// merges overrides persisted in the settings store.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/armline/internal/assess"
)

// Config holds every externally overridable parameter of the application.
type Config struct {
	CameraID int    `yaml:"camera_id"`
	HTTPAddr string `yaml:"http_addr"`

	SessionBudgetSec      int     `yaml:"session_budget_sec"`
	HoldDurationSec       int     `yaml:"hold_duration_sec"`
	LineRatio             float64 `yaml:"line_ratio"`
	LineTolerancePx       float64 `yaml:"line_tolerance_px"`
	AngleToleranceDeg     float64 `yaml:"angle_tolerance_deg"`
	MinShoulderConfidence float64 `yaml:"min_shoulder_confidence"`
	TickIntervalMs        int     `yaml:"tick_interval_ms"`

	// CompletionHook is an optional command to run when an assessment
	// completes. The session summary is passed as JSON on stdin.
	CompletionHook string `yaml:"completion_hook"`
}

// Default returns the configuration used when no file or settings exist.
func Default() Config {
	return Config{
		CameraID:              0,
		HTTPAddr:              ":8080",
		SessionBudgetSec:      60,
		HoldDurationSec:       10,
		LineRatio:             0.7,
		LineTolerancePx:       20,
		AngleToleranceDeg:     15,
		MinShoulderConfidence: 0.3,
		TickIntervalMs:        100,
	}
}

// Load reads the YAML config file at path on top of the defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Setting keys shared with the settings store.
const (
	KeySessionBudget  = "session_budget_sec"
	KeyHoldDuration   = "hold_duration_sec"
	KeyLineRatio      = "line_ratio"
	KeyLineTolerance  = "line_tolerance_px"
	KeyAngleTolerance = "angle_tolerance_deg"
)

// ApplySettings overlays persisted key-value settings on top of the config.
// Unknown keys and unparsable values are ignored.
func (c Config) ApplySettings(settings map[string]string) Config {
	if v, ok := intSetting(settings, KeySessionBudget); ok && v > 0 {
		c.SessionBudgetSec = v
	}
	if v, ok := intSetting(settings, KeyHoldDuration); ok && v > 0 {
		c.HoldDurationSec = v
	}
	if v, ok := floatSetting(settings, KeyLineRatio); ok && v > 0 && v < 1 {
		c.LineRatio = v
	}
	if v, ok := floatSetting(settings, KeyLineTolerance); ok && v > 0 {
		c.LineTolerancePx = v
	}
	if v, ok := floatSetting(settings, KeyAngleTolerance); ok && v > 0 {
		c.AngleToleranceDeg = v
	}
	return c
}

// Assess returns the assessment core parameters.
func (c Config) Assess() assess.Config {
	return assess.Config{
		SessionBudget:         c.SessionBudgetSec,
		HoldDuration:          c.HoldDurationSec,
		LineRatio:             c.LineRatio,
		LineTolerance:         c.LineTolerancePx,
		AngleTolerance:        c.AngleToleranceDeg,
		MinShoulderConfidence: c.MinShoulderConfidence,
	}
}

// TickInterval returns the detection tick period.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func intSetting(settings map[string]string, key string) (int, bool) {
	raw, ok := settings[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatSetting(settings map[string]string, key string) (float64, bool) {
	raw, ok := settings[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
