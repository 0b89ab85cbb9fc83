// Package config defines the engine's tunable knobs, defaulted in code and
// optionally overridden by a YAML file loaded once at process bootstrap.
// Core packages never read files themselves; they take a fully-populated
// Config value.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable named in the external-interfaces surface.
// Durations are stored as the integer millisecond/nanosecond knobs an
// operator edits in YAML; the accessor methods below convert them to
// time.Duration.
type Config struct {
	Encoding string `yaml:"encoding"`

	FramePeriodNs          int64 `yaml:"frame_period_ns"`
	ResizeDebounceMs       int64 `yaml:"resize_debounce_ms"`
	ResizePollMs           int64 `yaml:"resize_poll_ms"`
	SignalTestMs           int64 `yaml:"signal_test_ms"`
	RenderFailureThreshold int   `yaml:"render_failure_threshold"`
	RenderFailureResetNs   int64 `yaml:"render_failure_reset_ns"`
}

// Default returns the fixed defaults from the external-interfaces spec.
func Default() Config {
	return Config{
		Encoding:               "UTF-8",
		FramePeriodNs:          16_000_000,
		ResizeDebounceMs:       80,
		ResizePollMs:           100,
		SignalTestMs:           2000,
		RenderFailureThreshold: 3,
		RenderFailureResetNs:   5_000_000_000,
	}
}

// Load returns Default() with any fields present in the YAML file at path
// overlaid on top. A missing file is not an error; Load returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) FramePeriod() time.Duration        { return time.Duration(c.FramePeriodNs) }
func (c Config) ResizeDebounce() time.Duration     { return time.Duration(c.ResizeDebounceMs) * time.Millisecond }
func (c Config) ResizePollPeriod() time.Duration   { return time.Duration(c.ResizePollMs) * time.Millisecond }
func (c Config) SignalTestWindow() time.Duration   { return time.Duration(c.SignalTestMs) * time.Millisecond }
func (c Config) RenderFailureReset() time.Duration { return time.Duration(c.RenderFailureResetNs) }
