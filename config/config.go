// Package config loads the settings of the hosted board simulator
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v2"
)

// SimConfig holds the simulator settings. Every field can come from the
// YAML file and be overridden from the environment.
type SimConfig struct {
	ClockHz   uint32  `yaml:"clock_hz" env:"HALSIM_CLOCK_HZ"`
	Strict    bool    `yaml:"strict" env:"HALSIM_STRICT"`
	TimeScale float64 `yaml:"time_scale" env:"HALSIM_TIME_SCALE"`
	Debug     bool    `yaml:"debug" env:"HALSIM_DEBUG"`
	RPi       bool    `yaml:"rpi" env:"HALSIM_RPI"`
}

// Load reads path (skipped when empty), applies HALSIM_* environment
// overrides and fills in defaults.
func Load(path string) (*SimConfig, error) {
	var cfg SimConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Parse decodes YAML configuration data into cfg
func Parse(data []byte, cfg *SimConfig) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *SimConfig) {
	if cfg.ClockHz == 0 {
		cfg.ClockHz = 16000000 // 16MHz crystal
	}
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1.0 // real time
	}
}
