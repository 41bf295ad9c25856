package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// fileConfig is the on-disk YAML shape. Pointer fields distinguish "unset"
// from an explicit false/zero so the file only overrides what it names.
type fileConfig struct {
	Exposures     string   `yaml:"exposures"`
	Processed     string   `yaml:"processed"`
	Extensions    []string `yaml:"extensions"`
	ProgressEvery int      `yaml:"progress_every"`
	MotionProfile *bool    `yaml:"motion_profile"`
	Verbose       *bool    `yaml:"verbose"`
	Color         string   `yaml:"color"`
	LogFile       string   `yaml:"log_file"`
}

// LoadFile reads a YAML config file and overlays the fields it sets onto
// cfg. Unknown keys are rejected so typos surface instead of being ignored.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Exposures != "" {
		cfg.ExposuresDir = fc.Exposures
	}
	if fc.Processed != "" {
		cfg.ProcessedDir = fc.Processed
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	if fc.ProgressEvery != 0 {
		cfg.ProgressEvery = fc.ProgressEvery
	}
	if fc.MotionProfile != nil {
		cfg.MotionProfile = *fc.MotionProfile
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != "" {
		cfg.ColorMode = ColorMode(fc.Color)
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	cfg.ConfigFile = path
	return nil
}
