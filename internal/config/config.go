// Package config loads the optional meletao YAML config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user defaults. Flags and environment variables take
// precedence over every field.
type Config struct {
	DB       string `yaml:"db"`
	Timezone string `yaml:"timezone"`
	Format   string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Format: "json"}
}

// Path returns the default config file location:
// $XDG_CONFIG_HOME/meletao/config.yaml, else ~/.config/meletao/config.yaml.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "meletao", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "meletao", "config.yaml")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error. Unknown fields are rejected so typos surface.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if _, err := cfg.Location(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Location returns the zone days are bucketed in. An empty Timezone means
// the system's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
