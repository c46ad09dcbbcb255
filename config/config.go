// Package config loads the defaults used by the process_find command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds process_find defaults. Command-line flags override every field.
type Config struct {
	Filter  string `yaml:"filter"`
	First   bool   `yaml:"first"`
	List    bool   `yaml:"list"`
	Details bool   `yaml:"details"`
	Color   *bool  `yaml:"color"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{}
}

// ColorEnabled reports whether table output is coloured; colour is on unless disabled explicitly
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Load reads a YAML configuration file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	return cfg, nil
}

// Decode parses a YAML document, rejecting unknown keys. Environment variables in the
// filter are expanded.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	cfg.Filter = os.ExpandEnv(cfg.Filter)
	return cfg, nil
}
