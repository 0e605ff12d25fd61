// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads gwts settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Thermoquad/gwts/pkg/ninex"
	"github.com/Thermoquad/gwts/pkg/show"
)

// DefaultOutput is the show table written when no output path is given
const DefaultOutput = "output.txt"

// Config represents the complete tool configuration
type Config struct {
	Show    ShowConfig    `yaml:"show"`
	IR      IRConfig      `yaml:"ir"`
	Sink    SinkConfig    `yaml:"sink"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShowConfig controls show table assembly
type ShowConfig struct {
	Policy string `yaml:"policy"` // append or overwrite
	Output string `yaml:"output"`
	Format string `yaml:"format"` // text or cbor
}

// IRConfig controls pulse encoding
type IRConfig struct {
	UnitWidth int `yaml:"unit_width"` // microseconds
}

// SinkConfig describes where show tables go besides a file
type SinkConfig struct {
	Port     string `yaml:"port"`
	Baud     int    `yaml:"baud"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Insecure bool   `yaml:"no_ssl_verify"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Show: ShowConfig{
			Policy: show.PolicyAppend.String(),
			Output: DefaultOutput,
			Format: string(show.FormatText),
		},
		IR: IRConfig{
			UnitWidth: ninex.DefaultUnitWidth,
		},
		Sink: SinkConfig{
			Baud: 115200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and parses the configuration file.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Show.Validate(); err != nil {
		return fmt.Errorf("show config: %w", err)
	}

	if err := c.IR.Validate(); err != nil {
		return fmt.Errorf("ir config: %w", err)
	}

	if err := c.Sink.Validate(); err != nil {
		return fmt.Errorf("sink config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates show configuration
func (s *ShowConfig) Validate() error {
	if _, err := show.ParsePolicy(s.Policy); err != nil {
		return err
	}

	if _, err := show.ParseFormat(s.Format); err != nil {
		return err
	}

	return nil
}

// Validate validates pulse encoding configuration
func (i *IRConfig) Validate() error {
	if i.UnitWidth < 1 {
		return fmt.Errorf("unit_width must be positive, got %d", i.UnitWidth)
	}
	return nil
}

// Validate validates sink configuration
func (s *SinkConfig) Validate() error {
	if s.Port != "" && s.URL != "" {
		return fmt.Errorf("port and url are mutually exclusive")
	}

	if s.Port != "" && s.Baud < 1 {
		return fmt.Errorf("baud must be positive, got %d", s.Baud)
	}

	if s.URL != "" && !strings.HasPrefix(s.URL, "ws://") && !strings.HasPrefix(s.URL, "wss://") {
		return fmt.Errorf("url must use ws:// or wss://, got '%s'", s.URL)
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [trace, debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// ShowPolicy returns the parsed collision policy
func (s *ShowConfig) ShowPolicy() show.Policy {
	p, _ := show.ParsePolicy(s.Policy)
	return p
}

// TableFormat returns the parsed table format
func (s *ShowConfig) TableFormat() show.Format {
	f, _ := show.ParseFormat(s.Format)
	return f
}
