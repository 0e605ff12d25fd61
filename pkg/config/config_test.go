// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Thermoquad/gwts/pkg/ninex"
	"github.com/Thermoquad/gwts/pkg/show"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, show.PolicyAppend, cfg.Show.ShowPolicy())
	assert.Equal(t, show.FormatText, cfg.Show.TableFormat())
	assert.Equal(t, DefaultOutput, cfg.Show.Output)
	assert.Equal(t, ninex.DefaultUnitWidth, cfg.IR.UnitWidth)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	content := `
show:
  policy: overwrite
  output: castle.txt
ir:
  unit_width: 500
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "gwts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, show.PolicyOverwrite, cfg.Show.ShowPolicy())
	assert.Equal(t, "castle.txt", cfg.Show.Output)
	assert.Equal(t, show.FormatText, cfg.Show.TableFormat(), "unset keys keep defaults")
	assert.Equal(t, 500, cfg.IR.UnitWidth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("show: [unclosed"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("ir:\n  unit_width: 0\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "ir config")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:     "unknown policy",
			mutate:   func(c *Config) { c.Show.Policy = "merge" },
			errorMsg: "show config",
		},
		{
			name:     "unknown format",
			mutate:   func(c *Config) { c.Show.Format = "xml" },
			errorMsg: "show config",
		},
		{
			name:     "negative unit width",
			mutate:   func(c *Config) { c.IR.UnitWidth = -1 },
			errorMsg: "unit_width",
		},
		{
			name: "port and url",
			mutate: func(c *Config) {
				c.Sink.Port = "/dev/ttyUSB0"
				c.Sink.URL = "ws://bridge.local/show"
			},
			errorMsg: "mutually exclusive",
		},
		{
			name:     "http url",
			mutate:   func(c *Config) { c.Sink.URL = "http://bridge.local" },
			errorMsg: "ws://",
		},
		{
			name: "zero baud",
			mutate: func(c *Config) {
				c.Sink.Port = "/dev/ttyUSB0"
				c.Sink.Baud = 0
			},
			errorMsg: "baud",
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Logging.Level = "verbose" },
			errorMsg: "logging config",
		},
		{
			name:     "bad log format",
			mutate:   func(c *Config) { c.Logging.Format = "xml" },
			errorMsg: "logging config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}
