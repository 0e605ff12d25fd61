// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	goerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/config"
	"github.com/Thermoquad/gwts/pkg/logger"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// Serial sink flags
	portName string
	baudRate int

	// WebSocket sink flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// cfg is resolved before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gwts",
	Short: "9X IR command codec and show assembler",
	Long: `gwts - Tools for the 9X infrared wristband protocol.

Frames payloads into 9X commands (length byte, payload, CRC-8/MAXIM), renders
them as carrier pulse trains, and assembles timed show scripts into the
lookup table consumed by the show player.

Show tables are written to a file by default. They can instead be sent to
a serial device or a WebSocket endpoint:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the GWTS_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	// Serial sink flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket sink flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// loadConfig reads the config file and lets explicitly set flags override it
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		c.Logging.Format = logFormat
	}
	if flags.Changed("port") {
		c.Sink.Port = portName
	}
	if flags.Changed("baud") {
		c.Sink.Baud = baudRate
	}
	if flags.Changed("url") {
		c.Sink.URL = wsURL
	}
	if flags.Changed("username") {
		c.Sink.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		c.Sink.Insecure = wsNoSSLVerify
	}

	if err := c.Validate(); err != nil {
		return err
	}

	if err := logger.Configure(c.Logging.Level, c.Logging.Format); err != nil {
		return err
	}

	cfg = c
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.GetProjectLogger().Debug(goerrors.PrintErrorWithStackTrace(err))
	}
	return err
}
