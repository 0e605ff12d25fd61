// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"fmt"
	"os"

	goerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/logger"
	"github.com/Thermoquad/gwts/pkg/show"
)

var (
	showOverwrite bool
	showFormat    string
	showStats     bool
)

var showCmd = &cobra.Command{
	Use:   "show <input> [output]",
	Short: "Assemble a show script into a lookup table",
	Long: `Read a show script and write the time-indexed command table.

Each script line is a decimal millisecond time followed by hex payload
bytes, e.g. "12300: 24 62 6A". Every entry is expanded into sixteen delay
slots placed 1600ms to 100ms ahead of its time, each prefixed with the
matching delay code and framed as a 9X command. Slots that would land
before time zero are dropped.

Commands landing on the same time are appended in arrival order, or with
--overwrite the last one wins.

The table goes to [output] (default from config, "output.txt"), or to the
serial port / WebSocket endpoint given by --port or --url.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showOverwrite, "overwrite", false, "Keep only the last command per output time")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "Table format: text or cbor (default from config)")
	showCmd.Flags().BoolVar(&showStats, "stats", false, "Print build statistics")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logger.GetProjectLogger()

	policy := cfg.Show.ShowPolicy()
	if showOverwrite {
		policy = show.PolicyOverwrite
	}

	format := cfg.Show.TableFormat()
	if cmd.Flags().Changed("format") {
		f, err := show.ParseFormat(showFormat)
		if err != nil {
			return err
		}
		format = f
	}

	output := cfg.Show.Output
	if len(args) > 1 {
		output = args[1]
	}

	table, stats, err := buildShow(args[0], policy)
	if err != nil {
		return err
	}

	// Render fully before opening the sink so a failure leaves no partial output
	var buf bytes.Buffer
	if err := show.Write(&buf, table, format); err != nil {
		return goerrors.WithStackTrace(err)
	}

	sink, dest, err := OpenSink(cfg.Sink, output, format == show.FormatCBOR)
	if err != nil {
		return goerrors.WithStackTrace(err)
	}

	if _, err := sink.Write(buf.Bytes()); err != nil {
		sink.Close()
		return goerrors.WithStackTrace(fmt.Errorf("failed to write show table to %s: %w", dest, err))
	}
	if err := sink.Close(); err != nil {
		return goerrors.WithStackTrace(fmt.Errorf("failed to close %s: %w", dest, err))
	}

	log.WithFields(logrus.Fields{
		"input":       args[0],
		"destination": dest,
		"policy":      policy.String(),
		"format":      string(format),
		"entries":     stats.ScheduledEntries,
		"times":       stats.OutputTimes,
		"collisions":  stats.Collisions,
	}).Info("Show table written")

	if showStats {
		fmt.Fprint(cmd.OutOrStdout(), stats.String())
	}

	return nil
}

// buildShow reads the script at path and assembles its table
func buildShow(path string, policy show.Policy) (*show.Table, *show.Statistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, goerrors.WithStackTrace(fmt.Errorf("failed to open show script: %w", err))
	}
	defer f.Close()

	entries, err := show.ReadScript(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	table, stats, err := show.Build(entries, policy)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return table, stats, nil
}
