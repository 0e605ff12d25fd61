// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

var encodeWidth int

var encodeCmd = &cobra.Command{
	Use:   "encode <hex>...",
	Short: "Frame a payload and print its pulse train",
	Long: `Frame hex payload bytes into a 9X command and print it once.

The first line is the framed command in hex, the second is the carrier
pulse durations in microseconds (alternating on/off, starting with on).

Examples:
  gwts encode 24 62 6A
  gwts encode "0x24 0x62 0x6A" --width 500`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeWidth, "width", "w", 0, "Pulse unit width in microseconds (default from config)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	width := cfg.IR.UnitWidth
	if cmd.Flags().Changed("width") {
		width = encodeWidth
	}

	framed, pulses, err := calculate(strings.Join(args, " "), width)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ninex.FormatCommand(framed))
	fmt.Fprintln(out, ninex.FormatPulses(pulses))
	return nil
}

// calculate frames a whitespace-separated hex payload and encodes its pulses
func calculate(line string, width int) (ninex.Command, []int, error) {
	framed, err := ninex.FrameHex(line)
	if err != nil {
		return ninex.Command{}, nil, err
	}

	pulses, err := framed.Pulses(width)
	if err != nil {
		return ninex.Command{}, nil, err
	}

	return framed, pulses, nil
}
