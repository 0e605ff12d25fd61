// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/logger"
	"github.com/Thermoquad/gwts/pkg/ninex"
)

const (
	calcBanner   = "Enter 0 to exit"
	calcPrompt   = "Enter a 9X command: "
	calcBadInput = "Bad input"
	calcExit     = "0"
)

var (
	calcWidth int
	calcTUI   bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Interactive 9X command calculator",
	Long: `Read hex payloads line by line and print the framed command and its
pulse train for each. Enter 0 to exit.

Malformed input prints "Bad input" and the loop continues.

Use --tui for a full-screen version with a scrolling history.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().IntVarP(&calcWidth, "width", "w", 0, "Pulse unit width in microseconds (default from config)")
	calcCmd.Flags().BoolVar(&calcTUI, "tui", false, "Run the calculator as a terminal UI")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	width := cfg.IR.UnitWidth
	if cmd.Flags().Changed("width") {
		width = calcWidth
	}

	if calcTUI {
		p := tea.NewProgram(initialCalcModel(width), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	return RunCalculator(cmd.InOrStdin(), cmd.OutOrStdout(), width)
}

// RunCalculator runs the prompt loop until "0" or end of input
func RunCalculator(in io.Reader, out io.Writer, width int) error {
	log := logger.GetProjectLogger()

	fmt.Fprintln(out, calcBanner)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, calcPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == calcExit {
			return nil
		}

		framed, pulses, err := calculate(line, width)
		if err != nil {
			log.WithField("input", line).WithError(err).Debug("Rejected calculator input")
			fmt.Fprintln(out, calcBadInput)
			continue
		}

		fmt.Fprintln(out, ninex.FormatCommand(framed))
		fmt.Fprintln(out, ninex.FormatPulses(pulses))
	}
}
