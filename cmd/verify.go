// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	goerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/ninex"
	"github.com/Thermoquad/gwts/pkg/show"
)

var verifyFormat string

var verifyCmd = &cobra.Command{
	Use:   "verify <table>",
	Short: "Check every command in a written show table",
	Long: `Read a show table and decode every command on every row, checking the
length byte and CRC. Fails on the first corrupt row.

The format is taken from --format, or guessed from a ".cbor" extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", "", "Table format: text or cbor")
	rootCmd.AddCommand(verifyCmd)
}

// tableSummary describes a verified table
type tableSummary struct {
	Rows     int
	Commands int
	Bytes    int
	First    uint32
	Last     uint32
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]

	format := show.FormatText
	if cmd.Flags().Changed("format") {
		f, err := show.ParseFormat(verifyFormat)
		if err != nil {
			return err
		}
		format = f
	} else if strings.EqualFold(filepath.Ext(path), ".cbor") {
		format = show.FormatCBOR
	}

	f, err := os.Open(path)
	if err != nil {
		return goerrors.WithStackTrace(fmt.Errorf("failed to open table: %w", err))
	}
	defer f.Close()

	summary, err := verifyTable(f, format)
	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintln(out, renderVerifyFailure(path, err))
		return err
	}

	fmt.Fprintln(out, renderVerifySummary(path, summary))
	return nil
}

// verifyTable decodes every row and rejects out-of-order times
func verifyTable(r io.Reader, format show.Format) (tableSummary, error) {
	rows, err := show.Read(r, format)
	if err != nil {
		return tableSummary{}, err
	}

	var s tableSummary
	for i, row := range rows {
		if i > 0 && row.Time <= rows[i-1].Time {
			return tableSummary{}, fmt.Errorf("row %s: time not after previous row %s",
				ninex.FormatTime(row.Time), ninex.FormatTime(rows[i-1].Time))
		}
		if len(row.Commands) == 0 {
			return tableSummary{}, fmt.Errorf("row %s: no commands", ninex.FormatTime(row.Time))
		}
		s.Commands += len(row.Commands)
		for _, c := range row.Commands {
			s.Bytes += c.Len()
		}
	}

	s.Rows = len(rows)
	if s.Rows > 0 {
		s.First = rows[0].Time
		s.Last = rows[s.Rows-1].Time
	}
	return s, nil
}

func renderVerifySummary(path string, s tableSummary) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("OK " + path))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Rows:    "), s.Rows))
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Commands:"), s.Commands))
	b.WriteString(fmt.Sprintf("%s %d", labelStyle.Render("Bytes:   "), s.Bytes))
	if s.Rows > 0 {
		b.WriteString(fmt.Sprintf("\n%s %s - %s", labelStyle.Render("Span:    "),
			ninex.FormatTime(s.First), ninex.FormatTime(s.Last)))
	}

	return boxStyle.Render(b.String())
}

func renderVerifyFailure(path string, err error) string {
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	return errorStyle.Render("FAIL "+path) + "\n" + err.Error()
}
