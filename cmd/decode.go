// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	goerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/gwts/pkg/logger"
	"github.com/Thermoquad/gwts/pkg/ninex"
)

var decodeHex bool

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a stream of framed 9X commands",
	Long: `Decode concatenated 9X commands and print each one with its payload.

Input is raw bytes from [file], or stdin when no file is given. With --hex
the input is whitespace-separated hex bytes instead.

Corrupt commands are reported and skipped; decoding resumes at the next
valid length byte.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeHex, "hex", false, "Input is hex text instead of raw bytes")
	rootCmd.AddCommand(decodeCmd)
}

// decodeStats counts what a decode pass saw
type decodeStats struct {
	Bytes    int
	Commands int
	Errors   int
}

func runDecode(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return goerrors.WithStackTrace(fmt.Errorf("failed to open capture: %w", err))
		}
		defer f.Close()
		in = f
	}

	var data io.ByteReader = bufio.NewReader(in)
	if decodeHex {
		raw, err := io.ReadAll(in)
		if err != nil {
			return goerrors.WithStackTrace(err)
		}
		parsed, err := ninex.ParseHexBytes(string(raw))
		if err != nil {
			return err
		}
		data = bytes.NewReader(parsed)
	}

	stats, err := decodeStream(data, cmd.OutOrStdout())
	if err != nil {
		return goerrors.WithStackTrace(err)
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"bytes":    stats.Bytes,
		"commands": stats.Commands,
		"errors":   stats.Errors,
	}).Info("Decode complete")
	return nil
}

// decodeStream feeds every byte through a decoder, printing commands and
// errors as they occur. A truncated command at the end counts as an error.
func decodeStream(r io.ByteReader, out io.Writer) (decodeStats, error) {
	var stats decodeStats
	decoder := ninex.NewDecoder()

	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read error: %w", err)
		}
		stats.Bytes++

		c, err := decoder.DecodeByte(b)
		if err != nil {
			stats.Errors++
			fmt.Fprintf(out, "[ERROR] offset %d: %v\n", stats.Bytes-1, err)
			continue
		}
		if !c.IsZero() {
			stats.Commands++
			fmt.Fprintf(out, "%s  payload: %s\n", c.String(), ninex.FormatBytesPadded(c.Payload()))
		}
	}

	if decoder.Pending() {
		stats.Errors++
		fmt.Fprintf(out, "[ERROR] truncated command at end of input\n")
	}

	return stats, nil
}
