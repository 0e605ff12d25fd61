// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package show

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

// Format selects the show table encoding
type Format string

const (
	FormatText Format = "text"
	FormatCBOR Format = "cbor"
)

// ParseFormat parses "text" or "cbor"
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return FormatText, fmt.Errorf("unknown table format %q (use text or cbor)", s)
	}
}

// Write encodes the table in the given format
func Write(w io.Writer, t *Table, format Format) error {
	switch format {
	case FormatCBOR:
		return WriteCBOR(w, t)
	default:
		return WriteText(w, t)
	}
}

// WriteText writes one "HHHHHHHH: cmd cmd" line per output time, ascending
func WriteText(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for _, row := range t.Rows() {
		if _, err := bw.WriteString(row.String() + "\n"); err != nil {
			return fmt.Errorf("failed to write row %s: %w", ninex.FormatTime(row.Time), err)
		}
	}
	return bw.Flush()
}

// ReadText parses a written text table back into rows.
// Concatenated commands on a line are split and verified by length and CRC.
func ReadText(r io.Reader) ([]Row, error) {
	var rows []Row

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return rows, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return rows, fmt.Errorf("failed to read table: %w", err)
	}

	return rows, nil
}

func parseRow(line string) (Row, error) {
	key, rest, ok := strings.Cut(line, ":")
	if !ok {
		return Row{}, &ninex.MalformedInputError{Token: line, Reason: "missing ':' after time"}
	}

	t, err := strconv.ParseUint(strings.TrimSpace(key), 16, 32)
	if err != nil {
		return Row{}, &ninex.MalformedInputError{Token: key, Reason: "time must be 8 hex digits"}
	}

	data, err := ninex.ParseHexBytes(rest)
	if err != nil {
		return Row{}, err
	}
	cmds, err := ninex.SplitCommands(data)
	if err != nil {
		return Row{}, err
	}

	return Row{Time: uint32(t), Commands: cmds}, nil
}

// cborRow is the CBOR layout of a row: {0: time, 1: [framed, ...]}
type cborRow struct {
	Time     uint32   `cbor:"0,keyasint"`
	Commands [][]byte `cbor:"1,keyasint"`
}

// WriteCBOR writes the table as a CBOR array of rows
func WriteCBOR(w io.Writer, t *Table) error {
	rows := t.Rows()
	out := make([]cborRow, len(rows))
	for i, row := range rows {
		out[i].Time = row.Time
		out[i].Commands = make([][]byte, len(row.Commands))
		for j, cmd := range row.Commands {
			out[i].Commands[j] = cmd.Bytes()
		}
	}

	if err := cbor.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("failed to encode CBOR table: %w", err)
	}
	return nil
}

// ReadCBOR decodes a CBOR table written by WriteCBOR, verifying every command
func ReadCBOR(r io.Reader) ([]Row, error) {
	var in []cborRow
	if err := cbor.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode CBOR table: %w", err)
	}

	rows := make([]Row, len(in))
	for i, cr := range in {
		rows[i].Time = cr.Time
		for j, raw := range cr.Commands {
			cmd, err := ninex.DecodeCommand(raw)
			if err != nil {
				return nil, fmt.Errorf("row %s command %d: %w", ninex.FormatTime(cr.Time), j, err)
			}
			rows[i].Commands = append(rows[i].Commands, cmd)
		}
	}
	return rows, nil
}

// Read decodes a table in the given format
func Read(r io.Reader, format Format) ([]Row, error) {
	switch format {
	case FormatCBOR:
		return ReadCBOR(r)
	default:
		return ReadText(r)
	}
}
