// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package show

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

// ReadScript reads scheduled entries, one per line:
//
//	<absolute time, decimal ms> <hex byte> <hex byte> ...
//
// Colons are ignored so "12500: 24 62 6A" is accepted. Blank lines and lines
// starting with '#' are skipped.
func ReadScript(r io.Reader) ([]ScheduledEntry, error) {
	var entries []ScheduledEntry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return entries, nil
}

// ParseLine parses a single script line into a scheduled entry.
// A line with only a time schedules an empty command.
func ParseLine(line string) (ScheduledEntry, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ":", " "))
	if len(fields) == 0 {
		return ScheduledEntry{}, &ninex.MalformedInputError{Reason: "empty line"}
	}

	t, err := parseTime(fields[0])
	if err != nil {
		return ScheduledEntry{}, err
	}

	entry := ScheduledEntry{Time: t}
	if len(fields) > 1 {
		entry.Command, err = ninex.ParseHexTokens(fields[1:])
		if err != nil {
			return ScheduledEntry{}, err
		}
	}
	return entry, nil
}

func parseTime(tok string) (uint32, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ninex.ValueConstraintError{Field: "time", Value: math.MaxInt64, Min: 0, Max: math.MaxUint32}
		}
		return 0, &ninex.MalformedInputError{Token: tok, Reason: "time must be a decimal integer"}
	}
	if v < 0 || v > math.MaxUint32 {
		return 0, &ninex.ValueConstraintError{Field: "time", Value: v, Min: 0, Max: math.MaxUint32}
	}
	return uint32(v), nil
}
