// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes formats bytes as upper-case hex without padding ("8F 0 C")
func FormatBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%X", b)
	}
	return strings.Join(parts, " ")
}

// FormatBytesPadded formats bytes as two-digit upper-case hex ("8F 00 0C")
func FormatBytesPadded(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// FormatCommand formats a command the way the interactive calculator prints it
func FormatCommand(c Command) string {
	return FormatBytes(c.raw)
}

// FormatPulses formats pulse durations as a brace-delimited list
func FormatPulses(pulses []int) string {
	parts := make([]string, len(pulses))
	for i, p := range pulses {
		parts[i] = strconv.Itoa(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FormatTime formats a show time as eight upper-case hex digits
func FormatTime(t uint32) string {
	return fmt.Sprintf("%08X", t)
}
