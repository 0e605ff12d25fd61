// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package show

import (
	"fmt"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

// ScheduledEntry is a raw command scheduled at an absolute show time
type ScheduledEntry struct {
	Time    uint32 // absolute send time (ms)
	Command []byte // unframed payload
	Line    int    // source line, 0 if not read from a script
}

// ExpandedEntry is one delay-slot announcement of a scheduled command
type ExpandedEntry struct {
	Time    uint32        // output time (ms)
	Command ninex.Command // framed [delay code] ++ payload
	Bucket  int           // index into the delay code ladder
	Line    int           // source line of the scheduled entry
}

// Expand produces the delay-slot announcements for a scheduled command.
// Slots that would fall before time zero are skipped, so an entry scheduled
// at time zero yields nothing. Entries are returned earliest first.
func Expand(entry ScheduledEntry) ([]ExpandedEntry, error) {
	out := make([]ExpandedEntry, 0, BucketCount)

	for i, code := range delayCodes {
		lead := BucketLead(i)
		if entry.Time < lead {
			continue
		}

		payload := make([]byte, 0, len(entry.Command)+1)
		payload = append(payload, code)
		payload = append(payload, entry.Command...)

		cmd, err := ninex.Frame(payload)
		if err != nil {
			return nil, fmt.Errorf("bucket %d (delay 0x%02X): %w", i, code, err)
		}

		out = append(out, ExpandedEntry{
			Time:    entry.Time - lead,
			Command: cmd,
			Bucket:  i,
			Line:    entry.Line,
		})
	}

	return out, nil
}

// ExpandAll expands every scheduled entry in order
func ExpandAll(entries []ScheduledEntry) ([]ExpandedEntry, error) {
	var out []ExpandedEntry
	for _, entry := range entries {
		expanded, err := Expand(entry)
		if err != nil {
			return nil, entryError(entry, err)
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func entryError(entry ScheduledEntry, err error) error {
	if entry.Line > 0 {
		return fmt.Errorf("line %d: %w", entry.Line, err)
	}
	return fmt.Errorf("entry at %d: %w", entry.Time, err)
}
