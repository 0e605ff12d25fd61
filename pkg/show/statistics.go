// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package show

import (
	"fmt"
	"time"
)

// Statistics tracks what happened while building a show
type Statistics struct {
	StartTime time.Time
	Elapsed   time.Duration

	// Counters
	ScheduledEntries int
	ExpandedEntries  int
	SkippedBuckets   int // slots that would have fallen before time zero
	Collisions       int
	Overwritten      int
	OutputTimes      int

	// Show span
	FirstTime uint32
	LastTime  uint32
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// Update records one scheduled entry and its expansion
func (s *Statistics) Update(entry ScheduledEntry, expanded []ExpandedEntry) {
	s.ScheduledEntries++
	s.ExpandedEntries += len(expanded)
	s.SkippedBuckets += BucketCount - len(expanded)
}

// Finish records table totals once all entries are merged
func (s *Statistics) Finish(t *Table) {
	s.Elapsed = time.Since(s.StartTime)
	s.Collisions = t.Collisions()
	s.Overwritten = t.Overwritten()
	s.OutputTimes = t.Len()

	times := t.Times()
	if len(times) > 0 {
		s.FirstTime = times[0]
		s.LastTime = times[len(times)-1]
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	result := "=== Show Statistics ===\n"
	result += fmt.Sprintf("Scheduled Entries: %8d\n", s.ScheduledEntries)
	result += fmt.Sprintf("Expanded Entries:  %8d\n", s.ExpandedEntries)
	if s.SkippedBuckets > 0 {
		result += fmt.Sprintf("Skipped Buckets:   %8d\n", s.SkippedBuckets)
	}
	result += fmt.Sprintf("Output Times:      %8d\n", s.OutputTimes)
	if s.Collisions > 0 {
		result += fmt.Sprintf("Collisions:        %8d\n", s.Collisions)
		if s.Overwritten > 0 {
			result += fmt.Sprintf("  Overwritten:       %6d\n", s.Overwritten)
		}
	}
	if s.OutputTimes > 0 {
		result += fmt.Sprintf("Span:              %08X - %08X\n", s.FirstTime, s.LastTime)
	}
	result += "=======================\n"

	return result
}
