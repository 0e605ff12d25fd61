// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package show assembles scheduled 9X commands into a time-ordered show table.
//
// Every scheduled command is re-announced across a ladder of sixteen
// preceding time slots. Each slot prefixes the command with its delay code
// so a receiver that catches any announcement knows how long to wait before
// acting. The expanded commands are merged into a table keyed by output
// time, ready to be written for playback tooling.
package show

// Delay ladder
const (
	// BucketCount is the number of delay slots per scheduled command
	BucketCount = 16

	// BucketWidth is the spacing between delay slots in show time units (ms)
	BucketWidth = 100

	// MaxLead is how far ahead of its send time the earliest slot is announced
	MaxLead = BucketCount * BucketWidth
)

// delayCodes maps bucket index to delay code. Bucket i is announced
// (BucketCount-i)*BucketWidth before the scheduled time.
var delayCodes = [BucketCount]byte{
	0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9, 0xF8,
	0xF7, 0xF6, 0xF5, 0xF4, 0xF3, 0xF2, 0xF1, 0x20,
}

// DelayCodes returns the delay code ladder, earliest slot first
func DelayCodes() [BucketCount]byte {
	return delayCodes
}

// DelayCode returns the delay code for bucket i
func DelayCode(i int) (byte, bool) {
	if i < 0 || i >= BucketCount {
		return 0, false
	}
	return delayCodes[i], true
}

// BucketLead returns how far before the scheduled time bucket i is sent
func BucketLead(i int) uint32 {
	return uint32((BucketCount - i) * BucketWidth)
}
