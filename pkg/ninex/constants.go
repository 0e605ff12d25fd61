// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package ninex implements the 9X infrared command codec.
//
// A 9X command is a payload framed by a length byte and a trailing CRC-8.
// Framed commands are modulated into alternating on/off pulse durations for
// transmission by an infrared emitter. This package builds and verifies
// framed commands and produces their pulse timings; it does not interpret
// payload bytes.
package ninex

// Framing
const (
	// LengthOffset is added to the payload length to form the length byte.
	// The value comes from the receiver's opcode space and must not change.
	LengthOffset = 143

	// MaxPayloadSize keeps the length byte within a single byte.
	MaxPayloadSize = 0xFF - LengthOffset

	// FrameOverhead is the length byte plus the CRC byte
	FrameOverhead = 2
)

// Pulse timing
const (
	// DefaultUnitWidth is the width of one bit cell in microseconds
	DefaultUnitWidth = 417

	// BitsPerByte is the number of data bits sent after each start pulse
	BitsPerByte = 8
)

// Decoder states (internal)
const (
	stateIdle = iota
	statePayload
	stateCRC
)
