// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import "fmt"

// Decoder implements the 9X command decoder state machine.
// Concatenated commands can be fed one byte at a time; the length byte of
// each command tells the decoder where it ends.
type Decoder struct {
	state     int
	buffer    []byte
	remaining int // payload bytes still expected
}

// NewDecoder creates a new command decoder
func NewDecoder() *Decoder {
	return &Decoder{
		state:  stateIdle,
		buffer: make([]byte, 0, MaxPayloadSize+FrameOverhead),
	}
}

// Reset resets the decoder state to idle
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.buffer = d.buffer[:0]
	d.remaining = 0
}

// Pending reports whether a command is partially decoded
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// DecodeByte processes a single byte through the decoder state machine.
// Returns the completed command, or a zero Command if it is incomplete.
// Returns an error if the length byte is invalid or the CRC does not match.
func (d *Decoder) DecodeByte(b byte) (Command, error) {
	switch d.state {
	case stateIdle:
		if b < LengthOffset {
			return Command{}, &DecodeError{
				Type:    DecodeInvalidLength,
				Message: fmt.Sprintf("invalid length byte 0x%02X (min 0x%02X)", b, LengthOffset),
			}
		}
		d.buffer = append(d.buffer[:0], b)
		d.remaining = int(b) - LengthOffset
		if d.remaining == 0 {
			d.state = stateCRC
		} else {
			d.state = statePayload
		}
		return Command{}, nil

	case statePayload:
		d.buffer = append(d.buffer, b)
		d.remaining--
		if d.remaining == 0 {
			d.state = stateCRC
		}
		return Command{}, nil

	case stateCRC:
		expected := CalculateCRC(d.buffer)
		if b != expected {
			d.Reset()
			return Command{}, &DecodeError{
				Type:    DecodeCRCMismatch,
				Message: fmt.Sprintf("CRC mismatch: expected 0x%02X, got 0x%02X", expected, b),
			}
		}
		raw := make([]byte, len(d.buffer)+1)
		copy(raw, d.buffer)
		raw[len(d.buffer)] = b
		d.Reset()
		return newCommand(raw), nil

	default:
		d.Reset()
		return Command{}, fmt.Errorf("invalid state: %d", d.state)
	}
}

// SplitCommands decodes a run of concatenated framed commands
func SplitCommands(data []byte) ([]Command, error) {
	decoder := NewDecoder()
	var out []Command
	for i, b := range data {
		cmd, err := decoder.DecodeByte(b)
		if err != nil {
			return nil, fmt.Errorf("byte %d: %w", i, err)
		}
		if !cmd.IsZero() {
			out = append(out, cmd)
		}
	}
	if decoder.Pending() {
		return nil, &DecodeError{
			Type:    DecodeTruncated,
			Message: fmt.Sprintf("truncated command: %d bytes buffered", len(decoder.buffer)),
		}
	}
	return out, nil
}

// DecodeCommand verifies data as exactly one framed command
func DecodeCommand(data []byte) (Command, error) {
	cmds, err := SplitCommands(data)
	if err != nil {
		return Command{}, err
	}
	switch len(cmds) {
	case 0:
		return Command{}, &DecodeError{Type: DecodeTruncated, Message: "empty command"}
	case 1:
		return cmds[0], nil
	default:
		return Command{}, &DecodeError{
			Type:    DecodeTrailingBytes,
			Message: fmt.Sprintf("trailing bytes after command: %d commands found", len(cmds)),
		}
	}
}
