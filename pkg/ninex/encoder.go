// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import "fmt"

// Frame builds a 9X command from raw payload bytes.
//
// The length byte is len(payload)+LengthOffset and the CRC covers the length
// byte and payload. An empty payload yields a two-byte command.
func Frame(payload []byte) (Command, error) {
	if len(payload) > MaxPayloadSize {
		return Command{}, &ValueConstraintError{
			Field: "payload length",
			Value: int64(len(payload)),
			Min:   0,
			Max:   MaxPayloadSize,
		}
	}

	data := make([]byte, 0, len(payload)+FrameOverhead)
	data = append(data, byte(len(payload)+LengthOffset))
	data = append(data, payload...)
	data = append(data, CalculateCRC(data))

	return newCommand(data), nil
}

// FrameHex parses space-delimited hex bytes and frames them
func FrameHex(s string) (Command, error) {
	payload, err := ParseHexBytes(s)
	if err != nil {
		return Command{}, err
	}
	return Frame(payload)
}

// MustFrame frames payload and panics on error.
// Use Frame for error handling.
func MustFrame(payload []byte) Command {
	cmd, err := Frame(payload)
	if err != nil {
		panic(fmt.Sprintf("ninex: frame error: %v", err))
	}
	return cmd
}
