// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

// Command is a framed 9X command: length byte, payload, CRC byte.
// The zero value is an empty command. A Command is never modified after it
// is built, and accessors return copies.
type Command struct {
	raw []byte
}

// newCommand takes ownership of raw
func newCommand(raw []byte) Command {
	return Command{raw: raw}
}

// IsZero reports whether the command holds no bytes
func (c Command) IsZero() bool {
	return len(c.raw) == 0
}

// Len returns the framed length in bytes
func (c Command) Len() int {
	return len(c.raw)
}

// Bytes returns a copy of the framed bytes
func (c Command) Bytes() []byte {
	if c.raw == nil {
		return nil
	}
	out := make([]byte, len(c.raw))
	copy(out, c.raw)
	return out
}

// LengthByte returns the leading length byte
func (c Command) LengthByte() byte {
	if c.IsZero() {
		return 0
	}
	return c.raw[0]
}

// Payload returns a copy of the payload between the length and CRC bytes
func (c Command) Payload() []byte {
	if len(c.raw) < FrameOverhead {
		return nil
	}
	out := make([]byte, len(c.raw)-FrameOverhead)
	copy(out, c.raw[1:len(c.raw)-1])
	return out
}

// CRC returns the trailing CRC byte
func (c Command) CRC() byte {
	if c.IsZero() {
		return 0
	}
	return c.raw[len(c.raw)-1]
}

// Equal reports whether both commands carry the same bytes
func (c Command) Equal(other Command) bool {
	if len(c.raw) != len(other.raw) {
		return false
	}
	for i := range c.raw {
		if c.raw[i] != other.raw[i] {
			return false
		}
	}
	return true
}

// String formats the command as two-digit upper-case hex bytes
func (c Command) String() string {
	return FormatBytesPadded(c.raw)
}
