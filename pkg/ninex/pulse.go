// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import "time"

// PulseEncoder converts bytes into alternating on/off pulse durations.
//
// Each byte is sent as a start bit, eight data bits (least significant
// first) and a stop bit, one unit wide each. A zero bit is carrier-on and a
// one bit is carrier-off; the line idles off. Adjacent cells at the same
// level merge into a single wider pulse, so the first duration is always an
// on-pulse and durations alternate on/off from there.
type PulseEncoder struct {
	unitWidth int
	level     bool // current line level, true = off
	durations []int
}

// NewPulseEncoder creates an encoder with the given unit width (must be positive)
func NewPulseEncoder(unitWidth int) (*PulseEncoder, error) {
	if unitWidth <= 0 {
		return nil, &ValueConstraintError{Field: "unit width", Value: int64(unitWidth), Min: 1, Max: int64(^uint(0) >> 1)}
	}
	return &PulseEncoder{unitWidth: unitWidth, level: true}, nil
}

// Reset clears accumulated durations and returns the line to idle
func (e *PulseEncoder) Reset() {
	e.level = true
	e.durations = e.durations[:0]
}

// WriteByte appends the pulse train for one byte
func (e *PulseEncoder) WriteByte(b byte) error {
	e.extendOrAppend(false)
	for i := 0; i < BitsPerByte; i++ {
		e.extendOrAppend(b>>i&1 == 1)
	}
	e.extendOrAppend(true)
	return nil
}

// Write appends the pulse trains for all bytes in p
func (e *PulseEncoder) Write(p []byte) (int, error) {
	for _, b := range p {
		_ = e.WriteByte(b)
	}
	return len(p), nil
}

// Durations returns a copy of the accumulated durations
func (e *PulseEncoder) Durations() []int {
	out := make([]int, len(e.durations))
	copy(out, e.durations)
	return out
}

// extendOrAppend widens the last pulse when the level is unchanged,
// otherwise starts a new pulse at the new level.
func (e *PulseEncoder) extendOrAppend(bit bool) {
	if len(e.durations) > 0 && bit == e.level {
		e.durations[len(e.durations)-1] += e.unitWidth
		return
	}
	e.durations = append(e.durations, e.unitWidth)
	e.level = bit
}

// EncodePulses converts framed command bytes into pulse durations
func EncodePulses(data []byte, unitWidth int) ([]int, error) {
	enc, err := NewPulseEncoder(unitWidth)
	if err != nil {
		return nil, err
	}
	_, _ = enc.Write(data)
	return enc.Durations(), nil
}

// Pulses converts the command into pulse durations
func (c Command) Pulses(unitWidth int) ([]int, error) {
	return EncodePulses(c.raw, unitWidth)
}

// PulsesToDurations scales pulse widths by unit (time.Microsecond for DefaultUnitWidth)
func PulsesToDurations(pulses []int, unit time.Duration) []time.Duration {
	out := make([]time.Duration, len(pulses))
	for i, p := range pulses {
		out[i] = time.Duration(p) * unit
	}
	return out
}
