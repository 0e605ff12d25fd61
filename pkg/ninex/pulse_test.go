// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import (
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

type pulseTestData struct {
	Data   []byte
	Pulses []int
}

func TestEncodePulsesSingleBytes(t *testing.T) {
	c := qt.New(t)

	tests := []pulseTestData{
		{Data: []byte{0x00}, Pulses: []int{3753, 417}},
		{Data: []byte{0xFF}, Pulses: []int{417, 3753}},
		{Data: []byte{0x55}, Pulses: []int{417, 417, 417, 417, 417, 417, 417, 417, 417, 417}},
		{Data: []byte{0x01}, Pulses: []int{417, 417, 2919, 417}},
		{Data: []byte{0x80}, Pulses: []int{3336, 834}},
	}

	for _, data := range tests {
		c.Run(fmt.Sprintf("Encode:%02X", data.Data), func(c *qt.C) {
			pulses, err := EncodePulses(data.Data, DefaultUnitWidth)
			c.Assert(err, qt.IsNil)
			c.Assert(pulses, qt.DeepEquals, data.Pulses)
		})
	}
}

func TestEncodePulsesFramedCommand(t *testing.T) {
	c := qt.New(t)

	cmd := MustFrame([]byte{0x24, 0x62, 0x6A})
	pulses, err := cmd.Pulses(DefaultUnitWidth)
	c.Assert(err, qt.IsNil)
	c.Assert(pulses, qt.DeepEquals, []int{
		834, 417, 834, 417, 834, 834, 1251, 417, 834, 417,
		834, 417, 834, 417, 1251, 834, 417, 417, 834, 417,
		417, 417, 417, 834, 417, 417, 1251, 1668, 834, 417,
	})

	delayed := MustFrame([]byte{0xFF, 0x24, 0x62, 0x6A})
	pulses, err = delayed.Pulses(DefaultUnitWidth)
	c.Assert(err, qt.IsNil)
	c.Assert(FormatPulses(pulses), qt.Equals,
		"{417, 834, 834, 417, 834, 834, 417, 3753, 1251, 417, 834, 417, 834, 417, 834, 417, "+
			"1251, 834, 417, 417, 834, 417, 417, 417, 417, 834, 417, 417, 1668, 417, 834, 1251}")
}

func TestEncodePulsesInvariants(t *testing.T) {
	c := qt.New(t)

	for _, width := range []int{1, 100, DefaultUnitWidth} {
		for n := 0; n < 256; n++ {
			data := []byte{byte(n), byte(255 - n), byte(n * 7)}
			pulses, err := EncodePulses(data, width)
			c.Assert(err, qt.IsNil)

			sum := 0
			for _, p := range pulses {
				c.Assert(p%width, qt.Equals, 0)
				sum += p
			}
			// start + 8 data + stop cells per byte
			c.Assert(sum, qt.Equals, width*(BitsPerByte+2)*len(data))
			c.Assert(len(pulses) >= 2*len(data), qt.IsTrue)
		}
	}
}

func TestEncodePulsesEmpty(t *testing.T) {
	c := qt.New(t)

	pulses, err := EncodePulses(nil, DefaultUnitWidth)
	c.Assert(err, qt.IsNil)
	c.Assert(pulses, qt.HasLen, 0)
}

func TestEncodePulsesBadWidth(t *testing.T) {
	c := qt.New(t)

	for _, width := range []int{0, -417} {
		_, err := EncodePulses([]byte{0x00}, width)
		var vce *ValueConstraintError
		c.Assert(err, qt.ErrorAs, &vce)
		c.Assert(vce.Value, qt.Equals, int64(width))
	}
}

func TestPulseEncoderReset(t *testing.T) {
	c := qt.New(t)

	enc, err := NewPulseEncoder(DefaultUnitWidth)
	c.Assert(err, qt.IsNil)
	c.Assert(enc.WriteByte(0xFF), qt.IsNil)
	enc.Reset()
	c.Assert(enc.Durations(), qt.HasLen, 0)

	n, err := enc.Write([]byte{0x00})
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 1)
	c.Assert(enc.Durations(), qt.DeepEquals, []int{3753, 417})
}

func TestPulsesToDurations(t *testing.T) {
	c := qt.New(t)

	got := PulsesToDurations([]int{417, 834}, time.Microsecond)
	c.Assert(got, qt.DeepEquals, []time.Duration{417 * time.Microsecond, 834 * time.Microsecond})
}
