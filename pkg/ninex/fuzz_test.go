// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomPayload returns 0..MaxPayloadSize random bytes
func randomPayload(rng *rand.Rand) []byte {
	payload := make([]byte, rng.Intn(MaxPayloadSize+1))
	rng.Read(payload)
	return payload
}

// TestFuzzDecoder_RandomBytes feeds random bytes to the decoder
// and verifies it doesn't crash or panic
func TestFuzzDecoder_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()

		data := make([]byte, rng.Intn(512)+1)
		rng.Read(data)

		for _, b := range data {
			d.DecodeByte(b)
		}
	}
}

// TestFuzzFrame_RoundTrip frames random payloads and decodes them back
func TestFuzzFrame_RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		payload := randomPayload(rng)

		cmd, err := Frame(payload)
		if err != nil {
			t.Fatalf("Round %d: Frame failed: %v", i, err)
		}
		if int(cmd.LengthByte()) != len(payload)+LengthOffset {
			t.Errorf("Round %d: length byte 0x%02X for %d byte payload", i, cmd.LengthByte(), len(payload))
		}

		decoded, err := DecodeCommand(cmd.Bytes())
		if err != nil {
			t.Errorf("Round %d: unexpected decode error: %v", i, err)
			continue
		}
		if !bytes.Equal(decoded.Payload(), payload) {
			t.Errorf("Round %d: payload mismatch", i)
		}
	}
}

// TestFuzzDecoder_CorruptedCommands flips one byte of a valid command and
// expects verification to fail
func TestFuzzDecoder_CorruptedCommands(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		data := MustFrame(randomPayload(rng)).Bytes()

		corruptIdx := rng.Intn(len(data))
		data[corruptIdx] ^= byte(rng.Intn(255) + 1)

		if _, err := DecodeCommand(data); err == nil {
			t.Errorf("Round %d: corruption at byte %d not detected: % X", i, corruptIdx, data)
		}
	}
}

// TestFuzzSplitCommands_Concatenated splits runs of random commands
func TestFuzzSplitCommands_Concatenated(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		count := rng.Intn(16) + 1
		var stream []byte
		cmds := make([]Command, count)
		for j := range cmds {
			cmds[j] = MustFrame(randomPayload(rng))
			stream = append(stream, cmds[j].Bytes()...)
		}

		got, err := SplitCommands(stream)
		if err != nil {
			t.Fatalf("Round %d: SplitCommands failed: %v", i, err)
		}
		if len(got) != count {
			t.Fatalf("Round %d: expected %d commands, got %d", i, count, len(got))
		}
		for j := range got {
			if !got[j].Equal(cmds[j]) {
				t.Errorf("Round %d: command %d mismatch", i, j)
			}
		}
	}
}

// FuzzFrame checks framing invariants on arbitrary payloads
func FuzzFrame(f *testing.F) {
	f.Add([]byte{0x24, 0x62, 0x6A})
	f.Add([]byte{0xFF, 0x24, 0x62, 0x6A})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, payload []byte) {
		cmd, err := Frame(payload)
		if len(payload) > MaxPayloadSize {
			if err == nil {
				t.Fatal("expected error for oversized payload")
			}
			return
		}
		if err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
		raw := cmd.Bytes()
		if raw[len(raw)-1] != CalculateCRC(raw[:len(raw)-1]) {
			t.Fatal("CRC byte does not cover the frame")
		}
		if _, err := DecodeCommand(raw); err != nil {
			t.Fatalf("framed command failed to decode: %v", err)
		}
	})
}

// FuzzEncodePulses checks pulse totals on arbitrary data
func FuzzEncodePulses(f *testing.F) {
	f.Add([]byte{0x92, 0x24, 0x62, 0x6A, 0x3C})
	f.Add([]byte{0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		pulses, err := EncodePulses(data, DefaultUnitWidth)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for _, p := range pulses {
			sum += p
		}
		if sum != DefaultUnitWidth*(BitsPerByte+2)*len(data) {
			t.Fatalf("pulse total %d for %d bytes", sum, len(data))
		}
	})
}
