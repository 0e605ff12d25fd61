// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseHexBytes splits s on whitespace and parses each token as a hex byte
func ParseHexBytes(s string) ([]byte, error) {
	return ParseHexTokens(strings.Fields(s))
}

// ParseHexTokens parses hex tokens ("24", "6a", "0xFF") into bytes.
// Tokens that are not hex return a *MalformedInputError and values outside
// [0, 255] return a *ValueConstraintError.
func ParseHexTokens(tokens []string) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, &MalformedInputError{Reason: "no bytes given"}
	}

	out := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		b, err := ParseHexByte(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseHexByte parses a single hex token into a byte
func ParseHexByte(tok string) (byte, error) {
	digits := tok
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if neg {
		digits = "-" + digits
	}

	v, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			over := int64(math.MaxInt64)
			if neg {
				over = math.MinInt64
			}
			return 0, &ValueConstraintError{Field: "byte", Value: over, Min: 0, Max: 0xFF}
		}
		return 0, &MalformedInputError{Token: tok, Reason: "not a hex byte"}
	}
	if v < 0 || v > 0xFF {
		return 0, &ValueConstraintError{Field: "byte", Value: v, Min: 0, Max: 0xFF}
	}
	return byte(v), nil
}
