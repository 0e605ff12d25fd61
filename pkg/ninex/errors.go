// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ninex

import "fmt"

// ValueConstraintError reports a value outside the range the protocol can carry,
// such as a byte above 0xFF or a payload too long for the length byte.
type ValueConstraintError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

// Error implements the error interface
func (e *ValueConstraintError) Error() string {
	return fmt.Sprintf("%s=%d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// MalformedInputError reports a token that could not be parsed
type MalformedInputError struct {
	Token  string
	Reason string
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input %q: %s", e.Token, e.Reason)
}

// DecodeErrorType classifies framed command decode failures
type DecodeErrorType int

const (
	DecodeInvalidLength DecodeErrorType = iota
	DecodeTruncated
	DecodeCRCMismatch
	DecodeTrailingBytes
)

// DecodeError reports a framed command that failed verification
type DecodeError struct {
	Type    DecodeErrorType
	Message string
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return e.Message
}
