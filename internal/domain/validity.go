// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package domain

import "fmt"

// Validity classifies whether a pair is an informative experimental
// comparison. It is metadata; it does not stop a pair from running.
type Validity uint8

const (
	// Valid marks a meaningful comparison.
	Valid Validity = iota

	// NotValid marks a pair whose test data the model already consumed
	// during training.
	NotValid

	// NotMeaningful marks a runnable pair that does not inform the
	// adaptation question being studied.
	NotMeaningful
)

// String returns the configuration spelling of the tag.
func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case NotValid:
		return "not_valid"
	case NotMeaningful:
		return "not_meaningful"
	default:
		return "unknown"
	}
}

// ParseValidity converts a configuration spelling back into a Validity.
func ParseValidity(s string) (Validity, error) {
	switch s {
	case "valid":
		return Valid, nil
	case "not_valid":
		return NotValid, nil
	case "not_meaningful":
		return NotMeaningful, nil
	default:
		return Valid, fmt.Errorf("unknown validity tag %q: must be 'valid', 'not_valid' or 'not_meaningful'", s)
	}
}

// MarshalText implements encoding.TextMarshaler so reports carry the
// readable tag.
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Validity) UnmarshalText(text []byte) error {
	parsed, err := ParseValidity(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
