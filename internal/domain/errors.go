// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package domain

import "errors"

// ErrAmbiguousProvenance indicates that a model path and a domain combination
// would no longer map one-to-one. It is a configuration error.
var ErrAmbiguousProvenance = errors.New("ambiguous model provenance")

// ErrInvalidCombination indicates an empty or malformed domain combination.
var ErrInvalidCombination = errors.New("invalid domain combination")

// ErrDuplicateDomain indicates that a test domain name was registered twice.
var ErrDuplicateDomain = errors.New("duplicate test domain")

// ErrInvalidDomain indicates a test domain without a name or path.
var ErrInvalidDomain = errors.New("invalid test domain")

// ErrUnknownDomain indicates a reference to a test domain that was never
// registered.
var ErrUnknownDomain = errors.New("unknown test domain")

// ErrUnrunnable indicates that a pair cannot be parameterized because the
// training provenance of its model is unknown. It is expected and non-fatal.
var ErrUnrunnable = errors.New("pair is unrunnable")

// ErrUnknownModel indicates a reference to a model artifact that is neither
// registered with a training combination nor listed in the grid.
var ErrUnknownModel = errors.New("unknown model artifact")
