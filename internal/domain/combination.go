// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines DomainCombination, the logical key of training
// provenance.
//
// A combination is a set: {sharp, i2b2} and {i2b2, sharp, sharp} are the same
// combination and produce the same descriptor. The descriptor joins the sorted
// identifiers with DescriptorSeparator, so identifiers may not contain the
// separator or whitespace. That keeps the descriptor injective: two different
// sets never render to the same string.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// DescriptorSeparator joins domain identifiers in a combination descriptor.
const DescriptorSeparator = "+"

// DomainCombination is a non-empty, order-insensitive set of training domain
// identifiers.
type DomainCombination struct {
	names []string // sorted, unique
}

// NewCombination builds a combination from the given identifiers. Order and
// duplicates are ignored.
func NewCombination(names ...string) (DomainCombination, error) {
	if len(names) == 0 {
		return DomainCombination{}, fmt.Errorf("%w: no domains given", ErrInvalidCombination)
	}
	set := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			return DomainCombination{}, fmt.Errorf("%w: empty domain identifier", ErrInvalidCombination)
		}
		if strings.Contains(n, DescriptorSeparator) || strings.IndexFunc(n, unicode.IsSpace) >= 0 {
			return DomainCombination{}, fmt.Errorf("%w: identifier %q must not contain %q or whitespace", ErrInvalidCombination, n, DescriptorSeparator)
		}
		set = append(set, n)
	}
	slices.Sort(set)
	return DomainCombination{names: slices.Compact(set)}, nil
}

// MustCombination is like NewCombination but panics on error. Intended for
// tests and static tables.
func MustCombination(names ...string) DomainCombination {
	c, err := NewCombination(names...)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns the identifiers in canonical (sorted) order.
func (c DomainCombination) Names() []string {
	return slices.Clone(c.names)
}

// Contains reports whether the combination includes the identifier.
func (c DomainCombination) Contains(name string) bool {
	_, found := slices.BinarySearch(c.names, name)
	return found
}

// Len returns the number of domains in the combination.
func (c DomainCombination) Len() int { return len(c.names) }

// IsZero reports whether c is the zero value rather than a built combination.
func (c DomainCombination) IsZero() bool { return len(c.names) == 0 }

// Equal reports whether both combinations hold the same set of domains.
func (c DomainCombination) Equal(other DomainCombination) bool {
	return slices.Equal(c.names, other.names)
}

// Descriptor returns the canonical string form, e.g. "i2b2+sharp".
func (c DomainCombination) Descriptor() string {
	return strings.Join(c.names, DescriptorSeparator)
}

// String implements fmt.Stringer.
func (c DomainCombination) String() string { return c.Descriptor() }
