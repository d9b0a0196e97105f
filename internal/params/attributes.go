package params

import (
	"fmt"
	"slices"
)

// DefaultAttributes lists every annotatable assertion attribute, in the
// order suppression flags are emitted.
var DefaultAttributes = []string{
	"polarity",
	"conditional",
	"uncertainty",
	"subject",
	"generic",
	"historyOf",
}

// DefaultTarget is the attribute evaluated when none is configured.
const DefaultTarget = "polarity"

// DefaultLegacyNames maps attribute names whose flag spelling differs from
// the attribute name.
var DefaultLegacyNames = map[string]string{
	"historyOf": "history",
}

// Attributes describes which attribute is under evaluation and which are
// suppressed.
type Attributes struct {
	// Known is every attribute the evaluator can predict.
	Known []string
	// Target is the attribute under evaluation; it is never suppressed.
	Target string
	// LegacyNames rewrites an attribute name before it becomes a flag.
	LegacyNames map[string]string
}

// DefaultAttributeSet returns the attribute configuration of the polarity
// experiments.
func DefaultAttributeSet() Attributes {
	return Attributes{
		Known:       slices.Clone(DefaultAttributes),
		Target:      DefaultTarget,
		LegacyNames: DefaultLegacyNames,
	}
}

// validate checks that the target is one of the known attributes, that no
// attribute is listed twice, and that every attribute keeps a distinct,
// non-empty flag spelling after legacy renaming.
func (a Attributes) validate() error {
	if a.Target == "" {
		return fmt.Errorf("target attribute is required")
	}
	seen := make(map[string]struct{}, len(a.Known))
	for _, name := range a.Known {
		if name == "" {
			return fmt.Errorf("attribute names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("attribute %q is listed twice", name)
		}
		seen[name] = struct{}{}
	}
	if _, ok := seen[a.Target]; !ok {
		return fmt.Errorf("target attribute %q is not one of %v", a.Target, a.Known)
	}

	for from, to := range a.LegacyNames {
		if to == "" {
			return fmt.Errorf("legacy name of attribute %q must not be empty", from)
		}
	}
	spelledBy := make(map[string]string, len(a.Known))
	for _, name := range a.Known {
		flag := a.flagName(name)
		if other, dup := spelledBy[flag]; dup {
			return fmt.Errorf("attributes %q and %q both map to flag %s%s", other, name, FlagIgnorePrefix, flag)
		}
		spelledBy[flag] = name
	}
	return nil
}

// flagName returns the spelling of attribute in an ignore flag.
func (a Attributes) flagName(attribute string) string {
	if legacy, ok := a.LegacyNames[attribute]; ok {
		return legacy
	}
	return attribute
}

// suppressionFlags returns one ignore flag per non-target attribute.
func (a Attributes) suppressionFlags() []string {
	flags := make([]string, 0, len(a.Known))
	for _, name := range a.Known {
		if name == a.Target {
			continue
		}
		flags = append(flags, FlagIgnorePrefix+a.flagName(name))
	}
	return flags
}
