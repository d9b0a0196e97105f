package grid

import (
	"fmt"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Policy classifies a single (model, domain) cell.
type Policy func(model domain.ModelArtifact, d domain.Domain) domain.Validity

// Provenance answers which combination a model was trained on.
// *catalog.Training satisfies it.
type Provenance interface {
	Combination(path string) (domain.DomainCombination, bool)
}

// AllValid tags every cell as valid.
func AllValid(domain.ModelArtifact, domain.Domain) domain.Validity {
	return domain.Valid
}

// HeldOut tags a cell not_valid when the model was trained on the test
// domain's corpus and the test data is not a held-out split of it. Models
// with unknown provenance are left valid.
func HeldOut(p Provenance) Policy {
	return func(model domain.ModelArtifact, d domain.Domain) domain.Validity {
		combination, ok := p.Combination(model.Path())
		if !ok {
			return domain.Valid
		}
		if combination.Contains(d.CorpusName()) && !d.HeldOut {
			return domain.NotValid
		}
		return domain.Valid
	}
}

// Rule pins the tag of one cell.
type Rule struct {
	Model  domain.ModelArtifact
	Domain string
	Tag    domain.Validity
}

type ruleKey struct {
	model  domain.ModelArtifact
	domain string
}

// Rules builds a table-driven policy. Cells without a rule are valid. Two
// rules for the same cell with different tags are rejected.
func Rules(rules []Rule) (Policy, error) {
	table := make(map[ruleKey]domain.Validity, len(rules))
	for _, r := range rules {
		k := ruleKey{model: domain.NewModelArtifact(r.Model.Path()), domain: r.Domain}
		if prev, ok := table[k]; ok && prev != r.Tag {
			return nil, fmt.Errorf("conflicting validity rules for %s x %s: %s and %s", k.model, k.domain, prev, r.Tag)
		}
		table[k] = r.Tag
	}
	return func(model domain.ModelArtifact, d domain.Domain) domain.Validity {
		if tag, ok := table[ruleKey{model: model, domain: d.Name}]; ok {
			return tag
		}
		return domain.Valid
	}, nil
}

// Chain combines policies; the first non-valid verdict wins.
func Chain(policies ...Policy) Policy {
	return func(model domain.ModelArtifact, d domain.Domain) domain.Validity {
		for _, p := range policies {
			if p == nil {
				continue
			}
			if v := p(model, d); v != domain.Valid {
				return v
			}
		}
		return domain.Valid
	}
}

// Named policies selectable from configuration.
const (
	PolicyAllValid = "all_valid"
	PolicyHeldOut  = "held_out"
)

// ByName returns the built-in policy called name.
func ByName(name string, p Provenance) (Policy, error) {
	switch name {
	case "", PolicyAllValid:
		return AllValid, nil
	case PolicyHeldOut:
		return HeldOut(p), nil
	default:
		return nil, fmt.Errorf("unknown validity policy %q: must be '%s' or '%s'", name, PolicyAllValid, PolicyHeldOut)
	}
}
