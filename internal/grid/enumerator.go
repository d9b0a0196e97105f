package grid

import (
	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Build returns one pair per (model, domain), models outer and domains inner,
// each tagged by policy. A nil policy tags every pair as valid.
func Build(models []domain.ModelArtifact, domains []domain.Domain, policy Policy) []domain.EvaluationPair {
	if policy == nil {
		policy = AllValid
	}

	pairs := make([]domain.EvaluationPair, 0, len(models)*len(domains))
	for _, m := range models {
		for _, d := range domains {
			pairs = append(pairs, domain.EvaluationPair{
				Model:    m,
				Domain:   d,
				Validity: policy(m, d),
			})
		}
	}
	return pairs
}

// Count returns how many pairs carry each validity tag.
func Count(pairs []domain.EvaluationPair) map[domain.Validity]int {
	counts := make(map[domain.Validity]int, 3)
	for _, p := range pairs {
		counts[p.Validity]++
	}
	return counts
}
