package catalog

import (
	"fmt"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Training is a bidirectional registry between domain combinations and the
// model artifacts trained on them. Every artifact maps to exactly one
// combination and every combination to exactly one artifact.
type Training struct {
	byModel      map[domain.ModelArtifact]domain.DomainCombination
	byDescriptor map[string]domain.ModelArtifact
	models       []domain.ModelArtifact
}

// NewTraining creates an empty training registry.
func NewTraining() *Training {
	return &Training{
		byModel:      make(map[domain.ModelArtifact]domain.DomainCombination),
		byDescriptor: make(map[string]domain.ModelArtifact),
	}
}

// Register records that the model at path was trained on combination.
// Registering the identical mapping twice is a no-op. Mapping a path to a
// second combination, or a combination to a second path, fails with
// domain.ErrAmbiguousProvenance and leaves the registry unchanged.
func (c *Training) Register(combination domain.DomainCombination, path string) error {
	if combination.IsZero() {
		return fmt.Errorf("%w: no domains given for %q", domain.ErrInvalidCombination, path)
	}
	model := domain.NewModelArtifact(path)
	if model == "" {
		return fmt.Errorf("%w: empty model path for %q", domain.ErrAmbiguousProvenance, combination)
	}

	existing, pathKnown := c.byModel[model]
	if pathKnown && !existing.Equal(combination) {
		return fmt.Errorf("%w: model %q is already registered for %q, cannot register it for %q",
			domain.ErrAmbiguousProvenance, model, existing, combination)
	}

	descriptor := combination.Descriptor()
	if other, ok := c.byDescriptor[descriptor]; ok && other != model {
		return fmt.Errorf("%w: combination %q is already served by model %q, cannot register %q",
			domain.ErrAmbiguousProvenance, descriptor, other, model)
	}

	if pathKnown {
		return nil
	}
	c.byModel[model] = combination
	c.byDescriptor[descriptor] = model
	c.models = append(c.models, model)
	return nil
}

// ResolveTrainingDescriptor returns the canonical descriptor of the
// combination the model at path was trained on.
func (c *Training) ResolveTrainingDescriptor(path string) (string, bool) {
	combination, ok := c.Combination(path)
	if !ok {
		return "", false
	}
	return combination.Descriptor(), true
}

// Combination returns the combination the model at path was trained on.
func (c *Training) Combination(path string) (domain.DomainCombination, bool) {
	combination, ok := c.byModel[domain.NewModelArtifact(path)]
	return combination, ok
}

// Model returns the artifact registered for combination.
func (c *Training) Model(combination domain.DomainCombination) (domain.ModelArtifact, bool) {
	model, ok := c.byDescriptor[combination.Descriptor()]
	return model, ok
}

// Models returns every registered artifact in registration order.
func (c *Training) Models() []domain.ModelArtifact {
	out := make([]domain.ModelArtifact, len(c.models))
	copy(out, c.models)
	return out
}

// Len returns the number of registered artifacts.
func (c *Training) Len() int { return len(c.models) }
