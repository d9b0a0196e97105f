package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/adaptgrid/internal/catalog"
	"github.com/specialistvlad/adaptgrid/internal/config"
	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/domain"
	"github.com/specialistvlad/adaptgrid/internal/grid"
	"github.com/specialistvlad/adaptgrid/internal/params"
)

// build populates the catalogs from the loaded model and enumerates the grid.
func (a *App) build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	domains, err := buildDomains(a.model.Domains)
	if err != nil {
		return err
	}
	training, err := buildTraining(a.model.Trainings)
	if err != nil {
		return err
	}
	a.domains, a.training = domains, training
	logger.Debug("Catalogs built.", "domains", domains.Len(), "models", training.Len())

	dir, err := a.instancesDir()
	if err != nil {
		return err
	}
	builder, err := params.NewBuilder(training, params.Options{
		InstancesDir: dir,
		Attributes:   attributesFor(a.model.Experiment),
	})
	if err != nil {
		return fmt.Errorf("invalid experiment: %w", err)
	}
	a.builder = builder

	models := training.Models()
	if len(a.model.Grid.Models) > 0 {
		models = make([]domain.ModelArtifact, 0, len(a.model.Grid.Models))
		for _, m := range a.model.Grid.Models {
			models = append(models, domain.NewModelArtifact(m))
		}
	}
	testDomains, err := domains.Select(a.model.Grid.Domains)
	if err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}

	policy, err := buildPolicy(a.model.Grid.Policy, a.model.ValidityRules, training, domains, models)
	if err != nil {
		return err
	}

	a.pairs = grid.Build(models, testDomains, policy)
	counts := grid.Count(a.pairs)
	logger.Info("Grid enumerated.",
		"models", len(models),
		"domains", len(testDomains),
		"pairs", len(a.pairs),
		"not_valid", counts[domain.NotValid],
		"not_meaningful", counts[domain.NotMeaningful],
	)
	return nil
}

func buildDomains(defs []*config.Domain) (*catalog.Domains, error) {
	c := catalog.NewDomains()
	for _, d := range defs {
		err := c.Register(domain.Domain{Name: d.Name, Path: d.Path, Corpus: d.Corpus, HeldOut: d.HeldOut})
		if err != nil {
			return nil, fmt.Errorf("domain %q (%s): %w", d.Name, d.Source, err)
		}
	}
	return c, nil
}

func buildTraining(defs []*config.Training) (*catalog.Training, error) {
	c := catalog.NewTraining()
	for _, t := range defs {
		if dup, ok := firstRepeated(t.Domains); ok {
			return nil, fmt.Errorf("training %q (%s): %w: %q is listed more than once",
				t.Name, t.Source, domain.ErrInvalidCombination, dup)
		}
		combination, err := domain.NewCombination(t.Domains...)
		if err != nil {
			return nil, fmt.Errorf("training %q (%s): %w", t.Name, t.Source, err)
		}
		if err := c.Register(combination, t.Model); err != nil {
			return nil, fmt.Errorf("training %q (%s): %w", t.Name, t.Source, err)
		}
	}
	return c, nil
}

// firstRepeated returns the first name that occurs twice in names.
func firstRepeated(names []string) (string, bool) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n, true
		}
		seen[n] = struct{}{}
	}
	return "", false
}

// buildPolicy chains the explicit validity rules in front of the named
// policy, so a rule's non-valid tag takes precedence. Every rule must name a
// registered test domain and a model that is either registered or listed in
// the grid.
func buildPolicy(name string, defs []*config.ValidityRule, training *catalog.Training, domains *catalog.Domains, models []domain.ModelArtifact) (grid.Policy, error) {
	named, err := grid.ByName(name, training)
	if err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	if len(defs) == 0 {
		return named, nil
	}

	listed := make(map[domain.ModelArtifact]struct{}, len(models))
	for _, m := range models {
		listed[m] = struct{}{}
	}

	var rules []grid.Rule
	for _, def := range defs {
		tag, err := domain.ParseValidity(def.Tag)
		if err != nil {
			return nil, fmt.Errorf("validity rule (%s): %w", def.Source, err)
		}
		model := domain.NewModelArtifact(def.Model)
		_, inGrid := listed[model]
		if _, registered := training.Combination(model.Path()); !registered && !inGrid {
			return nil, fmt.Errorf("validity rule (%s): %w: %q", def.Source, domain.ErrUnknownModel, def.Model)
		}
		for _, d := range def.Domains {
			if _, ok := domains.Lookup(d); !ok {
				return nil, fmt.Errorf("validity rule (%s): %w: %q", def.Source, domain.ErrUnknownDomain, d)
			}
			rules = append(rules, grid.Rule{Model: model, Domain: d, Tag: tag})
		}
	}
	table, err := grid.Rules(rules)
	if err != nil {
		return nil, err
	}
	return grid.Chain(table, named), nil
}

func attributesFor(e config.Experiment) params.Attributes {
	attrs := params.DefaultAttributeSet()
	if len(e.Attributes) > 0 {
		attrs.Known = e.Attributes
	}
	if e.TargetAttribute != "" {
		attrs.Target = e.TargetAttribute
	}
	if e.LegacyNames != nil {
		attrs.LegacyNames = e.LegacyNames
	}
	return attrs
}
