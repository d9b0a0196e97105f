package hcl_adapter

import (
	"maps"
	"slices"

	"github.com/specialistvlad/adaptgrid/internal/config"
)

func translateExperiment(e *hclExperiment) config.Experiment {
	return config.Experiment{
		Name:            e.Name,
		TargetAttribute: e.TargetAttribute,
		Attributes:      slices.Clone(e.Attributes),
		LegacyNames:     maps.Clone(e.LegacyNames),
		RunPrefix:       e.RunPrefix,
	}
}

func translateDomain(d *hclDomain, source string) *config.Domain {
	return &config.Domain{
		Name:    d.Name,
		Path:    d.Path,
		Corpus:  d.Corpus,
		HeldOut: d.HeldOut,
		Source:  source,
	}
}

func translateTraining(t *hclTraining, source string) *config.Training {
	return &config.Training{
		Name:    t.Name,
		Domains: slices.Clone(t.Domains),
		Model:   t.Model,
		Source:  source,
	}
}

func translateGrid(g *hclGrid) *config.Grid {
	return &config.Grid{
		Models:     slices.Clone(g.Models),
		Domains:    slices.Clone(g.Domains),
		Policy:     g.Policy,
		SkipTagged: g.SkipTagged,
	}
}

func translateValidity(v *hclValidity, source string) *config.ValidityRule {
	return &config.ValidityRule{
		Tag:     v.Tag,
		Model:   v.Model,
		Domains: slices.Clone(v.Domains),
		Source:  source,
	}
}

func translateEvaluator(e *hclEvaluator) *config.Evaluator {
	return &config.Evaluator{
		Command: slices.Clone(e.Command),
		Env:     maps.Clone(e.Env),
	}
}
