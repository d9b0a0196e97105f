package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/adaptgrid/internal/config"
	"github.com/specialistvlad/adaptgrid/internal/ctxlog"
	"github.com/specialistvlad/adaptgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL experiment loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parsedFile is a file after the first pass.
type parsedFile struct {
	path string
	root fileRoot
}

// Load discovers every .hcl file under paths, builds the evaluation context
// from their variable and locals blocks, and merges the remaining blocks into
// a config.Model.
func (l *Loader) Load(ctx context.Context, vars map[string]string, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find experiment files in %s: %w", p, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl experiment files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]parsedFile, 0, len(files))
	declared := make(map[string]declaredVariable)
	localAttrs := make(hcl.Attributes)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, v := range root.Variables {
			if prev, dup := declared[v.Name]; dup {
				return nil, fmt.Errorf("variable %q declared in both %s and %s", v.Name, prev.source, file)
			}
			declared[v.Name] = declaredVariable{block: v, source: file}
		}
		for _, block := range root.Locals {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid locals block in %s: %w", file, diags)
			}
			for name, attr := range attrs {
				if _, dup := localAttrs[name]; dup {
					return nil, fmt.Errorf("local %q defined more than once (%s)", name, file)
				}
				localAttrs[name] = attr
			}
		}
		parsed = append(parsed, parsedFile{path: file, root: root})
	}

	varValues, err := resolveVariables(declared, vars)
	if err != nil {
		return nil, err
	}
	localValues, err := resolveLocals(varValues, localAttrs)
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(varValues, localValues)
	logger.Debug("Evaluation context built.", "variables", len(varValues), "locals", len(localValues))

	model := &config.Model{}
	var experimentSource, evaluatorSource, gridSource string

	for _, pf := range parsed {
		var body experimentBody
		diags := gohcl.DecodeBody(pf.root.Remain, evalCtx, &body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.path, diags)
		}

		for _, e := range body.Experiments {
			if experimentSource != "" {
				return nil, duplicateBlockError("experiment", experimentSource, pf.path)
			}
			experimentSource = pf.path
			model.Experiment = translateExperiment(e)
		}
		for _, g := range body.Grids {
			if gridSource != "" {
				return nil, duplicateBlockError("grid", gridSource, pf.path)
			}
			gridSource = pf.path
			model.Grid = translateGrid(g)
		}
		for _, e := range body.Evaluators {
			if evaluatorSource != "" {
				return nil, duplicateBlockError("evaluator", evaluatorSource, pf.path)
			}
			evaluatorSource = pf.path
			model.Evaluator = translateEvaluator(e)
		}
		for _, d := range body.Domains {
			model.Domains = append(model.Domains, translateDomain(d, pf.path))
		}
		for _, t := range body.Trainings {
			model.Trainings = append(model.Trainings, translateTraining(t, pf.path))
		}
		for _, v := range body.Validity {
			model.ValidityRules = append(model.ValidityRules, translateValidity(v, pf.path))
		}
	}

	if model.Grid == nil {
		return nil, fmt.Errorf("no grid block found in %v", paths)
	}

	logger.Debug("HCL loading complete.",
		"domains", len(model.Domains),
		"trainings", len(model.Trainings),
		"validity_rules", len(model.ValidityRules),
		"evaluator", model.Evaluator != nil,
	)
	return model, nil
}

func duplicateBlockError(kind, first, second string) error {
	if first == second {
		return fmt.Errorf("only one %q block is allowed, found several in %s", kind, first)
	}
	return fmt.Errorf("only one %q block is allowed, found one in %s and another in %s", kind, first, second)
}
