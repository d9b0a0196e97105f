package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot captures the blocks needed to build the evaluation context and
// leaves everything else in Remain for the second pass.
type fileRoot struct {
	Variables []*hclVariable `hcl:"variable,block"`
	Locals    []*hclLocals   `hcl:"locals,block"`
	Remain    hcl.Body       `hcl:",remain"`
}

type hclVariable struct {
	Name        string     `hcl:"name,label"`
	Default     *cty.Value `hcl:"default,optional"`
	Description string     `hcl:"description,optional"`
}

type hclLocals struct {
	Body hcl.Body `hcl:",remain"`
}

// experimentBody is the second-pass schema.
type experimentBody struct {
	Experiments []*hclExperiment `hcl:"experiment,block"`
	Domains     []*hclDomain     `hcl:"domain,block"`
	Trainings   []*hclTraining   `hcl:"training,block"`
	Grids       []*hclGrid       `hcl:"grid,block"`
	Validity    []*hclValidity   `hcl:"validity,block"`
	Evaluators  []*hclEvaluator  `hcl:"evaluator,block"`
}

type hclExperiment struct {
	Name            string            `hcl:"name,label"`
	TargetAttribute string            `hcl:"target_attribute,optional"`
	Attributes      []string          `hcl:"attributes,optional"`
	LegacyNames     map[string]string `hcl:"legacy_names,optional"`
	RunPrefix       string            `hcl:"run_prefix,optional"`
}

type hclDomain struct {
	Name    string `hcl:"name,label"`
	Path    string `hcl:"path"`
	Corpus  string `hcl:"corpus,optional"`
	HeldOut bool   `hcl:"held_out,optional"`
}

type hclTraining struct {
	Name    string   `hcl:"name,label"`
	Domains []string `hcl:"domains"`
	Model   string   `hcl:"model"`
}

type hclGrid struct {
	Models     []string `hcl:"models,optional"`
	Domains    []string `hcl:"domains,optional"`
	Policy     string   `hcl:"policy,optional"`
	SkipTagged bool     `hcl:"skip_tagged,optional"`
}

type hclValidity struct {
	Tag     string   `hcl:"tag,label"`
	Model   string   `hcl:"model"`
	Domains []string `hcl:"domains"`
}

type hclEvaluator struct {
	Command []string          `hcl:"command"`
	Env     map[string]string `hcl:"env,optional"`
}
