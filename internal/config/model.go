package config

// Model is the unified representation of one experiment.
type Model struct {
	Experiment    Experiment
	Domains       []*Domain
	Trainings     []*Training
	Grid          *Grid
	ValidityRules []*ValidityRule
	Evaluator     *Evaluator
}

// Experiment holds settings that apply to the whole sweep. Zero values mean
// "use the default".
type Experiment struct {
	Name            string
	TargetAttribute string
	Attributes      []string
	LegacyNames     map[string]string
	RunPrefix       string
}

// Domain is the representation of a `domain` block.
type Domain struct {
	Name    string
	Path    string
	Corpus  string
	HeldOut bool
	Source  string // file the block was defined in
}

// Training is the representation of a `training` block: one model artifact
// and the domains it was trained on.
type Training struct {
	Name    string
	Domains []string
	Model   string
	Source  string
}

// Grid is the representation of the `grid` block.
type Grid struct {
	Models     []string
	Domains    []string
	Policy     string
	SkipTagged bool
}

// ValidityRule is the representation of a `validity` block: it pins the tag
// of the listed (model, domain) cells.
type ValidityRule struct {
	Tag     string
	Model   string
	Domains []string
	Source  string
}

// Evaluator is the representation of the `evaluator` block.
type Evaluator struct {
	Command []string
	Env     map[string]string
}
