package params

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Evaluator flags, in emission order.
const (
	FlagTestDir        = "--test-dir"
	FlagModelsDir      = "--models-dir"
	FlagTrainDir       = "--train-dir"
	FlagTestOnly       = "--test-only"
	FlagFeda           = "--feda"
	FlagPrintInstances = "--print-instances"
	FlagIgnorePrefix   = "--ignore-"
)

// DefaultInstancesDir is where instance dumps go when nothing is configured.
const DefaultInstancesDir = "eval"

// instanceDigestLen is the number of hex characters of the pair digest kept
// in an instance file name. 64 bits of SHA-256 make a collision negligible,
// not impossible.
const instanceDigestLen = 16

// Resolver resolves the training descriptor of a model path.
// *catalog.Training satisfies it.
type Resolver interface {
	ResolveTrainingDescriptor(path string) (string, bool)
}

// Options configures a Builder.
type Options struct {
	// InstancesDir is the directory instance files are placed in. It should
	// be absolute; the builder does not resolve it.
	InstancesDir string
	Attributes   Attributes
}

// Builder assembles run parameters for evaluation pairs.
type Builder struct {
	resolver     Resolver
	instancesDir string
	suppress     []string
}

// NewBuilder validates opts and returns a Builder backed by resolver.
func NewBuilder(resolver Resolver, opts Options) (*Builder, error) {
	if resolver == nil {
		return nil, fmt.Errorf("params: resolver is required")
	}
	if err := opts.Attributes.validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	dir := opts.InstancesDir
	if dir == "" {
		dir = DefaultInstancesDir
	}
	return &Builder{
		resolver:     resolver,
		instancesDir: dir,
		suppress:     opts.Attributes.suppressionFlags(),
	}, nil
}

// Build returns the parameters for pair. When the model's training
// provenance is unknown it returns an error wrapping domain.ErrUnrunnable.
func (b *Builder) Build(pair domain.EvaluationPair) (domain.RunParameters, error) {
	descriptor, ok := b.resolver.ResolveTrainingDescriptor(pair.Model.Path())
	if !ok {
		return nil, fmt.Errorf("%w: no training provenance for model %q", domain.ErrUnrunnable, pair.Model)
	}

	out := make(domain.RunParameters, 0, 10+len(b.suppress))
	out = append(out,
		FlagTestDir, pair.Domain.Path,
		FlagModelsDir, pair.Model.Path(),
		FlagTrainDir, descriptor,
		FlagTestOnly,
		FlagFeda,
		FlagPrintInstances, b.InstancePath(pair),
	)
	out = append(out, b.suppress...)
	return out, nil
}

// InstancePath returns the instance dump file of pair. The readable part is
// the model base name and the normalized domain name; the trailing digest
// covers the full model path and domain name so distinct pairs never share
// a file.
func (b *Builder) InstancePath(pair domain.EvaluationPair) string {
	sum := sha256.Sum256([]byte(pair.Model.Path() + "\x00" + pair.Domain.Name))
	name := fmt.Sprintf("instances_%s_%s_%s",
		pair.Model.BaseName(),
		NormalizeDomainName(pair.Domain.Name),
		hex.EncodeToString(sum[:])[:instanceDigestLen],
	)
	return filepath.Join(b.instancesDir, name)
}

// NormalizeDomainName lowercases name and collapses every run of characters
// outside [a-z0-9] into a single underscore.
func NormalizeDomainName(name string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if sb.Len() == 0 {
		return "domain"
	}
	return sb.String()
}
