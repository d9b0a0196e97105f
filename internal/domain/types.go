// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package domain

import (
	"fmt"
	"path/filepath"
)

// Domain is a named test data source.
type Domain struct {
	// Name identifies the domain in configuration and in instance file names.
	Name string
	// Path is the directory of the domain's test split.
	Path string
	// Corpus is the training domain identifier the test data is drawn from.
	// Empty means the same as Name.
	Corpus string
	// HeldOut is true when the test split is disjoint from the training
	// split of Corpus.
	HeldOut bool
}

// CorpusName returns Corpus, falling back to Name.
func (d Domain) CorpusName() string {
	if d.Corpus != "" {
		return d.Corpus
	}
	return d.Name
}

// ModelArtifact is the filesystem path of a trained model.
type ModelArtifact string

// NewModelArtifact returns the lexically cleaned form of path, so that
// "/models/a/" and "/models/a" name the same artifact.
func NewModelArtifact(path string) ModelArtifact {
	if path == "" {
		return ""
	}
	return ModelArtifact(filepath.Clean(path))
}

// Path returns the artifact path.
func (m ModelArtifact) Path() string { return string(m) }

// BaseName returns the last element of the artifact path.
func (m ModelArtifact) BaseName() string { return filepath.Base(string(m)) }

// EvaluationPair is one cell of the evaluation grid.
type EvaluationPair struct {
	Model    ModelArtifact
	Domain   Domain
	Validity Validity
}

// String renders the pair for logs, e.g. "/models/a x sharp".
func (p EvaluationPair) String() string {
	return fmt.Sprintf("%s x %s", p.Model, p.Domain.Name)
}

// RunParameters is the ordered token list handed to an evaluator.
type RunParameters []string
