// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package domain holds the value types shared by every stage of an
// evaluation sweep.
//
// # Core Concepts
//
//   - Domain: a named source of labeled test data. It is the column axis of
//     the domain-adaptation matrix.
//
//   - DomainCombination: the set of training domains a model saw. Its
//     canonical Descriptor is what the evaluator is told about provenance.
//
//   - ModelArtifact: the path of a trained model. It is the row axis of the
//     matrix.
//
//   - EvaluationPair: one cell of the matrix, tagged with a Validity that
//     downstream consumers use to filter results.
//
// All of these are immutable once built. Stages that need to look them up
// (catalogs, the grid enumerator, the parameter builder) live in their own
// packages and only pass these values around.
package domain
