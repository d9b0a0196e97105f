// Package runner drives an evaluation sweep.
//
// Pairs are processed strictly one after another: build parameters, log
// them, call the evaluator. A pair whose provenance is unknown is skipped, a
// pair whose evaluation fails is recorded as failed, and in both cases the
// sweep moves on. Nothing is retried.
package runner
