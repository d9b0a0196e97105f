// Package hcl_adapter implements config.Loader for experiments written in
// HCL.
//
// Loading happens in two passes. The first pass parses every file and
// collects `variable` and `locals` blocks, from which the evaluation context
// is built. The second pass decodes the remaining blocks (experiment,
// domain, training, grid, validity, evaluator) against that context, so any
// attribute may use `var.*`, `local.*` and a small set of string functions.
package hcl_adapter
