// Package grid enumerates the cells of a domain-adaptation matrix.
//
// The enumeration order is part of the contract: models form the outer loop
// and domains the inner loop, both in configuration order. Log lines and
// reports follow this order, which keeps evaluation logs diffable between
// sweeps.
//
// Which cells are worth reading is a research judgment, so the Validity of a
// cell comes from an injectable Policy. Policies only annotate; they never
// drop a cell.
package grid
