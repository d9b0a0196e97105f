// Package catalog holds the two registries populated once at startup: the
// test domains a grid can evaluate against, and the training provenance of
// every model artifact.
//
// Both registries reject conflicting registrations instead of overwriting,
// so configuration mistakes surface before any pair is evaluated. Neither is
// safe for concurrent mutation; they are written during startup and only
// read during a sweep.
package catalog
