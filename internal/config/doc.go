// Package config defines the format-agnostic model of an experiment: the
// test domains, the training provenance of each model, the grid to sweep and
// how to invoke the evaluator. It also defines the Loader interface that
// format-specific packages such as hcl_adapter implement.
//
// The Model is plain data. Turning it into catalogs and policies, and
// rejecting inconsistent provenance, happens in the app package.
package config
