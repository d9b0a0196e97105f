package config

import "context"

// Loader is the interface for a format-specific experiment loader.
type Loader interface {
	// Load reads every experiment file found under paths and merges them
	// into a single Model. vars supplies values for declared variables and
	// overrides their defaults.
	Load(ctx context.Context, vars map[string]string, paths ...string) (*Model, error)
}
