// Package app contains the core application logic. It turns a loaded
// experiment into catalogs, a parameter builder and an ordered grid, and runs
// the sweep, decoupled from any specific entrypoint like a CLI.
package app
