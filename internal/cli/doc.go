// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and ADAPTGRID_* environment variables into the
// application's configuration and dispatches the run, plan and version
// commands.
package cli
