// Package report renders the outcome of a sweep: a plain-text audit log
// written while the sweep runs, and a YAML report written when it ends.
package report
