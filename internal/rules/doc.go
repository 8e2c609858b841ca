// Package rules defines the secret detection rule model: tiered severities,
// the built-in rule table, rule compilation, and the project-level
// .leakgate.toml rules/allowlist file.
//
// Rules are static for the lifetime of a run: they are compiled once at
// startup and never re-parsed per file. A rule that fails to compile is
// excluded from the run and reported as a ConfigError; it never aborts the
// scan.
package rules
