// Package scan implements the staged-file scanning engine.
//
// A Scanner holds a compiled ruleset and walks a set of targets in two
// tiers: every critical rule first, then, only when the critical tier found
// nothing at all, the warning rules. One finding is produced per (rule,
// file) pair, taken from the first match the content allowlist does not
// suppress.
//
// Findings come out pattern-major: all files for the first rule, then all
// files for the second, and so on. Targets are ordered by name before
// matching, so two runs over the same inputs produce byte-identical results,
// including in the parallel mode.
//
// Documentation conventions (example env files, READMEs, template
// directories) exempt a file from the warning tier only. Critical rules are
// never exempt.
package scan
